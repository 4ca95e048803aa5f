package invite

import (
	"fmt"
	"strings"
	"time"

	"autocrm/internal/shared/authorization"
	"autocrm/internal/shared/biztime"
)

// Invite is a single-use token that lets someone join an organization with a
// fixed role. Only the SHA-256 hash of the token is stored; the raw token is
// handed to the invitee exactly once.
type Invite struct {
	id             uint
	tokenHash      string
	email          string
	role           authorization.UserRole
	organizationID uint
	invitedBy      uint
	expiresAt      time.Time
	acceptedAt     *time.Time
	acceptedBy     *uint
	createdAt      time.Time
}

func NewInvite(
	tokenHash string,
	email string,
	role authorization.UserRole,
	organizationID uint,
	invitedBy uint,
	expiresAt time.Time,
) (*Invite, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if len(tokenHash) == 0 {
		return nil, fmt.Errorf("token hash is required")
	}
	if len(email) == 0 {
		return nil, fmt.Errorf("email is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	if role == authorization.RoleAdmin {
		return nil, fmt.Errorf("admin accounts cannot be created by invite")
	}
	if organizationID == 0 {
		return nil, fmt.Errorf("organization ID is required")
	}
	if invitedBy == 0 {
		return nil, fmt.Errorf("inviter ID is required")
	}
	if !expiresAt.After(biztime.NowUTC()) {
		return nil, fmt.Errorf("expiry must be in the future")
	}

	return &Invite{
		tokenHash:      tokenHash,
		email:          email,
		role:           role,
		organizationID: organizationID,
		invitedBy:      invitedBy,
		expiresAt:      expiresAt,
		createdAt:      biztime.NowUTC(),
	}, nil
}

func ReconstructInvite(
	id uint,
	tokenHash string,
	email string,
	role authorization.UserRole,
	organizationID uint,
	invitedBy uint,
	expiresAt time.Time,
	acceptedAt *time.Time,
	acceptedBy *uint,
	createdAt time.Time,
) (*Invite, error) {
	if id == 0 {
		return nil, fmt.Errorf("invite ID cannot be zero")
	}
	if len(tokenHash) == 0 {
		return nil, fmt.Errorf("token hash is required")
	}

	return &Invite{
		id:             id,
		tokenHash:      tokenHash,
		email:          email,
		role:           role,
		organizationID: organizationID,
		invitedBy:      invitedBy,
		expiresAt:      expiresAt,
		acceptedAt:     acceptedAt,
		acceptedBy:     acceptedBy,
		createdAt:      createdAt,
	}, nil
}

func (i *Invite) ID() uint {
	return i.id
}

func (i *Invite) TokenHash() string {
	return i.tokenHash
}

func (i *Invite) Email() string {
	return i.email
}

func (i *Invite) Role() authorization.UserRole {
	return i.role
}

func (i *Invite) OrganizationID() uint {
	return i.organizationID
}

func (i *Invite) InvitedBy() uint {
	return i.invitedBy
}

func (i *Invite) ExpiresAt() time.Time {
	return i.expiresAt
}

func (i *Invite) AcceptedAt() *time.Time {
	return i.acceptedAt
}

func (i *Invite) AcceptedBy() *uint {
	return i.acceptedBy
}

func (i *Invite) CreatedAt() time.Time {
	return i.createdAt
}

func (i *Invite) SetID(id uint) error {
	if i.id != 0 {
		return fmt.Errorf("invite ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("invite ID cannot be zero")
	}
	i.id = id
	return nil
}

func (i *Invite) IsExpired(now time.Time) bool {
	return now.After(i.expiresAt)
}

func (i *Invite) IsConsumed() bool {
	return i.acceptedAt != nil
}

// Accept marks the invite as consumed by the given user. Consumed and expired
// invites cannot be accepted again.
func (i *Invite) Accept(userID uint, now time.Time) error {
	if i.IsConsumed() {
		return fmt.Errorf("invite has already been used")
	}
	if i.IsExpired(now) {
		return fmt.Errorf("invite has expired")
	}
	if userID == 0 {
		return fmt.Errorf("user ID is required")
	}

	i.acceptedAt = &now
	i.acceptedBy = &userID
	return nil
}
