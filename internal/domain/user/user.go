package user

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"autocrm/internal/shared/authorization"
	"autocrm/internal/shared/biztime"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User represents a profile inside an organization. The role decides what the
// profile may do; the organization scopes what it may see.
type User struct {
	id             uint
	email          string
	name           string
	passwordHash   string
	role           authorization.UserRole
	organizationID uint
	active         bool
	lastLoginAt    *time.Time
	version        int
	createdAt      time.Time
	updatedAt      time.Time
}

func NewUser(email, name, passwordHash string, role authorization.UserRole, organizationID uint) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("invalid email address")
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("name exceeds maximum length of 100 characters")
	}
	if len(passwordHash) == 0 {
		return nil, fmt.Errorf("password hash is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	if organizationID == 0 {
		return nil, fmt.Errorf("organization ID is required")
	}

	now := biztime.NowUTC()
	return &User{
		email:          email,
		name:           name,
		passwordHash:   passwordHash,
		role:           role,
		organizationID: organizationID,
		active:         true,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructUser(
	id uint,
	email string,
	name string,
	passwordHash string,
	role authorization.UserRole,
	organizationID uint,
	active bool,
	lastLoginAt *time.Time,
	version int,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if len(email) == 0 {
		return nil, fmt.Errorf("email is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	if organizationID == 0 {
		return nil, fmt.Errorf("organization ID is required")
	}

	return &User{
		id:             id,
		email:          email,
		name:           name,
		passwordHash:   passwordHash,
		role:           role,
		organizationID: organizationID,
		active:         active,
		lastLoginAt:    lastLoginAt,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) Email() string {
	return u.email
}

func (u *User) Name() string {
	return u.name
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) Role() authorization.UserRole {
	return u.role
}

func (u *User) OrganizationID() uint {
	return u.organizationID
}

func (u *User) Active() bool {
	return u.active
}

func (u *User) LastLoginAt() *time.Time {
	return u.lastLoginAt
}

func (u *User) Version() int {
	return u.version
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

func (u *User) UpdateName(name string) error {
	name = strings.TrimSpace(name)
	if len(name) == 0 {
		return fmt.Errorf("name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("name exceeds maximum length of 100 characters")
	}
	u.name = name
	u.touch()
	return nil
}

func (u *User) UpdatePasswordHash(hash string) error {
	if len(hash) == 0 {
		return fmt.Errorf("password hash is required")
	}
	u.passwordHash = hash
	u.touch()
	return nil
}

func (u *User) RecordLogin() {
	now := biztime.NowUTC()
	u.lastLoginAt = &now
	u.touch()
}

func (u *User) Deactivate() {
	if !u.active {
		return
	}
	u.active = false
	u.touch()
}

func (u *User) Activate() {
	if u.active {
		return
	}
	u.active = true
	u.touch()
}

func (u *User) IsStaff() bool {
	return u.role.IsStaff()
}

func (u *User) touch() {
	u.updatedAt = biztime.NowUTC()
	u.version++
}
