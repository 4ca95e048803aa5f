package usecases

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"autocrm/internal/domain/invite"
	"autocrm/internal/domain/organization"
	"autocrm/internal/domain/user"
	"autocrm/internal/infrastructure/email"
	"autocrm/internal/shared/authorization"
	"autocrm/internal/shared/biztime"
	"autocrm/internal/shared/errors"
	"autocrm/internal/shared/logger"
)

const inviteTokenBytes = 32

type CreateInviteCommand struct {
	Email          string
	Role           string
	OrganizationID uint
	InvitedBy      uint
}

type CreateInviteResult struct {
	InviteID  uint      `json:"invite_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateInviteUseCase issues a single-use invite. The raw token leaves the
// server only inside the invite email; the database keeps its SHA-256 hash.
type CreateInviteUseCase struct {
	inviteRepo   invite.Repository
	userRepo     user.Repository
	orgRepo      organization.Repository
	emailService email.Service
	expiryHours  int
	logger       logger.Interface
}

func NewCreateInviteUseCase(
	inviteRepo invite.Repository,
	userRepo user.Repository,
	orgRepo organization.Repository,
	emailService email.Service,
	expiryHours int,
	logger logger.Interface,
) *CreateInviteUseCase {
	if expiryHours <= 0 {
		expiryHours = 72
	}
	return &CreateInviteUseCase{
		inviteRepo:   inviteRepo,
		userRepo:     userRepo,
		orgRepo:      orgRepo,
		emailService: emailService,
		expiryHours:  expiryHours,
		logger:       logger,
	}
}

func (uc *CreateInviteUseCase) Execute(ctx context.Context, cmd CreateInviteCommand) (*CreateInviteResult, error) {
	uc.logger.Infow("executing create invite use case",
		"email", cmd.Email,
		"role", cmd.Role,
		"organization_id", cmd.OrganizationID,
		"invited_by", cmd.InvitedBy)

	role := authorization.UserRole(cmd.Role)
	if !role.IsValid() {
		return nil, errors.NewValidationError("invalid role")
	}
	if role == authorization.RoleAdmin {
		return nil, errors.NewValidationError("admin accounts cannot be created by invite")
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, cmd.Email)
	if err != nil {
		uc.logger.Errorw("failed to check email existence", "error", err)
		return nil, errors.NewInternalError("failed to check email")
	}
	if exists {
		return nil, errors.NewConflictError("a user with this email already exists")
	}

	org, err := uc.orgRepo.GetByID(ctx, cmd.OrganizationID)
	if err != nil {
		uc.logger.Errorw("failed to load organization", "error", err, "organization_id", cmd.OrganizationID)
		return nil, errors.NewNotFoundError("organization not found")
	}

	rawToken, tokenHash, err := generateInviteToken()
	if err != nil {
		uc.logger.Errorw("failed to generate invite token", "error", err)
		return nil, errors.NewInternalError("failed to generate invite token")
	}

	expiresAt := biztime.NowUTC().Add(time.Duration(uc.expiryHours) * time.Hour)

	newInvite, err := invite.NewInvite(tokenHash, cmd.Email, role, cmd.OrganizationID, cmd.InvitedBy, expiresAt)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.inviteRepo.Create(ctx, newInvite); err != nil {
		uc.logger.Errorw("failed to create invite", "error", err)
		return nil, errors.NewInternalError("failed to create invite")
	}

	if err := uc.emailService.SendInviteEmail(newInvite.Email(), org.Name(), role.String(), rawToken, uc.expiryHours); err != nil {
		uc.logger.Errorw("failed to send invite email",
			"invite_id", newInvite.ID(),
			"error", err)
		// The invite row stays; the admin can re-issue if the email never lands.
	}

	uc.logger.Infow("invite created successfully",
		"invite_id", newInvite.ID(),
		"role", role.String())

	return &CreateInviteResult{
		InviteID:  newInvite.ID(),
		Email:     newInvite.Email(),
		Role:      newInvite.Role().String(),
		ExpiresAt: newInvite.ExpiresAt(),
	}, nil
}

// generateInviteToken returns the raw token for the email and the hash the
// database stores.
func generateInviteToken() (raw string, hash string, err error) {
	buf := make([]byte, inviteTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	sum := sha256.Sum256([]byte(raw))
	return raw, hex.EncodeToString(sum[:]), nil
}

// HashInviteToken maps a presented token to its stored hash form.
func HashInviteToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
