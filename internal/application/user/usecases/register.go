package usecases

import (
	"context"
	"strings"

	"autocrm/internal/domain/organization"
	"autocrm/internal/domain/user"
	"autocrm/internal/shared/authorization"
	"autocrm/internal/shared/errors"
	"autocrm/internal/shared/logger"
)

type RegisterCommand struct {
	OrganizationName string
	OrganizationSlug string
	Email            string
	Name             string
	Password         string
}

type RegisterResult struct {
	UserID         uint   `json:"user_id"`
	OrganizationID uint   `json:"organization_id"`
	Email          string `json:"email"`
	AccessToken    string `json:"access_token"`
	RefreshToken   string `json:"refresh_token"`
	ExpiresIn      int64  `json:"expires_in"`
}

// RegisterUseCase bootstraps a new tenant: the organization and its first
// admin commit in one transaction. Agents and customers join later by invite.
type RegisterUseCase struct {
	userRepo  user.Repository
	orgRepo   organization.Repository
	hasher    PasswordHasher
	tokens    TokenService
	txManager TransactionManager
	logger    logger.Interface
}

func NewRegisterUseCase(
	userRepo user.Repository,
	orgRepo organization.Repository,
	hasher PasswordHasher,
	tokens TokenService,
	txManager TransactionManager,
	logger logger.Interface,
) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo:  userRepo,
		orgRepo:   orgRepo,
		hasher:    hasher,
		tokens:    tokens,
		txManager: txManager,
		logger:    logger,
	}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*RegisterResult, error) {
	uc.logger.Infow("executing register use case",
		"organization_slug", cmd.OrganizationSlug,
		"email", cmd.Email)

	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	emailTaken, err := uc.userRepo.ExistsByEmail(ctx, cmd.Email)
	if err != nil {
		uc.logger.Errorw("failed to check email existence", "error", err)
		return nil, errors.NewInternalError("failed to check email")
	}
	if emailTaken {
		return nil, errors.NewConflictError("a user with this email already exists")
	}

	slugTaken, err := uc.orgRepo.ExistsBySlug(ctx, cmd.OrganizationSlug)
	if err != nil {
		uc.logger.Errorw("failed to check slug existence", "error", err)
		return nil, errors.NewInternalError("failed to check organization slug")
	}
	if slugTaken {
		return nil, errors.NewConflictError("an organization with this slug already exists")
	}

	org, err := organization.NewOrganization(cmd.OrganizationName, cmd.OrganizationSlug)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	passwordHash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to process password")
	}

	var admin *user.User
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.orgRepo.Create(txCtx, org); err != nil {
			return errors.NewInternalError("failed to create organization")
		}
		admin, err = user.NewUser(cmd.Email, cmd.Name, passwordHash, authorization.RoleAdmin, org.ID())
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := uc.userRepo.Create(txCtx, admin); err != nil {
			return errors.NewInternalError("failed to create user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	pair, err := uc.tokens.Generate(admin.ID(), org.ID(), admin.Role())
	if err != nil {
		uc.logger.Errorw("failed to generate tokens", "error", err)
		return nil, errors.NewInternalError("failed to generate tokens")
	}

	uc.logger.Infow("organization registered successfully",
		"organization_id", org.ID(),
		"user_id", admin.ID())

	return &RegisterResult{
		UserID:         admin.ID(),
		OrganizationID: org.ID(),
		Email:          admin.Email(),
		AccessToken:    pair.AccessToken,
		RefreshToken:   pair.RefreshToken,
		ExpiresIn:      pair.ExpiresIn,
	}, nil
}

func (uc *RegisterUseCase) validateCommand(cmd RegisterCommand) error {
	if strings.TrimSpace(cmd.OrganizationName) == "" {
		return errors.NewValidationError("organization name is required")
	}
	if strings.TrimSpace(cmd.OrganizationSlug) == "" {
		return errors.NewValidationError("organization slug is required")
	}
	if strings.TrimSpace(cmd.Email) == "" {
		return errors.NewValidationError("email is required")
	}
	if strings.TrimSpace(cmd.Name) == "" {
		return errors.NewValidationError("name is required")
	}
	if len(cmd.Password) < 8 {
		return errors.NewValidationError("password must be at least 8 characters")
	}
	return nil
}
