package usecases

import (
	"context"
	"time"

	"autocrm/internal/domain/organization"
	"autocrm/internal/domain/user"
	"autocrm/internal/shared/errors"
	"autocrm/internal/shared/logger"
)

type GetProfileQuery struct {
	UserID uint
}

type ProfileResult struct {
	UserID           uint       `json:"user_id"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	Role             string     `json:"role"`
	OrganizationID   uint       `json:"organization_id"`
	OrganizationName string     `json:"organization_name"`
	Active           bool       `json:"active"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type GetProfileUseCase struct {
	userRepo user.Repository
	orgRepo  organization.Repository
	logger   logger.Interface
}

func NewGetProfileUseCase(userRepo user.Repository, orgRepo organization.Repository, logger logger.Interface) *GetProfileUseCase {
	return &GetProfileUseCase{
		userRepo: userRepo,
		orgRepo:  orgRepo,
		logger:   logger,
	}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, query GetProfileQuery) (*ProfileResult, error) {
	if query.UserID == 0 {
		return nil, errors.NewValidationError("user ID is required")
	}

	account, err := uc.userRepo.GetByID(ctx, query.UserID)
	if err != nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	org, err := uc.orgRepo.GetByID(ctx, account.OrganizationID())
	if err != nil {
		uc.logger.Errorw("failed to load organization for profile",
			"user_id", account.ID(),
			"organization_id", account.OrganizationID(),
			"error", err)
		return nil, errors.NewInternalError("failed to load organization")
	}

	return &ProfileResult{
		UserID:           account.ID(),
		Email:            account.Email(),
		Name:             account.Name(),
		Role:             account.Role().String(),
		OrganizationID:   account.OrganizationID(),
		OrganizationName: org.Name(),
		Active:           account.Active(),
		LastLoginAt:      account.LastLoginAt(),
		CreatedAt:        account.CreatedAt(),
	}, nil
}
