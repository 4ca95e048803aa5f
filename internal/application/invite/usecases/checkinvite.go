package usecases

import (
	"context"
	"time"

	"autocrm/internal/domain/invite"
	"autocrm/internal/shared/biztime"
	"autocrm/internal/shared/errors"
	"autocrm/internal/shared/logger"
)

type CheckInviteQuery struct {
	Token string
	// Kind optionally pins the expected role ("agent" or "customer"). An
	// agent signup form cannot redeem a customer invite and vice versa.
	Kind string
}

type CheckInviteResult struct {
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	OrganizationID uint      `json:"organization_id"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// CheckInviteUseCase validates a raw invite token before the invitee commits
// to a password. Expired and consumed invites fail with their own error types
// so the signup form can explain what happened.
type CheckInviteUseCase struct {
	inviteRepo invite.Repository
	logger     logger.Interface
}

func NewCheckInviteUseCase(inviteRepo invite.Repository, logger logger.Interface) *CheckInviteUseCase {
	return &CheckInviteUseCase{
		inviteRepo: inviteRepo,
		logger:     logger,
	}
}

func (uc *CheckInviteUseCase) Execute(ctx context.Context, query CheckInviteQuery) (*CheckInviteResult, error) {
	if query.Token == "" {
		return nil, errors.NewValidationError("token is required")
	}

	inv, err := uc.inviteRepo.GetByTokenHash(ctx, HashInviteToken(query.Token))
	if err != nil {
		return nil, errors.NewNotFoundError("invite not found")
	}

	if inv.IsConsumed() {
		return nil, errors.NewInviteConsumedError()
	}
	if inv.IsExpired(biztime.NowUTC()) {
		return nil, errors.NewInviteExpiredError()
	}
	if query.Kind != "" && query.Kind != inv.Role().String() {
		return nil, errors.NewNotFoundError("invite not found")
	}

	return &CheckInviteResult{
		Email:          inv.Email(),
		Role:           inv.Role().String(),
		OrganizationID: inv.OrganizationID(),
		ExpiresAt:      inv.ExpiresAt(),
	}, nil
}
