package usecases

import (
	"context"

	"autocrm/internal/domain/invite"
	"autocrm/internal/shared/biztime"
	"autocrm/internal/shared/logger"
)

// CleanupExpiredInvitesUseCase removes invite rows past their expiry. It runs
// from the scheduler as a periodic batch job.
type CleanupExpiredInvitesUseCase struct {
	inviteRepo invite.Repository
	logger     logger.Interface
}

func NewCleanupExpiredInvitesUseCase(inviteRepo invite.Repository, logger logger.Interface) *CleanupExpiredInvitesUseCase {
	return &CleanupExpiredInvitesUseCase{
		inviteRepo: inviteRepo,
		logger:     logger,
	}
}

func (uc *CleanupExpiredInvitesUseCase) Execute(ctx context.Context) (int, error) {
	deleted, err := uc.inviteRepo.DeleteExpired(ctx, biztime.NowUTC())
	if err != nil {
		uc.logger.Errorw("failed to delete expired invites", "error", err)
		return 0, err
	}
	if deleted > 0 {
		uc.logger.Infow("deleted expired invites", "count", deleted)
	}
	return int(deleted), nil
}
