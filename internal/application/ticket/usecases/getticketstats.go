package usecases

import (
	"context"

	"autocrm/internal/domain/ticket"
	vo "autocrm/internal/domain/ticket/valueobjects"
	"autocrm/internal/shared/errors"
	"autocrm/internal/shared/logger"
)

type GetTicketStatsQuery struct {
	OrganizationID uint
}

type GetTicketStatsResult struct {
	TotalTickets   int64            `json:"total_tickets"`
	OpenTickets    int64            `json:"open_tickets"`
	OverdueTickets int64            `json:"overdue_tickets"`
	ByStatus       map[string]int64 `json:"by_status"`
}

type GetTicketStatsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewGetTicketStatsUseCase(
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *GetTicketStatsUseCase {
	return &GetTicketStatsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *GetTicketStatsUseCase) Execute(
	ctx context.Context,
	query GetTicketStatsQuery,
) (*GetTicketStatsResult, error) {
	uc.logger.Debugw("executing get ticket stats use case",
		"organization_id", query.OrganizationID)

	if query.OrganizationID == 0 {
		return nil, errors.NewValidationError("organization ID is required")
	}

	byStatus, err := uc.ticketRepo.CountByStatus(ctx, query.OrganizationID)
	if err != nil {
		uc.logger.Errorw("failed to count tickets by status", "error", err)
		return nil, errors.NewInternalError("failed to count tickets")
	}

	overdue, err := uc.ticketRepo.GetOverdueTickets(ctx, query.OrganizationID)
	if err != nil {
		uc.logger.Errorw("failed to count overdue tickets", "error", err)
		return nil, errors.NewInternalError("failed to count overdue tickets")
	}

	result := &GetTicketStatsResult{
		ByStatus:       byStatus,
		OverdueTickets: int64(len(overdue)),
	}

	for status, count := range byStatus {
		result.TotalTickets += count
		if status == vo.StatusOpen.String() || status == vo.StatusInProgress.String() {
			result.OpenTickets += count
		}
	}

	return result, nil
}
