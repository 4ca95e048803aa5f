package usecases

import (
	"context"

	"autocrm/internal/domain/ticket"
	vo "autocrm/internal/domain/ticket/valueobjects"
	"autocrm/internal/infrastructure/pubsub"
	"autocrm/internal/shared/errors"
	"autocrm/internal/shared/logger"
)

type ChangeCategoryCommand struct {
	TicketID       uint
	NewCategory    string
	UserID         uint
	OrganizationID uint
}

type ChangeCategoryResult struct {
	TicketID    uint   `json:"ticket_id"`
	OldCategory string `json:"old_category"`
	NewCategory string `json:"new_category"`
	Version     int    `json:"version"`
}

type ChangeCategoryUseCase struct {
	ticketRepo ticket.TicketRepository
	feedBus    pubsub.TicketFeedPublisher
	logger     logger.Interface
}

func NewChangeCategoryUseCase(
	ticketRepo ticket.TicketRepository,
	feedBus pubsub.TicketFeedPublisher,
	logger logger.Interface,
) *ChangeCategoryUseCase {
	return &ChangeCategoryUseCase{
		ticketRepo: ticketRepo,
		feedBus:    feedBus,
		logger:     logger,
	}
}

func (uc *ChangeCategoryUseCase) Execute(ctx context.Context, cmd ChangeCategoryCommand) (*ChangeCategoryResult, error) {
	uc.logger.Infow("executing change category use case",
		"ticket_id", cmd.TicketID,
		"new_category", cmd.NewCategory)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	newCategory, err := vo.NewCategory(cmd.NewCategory)
	if err != nil {
		return nil, errors.NewValidationError("invalid category")
	}

	ticketAggregate, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to find ticket", "error", err, "ticket_id", cmd.TicketID)
		return nil, errors.NewNotFoundError("ticket not found")
	}

	if ticketAggregate.OrganizationID() != cmd.OrganizationID {
		return nil, errors.NewForbiddenError("access denied")
	}

	oldCategory := ticketAggregate.Category()

	if err := ticketAggregate.ChangeCategory(newCategory); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, ticketAggregate); err != nil {
		uc.logger.Errorw("failed to update ticket", "error", err)
		return nil, errors.NewInternalError("failed to update ticket")
	}

	if oldCategory != ticketAggregate.Category() {
		publishTicketChange(ctx, uc.feedBus, uc.logger, pubsub.ChangeUpdate, ticketAggregate)
	}

	uc.logger.Infow("ticket category changed successfully",
		"ticket_id", ticketAggregate.ID(),
		"old_category", oldCategory.String(),
		"new_category", ticketAggregate.Category().String())

	return &ChangeCategoryResult{
		TicketID:    ticketAggregate.ID(),
		OldCategory: oldCategory.String(),
		NewCategory: ticketAggregate.Category().String(),
		Version:     ticketAggregate.Version(),
	}, nil
}
