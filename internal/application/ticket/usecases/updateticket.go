package usecases

import (
	"context"
	"time"

	"autocrm/internal/domain/ticket"
	"autocrm/internal/infrastructure/pubsub"
	"autocrm/internal/shared/authorization"
	"autocrm/internal/shared/errors"
	"autocrm/internal/shared/logger"
)

type UpdateTicketCommand struct {
	TicketID       uint
	Title          string
	Description    string
	Tags           []string
	UserID         uint
	OrganizationID uint
	Role           authorization.UserRole
}

type UpdateTicketResult struct {
	TicketID  uint      `json:"ticket_id"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpdateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	feedBus    pubsub.TicketFeedPublisher
	logger     logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	feedBus pubsub.TicketFeedPublisher,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo: ticketRepo,
		feedBus:    feedBus,
		logger:     logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error) {
	uc.logger.Infow("executing update ticket use case",
		"ticket_id", cmd.TicketID,
		"user_id", cmd.UserID)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	ticketAggregate, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to find ticket", "error", err, "ticket_id", cmd.TicketID)
		return nil, errors.NewNotFoundError("ticket not found")
	}

	if !ticketAggregate.CanBeViewedBy(cmd.UserID, cmd.OrganizationID, cmd.Role) {
		return nil, errors.NewForbiddenError("access denied")
	}

	if err := ticketAggregate.UpdateDetails(cmd.Title, cmd.Description, cmd.Tags); err != nil {
		uc.logger.Errorw("failed to update ticket details", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, ticketAggregate); err != nil {
		uc.logger.Errorw("failed to update ticket", "error", err)
		return nil, errors.NewInternalError("failed to update ticket")
	}

	publishTicketChange(ctx, uc.feedBus, uc.logger, pubsub.ChangeUpdate, ticketAggregate)

	uc.logger.Infow("ticket updated successfully", "ticket_id", ticketAggregate.ID())

	return &UpdateTicketResult{
		TicketID:  ticketAggregate.ID(),
		Version:   ticketAggregate.Version(),
		UpdatedAt: ticketAggregate.UpdatedAt(),
	}, nil
}
