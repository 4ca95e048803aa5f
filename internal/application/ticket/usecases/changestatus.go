package usecases

import (
	"context"
	"time"

	"autocrm/internal/domain/shared/events"
	"autocrm/internal/domain/ticket"
	vo "autocrm/internal/domain/ticket/valueobjects"
	"autocrm/internal/infrastructure/pubsub"
	"autocrm/internal/shared/authorization"
	"autocrm/internal/shared/biztime"
	"autocrm/internal/shared/errors"
	"autocrm/internal/shared/logger"
)

type ChangeStatusCommand struct {
	TicketID       uint
	NewStatus      string
	UserID         uint
	OrganizationID uint
	Role           authorization.UserRole
}

type ChangeStatusResult struct {
	TicketID  uint      `json:"ticket_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ChangeStatusUseCase struct {
	ticketRepo      ticket.TicketRepository
	eventDispatcher events.EventDispatcher
	feedBus         pubsub.TicketFeedPublisher
	logger          logger.Interface
}

func NewChangeStatusUseCase(
	ticketRepo ticket.TicketRepository,
	eventDispatcher events.EventDispatcher,
	feedBus pubsub.TicketFeedPublisher,
	logger logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		ticketRepo:      ticketRepo,
		eventDispatcher: eventDispatcher,
		feedBus:         feedBus,
		logger:          logger,
	}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error) {
	uc.logger.Infow("executing change status use case",
		"ticket_id", cmd.TicketID,
		"new_status", cmd.NewStatus,
		"user_id", cmd.UserID)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	newStatus, err := vo.NewTicketStatus(cmd.NewStatus)
	if err != nil {
		return nil, errors.NewValidationError("invalid status")
	}

	ticketAggregate, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to find ticket", "error", err, "ticket_id", cmd.TicketID)
		return nil, errors.NewNotFoundError("ticket not found")
	}

	if !ticketAggregate.CanBeViewedBy(cmd.UserID, cmd.OrganizationID, cmd.Role) {
		return nil, errors.NewForbiddenError("access denied")
	}

	// Customers can close their own tickets and nothing else.
	if !cmd.Role.IsStaff() && newStatus != vo.StatusClosed {
		return nil, errors.NewForbiddenError("customers can only close tickets")
	}

	oldStatus := ticketAggregate.Status()

	if err := ticketAggregate.ChangeStatus(newStatus); err != nil {
		uc.logger.Warnw("status transition rejected",
			"ticket_id", cmd.TicketID,
			"from", oldStatus.String(),
			"to", newStatus.String(),
			"error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, ticketAggregate); err != nil {
		uc.logger.Errorw("failed to update ticket", "error", err)
		return nil, errors.NewInternalError("failed to update ticket")
	}

	if oldStatus != ticketAggregate.Status() {
		event := ticket.NewTicketStatusChangedEvent(
			ticketAggregate.ID(),
			oldStatus.String(),
			ticketAggregate.Status().String(),
			cmd.UserID,
			biztime.NowUTC(),
		)
		if err := uc.eventDispatcher.Publish(event); err != nil {
			uc.logger.Warnw("failed to dispatch status changed event", "error", err)
		}

		publishTicketChange(ctx, uc.feedBus, uc.logger, pubsub.ChangeUpdate, ticketAggregate)
	}

	uc.logger.Infow("ticket status changed successfully",
		"ticket_id", ticketAggregate.ID(),
		"old_status", oldStatus.String(),
		"new_status", ticketAggregate.Status().String())

	return &ChangeStatusResult{
		TicketID:  ticketAggregate.ID(),
		OldStatus: oldStatus.String(),
		NewStatus: ticketAggregate.Status().String(),
		Version:   ticketAggregate.Version(),
		UpdatedAt: ticketAggregate.UpdatedAt(),
	}, nil
}
