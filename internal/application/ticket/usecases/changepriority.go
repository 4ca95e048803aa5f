package usecases

import (
	"context"
	"time"

	"autocrm/internal/domain/shared/events"
	"autocrm/internal/domain/ticket"
	vo "autocrm/internal/domain/ticket/valueobjects"
	"autocrm/internal/infrastructure/pubsub"
	"autocrm/internal/shared/biztime"
	"autocrm/internal/shared/errors"
	"autocrm/internal/shared/logger"
)

type ChangePriorityCommand struct {
	TicketID       uint
	NewPriority    string
	UserID         uint
	OrganizationID uint
}

type ChangePriorityResult struct {
	TicketID    uint       `json:"ticket_id"`
	OldPriority string     `json:"old_priority"`
	NewPriority string     `json:"new_priority"`
	SLADueTime  *time.Time `json:"sla_due_time"`
	Version     int        `json:"version"`
}

// ChangePriorityUseCase reprioritizes a ticket. Only staff reach this path;
// the permission layer blocks customers before the handler runs.
type ChangePriorityUseCase struct {
	ticketRepo      ticket.TicketRepository
	eventDispatcher events.EventDispatcher
	feedBus         pubsub.TicketFeedPublisher
	logger          logger.Interface
}

func NewChangePriorityUseCase(
	ticketRepo ticket.TicketRepository,
	eventDispatcher events.EventDispatcher,
	feedBus pubsub.TicketFeedPublisher,
	logger logger.Interface,
) *ChangePriorityUseCase {
	return &ChangePriorityUseCase{
		ticketRepo:      ticketRepo,
		eventDispatcher: eventDispatcher,
		feedBus:         feedBus,
		logger:          logger,
	}
}

func (uc *ChangePriorityUseCase) Execute(ctx context.Context, cmd ChangePriorityCommand) (*ChangePriorityResult, error) {
	uc.logger.Infow("executing change priority use case",
		"ticket_id", cmd.TicketID,
		"new_priority", cmd.NewPriority,
		"user_id", cmd.UserID)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	newPriority, err := vo.NewPriority(cmd.NewPriority)
	if err != nil {
		return nil, errors.NewValidationError("invalid priority")
	}

	ticketAggregate, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to find ticket", "error", err, "ticket_id", cmd.TicketID)
		return nil, errors.NewNotFoundError("ticket not found")
	}

	if ticketAggregate.OrganizationID() != cmd.OrganizationID {
		return nil, errors.NewForbiddenError("access denied")
	}

	oldPriority := ticketAggregate.Priority()

	if err := ticketAggregate.ChangePriority(newPriority); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, ticketAggregate); err != nil {
		uc.logger.Errorw("failed to update ticket", "error", err)
		return nil, errors.NewInternalError("failed to update ticket")
	}

	if oldPriority != ticketAggregate.Priority() {
		event := ticket.NewTicketPriorityChangedEvent(
			ticketAggregate.ID(),
			oldPriority.String(),
			ticketAggregate.Priority().String(),
			cmd.UserID,
			biztime.NowUTC(),
		)
		if err := uc.eventDispatcher.Publish(event); err != nil {
			uc.logger.Warnw("failed to dispatch priority changed event", "error", err)
		}

		publishTicketChange(ctx, uc.feedBus, uc.logger, pubsub.ChangeUpdate, ticketAggregate)
	}

	uc.logger.Infow("ticket priority changed successfully",
		"ticket_id", ticketAggregate.ID(),
		"old_priority", oldPriority.String(),
		"new_priority", ticketAggregate.Priority().String())

	return &ChangePriorityResult{
		TicketID:    ticketAggregate.ID(),
		OldPriority: oldPriority.String(),
		NewPriority: ticketAggregate.Priority().String(),
		SLADueTime:  ticketAggregate.SLADueTime(),
		Version:     ticketAggregate.Version(),
	}, nil
}
