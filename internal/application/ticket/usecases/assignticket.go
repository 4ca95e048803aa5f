package usecases

import (
	"context"
	"time"

	"autocrm/internal/domain/shared/events"
	"autocrm/internal/domain/ticket"
	"autocrm/internal/domain/user"
	"autocrm/internal/infrastructure/pubsub"
	"autocrm/internal/shared/biztime"
	"autocrm/internal/shared/errors"
	"autocrm/internal/shared/logger"
)

type AssignTicketCommand struct {
	TicketID       uint
	AssigneeID     uint
	AssignedBy     uint
	OrganizationID uint
}

type AssignTicketResult struct {
	TicketID   uint      `json:"ticket_id"`
	AssigneeID uint      `json:"assignee_id"`
	Status     string    `json:"status"`
	Version    int       `json:"version"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type AssignTicketUseCase struct {
	ticketRepo      ticket.TicketRepository
	userRepo        user.Repository
	eventDispatcher events.EventDispatcher
	feedBus         pubsub.TicketFeedPublisher
	logger          logger.Interface
}

func NewAssignTicketUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	eventDispatcher events.EventDispatcher,
	feedBus pubsub.TicketFeedPublisher,
	logger logger.Interface,
) *AssignTicketUseCase {
	return &AssignTicketUseCase{
		ticketRepo:      ticketRepo,
		userRepo:        userRepo,
		eventDispatcher: eventDispatcher,
		feedBus:         feedBus,
		logger:          logger,
	}
}

func (uc *AssignTicketUseCase) Execute(
	ctx context.Context,
	cmd AssignTicketCommand,
) (*AssignTicketResult, error) {
	uc.logger.Infow("executing assign ticket use case",
		"ticket_id", cmd.TicketID,
		"assignee_id", cmd.AssigneeID,
		"assigned_by", cmd.AssignedBy)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid assign ticket command", "error", err)
		return nil, err
	}

	assignee, err := uc.userRepo.GetByID(ctx, cmd.AssigneeID)
	if err != nil {
		uc.logger.Errorw("failed to find assignee", "error", err, "assignee_id", cmd.AssigneeID)
		return nil, errors.NewNotFoundError("assignee not found")
	}

	if !assignee.IsStaff() {
		return nil, errors.NewValidationError("assignee must be an agent or admin")
	}
	if !assignee.Active() {
		return nil, errors.NewValidationError("assignee is deactivated and cannot be assigned tickets")
	}
	if assignee.OrganizationID() != cmd.OrganizationID {
		return nil, errors.NewValidationError("assignee belongs to a different organization")
	}

	ticketAggregate, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to find ticket", "error", err, "ticket_id", cmd.TicketID)
		return nil, errors.NewNotFoundError("ticket not found")
	}

	if ticketAggregate.OrganizationID() != cmd.OrganizationID {
		return nil, errors.NewForbiddenError("access denied")
	}

	if err := ticketAggregate.AssignTo(cmd.AssigneeID); err != nil {
		uc.logger.Errorw("failed to assign ticket", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, ticketAggregate); err != nil {
		uc.logger.Errorw("failed to update ticket", "error", err)
		return nil, errors.NewInternalError("failed to update ticket")
	}

	event := ticket.NewTicketAssignedEvent(
		ticketAggregate.ID(),
		cmd.AssigneeID,
		cmd.AssignedBy,
		biztime.NowUTC(),
	)
	if err := uc.eventDispatcher.Publish(event); err != nil {
		uc.logger.Warnw("failed to dispatch ticket assigned event", "error", err)
	}

	publishTicketChange(ctx, uc.feedBus, uc.logger, pubsub.ChangeUpdate, ticketAggregate)

	uc.logger.Infow("ticket assigned successfully",
		"ticket_id", ticketAggregate.ID(),
		"assignee_id", cmd.AssigneeID)

	return &AssignTicketResult{
		TicketID:   ticketAggregate.ID(),
		AssigneeID: cmd.AssigneeID,
		Status:     ticketAggregate.Status().String(),
		Version:    ticketAggregate.Version(),
		UpdatedAt:  ticketAggregate.UpdatedAt(),
	}, nil
}

func (uc *AssignTicketUseCase) validateCommand(cmd AssignTicketCommand) error {
	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}
	if cmd.AssigneeID == 0 {
		return errors.NewValidationError("assignee ID is required")
	}
	if cmd.AssignedBy == 0 {
		return errors.NewValidationError("assigned by ID is required")
	}
	if cmd.OrganizationID == 0 {
		return errors.NewValidationError("organization ID is required")
	}
	return nil
}
