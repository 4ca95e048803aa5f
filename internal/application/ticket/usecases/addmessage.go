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

type AddMessageCommand struct {
	TicketID       uint
	Body           string
	Internal       bool
	AuthorID       uint
	OrganizationID uint
	Role           authorization.UserRole
}

type AddMessageResult struct {
	MessageID uint      `json:"message_id"`
	TicketID  uint      `json:"ticket_id"`
	Internal  bool      `json:"internal"`
	CreatedAt time.Time `json:"created_at"`
}

type AddMessageUseCase struct {
	ticketRepo      ticket.TicketRepository
	messageRepo     ticket.MessageRepository
	eventDispatcher events.EventDispatcher
	feedBus         pubsub.TicketFeedPublisher
	logger          logger.Interface
}

func NewAddMessageUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	eventDispatcher events.EventDispatcher,
	feedBus pubsub.TicketFeedPublisher,
	logger logger.Interface,
) *AddMessageUseCase {
	return &AddMessageUseCase{
		ticketRepo:      ticketRepo,
		messageRepo:     messageRepo,
		eventDispatcher: eventDispatcher,
		feedBus:         feedBus,
		logger:          logger,
	}
}

func (uc *AddMessageUseCase) Execute(ctx context.Context, cmd AddMessageCommand) (*AddMessageResult, error) {
	uc.logger.Infow("executing add message use case",
		"ticket_id", cmd.TicketID,
		"author_id", cmd.AuthorID,
		"internal", cmd.Internal)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.AuthorID == 0 {
		return nil, errors.NewValidationError("author ID is required")
	}
	if cmd.Internal && !cmd.Role.IsStaff() {
		return nil, errors.NewForbiddenError("only staff can post internal notes")
	}

	ticketAggregate, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to find ticket", "error", err, "ticket_id", cmd.TicketID)
		return nil, errors.NewNotFoundError("ticket not found")
	}

	if !ticketAggregate.CanBeViewedBy(cmd.AuthorID, cmd.OrganizationID, cmd.Role) {
		return nil, errors.NewForbiddenError("access denied")
	}

	if ticketAggregate.Status() == vo.StatusClosed {
		return nil, errors.NewValidationError("cannot add messages to a closed ticket")
	}

	message, err := ticket.NewMessage(cmd.TicketID, cmd.AuthorID, cmd.Body, cmd.Internal)
	if err != nil {
		uc.logger.Errorw("failed to create message entity", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.messageRepo.Save(ctx, message); err != nil {
		uc.logger.Errorw("failed to save message", "error", err)
		return nil, errors.NewInternalError("failed to save message")
	}

	event := ticket.NewMessageAddedEvent(
		cmd.TicketID,
		message.ID(),
		cmd.AuthorID,
		cmd.Internal,
		biztime.NowUTC(),
	)
	if err := uc.eventDispatcher.Publish(event); err != nil {
		uc.logger.Warnw("failed to dispatch message added event", "error", err)
	}

	publishMessageChange(ctx, uc.feedBus, uc.logger, pubsub.ChangeInsert, ticketAggregate, message)

	uc.logger.Infow("message added successfully",
		"ticket_id", cmd.TicketID,
		"message_id", message.ID())

	return &AddMessageResult{
		MessageID: message.ID(),
		TicketID:  cmd.TicketID,
		Internal:  message.Internal(),
		CreatedAt: message.CreatedAt(),
	}, nil
}
