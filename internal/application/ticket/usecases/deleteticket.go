package usecases

import (
	"context"

	"autocrm/internal/domain/shared/events"
	"autocrm/internal/domain/ticket"
	"autocrm/internal/infrastructure/pubsub"
	"autocrm/internal/infrastructure/storage"
	"autocrm/internal/shared/authorization"
	"autocrm/internal/shared/biztime"
	"autocrm/internal/shared/db"
	"autocrm/internal/shared/errors"
	"autocrm/internal/shared/logger"
)

type DeleteTicketCommand struct {
	TicketID       uint
	UserID         uint
	OrganizationID uint
	Role           authorization.UserRole
}

type DeleteTicketResult struct {
	TicketID uint `json:"ticket_id"`
}

// DeleteTicketUseCase removes a ticket with its thread and attachments.
// The row deletions run in one transaction; blob removal happens after
// commit since the filesystem cannot join it.
type DeleteTicketUseCase struct {
	ticketRepo      ticket.TicketRepository
	messageRepo     ticket.MessageRepository
	attachmentRepo  ticket.AttachmentRepository
	blobStore       storage.BlobStore
	txManager       *db.TransactionManager
	eventDispatcher events.EventDispatcher
	feedBus         pubsub.TicketFeedPublisher
	logger          logger.Interface
}

func NewDeleteTicketUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	attachmentRepo ticket.AttachmentRepository,
	blobStore storage.BlobStore,
	txManager *db.TransactionManager,
	eventDispatcher events.EventDispatcher,
	feedBus pubsub.TicketFeedPublisher,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		ticketRepo:      ticketRepo,
		messageRepo:     messageRepo,
		attachmentRepo:  attachmentRepo,
		blobStore:       blobStore,
		txManager:       txManager,
		eventDispatcher: eventDispatcher,
		feedBus:         feedBus,
		logger:          logger,
	}
}

func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) (*DeleteTicketResult, error) {
	uc.logger.Infow("executing delete ticket use case",
		"ticket_id", cmd.TicketID,
		"user_id", cmd.UserID)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if !cmd.Role.IsAdmin() {
		return nil, errors.NewForbiddenError("only admins can delete tickets")
	}

	ticketAggregate, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to find ticket", "error", err, "ticket_id", cmd.TicketID)
		return nil, errors.NewNotFoundError("ticket not found")
	}

	if ticketAggregate.OrganizationID() != cmd.OrganizationID {
		return nil, errors.NewForbiddenError("access denied")
	}

	attachments, err := uc.attachmentRepo.GetByTicketID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load attachments", "error", err, "ticket_id", cmd.TicketID)
		return nil, errors.NewInternalError("failed to load attachments")
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.attachmentRepo.DeleteByTicketID(txCtx, cmd.TicketID); err != nil {
			return err
		}
		if err := uc.messageRepo.DeleteByTicketID(txCtx, cmd.TicketID); err != nil {
			return err
		}
		return uc.ticketRepo.Delete(txCtx, cmd.TicketID)
	})
	if err != nil {
		uc.logger.Errorw("failed to delete ticket", "error", err, "ticket_id", cmd.TicketID)
		return nil, errors.NewInternalError("failed to delete ticket")
	}

	for _, a := range attachments {
		if err := uc.blobStore.Delete(ctx, a.StorageKey()); err != nil {
			uc.logger.Warnw("failed to remove attachment blob",
				"storage_key", a.StorageKey(),
				"error", err)
		}
	}

	event := ticket.NewTicketDeletedEvent(
		cmd.TicketID,
		cmd.OrganizationID,
		cmd.UserID,
		biztime.NowUTC(),
	)
	if err := uc.eventDispatcher.Publish(event); err != nil {
		uc.logger.Warnw("failed to dispatch ticket deleted event", "error", err)
	}

	publishTicketChange(ctx, uc.feedBus, uc.logger, pubsub.ChangeDelete, ticketAggregate)

	uc.logger.Infow("ticket deleted successfully", "ticket_id", cmd.TicketID)

	return &DeleteTicketResult{TicketID: cmd.TicketID}, nil
}
