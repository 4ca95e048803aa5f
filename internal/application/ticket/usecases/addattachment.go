package usecases

import (
	"context"
	"fmt"
	"io"
	"time"

	"autocrm/internal/domain/ticket"
	vo "autocrm/internal/domain/ticket/valueobjects"
	"autocrm/internal/infrastructure/storage"
	"autocrm/internal/shared/authorization"
	"autocrm/internal/shared/errors"
	"autocrm/internal/shared/id"
	"autocrm/internal/shared/logger"
)

type AddAttachmentCommand struct {
	TicketID       uint
	MessageID      *uint
	FileName       string
	ContentType    string
	SizeBytes      int64
	Content        io.Reader
	UploaderID     uint
	OrganizationID uint
	Role           authorization.UserRole
}

type AddAttachmentResult struct {
	AttachmentID uint      `json:"attachment_id"`
	SID          string    `json:"sid"`
	FileName     string    `json:"file_name"`
	SizeBytes    int64     `json:"size_bytes"`
	CreatedAt    time.Time `json:"created_at"`
}

type AddAttachmentUseCase struct {
	ticketRepo     ticket.TicketRepository
	attachmentRepo ticket.AttachmentRepository
	blobStore      storage.BlobStore
	logger         logger.Interface
}

func NewAddAttachmentUseCase(
	ticketRepo ticket.TicketRepository,
	attachmentRepo ticket.AttachmentRepository,
	blobStore storage.BlobStore,
	logger logger.Interface,
) *AddAttachmentUseCase {
	return &AddAttachmentUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		blobStore:      blobStore,
		logger:         logger,
	}
}

func (uc *AddAttachmentUseCase) Execute(ctx context.Context, cmd AddAttachmentCommand) (*AddAttachmentResult, error) {
	uc.logger.Infow("executing add attachment use case",
		"ticket_id", cmd.TicketID,
		"file_name", cmd.FileName,
		"size_bytes", cmd.SizeBytes,
		"uploader_id", cmd.UploaderID)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.Content == nil {
		return nil, errors.NewValidationError("file content is required")
	}

	ticketAggregate, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to find ticket", "error", err, "ticket_id", cmd.TicketID)
		return nil, errors.NewNotFoundError("ticket not found")
	}

	if !ticketAggregate.CanBeViewedBy(cmd.UploaderID, cmd.OrganizationID, cmd.Role) {
		return nil, errors.NewForbiddenError("access denied")
	}

	if ticketAggregate.Status() == vo.StatusClosed {
		return nil, errors.NewValidationError("cannot attach files to a closed ticket")
	}

	sid, err := id.GenerateWithPrefix(id.PrefixAttachment, 20)
	if err != nil {
		return nil, errors.NewInternalError("failed to generate attachment ID")
	}

	storageKey := fmt.Sprintf("org/%d/tickets/%d/%s", ticketAggregate.OrganizationID(), cmd.TicketID, sid)

	attachment, err := ticket.NewAttachment(
		sid,
		cmd.TicketID,
		cmd.MessageID,
		cmd.UploaderID,
		cmd.FileName,
		cmd.ContentType,
		cmd.SizeBytes,
		storageKey,
	)
	if err != nil {
		uc.logger.Errorw("failed to create attachment entity", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.blobStore.Put(ctx, storageKey, cmd.Content, cmd.SizeBytes); err != nil {
		uc.logger.Errorw("failed to store attachment bytes", "error", err, "storage_key", storageKey)
		return nil, errors.NewInternalError("failed to store attachment")
	}

	if err := uc.attachmentRepo.Save(ctx, attachment); err != nil {
		uc.logger.Errorw("failed to save attachment record", "error", err)
		// Orphaned blobs are cheaper than dangling records. Best effort removal.
		if delErr := uc.blobStore.Delete(ctx, storageKey); delErr != nil {
			uc.logger.Warnw("failed to remove orphaned blob", "storage_key", storageKey, "error", delErr)
		}
		return nil, errors.NewInternalError("failed to save attachment")
	}

	uc.logger.Infow("attachment added successfully",
		"ticket_id", cmd.TicketID,
		"attachment_sid", sid)

	return &AddAttachmentResult{
		AttachmentID: attachment.ID(),
		SID:          attachment.SID(),
		FileName:     attachment.FileName(),
		SizeBytes:    attachment.SizeBytes(),
		CreatedAt:    attachment.CreatedAt(),
	}, nil
}
