package usecases

import (
	"context"
	"io"

	"autocrm/internal/domain/ticket"
	"autocrm/internal/infrastructure/storage"
	"autocrm/internal/shared/authorization"
	"autocrm/internal/shared/errors"
	"autocrm/internal/shared/logger"
)

type GetAttachmentURLQuery struct {
	AttachmentSID  string
	UserID         uint
	OrganizationID uint
	Role           authorization.UserRole
}

type GetAttachmentURLResult struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

// GetAttachmentURLUseCase authorizes access through the parent ticket and
// hands back a signed, time-limited download URL. The download endpoint
// itself only checks the signature.
type GetAttachmentURLUseCase struct {
	ticketRepo     ticket.TicketRepository
	attachmentRepo ticket.AttachmentRepository
	urlSigner      *storage.URLSigner
	logger         logger.Interface
}

func NewGetAttachmentURLUseCase(
	ticketRepo ticket.TicketRepository,
	attachmentRepo ticket.AttachmentRepository,
	urlSigner *storage.URLSigner,
	logger logger.Interface,
) *GetAttachmentURLUseCase {
	return &GetAttachmentURLUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		urlSigner:      urlSigner,
		logger:         logger,
	}
}

func (uc *GetAttachmentURLUseCase) Execute(ctx context.Context, query GetAttachmentURLQuery) (*GetAttachmentURLResult, error) {
	if query.AttachmentSID == "" {
		return nil, errors.NewValidationError("attachment SID is required")
	}

	attachment, err := uc.attachmentRepo.GetBySID(ctx, query.AttachmentSID)
	if err != nil {
		uc.logger.Errorw("failed to find attachment", "error", err, "sid", query.AttachmentSID)
		return nil, errors.NewNotFoundError("attachment not found")
	}

	ticketAggregate, err := uc.ticketRepo.GetByID(ctx, attachment.TicketID())
	if err != nil {
		uc.logger.Errorw("failed to find parent ticket", "error", err, "ticket_id", attachment.TicketID())
		return nil, errors.NewNotFoundError("ticket not found")
	}

	if !ticketAggregate.CanBeViewedBy(query.UserID, query.OrganizationID, query.Role) {
		return nil, errors.NewForbiddenError("access denied")
	}

	url, err := uc.urlSigner.Sign(attachment.SID())
	if err != nil {
		uc.logger.Errorw("failed to sign attachment URL", "error", err)
		return nil, errors.NewInternalError("failed to sign attachment URL")
	}

	return &GetAttachmentURLResult{
		URL:      url,
		FileName: attachment.FileName(),
	}, nil
}

type DownloadAttachmentQuery struct {
	AttachmentSID string
	Expires       int64
	Signature     string
}

type DownloadAttachmentResult struct {
	Content     io.ReadCloser
	FileName    string
	ContentType string
	SizeBytes   int64
}

// DownloadAttachmentUseCase serves the signed URL. Possession of a valid
// signature is the authorization.
type DownloadAttachmentUseCase struct {
	attachmentRepo ticket.AttachmentRepository
	blobStore      storage.BlobStore
	urlSigner      *storage.URLSigner
	logger         logger.Interface
}

func NewDownloadAttachmentUseCase(
	attachmentRepo ticket.AttachmentRepository,
	blobStore storage.BlobStore,
	urlSigner *storage.URLSigner,
	logger logger.Interface,
) *DownloadAttachmentUseCase {
	return &DownloadAttachmentUseCase{
		attachmentRepo: attachmentRepo,
		blobStore:      blobStore,
		urlSigner:      urlSigner,
		logger:         logger,
	}
}

func (uc *DownloadAttachmentUseCase) Execute(ctx context.Context, query DownloadAttachmentQuery) (*DownloadAttachmentResult, error) {
	if err := uc.urlSigner.Verify(query.AttachmentSID, query.Expires, query.Signature); err != nil {
		uc.logger.Warnw("rejected attachment download",
			"sid", query.AttachmentSID,
			"error", err)
		return nil, errors.NewForbiddenError("invalid or expired download link")
	}

	attachment, err := uc.attachmentRepo.GetBySID(ctx, query.AttachmentSID)
	if err != nil {
		return nil, errors.NewNotFoundError("attachment not found")
	}

	content, err := uc.blobStore.Get(ctx, attachment.StorageKey())
	if err != nil {
		uc.logger.Errorw("failed to open attachment blob", "error", err, "storage_key", attachment.StorageKey())
		return nil, errors.NewInternalError("failed to open attachment")
	}

	return &DownloadAttachmentResult{
		Content:     content,
		FileName:    attachment.FileName(),
		ContentType: attachment.ContentType(),
		SizeBytes:   attachment.SizeBytes(),
	}, nil
}
