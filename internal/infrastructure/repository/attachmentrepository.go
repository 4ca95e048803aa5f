package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"autocrm/internal/domain/ticket"
	"autocrm/internal/infrastructure/persistence/mappers"
	"autocrm/internal/infrastructure/persistence/models"
	"autocrm/internal/shared/db"
)

type AttachmentRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *AttachmentRepository) Save(ctx context.Context, a *ticket.Attachment) error {
	model := r.mapper.AttachmentToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save attachment: %w", err)
	}

	return a.SetID(model.ID)
}

func (r *AttachmentRepository) GetByID(ctx context.Context, attachmentID uint) (*ticket.Attachment, error) {
	var model models.AttachmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, attachmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("attachment not found")
		}
		return nil, fmt.Errorf("failed to find attachment: %w", err)
	}

	return r.mapper.AttachmentToDomain(&model)
}

func (r *AttachmentRepository) GetBySID(ctx context.Context, sid string) (*ticket.Attachment, error) {
	var model models.AttachmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("sid = ?", sid).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("attachment not found")
		}
		return nil, fmt.Errorf("failed to find attachment: %w", err)
	}

	return r.mapper.AttachmentToDomain(&model)
}

func (r *AttachmentRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var attachmentModels []models.AttachmentModel
	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&attachmentModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find attachments: %w", err)
	}

	attachments := make([]*ticket.Attachment, len(attachmentModels))
	for i, model := range attachmentModels {
		a, err := r.mapper.AttachmentToDomain(&model)
		if err != nil {
			return nil, err
		}
		attachments[i] = a
	}

	return attachments, nil
}

func (r *AttachmentRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("ticket_id = ?", ticketID).Delete(&models.AttachmentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete attachments: %w", err)
	}
	return nil
}
