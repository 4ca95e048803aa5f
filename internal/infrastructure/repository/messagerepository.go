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

type MessageRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *MessageRepository) Save(ctx context.Context, m *ticket.Message) error {
	model := r.mapper.MessageToModel(m)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}

	return m.SetID(model.ID)
}

func (r *MessageRepository) GetByID(ctx context.Context, messageID uint) (*ticket.Message, error) {
	var model models.MessageModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, messageID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("message not found")
		}
		return nil, fmt.Errorf("failed to find message: %w", err)
	}

	return r.mapper.MessageToDomain(&model)
}

func (r *MessageRepository) GetByTicketID(ctx context.Context, ticketID uint, includeInternal bool) ([]*ticket.Message, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC, id ASC")

	if !includeInternal {
		query = query.Where("internal = ?", false)
	}

	var messageModels []models.MessageModel
	if err := query.Find(&messageModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find messages: %w", err)
	}

	messages := make([]*ticket.Message, len(messageModels))
	for i, model := range messageModels {
		m, err := r.mapper.MessageToDomain(&model)
		if err != nil {
			return nil, err
		}
		messages[i] = m
	}

	return messages, nil
}

func (r *MessageRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("ticket_id = ?", ticketID).Delete(&models.MessageModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}
	return nil
}
