package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"autocrm/internal/domain/invite"
	"autocrm/internal/infrastructure/persistence/mappers"
	"autocrm/internal/infrastructure/persistence/models"
	"autocrm/internal/shared/db"
)

type InviteRepository struct {
	db     *gorm.DB
	mapper mappers.InviteMapper
}

func NewInviteRepository(db *gorm.DB) *InviteRepository {
	return &InviteRepository{
		db:     db,
		mapper: mappers.NewInviteMapper(),
	}
}

func (r *InviteRepository) Create(ctx context.Context, i *invite.Invite) error {
	model := r.mapper.ToModel(i)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create invite: %w", err)
	}

	return i.SetID(model.ID)
}

func (r *InviteRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*invite.Invite, error) {
	var model models.InviteModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("token_hash = ?", tokenHash).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("invite not found")
		}
		return nil, fmt.Errorf("failed to find invite: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *InviteRepository) Update(ctx context.Context, i *invite.Invite) error {
	model := r.mapper.ToModel(i)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.InviteModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"accepted_at": model.AcceptedAt,
			"accepted_by": model.AcceptedBy,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update invite: %w", result.Error)
	}

	return nil
}

// ConsumeByTokenHash atomically marks an unconsumed invite as accepted and
// reports whether this call won the race. Two concurrent accepts of the same
// token see exactly one RowsAffected == 1.
func (r *InviteRepository) ConsumeByTokenHash(ctx context.Context, tokenHash string, userID uint, now time.Time) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.InviteModel{}).
		Where("token_hash = ? AND accepted_at IS NULL", tokenHash).
		Updates(map[string]interface{}{
			"accepted_at": now.UnixMilli(),
			"accepted_by": userID,
		})

	if result.Error != nil {
		return false, fmt.Errorf("failed to consume invite: %w", result.Error)
	}

	return result.RowsAffected == 1, nil
}

func (r *InviteRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Where("expires_at < ? AND accepted_at IS NULL", before.UnixMilli()).
		Delete(&models.InviteModel{})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired invites: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func (r *InviteRepository) ListByOrganization(ctx context.Context, organizationID uint) ([]*invite.Invite, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var inviteModels []models.InviteModel
	if err := tx.
		Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Find(&inviteModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}

	invites := make([]*invite.Invite, len(inviteModels))
	for i, model := range inviteModels {
		inv, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, err
		}
		invites[i] = inv
	}

	return invites, nil
}
