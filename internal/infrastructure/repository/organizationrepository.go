package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"autocrm/internal/domain/organization"
	"autocrm/internal/infrastructure/persistence/mappers"
	"autocrm/internal/infrastructure/persistence/models"
	"autocrm/internal/shared/db"
)

type OrganizationRepository struct {
	db     *gorm.DB
	mapper mappers.OrganizationMapper
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{
		db:     db,
		mapper: mappers.NewOrganizationMapper(),
	}
}

func (r *OrganizationRepository) Create(ctx context.Context, org *organization.Organization) error {
	model := r.mapper.ToModel(org)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}

	return org.SetID(model.ID)
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id uint) (*organization.Organization, error) {
	var model models.OrganizationModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("organization not found")
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *OrganizationRepository) GetBySlug(ctx context.Context, slug string) (*organization.Organization, error) {
	var model models.OrganizationModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("slug = ?", strings.ToLower(slug)).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("organization not found")
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *OrganizationRepository) Update(ctx context.Context, org *organization.Organization) error {
	model := r.mapper.ToModel(org)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.OrganizationModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"active":     model.Active,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update organization: %w", result.Error)
	}

	return nil
}

func (r *OrganizationRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	if err := tx.Model(&models.OrganizationModel{}).
		Where("slug = ?", strings.ToLower(slug)).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check slug existence: %w", err)
	}

	return count > 0, nil
}

func (r *OrganizationRepository) ListActiveIDs(ctx context.Context) ([]uint, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var ids []uint
	if err := tx.Model(&models.OrganizationModel{}).
		Where("active = ?", true).
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list active organizations: %w", err)
	}

	return ids, nil
}
