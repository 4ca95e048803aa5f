package mappers

import (
	"autocrm/internal/domain/organization"
	"autocrm/internal/infrastructure/persistence/models"
)

type OrganizationMapper interface {
	ToModel(o *organization.Organization) *models.OrganizationModel
	ToDomain(model *models.OrganizationModel) (*organization.Organization, error)
}

type OrganizationMapperImpl struct{}

func NewOrganizationMapper() OrganizationMapper {
	return &OrganizationMapperImpl{}
}

func (m *OrganizationMapperImpl) ToModel(o *organization.Organization) *models.OrganizationModel {
	return &models.OrganizationModel{
		ID:        o.ID(),
		Name:      o.Name(),
		Slug:      o.Slug(),
		Active:    o.Active(),
		Version:   o.Version(),
		CreatedAt: o.CreatedAt().UnixMilli(),
		UpdatedAt: o.UpdatedAt().UnixMilli(),
	}
}

func (m *OrganizationMapperImpl) ToDomain(model *models.OrganizationModel) (*organization.Organization, error) {
	return organization.ReconstructOrganization(
		model.ID,
		model.Name,
		model.Slug,
		model.Active,
		model.Version,
		convertMillisToTime(model.CreatedAt),
		convertMillisToTime(model.UpdatedAt),
	)
}
