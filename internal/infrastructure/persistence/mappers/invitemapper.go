package mappers

import (
	"autocrm/internal/domain/invite"
	"autocrm/internal/infrastructure/persistence/models"
	"autocrm/internal/shared/authorization"
)

type InviteMapper interface {
	ToModel(i *invite.Invite) *models.InviteModel
	ToDomain(model *models.InviteModel) (*invite.Invite, error)
}

type InviteMapperImpl struct{}

func NewInviteMapper() InviteMapper {
	return &InviteMapperImpl{}
}

func (m *InviteMapperImpl) ToModel(i *invite.Invite) *models.InviteModel {
	return &models.InviteModel{
		ID:             i.ID(),
		TokenHash:      i.TokenHash(),
		Email:          i.Email(),
		Role:           i.Role().String(),
		OrganizationID: i.OrganizationID(),
		InvitedBy:      i.InvitedBy(),
		ExpiresAt:      i.ExpiresAt().UnixMilli(),
		AcceptedAt:     timePtrToMillis(i.AcceptedAt()),
		AcceptedBy:     i.AcceptedBy(),
		CreatedAt:      i.CreatedAt().UnixMilli(),
	}
}

func (m *InviteMapperImpl) ToDomain(model *models.InviteModel) (*invite.Invite, error) {
	return invite.ReconstructInvite(
		model.ID,
		model.TokenHash,
		model.Email,
		authorization.UserRole(model.Role),
		model.OrganizationID,
		model.InvitedBy,
		convertMillisToTime(model.ExpiresAt),
		millisPtrToTime(model.AcceptedAt),
		model.AcceptedBy,
		convertMillisToTime(model.CreatedAt),
	)
}
