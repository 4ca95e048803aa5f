package mappers

import (
	"autocrm/internal/domain/user"
	"autocrm/internal/infrastructure/persistence/models"
	"autocrm/internal/shared/authorization"
)

type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToDomain(model *models.UserModel) (*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:             u.ID(),
		Email:          u.Email(),
		Name:           u.Name(),
		PasswordHash:   u.PasswordHash(),
		Role:           u.Role().String(),
		OrganizationID: u.OrganizationID(),
		Active:         u.Active(),
		LastLoginAt:    timePtrToMillis(u.LastLoginAt()),
		Version:        u.Version(),
		CreatedAt:      u.CreatedAt().UnixMilli(),
		UpdatedAt:      u.UpdatedAt().UnixMilli(),
	}
}

func (m *UserMapperImpl) ToDomain(model *models.UserModel) (*user.User, error) {
	return user.ReconstructUser(
		model.ID,
		model.Email,
		model.Name,
		model.PasswordHash,
		authorization.UserRole(model.Role),
		model.OrganizationID,
		model.Active,
		millisPtrToTime(model.LastLoginAt),
		model.Version,
		convertMillisToTime(model.CreatedAt),
		convertMillisToTime(model.UpdatedAt),
	)
}
