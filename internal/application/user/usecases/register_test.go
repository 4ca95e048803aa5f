package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autocrm/internal/domain/organization"
	"autocrm/internal/domain/user"
	"autocrm/internal/shared/authorization"
	"autocrm/internal/shared/errors"
)

func TestRegisterUseCase_Execute_Success(t *testing.T) {
	var createdOrg *organization.Organization
	orgRepo := &mockOrganizationRepository{
		createFunc: func(ctx context.Context, org *organization.Organization) error {
			createdOrg = org
			return org.SetID(7)
		},
	}
	var createdUser *user.User
	userRepo := &mockUserRepository{
		createFunc: func(ctx context.Context, u *user.User) error {
			createdUser = u
			return u.SetID(1)
		},
	}

	useCase := NewRegisterUseCase(userRepo, orgRepo, &mockPasswordHasher{}, &mockTokenService{}, &mockTransactionManager{}, &mockLogger{})
	result, err := useCase.Execute(context.Background(), RegisterCommand{
		OrganizationName: "Acme Support",
		OrganizationSlug: "acme-support",
		Email:            "founder@example.com",
		Name:             "Founder",
		Password:         "correct horse battery",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(1), result.UserID)
	assert.Equal(t, uint(7), result.OrganizationID)
	assert.Equal(t, "access", result.AccessToken)

	require.NotNil(t, createdOrg)
	assert.Equal(t, "acme-support", createdOrg.Slug())

	// The first account of a new organization is always the admin.
	require.NotNil(t, createdUser)
	assert.Equal(t, authorization.RoleAdmin, createdUser.Role())
	assert.Equal(t, uint(7), createdUser.OrganizationID())
	assert.Equal(t, "hashed:correct horse battery", createdUser.PasswordHash())
}

func TestRegisterUseCase_Execute_SlugTaken(t *testing.T) {
	orgRepo := &mockOrganizationRepository{
		existsBySlugFunc: func(ctx context.Context, slug string) (bool, error) {
			return true, nil
		},
	}

	useCase := NewRegisterUseCase(&mockUserRepository{}, orgRepo, &mockPasswordHasher{}, &mockTokenService{}, &mockTransactionManager{}, &mockLogger{})
	_, err := useCase.Execute(context.Background(), RegisterCommand{
		OrganizationName: "Acme Support",
		OrganizationSlug: "acme-support",
		Email:            "founder@example.com",
		Name:             "Founder",
		Password:         "correct horse battery",
	})

	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeConflict, appErr.Type)
}

func TestRegisterUseCase_Execute_ValidationErrors(t *testing.T) {
	useCase := NewRegisterUseCase(&mockUserRepository{}, &mockOrganizationRepository{}, &mockPasswordHasher{}, &mockTokenService{}, &mockTransactionManager{}, &mockLogger{})

	base := RegisterCommand{
		OrganizationName: "Acme Support",
		OrganizationSlug: "acme-support",
		Email:            "founder@example.com",
		Name:             "Founder",
		Password:         "correct horse battery",
	}

	tests := []struct {
		name   string
		mutate func(cmd *RegisterCommand)
	}{
		{"missing organization name", func(cmd *RegisterCommand) { cmd.OrganizationName = "" }},
		{"missing slug", func(cmd *RegisterCommand) { cmd.OrganizationSlug = "" }},
		{"missing email", func(cmd *RegisterCommand) { cmd.Email = "" }},
		{"missing name", func(cmd *RegisterCommand) { cmd.Name = "" }},
		{"short password", func(cmd *RegisterCommand) { cmd.Password = "short" }},
		{"bad slug characters", func(cmd *RegisterCommand) { cmd.OrganizationSlug = "Not A Slug!" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := base
			tt.mutate(&cmd)
			_, err := useCase.Execute(context.Background(), cmd)
			require.Error(t, err)
			appErr, ok := err.(*errors.AppError)
			require.True(t, ok)
			assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
		})
	}
}

func TestRegisterUseCase_Execute_RollbackOnUserFailure(t *testing.T) {
	userRepo := &mockUserRepository{
		createFunc: func(ctx context.Context, u *user.User) error {
			return assert.AnError
		},
	}

	useCase := NewRegisterUseCase(userRepo, &mockOrganizationRepository{}, &mockPasswordHasher{}, &mockTokenService{}, &mockTransactionManager{}, &mockLogger{})
	_, err := useCase.Execute(context.Background(), RegisterCommand{
		OrganizationName: "Acme Support",
		OrganizationSlug: "acme-support",
		Email:            "founder@example.com",
		Name:             "Founder",
		Password:         "correct horse battery",
	})

	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeInternal, appErr.Type)
}
