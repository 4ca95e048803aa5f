package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autocrm/internal/domain/invite"
	"autocrm/internal/domain/user"
	"autocrm/internal/shared/errors"
)

func TestAcceptInviteUseCase_Execute_Success(t *testing.T) {
	const token = "a-valid-raw-token"
	var consumedBy uint
	inviteRepo := &mockInviteRepository{
		getByTokenHashFunc: func(ctx context.Context, tokenHash string) (*invite.Invite, error) {
			return newTestInvite(3, token), nil
		},
		consumeByTokenHashFunc: func(ctx context.Context, tokenHash string, userID uint, now time.Time) (bool, error) {
			consumedBy = userID
			return true, nil
		},
	}
	var createdUser *user.User
	userRepo := &mockUserRepository{
		createFunc: func(ctx context.Context, u *user.User) error {
			createdUser = u
			return u.SetID(42)
		},
	}

	useCase := NewAcceptInviteUseCase(inviteRepo, userRepo, &mockPasswordHasher{}, &mockTransactionManager{}, &mockLogger{})
	result, err := useCase.Execute(context.Background(), AcceptInviteCommand{
		Token:    token,
		Name:     "New Agent",
		Password: "correct horse battery",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(42), result.UserID)
	assert.Equal(t, "new.agent@example.com", result.Email)
	assert.Equal(t, "agent", result.Role)
	assert.Equal(t, uint(1), result.OrganizationID)

	require.NotNil(t, createdUser)
	assert.Equal(t, "hashed:correct horse battery", createdUser.PasswordHash())
	assert.Equal(t, uint(42), consumedBy)
}

func TestAcceptInviteUseCase_Execute_SecondAcceptLoses(t *testing.T) {
	const token = "a-contested-raw-token"
	inviteRepo := &mockInviteRepository{
		getByTokenHashFunc: func(ctx context.Context, tokenHash string) (*invite.Invite, error) {
			// Both racers read the invite before either wrote.
			return newTestInvite(3, token), nil
		},
		consumeByTokenHashFunc: func(ctx context.Context, tokenHash string, userID uint, now time.Time) (bool, error) {
			return false, nil
		},
	}

	useCase := NewAcceptInviteUseCase(inviteRepo, &mockUserRepository{}, &mockPasswordHasher{}, &mockTransactionManager{}, &mockLogger{})
	_, err := useCase.Execute(context.Background(), AcceptInviteCommand{
		Token:    token,
		Name:     "Second Racer",
		Password: "correct horse battery",
	})

	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeInviteConsumed, appErr.Type)
}

func TestAcceptInviteUseCase_Execute_ExpiredInvite(t *testing.T) {
	const token = "a-stale-raw-token"
	inviteRepo := &mockInviteRepository{
		getByTokenHashFunc: func(ctx context.Context, tokenHash string) (*invite.Invite, error) {
			return newExpiredInvite(4, token), nil
		},
	}
	userRepo := &mockUserRepository{
		createFunc: func(ctx context.Context, u *user.User) error {
			t.Fatal("no user should be created for an expired invite")
			return nil
		},
	}

	useCase := NewAcceptInviteUseCase(inviteRepo, userRepo, &mockPasswordHasher{}, &mockTransactionManager{}, &mockLogger{})
	_, err := useCase.Execute(context.Background(), AcceptInviteCommand{
		Token:    token,
		Name:     "Too Late",
		Password: "correct horse battery",
	})

	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeInviteExpired, appErr.Type)
}

func TestAcceptInviteUseCase_Execute_ShortPassword(t *testing.T) {
	useCase := NewAcceptInviteUseCase(&mockInviteRepository{}, &mockUserRepository{}, &mockPasswordHasher{}, &mockTransactionManager{}, &mockLogger{})

	_, err := useCase.Execute(context.Background(), AcceptInviteCommand{
		Token:    "a-valid-raw-token",
		Name:     "New Agent",
		Password: "short",
	})

	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
}
