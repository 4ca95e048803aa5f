package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupExpiredInvitesUseCase_Execute(t *testing.T) {
	inviteRepo := &mockInviteRepository{
		deleteExpiredFunc: func(ctx context.Context, before time.Time) (int64, error) {
			assert.WithinDuration(t, time.Now().UTC(), before, time.Minute)
			return 4, nil
		},
	}

	useCase := NewCleanupExpiredInvitesUseCase(inviteRepo, &mockLogger{})
	deleted, err := useCase.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, deleted)
}

func TestCleanupExpiredInvitesUseCase_Execute_RepoError(t *testing.T) {
	inviteRepo := &mockInviteRepository{
		deleteExpiredFunc: func(ctx context.Context, before time.Time) (int64, error) {
			return 0, assert.AnError
		},
	}

	useCase := NewCleanupExpiredInvitesUseCase(inviteRepo, &mockLogger{})
	deleted, err := useCase.Execute(context.Background())

	require.Error(t, err)
	assert.Zero(t, deleted)
}
