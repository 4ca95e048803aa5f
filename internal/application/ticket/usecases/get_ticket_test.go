package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autocrm/internal/domain/ticket"
	"autocrm/internal/shared/authorization"
)

func TestGetTicketUseCase_Execute_StaffSeesInternalMessages(t *testing.T) {
	existing := newTestTicket(7, 1, 10)

	public, err := ticket.NewMessage(7, 1, "my printer is broken", false)
	require.NoError(t, err)
	require.NoError(t, public.SetID(1))
	internal, err := ticket.NewMessage(7, 5, "probably user error", true)
	require.NoError(t, err)
	require.NoError(t, internal.SetID(2))

	mockRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}
	mockMessages := &mockMessageRepository{
		GetByTicketIDFunc: func(ctx context.Context, ticketID uint, includeInternal bool) ([]*ticket.Message, error) {
			if includeInternal {
				return []*ticket.Message{public, internal}, nil
			}
			return []*ticket.Message{public}, nil
		},
	}

	useCase := NewGetTicketUseCase(mockRepo, mockMessages, &mockAttachmentRepository{}, &mockLogger{})

	staffView, err := useCase.Execute(context.Background(), GetTicketQuery{
		TicketID:       7,
		UserID:         5,
		OrganizationID: 10,
		Role:           authorization.RoleAgent,
	})
	require.NoError(t, err)
	assert.Len(t, staffView.Messages, 2)

	customerView, err := useCase.Execute(context.Background(), GetTicketQuery{
		TicketID:       7,
		UserID:         1,
		OrganizationID: 10,
		Role:           authorization.RoleCustomer,
	})
	require.NoError(t, err)
	require.Len(t, customerView.Messages, 1)
	assert.False(t, customerView.Messages[0].Internal)
}

func TestGetTicketUseCase_Execute_CustomerDeniedOnForeignTicket(t *testing.T) {
	existing := newTestTicket(7, 1, 10)

	mockRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}

	useCase := NewGetTicketUseCase(mockRepo, &mockMessageRepository{}, &mockAttachmentRepository{}, &mockLogger{})
	result, err := useCase.Execute(context.Background(), GetTicketQuery{
		TicketID:       7,
		UserID:         2,
		OrganizationID: 10,
		Role:           authorization.RoleCustomer,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "access denied")
}
