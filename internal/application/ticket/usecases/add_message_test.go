package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autocrm/internal/domain/ticket"
	vo "autocrm/internal/domain/ticket/valueobjects"
	"autocrm/internal/infrastructure/pubsub"
	"autocrm/internal/shared/authorization"
)

func TestAddMessageUseCase_Execute_Success(t *testing.T) {
	existing := newTestTicket(7, 1, 10)

	var saved *ticket.Message
	mockMessages := &mockMessageRepository{
		SaveFunc: func(ctx context.Context, m *ticket.Message) error {
			if err := m.SetID(42); err != nil {
				return err
			}
			saved = m
			return nil
		},
	}
	mockRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}
	mockFeed := &mockFeedPublisher{}

	useCase := NewAddMessageUseCase(mockRepo, mockMessages, &mockEventDispatcher{}, mockFeed, &mockLogger{})
	result, err := useCase.Execute(context.Background(), AddMessageCommand{
		TicketID:       7,
		Body:           "Have you tried turning it off and on again?",
		AuthorID:       5,
		OrganizationID: 10,
		Role:           authorization.RoleAgent,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(42), result.MessageID)
	assert.False(t, result.Internal)

	require.NotNil(t, saved)
	assert.Equal(t, uint(7), saved.TicketID())
	assert.Equal(t, uint(5), saved.AuthorID())

	require.Len(t, mockFeed.published, 1)
	event := mockFeed.published[0]
	assert.Equal(t, pubsub.ChangeInsert, event.Type)
	assert.Equal(t, pubsub.TableMessages, event.Table)
	assert.Equal(t, uint(42), event.RowID)
	assert.Equal(t, uint(10), event.OrganizationID)
	assert.Equal(t, uint(1), event.CustomerID)
	assert.False(t, event.Internal)
}

func TestAddMessageUseCase_Execute_InternalNoteFlagsFeedEvent(t *testing.T) {
	existing := newTestTicket(7, 1, 10)

	mockMessages := &mockMessageRepository{
		SaveFunc: func(ctx context.Context, m *ticket.Message) error {
			return m.SetID(43)
		},
	}
	mockRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}
	mockFeed := &mockFeedPublisher{}

	useCase := NewAddMessageUseCase(mockRepo, mockMessages, &mockEventDispatcher{}, mockFeed, &mockLogger{})
	result, err := useCase.Execute(context.Background(), AddMessageCommand{
		TicketID:       7,
		Body:           "Customer sounded frustrated, handle with care",
		Internal:       true,
		AuthorID:       5,
		OrganizationID: 10,
		Role:           authorization.RoleAgent,
	})

	require.NoError(t, err)
	assert.True(t, result.Internal)

	require.Len(t, mockFeed.published, 1)
	assert.True(t, mockFeed.published[0].Internal)
}

func TestAddMessageUseCase_Execute_CustomerCannotPostInternal(t *testing.T) {
	useCase := NewAddMessageUseCase(&mockTicketRepository{}, &mockMessageRepository{}, &mockEventDispatcher{}, &mockFeedPublisher{}, &mockLogger{})
	result, err := useCase.Execute(context.Background(), AddMessageCommand{
		TicketID:       7,
		Body:           "sneaky note",
		Internal:       true,
		AuthorID:       1,
		OrganizationID: 10,
		Role:           authorization.RoleCustomer,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "staff")
}

func TestAddMessageUseCase_Execute_CustomerCannotSeeOthersTicket(t *testing.T) {
	existing := newTestTicket(7, 1, 10)

	mockRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}

	useCase := NewAddMessageUseCase(mockRepo, &mockMessageRepository{}, &mockEventDispatcher{}, &mockFeedPublisher{}, &mockLogger{})
	result, err := useCase.Execute(context.Background(), AddMessageCommand{
		TicketID:       7,
		Body:           "hello",
		AuthorID:       99,
		OrganizationID: 10,
		Role:           authorization.RoleCustomer,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "access denied")
}

func TestAddMessageUseCase_Execute_ClosedTicketRejected(t *testing.T) {
	existing := newTestTicket(7, 1, 10)
	require.NoError(t, existing.AssignTo(5))
	require.NoError(t, existing.ChangeStatus(vo.StatusResolved))
	require.NoError(t, existing.ChangeStatus(vo.StatusClosed))

	mockRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return existing, nil
		},
	}

	useCase := NewAddMessageUseCase(mockRepo, &mockMessageRepository{}, &mockEventDispatcher{}, &mockFeedPublisher{}, &mockLogger{})
	result, err := useCase.Execute(context.Background(), AddMessageCommand{
		TicketID:       7,
		Body:           "anyone there?",
		AuthorID:       1,
		OrganizationID: 10,
		Role:           authorization.RoleCustomer,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "closed")
}
