package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autocrm/internal/domain/shared/events"
	"autocrm/internal/domain/ticket"
	vo "autocrm/internal/domain/ticket/valueobjects"
	"autocrm/internal/domain/user"
	"autocrm/internal/shared/authorization"
)

func newTestAgent(t *testing.T, id uint, orgID uint) *user.User {
	t.Helper()
	u, err := user.NewUser("agent@example.com", "Agent Smith", "$2a$10$hash", authorization.RoleAgent, orgID)
	require.NoError(t, err)
	require.NoError(t, u.SetID(id))
	return u
}

func TestAssignTicketUseCase_Execute_Success(t *testing.T) {
	existing := newTestTicket(7, 1, 10)
	agent := newTestAgent(t, 5, 10)

	var updated *ticket.Ticket
	mockRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return existing, nil
		},
		UpdateFunc: func(ctx context.Context, tkt *ticket.Ticket) error {
			updated = tkt
			return nil
		},
	}
	mockUsers := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			return agent, nil
		},
	}
	var dispatched []events.DomainEvent
	mockDispatcher := &mockEventDispatcher{
		PublishFunc: func(event events.DomainEvent) error {
			dispatched = append(dispatched, event)
			return nil
		},
	}
	mockFeed := &mockFeedPublisher{}

	useCase := NewAssignTicketUseCase(mockRepo, mockUsers, mockDispatcher, mockFeed, &mockLogger{})
	result, err := useCase.Execute(context.Background(), AssignTicketCommand{
		TicketID:       7,
		AssigneeID:     5,
		AssignedBy:     2,
		OrganizationID: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(5), result.AssigneeID)
	assert.Equal(t, vo.StatusInProgress.String(), result.Status)

	require.NotNil(t, updated)
	require.NotNil(t, updated.AssigneeID())
	assert.Equal(t, uint(5), *updated.AssigneeID())

	require.Len(t, dispatched, 1)
	assert.Equal(t, ticket.EventTypeTicketAssigned, dispatched[0].GetEventType())
	require.Len(t, mockFeed.published, 1)
}

func TestAssignTicketUseCase_Execute_AssigneeNotStaff(t *testing.T) {
	customer, err := user.NewUser("cust@example.com", "Customer", "$2a$10$hash", authorization.RoleCustomer, 10)
	require.NoError(t, err)
	require.NoError(t, customer.SetID(5))

	mockUsers := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			return customer, nil
		},
	}

	useCase := NewAssignTicketUseCase(&mockTicketRepository{}, mockUsers, &mockEventDispatcher{}, &mockFeedPublisher{}, &mockLogger{})
	result, err := useCase.Execute(context.Background(), AssignTicketCommand{
		TicketID:       7,
		AssigneeID:     5,
		AssignedBy:     2,
		OrganizationID: 10,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "agent or admin")
}

func TestAssignTicketUseCase_Execute_DeactivatedAssignee(t *testing.T) {
	agent := newTestAgent(t, 5, 10)
	agent.Deactivate()

	mockUsers := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			return agent, nil
		},
	}

	useCase := NewAssignTicketUseCase(&mockTicketRepository{}, mockUsers, &mockEventDispatcher{}, &mockFeedPublisher{}, &mockLogger{})
	result, err := useCase.Execute(context.Background(), AssignTicketCommand{
		TicketID:       7,
		AssigneeID:     5,
		AssignedBy:     2,
		OrganizationID: 10,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "deactivated")
}

func TestAssignTicketUseCase_Execute_WrongOrganization(t *testing.T) {
	agent := newTestAgent(t, 5, 99)

	mockUsers := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			return agent, nil
		},
	}

	useCase := NewAssignTicketUseCase(&mockTicketRepository{}, mockUsers, &mockEventDispatcher{}, &mockFeedPublisher{}, &mockLogger{})
	result, err := useCase.Execute(context.Background(), AssignTicketCommand{
		TicketID:       7,
		AssigneeID:     5,
		AssignedBy:     2,
		OrganizationID: 10,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "different organization")
}
