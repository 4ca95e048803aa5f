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

func TestEscalateOverdueTicketsUseCase_Execute(t *testing.T) {
	overdue := newTestTicket(7, 1, 10)
	require.NoError(t, overdue.AssignTo(5))

	agent, err := user.NewUser("agent@example.com", "Agent", "$2a$10$hash", authorization.RoleAgent, 10)
	require.NoError(t, err)
	require.NoError(t, agent.SetID(5))

	var updated *ticket.Ticket
	mockRepo := &mockTicketRepository{
		GetOverdueTicketsFunc: func(ctx context.Context, organizationID uint) ([]*ticket.Ticket, error) {
			return []*ticket.Ticket{overdue}, nil
		},
		UpdateFunc: func(ctx context.Context, tkt *ticket.Ticket) error {
			updated = tkt
			return nil
		},
	}
	mockOrgs := &mockOrganizationLister{
		ListActiveIDsFunc: func(ctx context.Context) ([]uint, error) {
			return []uint{10}, nil
		},
	}
	mockUsers := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			return agent, nil
		},
	}
	var notified []string
	mockEmail := &mockEmailService{
		SendSLAOverdueEmailFunc: func(to, ticketNumber, ticketTitle string) error {
			notified = append(notified, to)
			return nil
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

	useCase := NewEscalateOverdueTicketsUseCase(mockRepo, mockOrgs, mockUsers, mockEmail, mockDispatcher, mockFeed, &mockLogger{})
	count, err := useCase.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// high escalates to urgent
	require.NotNil(t, updated)
	assert.Equal(t, vo.PriorityUrgent, updated.Priority())

	require.Len(t, dispatched, 1)
	assert.Equal(t, ticket.EventTypeSLAViolated, dispatched[0].GetEventType())
	assert.Equal(t, []string{"agent@example.com"}, notified)
	require.Len(t, mockFeed.published, 1)
}

func TestEscalateOverdueTicketsUseCase_Execute_UrgentStaysPut(t *testing.T) {
	overdue := newTestTicket(7, 1, 10)
	require.NoError(t, overdue.ChangePriority(vo.PriorityUrgent))

	mockRepo := &mockTicketRepository{
		GetOverdueTicketsFunc: func(ctx context.Context, organizationID uint) ([]*ticket.Ticket, error) {
			return []*ticket.Ticket{overdue}, nil
		},
	}
	mockOrgs := &mockOrganizationLister{
		ListActiveIDsFunc: func(ctx context.Context) ([]uint, error) {
			return []uint{10}, nil
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

	useCase := NewEscalateOverdueTicketsUseCase(mockRepo, mockOrgs, &mockUserRepository{}, &mockEmailService{}, mockDispatcher, mockFeed, &mockLogger{})
	count, err := useCase.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// the violation is still reported even when nothing is escalated
	require.Len(t, dispatched, 1)
	assert.Empty(t, mockFeed.published)
}

func TestEscalateOverdueTicketsUseCase_Execute_NoOrganizations(t *testing.T) {
	mockOrgs := &mockOrganizationLister{
		ListActiveIDsFunc: func(ctx context.Context) ([]uint, error) {
			return nil, nil
		},
	}

	useCase := NewEscalateOverdueTicketsUseCase(&mockTicketRepository{}, mockOrgs, &mockUserRepository{}, &mockEmailService{}, &mockEventDispatcher{}, &mockFeedPublisher{}, &mockLogger{})
	count, err := useCase.Execute(context.Background())

	require.NoError(t, err)
	assert.Zero(t, count)
}
