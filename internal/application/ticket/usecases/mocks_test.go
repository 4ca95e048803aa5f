package usecases

import (
	"context"
	"io"

	"autocrm/internal/domain/shared/events"
	"autocrm/internal/domain/ticket"
	vo "autocrm/internal/domain/ticket/valueobjects"
	"autocrm/internal/domain/user"
	"autocrm/internal/infrastructure/pubsub"
	"autocrm/internal/shared/logger"
)

type mockTicketRepository struct {
	SaveFunc              func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc            func(ctx context.Context, t *ticket.Ticket) error
	DeleteFunc            func(ctx context.Context, ticketID uint) error
	GetByIDFunc           func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
	GetByNumberFunc       func(ctx context.Context, number string) (*ticket.Ticket, error)
	ListFunc              func(ctx context.Context, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
	GetOverdueTicketsFunc func(ctx context.Context, organizationID uint) ([]*ticket.Ticket, error)
	CountByStatusFunc     func(ctx context.Context, organizationID uint) (map[string]int64, error)
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Delete(ctx context.Context, ticketID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ticketID)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filters)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) GetOverdueTickets(ctx context.Context, organizationID uint) ([]*ticket.Ticket, error) {
	if m.GetOverdueTicketsFunc != nil {
		return m.GetOverdueTicketsFunc(ctx, organizationID)
	}
	return nil, nil
}

func (m *mockTicketRepository) CountByStatus(ctx context.Context, organizationID uint) (map[string]int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, organizationID)
	}
	return nil, nil
}

type mockMessageRepository struct {
	SaveFunc             func(ctx context.Context, message *ticket.Message) error
	GetByIDFunc          func(ctx context.Context, messageID uint) (*ticket.Message, error)
	GetByTicketIDFunc    func(ctx context.Context, ticketID uint, includeInternal bool) ([]*ticket.Message, error)
	DeleteByTicketIDFunc func(ctx context.Context, ticketID uint) error
}

func (m *mockMessageRepository) Save(ctx context.Context, message *ticket.Message) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, message)
	}
	return nil
}

func (m *mockMessageRepository) GetByID(ctx context.Context, messageID uint) (*ticket.Message, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, messageID)
	}
	return nil, nil
}

func (m *mockMessageRepository) GetByTicketID(ctx context.Context, ticketID uint, includeInternal bool) ([]*ticket.Message, error) {
	if m.GetByTicketIDFunc != nil {
		return m.GetByTicketIDFunc(ctx, ticketID, includeInternal)
	}
	return nil, nil
}

func (m *mockMessageRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	if m.DeleteByTicketIDFunc != nil {
		return m.DeleteByTicketIDFunc(ctx, ticketID)
	}
	return nil
}

type mockAttachmentRepository struct {
	SaveFunc             func(ctx context.Context, attachment *ticket.Attachment) error
	GetByIDFunc          func(ctx context.Context, attachmentID uint) (*ticket.Attachment, error)
	GetBySIDFunc         func(ctx context.Context, sid string) (*ticket.Attachment, error)
	GetByTicketIDFunc    func(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error)
	DeleteByTicketIDFunc func(ctx context.Context, ticketID uint) error
}

func (m *mockAttachmentRepository) Save(ctx context.Context, attachment *ticket.Attachment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, attachment)
	}
	return nil
}

func (m *mockAttachmentRepository) GetByID(ctx context.Context, attachmentID uint) (*ticket.Attachment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, attachmentID)
	}
	return nil, nil
}

func (m *mockAttachmentRepository) GetBySID(ctx context.Context, sid string) (*ticket.Attachment, error) {
	if m.GetBySIDFunc != nil {
		return m.GetBySIDFunc(ctx, sid)
	}
	return nil, nil
}

func (m *mockAttachmentRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	if m.GetByTicketIDFunc != nil {
		return m.GetByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockAttachmentRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	if m.DeleteByTicketIDFunc != nil {
		return m.DeleteByTicketIDFunc(ctx, ticketID)
	}
	return nil
}

type mockUserRepository struct {
	CreateFunc        func(ctx context.Context, u *user.User) error
	GetByIDFunc       func(ctx context.Context, id uint) (*user.User, error)
	GetByIDsFunc      func(ctx context.Context, ids []uint) ([]*user.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*user.User, error)
	UpdateFunc        func(ctx context.Context, u *user.User) error
	DeleteFunc        func(ctx context.Context, id uint) error
	ListFunc          func(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockUserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

type mockEventDispatcher struct {
	PublishFunc    func(event events.DomainEvent) error
	PublishAllFunc func(evts []events.DomainEvent) error
}

func (m *mockEventDispatcher) Publish(event events.DomainEvent) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(event)
	}
	return nil
}

func (m *mockEventDispatcher) PublishAll(evts []events.DomainEvent) error {
	if m.PublishAllFunc != nil {
		return m.PublishAllFunc(evts)
	}
	return nil
}

func (m *mockEventDispatcher) Subscribe(eventType string, handler events.EventHandler) error {
	return nil
}

func (m *mockEventDispatcher) Unsubscribe(eventType string, handler events.EventHandler) error {
	return nil
}

func (m *mockEventDispatcher) Start() error { return nil }
func (m *mockEventDispatcher) Stop() error  { return nil }

type mockFeedPublisher struct {
	PublishChangeFunc func(ctx context.Context, event pubsub.TicketChangeEvent) error
	published         []pubsub.TicketChangeEvent
}

func (m *mockFeedPublisher) PublishChange(ctx context.Context, event pubsub.TicketChangeEvent) error {
	m.published = append(m.published, event)
	if m.PublishChangeFunc != nil {
		return m.PublishChangeFunc(ctx, event)
	}
	return nil
}

type mockNumberGenerator struct {
	GenerateFunc func(ctx context.Context) (string, error)
}

func (m *mockNumberGenerator) Generate(ctx context.Context) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx)
	}
	return "T-20250101-0001", nil
}

type mockBlobStore struct {
	PutFunc    func(ctx context.Context, key string, r io.Reader, size int64) error
	GetFunc    func(ctx context.Context, key string) (io.ReadCloser, error)
	DeleteFunc func(ctx context.Context, key string) error
	ExistsFunc func(ctx context.Context, key string) (bool, error)
}

func (m *mockBlobStore) Put(ctx context.Context, key string, r io.Reader, size int64) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, key, r, size)
	}
	return nil
}

func (m *mockBlobStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return nil, nil
}

func (m *mockBlobStore) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return nil
}

func (m *mockBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, key)
	}
	return false, nil
}

type mockOrganizationLister struct {
	ListActiveIDsFunc func(ctx context.Context) ([]uint, error)
}

func (m *mockOrganizationLister) ListActiveIDs(ctx context.Context) ([]uint, error) {
	if m.ListActiveIDsFunc != nil {
		return m.ListActiveIDsFunc(ctx)
	}
	return nil, nil
}

type mockEmailService struct {
	SendInviteEmailFunc         func(to, orgName, role, token string, expiryHours int) error
	SendTicketAssignedEmailFunc func(to, ticketNumber, ticketTitle string) error
	SendSLAOverdueEmailFunc     func(to, ticketNumber, ticketTitle string) error
}

func (m *mockEmailService) SendInviteEmail(to, orgName, role, token string, expiryHours int) error {
	if m.SendInviteEmailFunc != nil {
		return m.SendInviteEmailFunc(to, orgName, role, token, expiryHours)
	}
	return nil
}

func (m *mockEmailService) SendTicketAssignedEmail(to, ticketNumber, ticketTitle string) error {
	if m.SendTicketAssignedEmailFunc != nil {
		return m.SendTicketAssignedEmailFunc(to, ticketNumber, ticketTitle)
	}
	return nil
}

func (m *mockEmailService) SendSLAOverdueEmail(to, ticketNumber, ticketTitle string) error {
	if m.SendSLAOverdueEmailFunc != nil {
		return m.SendSLAOverdueEmailFunc(to, ticketNumber, ticketTitle)
	}
	return nil
}

type mockLogger struct{}

func (l *mockLogger) Debug(msg string, args ...any)                     {}
func (l *mockLogger) Info(msg string, args ...any)                      {}
func (l *mockLogger) Warn(msg string, args ...any)                      {}
func (l *mockLogger) Error(msg string, args ...any)                     {}
func (l *mockLogger) Fatal(msg string, args ...any)                     {}
func (l *mockLogger) With(args ...any) logger.Interface                 { return l }
func (l *mockLogger) Named(name string) logger.Interface                { return l }
func (l *mockLogger) Debugw(msg string, keysAndValues ...interface{})   {}
func (l *mockLogger) Infow(msg string, keysAndValues ...interface{})    {}
func (l *mockLogger) Warnw(msg string, keysAndValues ...interface{})    {}
func (l *mockLogger) Errorw(msg string, keysAndValues ...interface{})   {}
func (l *mockLogger) Fatalw(msg string, keysAndValues ...interface{})   {}

// newTestTicket builds a persisted-looking ticket for use case tests.
func newTestTicket(id uint, customerID, orgID uint) *ticket.Ticket {
	t, err := ticket.NewTicket(
		"Printer on fire",
		"The office printer is literally on fire",
		vo.CategoryTechnical,
		vo.PriorityHigh,
		customerID,
		orgID,
	)
	if err != nil {
		panic(err)
	}
	if err := t.SetID(id); err != nil {
		panic(err)
	}
	if err := t.SetNumber("T-20250101-0042"); err != nil {
		panic(err)
	}
	return t
}
