package ticket

import (
	"context"

	vo "autocrm/internal/domain/ticket/valueobjects"
)

type TicketRepository interface {
	Save(ctx context.Context, ticket *Ticket) error
	Update(ctx context.Context, ticket *Ticket) error
	Delete(ctx context.Context, ticketID uint) error
	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	GetByNumber(ctx context.Context, number string) (*Ticket, error)
	List(ctx context.Context, filters TicketFilter) ([]*Ticket, int64, error)
	GetOverdueTickets(ctx context.Context, organizationID uint) ([]*Ticket, error)
	CountByStatus(ctx context.Context, organizationID uint) (map[string]int64, error)
}

// TicketFilter narrows List queries. OrganizationID is mandatory at the
// repository layer; the remaining fields are optional.
type TicketFilter struct {
	OrganizationID uint
	Status         *vo.TicketStatus
	Priority       *vo.Priority
	Category       *vo.Category
	CustomerID     *uint
	AssigneeID     *uint
	Tags           []string
	Overdue        *bool
	Search         string
	Page           int
	PageSize       int
	SortBy         string
	SortOrder      string
}

type MessageRepository interface {
	Save(ctx context.Context, message *Message) error
	GetByID(ctx context.Context, messageID uint) (*Message, error)
	GetByTicketID(ctx context.Context, ticketID uint, includeInternal bool) ([]*Message, error)
	DeleteByTicketID(ctx context.Context, ticketID uint) error
}

type AttachmentRepository interface {
	Save(ctx context.Context, attachment *Attachment) error
	GetByID(ctx context.Context, attachmentID uint) (*Attachment, error)
	GetBySID(ctx context.Context, sid string) (*Attachment, error)
	GetByTicketID(ctx context.Context, ticketID uint) ([]*Attachment, error)
	DeleteByTicketID(ctx context.Context, ticketID uint) error
}
