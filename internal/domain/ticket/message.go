package ticket

import (
	"fmt"
	"time"

	"autocrm/internal/shared/biztime"
)

// Message is a single entry in a ticket conversation. Messages are append-only:
// there are no mutators beyond SetID, and edits are not supported.
type Message struct {
	id        uint
	ticketID  uint
	authorID  uint
	body      string
	internal  bool
	createdAt time.Time
}

func NewMessage(ticketID, authorID uint, body string, internal bool) (*Message, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("message body is required")
	}
	if len(body) > 10000 {
		return nil, fmt.Errorf("message body exceeds maximum length of 10000 characters")
	}

	return &Message{
		ticketID:  ticketID,
		authorID:  authorID,
		body:      body,
		internal:  internal,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructMessage(
	id uint,
	ticketID uint,
	authorID uint,
	body string,
	internal bool,
	createdAt time.Time,
) (*Message, error) {
	if id == 0 {
		return nil, fmt.Errorf("message ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}

	return &Message{
		id:        id,
		ticketID:  ticketID,
		authorID:  authorID,
		body:      body,
		internal:  internal,
		createdAt: createdAt,
	}, nil
}

func (m *Message) ID() uint {
	return m.id
}

func (m *Message) TicketID() uint {
	return m.ticketID
}

func (m *Message) AuthorID() uint {
	return m.authorID
}

func (m *Message) Body() string {
	return m.body
}

// Internal reports whether the message is a staff-only note, hidden from the
// ticket's customer.
func (m *Message) Internal() bool {
	return m.internal
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Message) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("message ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("message ID cannot be zero")
	}
	m.id = id
	return nil
}
