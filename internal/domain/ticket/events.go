package ticket

import (
	"strconv"
	"time"
)

// Event type names used for dispatcher subscriptions.
const (
	EventTypeTicketCreated         = "ticket.created"
	EventTypeTicketAssigned        = "ticket.assigned"
	EventTypeTicketStatusChanged   = "ticket.status_changed"
	EventTypeTicketPriorityChanged = "ticket.priority_changed"
	EventTypeMessageAdded          = "ticket.message_added"
	EventTypeTicketDeleted         = "ticket.deleted"
	EventTypeSLAViolated           = "ticket.sla_violated"
)

type TicketCreatedEvent struct {
	TicketID       uint
	Number         string
	Title          string
	CustomerID     uint
	OrganizationID uint
	Priority       string
	Category       string
	Timestamp      time.Time
}

func NewTicketCreatedEvent(
	ticketID uint,
	number string,
	title string,
	customerID uint,
	organizationID uint,
	priority string,
	category string,
	timestamp time.Time,
) TicketCreatedEvent {
	return TicketCreatedEvent{
		TicketID:       ticketID,
		Number:         number,
		Title:          title,
		CustomerID:     customerID,
		OrganizationID: organizationID,
		Priority:       priority,
		Category:       category,
		Timestamp:      timestamp,
	}
}

type TicketAssignedEvent struct {
	TicketID   uint
	AssigneeID uint
	AssignedBy uint
	Timestamp  time.Time
}

func NewTicketAssignedEvent(
	ticketID uint,
	assigneeID uint,
	assignedBy uint,
	timestamp time.Time,
) TicketAssignedEvent {
	return TicketAssignedEvent{
		TicketID:   ticketID,
		AssigneeID: assigneeID,
		AssignedBy: assignedBy,
		Timestamp:  timestamp,
	}
}

type TicketStatusChangedEvent struct {
	TicketID  uint
	OldStatus string
	NewStatus string
	ChangedBy uint
	Timestamp time.Time
}

func NewTicketStatusChangedEvent(
	ticketID uint,
	oldStatus string,
	newStatus string,
	changedBy uint,
	timestamp time.Time,
) TicketStatusChangedEvent {
	return TicketStatusChangedEvent{
		TicketID:  ticketID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ChangedBy: changedBy,
		Timestamp: timestamp,
	}
}

type TicketPriorityChangedEvent struct {
	TicketID    uint
	OldPriority string
	NewPriority string
	ChangedBy   uint
	Timestamp   time.Time
}

func NewTicketPriorityChangedEvent(
	ticketID uint,
	oldPriority string,
	newPriority string,
	changedBy uint,
	timestamp time.Time,
) TicketPriorityChangedEvent {
	return TicketPriorityChangedEvent{
		TicketID:    ticketID,
		OldPriority: oldPriority,
		NewPriority: newPriority,
		ChangedBy:   changedBy,
		Timestamp:   timestamp,
	}
}

type MessageAddedEvent struct {
	TicketID   uint
	MessageID  uint
	AuthorID   uint
	IsInternal bool
	Timestamp  time.Time
}

func NewMessageAddedEvent(
	ticketID uint,
	messageID uint,
	authorID uint,
	isInternal bool,
	timestamp time.Time,
) MessageAddedEvent {
	return MessageAddedEvent{
		TicketID:   ticketID,
		MessageID:  messageID,
		AuthorID:   authorID,
		IsInternal: isInternal,
		Timestamp:  timestamp,
	}
}

type TicketDeletedEvent struct {
	TicketID       uint
	OrganizationID uint
	DeletedBy      uint
	Timestamp      time.Time
}

func NewTicketDeletedEvent(
	ticketID uint,
	organizationID uint,
	deletedBy uint,
	timestamp time.Time,
) TicketDeletedEvent {
	return TicketDeletedEvent{
		TicketID:       ticketID,
		OrganizationID: organizationID,
		DeletedBy:      deletedBy,
		Timestamp:      timestamp,
	}
}

type SLAViolatedEvent struct {
	TicketID  uint
	DueTime   time.Time
	Timestamp time.Time
}

func NewSLAViolatedEvent(
	ticketID uint,
	dueTime time.Time,
	timestamp time.Time,
) SLAViolatedEvent {
	return SLAViolatedEvent{
		TicketID:  ticketID,
		DueTime:   dueTime,
		Timestamp: timestamp,
	}
}

func (e TicketCreatedEvent) GetAggregateID() string { return strconv.FormatUint(uint64(e.TicketID), 10) }
func (e TicketCreatedEvent) GetEventType() string   { return EventTypeTicketCreated }
func (e TicketCreatedEvent) GetOccurredAt() time.Time { return e.Timestamp }

func (e TicketAssignedEvent) GetAggregateID() string { return strconv.FormatUint(uint64(e.TicketID), 10) }
func (e TicketAssignedEvent) GetEventType() string   { return EventTypeTicketAssigned }
func (e TicketAssignedEvent) GetOccurredAt() time.Time { return e.Timestamp }

func (e TicketStatusChangedEvent) GetAggregateID() string { return strconv.FormatUint(uint64(e.TicketID), 10) }
func (e TicketStatusChangedEvent) GetEventType() string   { return EventTypeTicketStatusChanged }
func (e TicketStatusChangedEvent) GetOccurredAt() time.Time { return e.Timestamp }

func (e TicketPriorityChangedEvent) GetAggregateID() string { return strconv.FormatUint(uint64(e.TicketID), 10) }
func (e TicketPriorityChangedEvent) GetEventType() string   { return EventTypeTicketPriorityChanged }
func (e TicketPriorityChangedEvent) GetOccurredAt() time.Time { return e.Timestamp }

func (e MessageAddedEvent) GetAggregateID() string { return strconv.FormatUint(uint64(e.TicketID), 10) }
func (e MessageAddedEvent) GetEventType() string   { return EventTypeMessageAdded }
func (e MessageAddedEvent) GetOccurredAt() time.Time { return e.Timestamp }

func (e TicketDeletedEvent) GetAggregateID() string { return strconv.FormatUint(uint64(e.TicketID), 10) }
func (e TicketDeletedEvent) GetEventType() string   { return EventTypeTicketDeleted }
func (e TicketDeletedEvent) GetOccurredAt() time.Time { return e.Timestamp }

func (e SLAViolatedEvent) GetAggregateID() string { return strconv.FormatUint(uint64(e.TicketID), 10) }
func (e SLAViolatedEvent) GetEventType() string   { return EventTypeSLAViolated }
func (e SLAViolatedEvent) GetOccurredAt() time.Time { return e.Timestamp }
