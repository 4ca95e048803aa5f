package dto

import (
	"time"

	"autocrm/internal/domain/ticket"
)

type TicketDTO struct {
	ID             uint            `json:"id"`
	Number         string          `json:"number"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	Priority       string          `json:"priority"`
	Status         string          `json:"status"`
	CustomerID     uint            `json:"customer_id"`
	AssigneeID     *uint           `json:"assignee_id"`
	OrganizationID uint            `json:"organization_id"`
	Tags           []string        `json:"tags"`
	SLADueTime     *time.Time      `json:"sla_due_time"`
	ResolvedTime   *time.Time      `json:"resolved_time"`
	IsOverdue      bool            `json:"is_overdue"`
	Version        int             `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	ClosedAt       *time.Time      `json:"closed_at"`
	Messages       []MessageDTO    `json:"messages"`
	Attachments    []AttachmentDTO `json:"attachments"`
}

type MessageDTO struct {
	ID        uint      `json:"id"`
	TicketID  uint      `json:"ticket_id"`
	AuthorID  uint      `json:"author_id"`
	Body      string    `json:"body"`
	Internal  bool      `json:"internal"`
	CreatedAt time.Time `json:"created_at"`
}

type AttachmentDTO struct {
	ID          uint      `json:"id"`
	SID         string    `json:"sid"`
	TicketID    uint      `json:"ticket_id"`
	MessageID   *uint     `json:"message_id"`
	UploaderID  uint      `json:"uploader_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

type TicketListItemDTO struct {
	ID         uint       `json:"id"`
	Number     string     `json:"number"`
	Title      string     `json:"title"`
	Status     string     `json:"status"`
	Priority   string     `json:"priority"`
	Category   string     `json:"category"`
	CustomerID uint       `json:"customer_id"`
	AssigneeID *uint      `json:"assignee_id"`
	Tags       []string   `json:"tags"`
	SLADueTime *time.Time `json:"sla_due_time"`
	IsOverdue  bool       `json:"is_overdue"`
	Version    int        `json:"version"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ToTicketDTO builds the detail view. Internal messages are dropped for
// callers without staff visibility.
func ToTicketDTO(t *ticket.Ticket, messages []*ticket.Message, attachments []*ticket.Attachment, includeInternal bool) *TicketDTO {
	if t == nil {
		return nil
	}

	messageDTOs := make([]MessageDTO, 0, len(messages))
	for _, m := range messages {
		if m.Internal() && !includeInternal {
			continue
		}
		messageDTOs = append(messageDTOs, ToMessageDTO(m))
	}

	attachmentDTOs := make([]AttachmentDTO, 0, len(attachments))
	for _, a := range attachments {
		attachmentDTOs = append(attachmentDTOs, ToAttachmentDTO(a))
	}

	return &TicketDTO{
		ID:             t.ID(),
		Number:         t.Number(),
		Title:          t.Title(),
		Description:    t.Description(),
		Category:       t.Category().String(),
		Priority:       t.Priority().String(),
		Status:         t.Status().String(),
		CustomerID:     t.CustomerID(),
		AssigneeID:     t.AssigneeID(),
		OrganizationID: t.OrganizationID(),
		Tags:           t.Tags(),
		SLADueTime:     t.SLADueTime(),
		ResolvedTime:   t.ResolvedTime(),
		IsOverdue:      t.IsOverdue(),
		Version:        t.Version(),
		CreatedAt:      t.CreatedAt(),
		UpdatedAt:      t.UpdatedAt(),
		ClosedAt:       t.ClosedAt(),
		Messages:       messageDTOs,
		Attachments:    attachmentDTOs,
	}
}

func ToMessageDTO(m *ticket.Message) MessageDTO {
	return MessageDTO{
		ID:        m.ID(),
		TicketID:  m.TicketID(),
		AuthorID:  m.AuthorID(),
		Body:      m.Body(),
		Internal:  m.Internal(),
		CreatedAt: m.CreatedAt(),
	}
}

func ToAttachmentDTO(a *ticket.Attachment) AttachmentDTO {
	return AttachmentDTO{
		ID:          a.ID(),
		SID:         a.SID(),
		TicketID:    a.TicketID(),
		MessageID:   a.MessageID(),
		UploaderID:  a.UploaderID(),
		FileName:    a.FileName(),
		ContentType: a.ContentType(),
		SizeBytes:   a.SizeBytes(),
		CreatedAt:   a.CreatedAt(),
	}
}

func ToTicketListItemDTO(t *ticket.Ticket) TicketListItemDTO {
	return TicketListItemDTO{
		ID:         t.ID(),
		Number:     t.Number(),
		Title:      t.Title(),
		Status:     t.Status().String(),
		Priority:   t.Priority().String(),
		Category:   t.Category().String(),
		CustomerID: t.CustomerID(),
		AssigneeID: t.AssigneeID(),
		Tags:       t.Tags(),
		SLADueTime: t.SLADueTime(),
		IsOverdue:  t.IsOverdue(),
		Version:    t.Version(),
		CreatedAt:  t.CreatedAt(),
		UpdatedAt:  t.UpdatedAt(),
	}
}
