package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"autocrm/internal/domain/ticket"
	"autocrm/internal/infrastructure/persistence/models"

	vo "autocrm/internal/domain/ticket/valueobjects"
)

// TicketMapper handles the conversion between Ticket domain entities and persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	MessageToModel(m *ticket.Message) *models.MessageModel
	MessageToDomain(model *models.MessageModel) (*ticket.Message, error)
	AttachmentToModel(a *ticket.Attachment) *models.AttachmentModel
	AttachmentToDomain(model *models.AttachmentModel) (*ticket.Attachment, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	model := &models.TicketModel{
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
		Version:        t.Version(),
		CreatedAt:      t.CreatedAt().UnixMilli(),
		UpdatedAt:      t.UpdatedAt().UnixMilli(),
	}

	if len(t.Tags()) > 0 {
		tagsJSON, _ := json.Marshal(t.Tags())
		model.Tags = tagsJSON
	}

	if t.SLADueTime() != nil {
		sla := t.SLADueTime().UnixMilli()
		model.SLADueTime = &sla
	}

	if t.ResolvedTime() != nil {
		resolved := t.ResolvedTime().UnixMilli()
		model.ResolvedTime = &resolved
	}

	if t.ClosedAt() != nil {
		closed := t.ClosedAt().UnixMilli()
		model.ClosedAt = &closed
	}

	return model
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	category, _ := vo.NewCategory(model.Category)
	priority, _ := vo.NewPriority(model.Priority)
	status, _ := vo.NewTicketStatus(model.Status)

	var tags []string
	if len(model.Tags) > 0 {
		if err := json.Unmarshal(model.Tags, &tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ticket tags (id=%d): %w", model.ID, err)
		}
	}

	createdAt := convertMillisToTime(model.CreatedAt)
	updatedAt := convertMillisToTime(model.UpdatedAt)

	var slaDueTime, resolvedTime, closedAt *time.Time
	if model.SLADueTime != nil {
		t := convertMillisToTime(*model.SLADueTime)
		slaDueTime = &t
	}
	if model.ResolvedTime != nil {
		t := convertMillisToTime(*model.ResolvedTime)
		resolvedTime = &t
	}
	if model.ClosedAt != nil {
		t := convertMillisToTime(*model.ClosedAt)
		closedAt = &t
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.Number,
		model.Title,
		model.Description,
		category,
		priority,
		status,
		model.CustomerID,
		model.AssigneeID,
		model.OrganizationID,
		tags,
		slaDueTime,
		resolvedTime,
		model.Version,
		createdAt,
		updatedAt,
		closedAt,
	)
}

func (m *TicketMapperImpl) MessageToModel(msg *ticket.Message) *models.MessageModel {
	return &models.MessageModel{
		ID:        msg.ID(),
		TicketID:  msg.TicketID(),
		AuthorID:  msg.AuthorID(),
		Body:      msg.Body(),
		Internal:  msg.Internal(),
		CreatedAt: msg.CreatedAt().UnixMilli(),
	}
}

func (m *TicketMapperImpl) MessageToDomain(model *models.MessageModel) (*ticket.Message, error) {
	return ticket.ReconstructMessage(
		model.ID,
		model.TicketID,
		model.AuthorID,
		model.Body,
		model.Internal,
		convertMillisToTime(model.CreatedAt),
	)
}

func (m *TicketMapperImpl) AttachmentToModel(a *ticket.Attachment) *models.AttachmentModel {
	return &models.AttachmentModel{
		ID:          a.ID(),
		SID:         a.SID(),
		TicketID:    a.TicketID(),
		MessageID:   a.MessageID(),
		UploaderID:  a.UploaderID(),
		FileName:    a.FileName(),
		ContentType: a.ContentType(),
		SizeBytes:   a.SizeBytes(),
		StorageKey:  a.StorageKey(),
		CreatedAt:   a.CreatedAt().UnixMilli(),
	}
}

func (m *TicketMapperImpl) AttachmentToDomain(model *models.AttachmentModel) (*ticket.Attachment, error) {
	return ticket.ReconstructAttachment(
		model.ID,
		model.SID,
		model.TicketID,
		model.MessageID,
		model.UploaderID,
		model.FileName,
		model.ContentType,
		model.SizeBytes,
		model.StorageKey,
		convertMillisToTime(model.CreatedAt),
	)
}
