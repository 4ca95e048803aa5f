package notification

import (
	"context"

	"autocrm/internal/domain/shared/events"
	"autocrm/internal/domain/ticket"
	"autocrm/internal/domain/user"
	"autocrm/internal/infrastructure/email"
	"autocrm/internal/shared/logger"
)

// AssignmentNotificationHandler emails an agent when a ticket lands on them.
// It runs on the dispatcher goroutine, so failures are logged and swallowed
// rather than bounced back to the assigning request.
type AssignmentNotificationHandler struct {
	ticketRepo   ticket.TicketRepository
	userRepo     user.Repository
	emailService email.Service
	logger       logger.Interface
}

func NewAssignmentNotificationHandler(
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	emailService email.Service,
	logger logger.Interface,
) *AssignmentNotificationHandler {
	return &AssignmentNotificationHandler{
		ticketRepo:   ticketRepo,
		userRepo:     userRepo,
		emailService: emailService,
		logger:       logger,
	}
}

// Register subscribes the handler on the dispatcher.
func (h *AssignmentNotificationHandler) Register(dispatcher events.EventSubscriber) error {
	return dispatcher.Subscribe(ticket.EventTypeTicketAssigned, h)
}

func (h *AssignmentNotificationHandler) CanHandle(eventType string) bool {
	return eventType == ticket.EventTypeTicketAssigned
}

func (h *AssignmentNotificationHandler) Handle(event events.DomainEvent) error {
	assigned, ok := event.(ticket.TicketAssignedEvent)
	if !ok {
		return nil
	}

	// Self-assignment needs no email.
	if assigned.AssigneeID == assigned.AssignedBy {
		return nil
	}

	ctx := context.Background()

	t, err := h.ticketRepo.GetByID(ctx, assigned.TicketID)
	if err != nil {
		h.logger.Errorw("failed to load ticket for assignment notification",
			"ticket_id", assigned.TicketID,
			"error", err)
		return nil
	}

	assignee, err := h.userRepo.GetByID(ctx, assigned.AssigneeID)
	if err != nil {
		h.logger.Errorw("failed to load assignee for assignment notification",
			"assignee_id", assigned.AssigneeID,
			"error", err)
		return nil
	}

	if err := h.emailService.SendTicketAssignedEmail(assignee.Email(), t.Number(), t.Title()); err != nil {
		h.logger.Errorw("failed to send assignment email",
			"ticket_id", assigned.TicketID,
			"assignee_id", assigned.AssigneeID,
			"error", err)
		return nil
	}

	h.logger.Infow("assignment email sent",
		"ticket_id", assigned.TicketID,
		"assignee_id", assigned.AssigneeID)
	return nil
}
