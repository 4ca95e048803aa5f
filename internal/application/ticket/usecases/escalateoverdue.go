package usecases

import (
	"context"
	"fmt"

	"autocrm/internal/domain/shared/events"
	"autocrm/internal/domain/ticket"
	"autocrm/internal/domain/user"
	"autocrm/internal/infrastructure/email"
	"autocrm/internal/infrastructure/pubsub"
	"autocrm/internal/shared/biztime"
	"autocrm/internal/shared/logger"
)

// EscalateOverdueTicketsUseCase is the SLA watchdog batch job. Each run finds
// open tickets past their SLA deadline, bumps their priority one level and
// notifies the assigned agent. Urgent tickets have nowhere left to go, so
// they only produce the violation event.
type EscalateOverdueTicketsUseCase struct {
	ticketRepo      ticket.TicketRepository
	orgRepos        OrganizationLister
	userRepo        user.Repository
	emailService    email.Service
	eventDispatcher events.EventDispatcher
	feedBus         pubsub.TicketFeedPublisher
	logger          logger.Interface
}

// OrganizationLister yields the organization IDs the watchdog sweeps.
type OrganizationLister interface {
	ListActiveIDs(ctx context.Context) ([]uint, error)
}

func NewEscalateOverdueTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	orgRepos OrganizationLister,
	userRepo user.Repository,
	emailService email.Service,
	eventDispatcher events.EventDispatcher,
	feedBus pubsub.TicketFeedPublisher,
	logger logger.Interface,
) *EscalateOverdueTicketsUseCase {
	return &EscalateOverdueTicketsUseCase{
		ticketRepo:      ticketRepo,
		orgRepos:        orgRepos,
		userRepo:        userRepo,
		emailService:    emailService,
		eventDispatcher: eventDispatcher,
		feedBus:         feedBus,
		logger:          logger,
	}
}

// Execute sweeps every active organization and returns the number of tickets
// escalated.
func (uc *EscalateOverdueTicketsUseCase) Execute(ctx context.Context) (int, error) {
	orgIDs, err := uc.orgRepos.ListActiveIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list organizations: %w", err)
	}

	escalated := 0
	for _, orgID := range orgIDs {
		n, err := uc.escalateOrganization(ctx, orgID)
		if err != nil {
			uc.logger.Errorw("failed to escalate overdue tickets",
				"organization_id", orgID,
				"error", err)
			continue
		}
		escalated += n
	}

	return escalated, nil
}

func (uc *EscalateOverdueTicketsUseCase) escalateOrganization(ctx context.Context, orgID uint) (int, error) {
	overdue, err := uc.ticketRepo.GetOverdueTickets(ctx, orgID)
	if err != nil {
		return 0, err
	}

	escalated := 0
	for _, t := range overdue {
		event := ticket.NewSLAViolatedEvent(t.ID(), *t.SLADueTime(), biztime.NowUTC())
		if err := uc.eventDispatcher.Publish(event); err != nil {
			uc.logger.Warnw("failed to dispatch SLA violated event", "ticket_id", t.ID(), "error", err)
		}

		next := t.Priority().Escalated()
		if next == t.Priority() {
			continue
		}

		if err := t.ChangePriority(next); err != nil {
			uc.logger.Warnw("failed to escalate ticket priority",
				"ticket_id", t.ID(),
				"error", err)
			continue
		}

		if err := uc.ticketRepo.Update(ctx, t); err != nil {
			uc.logger.Errorw("failed to persist escalated ticket",
				"ticket_id", t.ID(),
				"error", err)
			continue
		}

		publishTicketChange(ctx, uc.feedBus, uc.logger, pubsub.ChangeUpdate, t)
		uc.notifyAssignee(ctx, t)

		escalated++
		uc.logger.Infow("overdue ticket escalated",
			"ticket_id", t.ID(),
			"number", t.Number(),
			"new_priority", t.Priority().String())
	}

	return escalated, nil
}

func (uc *EscalateOverdueTicketsUseCase) notifyAssignee(ctx context.Context, t *ticket.Ticket) {
	if uc.emailService == nil || t.AssigneeID() == nil {
		return
	}

	assignee, err := uc.userRepo.GetByID(ctx, *t.AssigneeID())
	if err != nil {
		uc.logger.Warnw("failed to load assignee for SLA notification",
			"ticket_id", t.ID(),
			"assignee_id", *t.AssigneeID(),
			"error", err)
		return
	}

	if err := uc.emailService.SendSLAOverdueEmail(assignee.Email(), t.Number(), t.Title()); err != nil {
		uc.logger.Warnw("failed to send SLA overdue email",
			"ticket_id", t.ID(),
			"error", err)
	}
}
