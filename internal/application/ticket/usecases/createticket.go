package usecases

import (
	"context"
	"time"

	"autocrm/internal/domain/ticket"
	vo "autocrm/internal/domain/ticket/valueobjects"
	"autocrm/internal/infrastructure/pubsub"
	"autocrm/internal/shared/errors"
	"autocrm/internal/shared/logger"
)

type CreateTicketCommand struct {
	Title          string
	Description    string
	Category       string
	Priority       string
	Tags           []string
	CustomerID     uint
	OrganizationID uint
}

type CreateTicketResult struct {
	TicketID  uint      `json:"ticket_id"`
	Number    string    `json:"number"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	numberGen  ticket.NumberGenerator
	feedBus    pubsub.TicketFeedPublisher
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	numberGen ticket.NumberGenerator,
	feedBus pubsub.TicketFeedPublisher,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo: ticketRepo,
		numberGen:  numberGen,
		feedBus:    feedBus,
		logger:     logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	uc.logger.Infow("executing create ticket use case",
		"title", cmd.Title,
		"customer_id", cmd.CustomerID,
		"organization_id", cmd.OrganizationID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid create ticket command", "error", err)
		return nil, err
	}

	newTicket, err := ticket.NewTicket(
		cmd.Title,
		cmd.Description,
		vo.Category(cmd.Category),
		vo.Priority(cmd.Priority),
		cmd.CustomerID,
		cmd.OrganizationID,
	)
	if err != nil {
		uc.logger.Errorw("failed to create ticket entity", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	if len(cmd.Tags) > 0 {
		if err := newTicket.UpdateDetails(cmd.Title, cmd.Description, cmd.Tags); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	number, err := uc.numberGen.Generate(ctx)
	if err != nil {
		uc.logger.Errorw("failed to generate ticket number", "error", err)
		return nil, errors.NewInternalError("failed to generate ticket number")
	}
	if err := newTicket.SetNumber(number); err != nil {
		return nil, errors.NewInternalError(err.Error())
	}

	if err := uc.ticketRepo.Save(ctx, newTicket); err != nil {
		uc.logger.Errorw("failed to save ticket", "error", err)
		return nil, errors.NewInternalError("failed to save ticket")
	}

	publishTicketChange(ctx, uc.feedBus, uc.logger, pubsub.ChangeInsert, newTicket)

	uc.logger.Infow("ticket created successfully",
		"ticket_id", newTicket.ID(),
		"number", newTicket.Number())

	return &CreateTicketResult{
		TicketID:  newTicket.ID(),
		Number:    newTicket.Number(),
		Status:    newTicket.Status().String(),
		CreatedAt: newTicket.CreatedAt(),
	}, nil
}

func (uc *CreateTicketUseCase) validateCommand(cmd CreateTicketCommand) error {
	if len(cmd.Title) == 0 {
		return errors.NewValidationError("title is required")
	}
	if len(cmd.Title) > 200 {
		return errors.NewValidationError("title exceeds maximum length of 200 characters")
	}
	if len(cmd.Description) == 0 {
		return errors.NewValidationError("description is required")
	}
	if len(cmd.Description) > 5000 {
		return errors.NewValidationError("description exceeds maximum length of 5000 characters")
	}
	if cmd.CustomerID == 0 {
		return errors.NewValidationError("customer ID is required")
	}
	if cmd.OrganizationID == 0 {
		return errors.NewValidationError("organization ID is required")
	}
	if !vo.Category(cmd.Category).IsValid() {
		return errors.NewValidationError("invalid category")
	}
	if cmd.Priority != "" && !vo.Priority(cmd.Priority).IsValid() {
		return errors.NewValidationError("invalid priority")
	}
	return nil
}
