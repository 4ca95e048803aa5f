package usecases

import (
	"context"

	"autocrm/internal/application/ticket/dto"
	"autocrm/internal/domain/ticket"
	"autocrm/internal/shared/authorization"
	"autocrm/internal/shared/errors"
	"autocrm/internal/shared/logger"
)

type GetTicketQuery struct {
	TicketID       uint
	UserID         uint
	OrganizationID uint
	Role           authorization.UserRole
}

type GetTicketUseCase struct {
	ticketRepo     ticket.TicketRepository
	messageRepo    ticket.MessageRepository
	attachmentRepo ticket.AttachmentRepository
	logger         logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	messageRepo ticket.MessageRepository,
	attachmentRepo ticket.AttachmentRepository,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo:     ticketRepo,
		messageRepo:    messageRepo,
		attachmentRepo: attachmentRepo,
		logger:         logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	uc.logger.Debugw("executing get ticket use case",
		"ticket_id", query.TicketID,
		"user_id", query.UserID)

	if query.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	ticketAggregate, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "error", err, "ticket_id", query.TicketID)
		return nil, errors.NewNotFoundError("ticket not found")
	}

	if !ticketAggregate.CanBeViewedBy(query.UserID, query.OrganizationID, query.Role) {
		uc.logger.Warnw("access denied to ticket",
			"ticket_id", query.TicketID,
			"user_id", query.UserID,
			"role", query.Role.String())
		return nil, errors.NewForbiddenError("access denied")
	}

	includeInternal := query.Role.IsStaff()

	messages, err := uc.messageRepo.GetByTicketID(ctx, query.TicketID, includeInternal)
	if err != nil {
		uc.logger.Errorw("failed to load ticket messages", "error", err, "ticket_id", query.TicketID)
		return nil, errors.NewInternalError("failed to load ticket messages")
	}

	attachments, err := uc.attachmentRepo.GetByTicketID(ctx, query.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket attachments", "error", err, "ticket_id", query.TicketID)
		return nil, errors.NewInternalError("failed to load ticket attachments")
	}

	return dto.ToTicketDTO(ticketAggregate, messages, attachments, includeInternal), nil
}
