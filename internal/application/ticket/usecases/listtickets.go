package usecases

import (
	"context"

	"autocrm/internal/application/ticket/dto"
	"autocrm/internal/domain/ticket"
	vo "autocrm/internal/domain/ticket/valueobjects"
	"autocrm/internal/shared/authorization"
	"autocrm/internal/shared/errors"
	"autocrm/internal/shared/logger"
)

type ListTicketsQuery struct {
	UserID         uint
	OrganizationID uint
	Role           authorization.UserRole
	Status         *string
	Priority       *string
	Category       *string
	AssigneeID     *uint
	CustomerID     *uint
	Tags           []string
	Overdue        *bool
	Search         string
	Page           int
	PageSize       int
	SortBy         string
	SortOrder      string
}

type ListTicketsResult struct {
	Tickets    []dto.TicketListItemDTO `json:"tickets"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	PageSize   int                     `json:"page_size"`
}

type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewListTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(
	ctx context.Context,
	query ListTicketsQuery,
) (*ListTicketsResult, error) {
	uc.logger.Debugw("executing list tickets use case",
		"user_id", query.UserID,
		"organization_id", query.OrganizationID,
		"page", query.Page,
		"page_size", query.PageSize)

	if query.OrganizationID == 0 {
		return nil, errors.NewValidationError("organization ID is required")
	}

	if query.PageSize <= 0 {
		query.PageSize = 20
	}
	if query.PageSize > 100 {
		query.PageSize = 100
	}
	if query.Page < 1 {
		query.Page = 1
	}

	filter := ticket.TicketFilter{
		OrganizationID: query.OrganizationID,
		Tags:           query.Tags,
		Overdue:        query.Overdue,
		Search:         query.Search,
		Page:           query.Page,
		PageSize:       query.PageSize,
		SortBy:         query.SortBy,
		SortOrder:      query.SortOrder,
	}

	if filter.SortBy == "" {
		filter.SortBy = "created_at"
	}
	if filter.SortOrder == "" {
		filter.SortOrder = "desc"
	}

	if query.Status != nil {
		status, err := vo.NewTicketStatus(*query.Status)
		if err != nil {
			return nil, errors.NewValidationError("invalid status")
		}
		filter.Status = &status
	}

	if query.Priority != nil {
		priority, err := vo.NewPriority(*query.Priority)
		if err != nil {
			return nil, errors.NewValidationError("invalid priority")
		}
		filter.Priority = &priority
	}

	if query.Category != nil {
		category, err := vo.NewCategory(*query.Category)
		if err != nil {
			return nil, errors.NewValidationError("invalid category")
		}
		filter.Category = &category
	}

	if query.AssigneeID != nil {
		filter.AssigneeID = query.AssigneeID
	}

	// Customers only ever see their own tickets. Staff may narrow to a
	// specific customer.
	if query.Role.IsStaff() {
		filter.CustomerID = query.CustomerID
	} else {
		filter.CustomerID = &query.UserID
	}

	tickets, totalCount, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, errors.NewInternalError("failed to list tickets")
	}

	items := make([]dto.TicketListItemDTO, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, dto.ToTicketListItemDTO(t))
	}

	uc.logger.Debugw("tickets listed successfully",
		"count", len(items),
		"total", totalCount)

	return &ListTicketsResult{
		Tickets:    items,
		TotalCount: totalCount,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}, nil
}
