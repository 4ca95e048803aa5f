package ticket

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"autocrm/internal/application/ticket/usecases"
	"autocrm/internal/shared/authorization"
	"autocrm/internal/shared/constants"
	"autocrm/internal/shared/errors"
)

type CreateTicketRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"required,max=5000"`
	Category    string   `json:"category" binding:"required"`
	Priority    string   `json:"priority,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type UpdateTicketRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"required,max=5000"`
	Tags        []string `json:"tags,omitempty"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ChangePriorityRequest struct {
	Priority string `json:"priority" binding:"required"`
}

type ChangeCategoryRequest struct {
	Category string `json:"category" binding:"required"`
}

type AssignTicketRequest struct {
	AssigneeID uint `json:"assignee_id" binding:"required"`
}

type AddMessageRequest struct {
	Body     string `json:"body" binding:"required,max=10000"`
	Internal bool   `json:"internal,omitempty"`
}

// caller bundles the identity keys the auth middleware stored on the context.
type caller struct {
	UserID         uint
	OrganizationID uint
	Role           authorization.UserRole
}

func callerFromContext(c *gin.Context) caller {
	return caller{
		UserID:         c.GetUint(constants.ContextKeyUserID),
		OrganizationID: c.GetUint(constants.ContextKeyOrgID),
		Role:           authorization.ParseUserRole(c.GetString(constants.ContextKeyUserRole)),
	}
}

func parseTicketID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid ticket ID")
	}
	return uint(id), nil
}

func parseListQuery(c *gin.Context, who caller) usecases.ListTicketsQuery {
	query := usecases.ListTicketsQuery{
		UserID:         who.UserID,
		OrganizationID: who.OrganizationID,
		Role:           who.Role,
		Search:         c.Query("search"),
		SortBy:         c.Query("sort_by"),
		SortOrder:      c.Query("sort_order"),
	}

	if v := c.Query("status"); v != "" {
		query.Status = &v
	}
	if v := c.Query("priority"); v != "" {
		query.Priority = &v
	}
	if v := c.Query("category"); v != "" {
		query.Category = &v
	}
	if v := c.Query("assignee_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			assigneeID := uint(id)
			query.AssigneeID = &assigneeID
		}
	}
	if v := c.Query("customer_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			customerID := uint(id)
			query.CustomerID = &customerID
		}
	}
	if v := c.Query("overdue"); v != "" {
		overdue := v == "true" || v == "1"
		query.Overdue = &overdue
	}
	if tags := c.QueryArray("tag"); len(tags) > 0 {
		query.Tags = tags
	}
	if v := c.Query("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil {
			query.Page = page
		}
	}
	if v := c.Query("page_size"); v != "" {
		if size, err := strconv.Atoi(v); err == nil {
			query.PageSize = size
		}
	}

	return query
}
