package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autocrm/internal/application/ticket/usecases"
	"autocrm/internal/shared/logger"
	"autocrm/internal/shared/utils"
)

type TicketHandler struct {
	createTicketUC   usecases.CreateTicketExecutor
	getTicketUC      usecases.GetTicketExecutor
	listTicketsUC    usecases.ListTicketsExecutor
	updateTicketUC   usecases.UpdateTicketExecutor
	changeStatusUC   usecases.ChangeStatusExecutor
	changePriorityUC usecases.ChangePriorityExecutor
	changeCategoryUC usecases.ChangeCategoryExecutor
	assignTicketUC   usecases.AssignTicketExecutor
	addMessageUC     usecases.AddMessageExecutor
	deleteTicketUC   usecases.DeleteTicketExecutor
	statsUC          usecases.GetTicketStatsExecutor
	logger           logger.Interface
}

func NewTicketHandler(
	createTicketUC usecases.CreateTicketExecutor,
	getTicketUC usecases.GetTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	updateTicketUC usecases.UpdateTicketExecutor,
	changeStatusUC usecases.ChangeStatusExecutor,
	changePriorityUC usecases.ChangePriorityExecutor,
	changeCategoryUC usecases.ChangeCategoryExecutor,
	assignTicketUC usecases.AssignTicketExecutor,
	addMessageUC usecases.AddMessageExecutor,
	deleteTicketUC usecases.DeleteTicketExecutor,
	statsUC usecases.GetTicketStatsExecutor,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC:   createTicketUC,
		getTicketUC:      getTicketUC,
		listTicketsUC:    listTicketsUC,
		updateTicketUC:   updateTicketUC,
		changeStatusUC:   changeStatusUC,
		changePriorityUC: changePriorityUC,
		changeCategoryUC: changeCategoryUC,
		assignTicketUC:   assignTicketUC,
		addMessageUC:     addMessageUC,
		deleteTicketUC:   deleteTicketUC,
		statsUC:          statsUC,
		logger:           logger,
	}
}

// CreateTicket handles POST /api/tickets
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	who := callerFromContext(c)
	result, err := h.createTicketUC.Execute(c.Request.Context(), usecases.CreateTicketCommand{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Priority:       req.Priority,
		Tags:           req.Tags,
		CustomerID:     who.UserID,
		OrganizationID: who.OrganizationID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// GetTicket handles GET /api/tickets/:id
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	who := callerFromContext(c)
	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{
		TicketID:       ticketID,
		UserID:         who.UserID,
		OrganizationID: who.OrganizationID,
		Role:           who.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListTickets handles GET /api/tickets
func (h *TicketHandler) ListTickets(c *gin.Context) {
	who := callerFromContext(c)

	result, err := h.listTicketsUC.Execute(c.Request.Context(), parseListQuery(c, who))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.TotalCount, result.Page, result.PageSize)
}

// UpdateTicket handles PATCH /api/tickets/:id
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	who := callerFromContext(c)
	result, err := h.updateTicketUC.Execute(c.Request.Context(), usecases.UpdateTicketCommand{
		TicketID:       ticketID,
		Title:          req.Title,
		Description:    req.Description,
		Tags:           req.Tags,
		UserID:         who.UserID,
		OrganizationID: who.OrganizationID,
		Role:           who.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", result)
}

// ChangeStatus handles PATCH /api/tickets/:id/status
func (h *TicketHandler) ChangeStatus(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	who := callerFromContext(c)
	result, err := h.changeStatusUC.Execute(c.Request.Context(), usecases.ChangeStatusCommand{
		TicketID:       ticketID,
		NewStatus:      req.Status,
		UserID:         who.UserID,
		OrganizationID: who.OrganizationID,
		Role:           who.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket status updated", result)
}

// ChangePriority handles PATCH /api/tickets/:id/priority
func (h *TicketHandler) ChangePriority(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangePriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	who := callerFromContext(c)
	result, err := h.changePriorityUC.Execute(c.Request.Context(), usecases.ChangePriorityCommand{
		TicketID:       ticketID,
		NewPriority:    req.Priority,
		UserID:         who.UserID,
		OrganizationID: who.OrganizationID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket priority updated", result)
}

// ChangeCategory handles PATCH /api/tickets/:id/category
func (h *TicketHandler) ChangeCategory(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	who := callerFromContext(c)
	result, err := h.changeCategoryUC.Execute(c.Request.Context(), usecases.ChangeCategoryCommand{
		TicketID:       ticketID,
		NewCategory:    req.Category,
		UserID:         who.UserID,
		OrganizationID: who.OrganizationID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket category updated", result)
}

// AssignTicket handles POST /api/tickets/:id/assign
func (h *TicketHandler) AssignTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	who := callerFromContext(c)
	result, err := h.assignTicketUC.Execute(c.Request.Context(), usecases.AssignTicketCommand{
		TicketID:       ticketID,
		AssigneeID:     req.AssigneeID,
		AssignedBy:     who.UserID,
		OrganizationID: who.OrganizationID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket assigned successfully", result)
}

// AddMessage handles POST /api/tickets/:id/messages
func (h *TicketHandler) AddMessage(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	who := callerFromContext(c)
	result, err := h.addMessageUC.Execute(c.Request.Context(), usecases.AddMessageCommand{
		TicketID:       ticketID,
		Body:           req.Body,
		Internal:       req.Internal,
		AuthorID:       who.UserID,
		OrganizationID: who.OrganizationID,
		Role:           who.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Message added successfully")
}

// ListMessages handles GET /api/tickets/:id/messages
// The thread rides on the ticket detail; this endpoint serves clients that
// refetch just the conversation.
func (h *TicketHandler) ListMessages(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	who := callerFromContext(c)
	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{
		TicketID:       ticketID,
		UserID:         who.UserID,
		OrganizationID: who.OrganizationID,
		Role:           who.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result.Messages)
}

// DeleteTicket handles DELETE /api/tickets/:id
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	who := callerFromContext(c)
	_, err = h.deleteTicketUC.Execute(c.Request.Context(), usecases.DeleteTicketCommand{
		TicketID:       ticketID,
		UserID:         who.UserID,
		OrganizationID: who.OrganizationID,
		Role:           who.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// GetStats handles GET /api/tickets/stats
func (h *TicketHandler) GetStats(c *gin.Context) {
	who := callerFromContext(c)

	result, err := h.statsUC.Execute(c.Request.Context(), usecases.GetTicketStatsQuery{
		OrganizationID: who.OrganizationID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
