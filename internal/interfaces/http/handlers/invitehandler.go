package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autocrm/internal/application/invite/usecases"
	"autocrm/internal/shared/authorization"
	"autocrm/internal/shared/constants"
	"autocrm/internal/shared/logger"
	"autocrm/internal/shared/utils"
)

type CreateInviteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type AcceptInviteRequest struct {
	Token    string `json:"token" binding:"required"`
	Name     string `json:"name" binding:"required" validate:"required,max=100"`
	Password string `json:"password" binding:"required" validate:"required,min=8,max=128"`
}

type InviteHandler struct {
	createInviteUC usecases.CreateInviteExecutor
	checkInviteUC  usecases.CheckInviteExecutor
	acceptInviteUC usecases.AcceptInviteExecutor
	logger         logger.Interface
}

func NewInviteHandler(
	createInviteUC usecases.CreateInviteExecutor,
	checkInviteUC usecases.CheckInviteExecutor,
	acceptInviteUC usecases.AcceptInviteExecutor,
	logger logger.Interface,
) *InviteHandler {
	return &InviteHandler{
		createInviteUC: createInviteUC,
		checkInviteUC:  checkInviteUC,
		acceptInviteUC: acceptInviteUC,
		logger:         logger,
	}
}

// CreateAgentInvite handles POST /api/invites/agent
func (h *InviteHandler) CreateAgentInvite(c *gin.Context) {
	h.createInvite(c, authorization.RoleAgent)
}

// CreateCustomerInvite handles POST /api/invites/customer
func (h *InviteHandler) CreateCustomerInvite(c *gin.Context) {
	h.createInvite(c, authorization.RoleCustomer)
}

func (h *InviteHandler) createInvite(c *gin.Context, role authorization.UserRole) {
	var req CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.createInviteUC.Execute(c.Request.Context(), usecases.CreateInviteCommand{
		Email:          req.Email,
		Role:           role.String(),
		OrganizationID: c.GetUint(constants.ContextKeyOrgID),
		InvitedBy:      c.GetUint(constants.ContextKeyUserID),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Invite sent successfully")
}

// CheckInvite handles GET /api/invites/check/:token
// Unauthenticated: the invitee does not have an account yet.
func (h *InviteHandler) CheckInvite(c *gin.Context) {
	result, err := h.checkInviteUC.Execute(c.Request.Context(), usecases.CheckInviteQuery{
		Token: c.Param("token"),
		Kind:  c.Query("kind"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// AcceptInvite handles POST /api/invites/accept
func (h *InviteHandler) AcceptInvite(c *gin.Context) {
	var req AcceptInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.acceptInviteUC.Execute(c.Request.Context(), usecases.AcceptInviteCommand{
		Token:    req.Token,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Invite accepted successfully")
}
