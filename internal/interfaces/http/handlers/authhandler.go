package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autocrm/internal/application/user/usecases"
	"autocrm/internal/shared/constants"
	"autocrm/internal/shared/logger"
	"autocrm/internal/shared/utils"
)

type RegisterRequest struct {
	OrganizationName string `json:"organization_name" binding:"required" validate:"required,max=100"`
	OrganizationSlug string `json:"organization_slug" binding:"required" validate:"required,max=50"`
	Email            string `json:"email" binding:"required" validate:"required,email"`
	Name             string `json:"name" binding:"required" validate:"required,max=100"`
	Password         string `json:"password" binding:"required" validate:"required,min=8,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthHandler struct {
	registerUC usecases.RegisterExecutor
	loginUC    usecases.LoginExecutor
	refreshUC  usecases.RefreshTokenExecutor
	profileUC  usecases.GetProfileExecutor
	logger     logger.Interface
}

func NewAuthHandler(
	registerUC usecases.RegisterExecutor,
	loginUC usecases.LoginExecutor,
	refreshUC usecases.RefreshTokenExecutor,
	profileUC usecases.GetProfileExecutor,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
		refreshUC:  refreshUC,
		profileUC:  profileUC,
		logger:     logger,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), usecases.RegisterCommand{
		OrganizationName: req.OrganizationName,
		OrganizationSlug: req.OrganizationSlug,
		Email:            req.Email,
		Name:             req.Name,
		Password:         req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Organization registered successfully")
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", result)
}

// RefreshToken handles POST /api/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.refreshUC.Execute(c.Request.Context(), usecases.RefreshTokenCommand{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetProfile handles GET /api/auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := c.GetUint(constants.ContextKeyUserID)

	result, err := h.profileUC.Execute(c.Request.Context(), usecases.GetProfileQuery{
		UserID: userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
