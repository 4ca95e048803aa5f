package ticket

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"autocrm/internal/application/ticket/usecases"
	"autocrm/internal/shared/logger"
	"autocrm/internal/shared/utils"
)

type AttachmentHandler struct {
	addAttachmentUC usecases.AddAttachmentExecutor
	getTicketUC     usecases.GetTicketExecutor
	attachmentURLUC usecases.GetAttachmentURLExecutor
	downloadUC      usecases.DownloadAttachmentExecutor
	maxUploadBytes  int64
	logger          logger.Interface
}

func NewAttachmentHandler(
	addAttachmentUC usecases.AddAttachmentExecutor,
	getTicketUC usecases.GetTicketExecutor,
	attachmentURLUC usecases.GetAttachmentURLExecutor,
	downloadUC usecases.DownloadAttachmentExecutor,
	maxUploadBytes int64,
	logger logger.Interface,
) *AttachmentHandler {
	return &AttachmentHandler{
		addAttachmentUC: addAttachmentUC,
		getTicketUC:     getTicketUC,
		attachmentURLUC: attachmentURLUC,
		downloadUC:      downloadUC,
		maxUploadBytes:  maxUploadBytes,
		logger:          logger,
	}
}

// Upload handles POST /api/tickets/:id/attachments (multipart form, field "file")
func (h *AttachmentHandler) Upload(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "missing file upload")
		return
	}

	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file exceeds the %d MB upload limit", h.maxUploadBytes/(1<<20)))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Errorw("failed to open uploaded file", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to read upload")
		return
	}
	defer file.Close()

	who := callerFromContext(c)
	result, err := h.addAttachmentUC.Execute(c.Request.Context(), usecases.AddAttachmentCommand{
		TicketID:       ticketID,
		FileName:       fileHeader.Filename,
		ContentType:    fileHeader.Header.Get("Content-Type"),
		SizeBytes:      fileHeader.Size,
		Content:        file,
		UploaderID:     who.UserID,
		OrganizationID: who.OrganizationID,
		Role:           who.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Attachment uploaded successfully")
}

// List handles GET /api/tickets/:id/attachments
func (h *AttachmentHandler) List(c *gin.Context) {
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

	utils.SuccessResponse(c, http.StatusOK, "", result.Attachments)
}

// GetURL handles GET /api/attachments/:sid/url
func (h *AttachmentHandler) GetURL(c *gin.Context) {
	sid := c.Param("sid")
	if sid == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid attachment ID")
		return
	}

	who := callerFromContext(c)
	result, err := h.attachmentURLUC.Execute(c.Request.Context(), usecases.GetAttachmentURLQuery{
		AttachmentSID:  sid,
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

// Download handles GET /api/attachments/:sid/download
// The signed query string is the authorization; no bearer token is required.
func (h *AttachmentHandler) Download(c *gin.Context) {
	sid := c.Param("sid")
	expires, err := strconv.ParseInt(c.Query("expires"), 10, 64)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid download link")
		return
	}

	result, err := h.downloadUC.Execute(c.Request.Context(), usecases.DownloadAttachmentQuery{
		AttachmentSID: sid,
		Expires:       expires,
		Signature:     c.Query("sig"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	defer result.Content.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.DataFromReader(http.StatusOK, result.SizeBytes, result.ContentType, result.Content, nil)
}
