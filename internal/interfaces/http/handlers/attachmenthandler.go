package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/attachment/usecases"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/utils"
)

type AttachmentHandler struct {
	uploadUseCase   usecases.UploadAttachmentExecutor
	listUseCase     usecases.ListAttachmentsExecutor
	downloadUseCase usecases.DownloadAttachmentExecutor
	deleteUseCase   usecases.DeleteAttachmentExecutor
	logger          logger.Interface
}

func NewAttachmentHandler(
	uploadUC usecases.UploadAttachmentExecutor,
	listUC usecases.ListAttachmentsExecutor,
	downloadUC usecases.DownloadAttachmentExecutor,
	deleteUC usecases.DeleteAttachmentExecutor,
	log logger.Interface,
) *AttachmentHandler {
	return &AttachmentHandler{
		uploadUseCase:   uploadUC,
		listUseCase:     listUC,
		downloadUseCase: downloadUC,
		deleteUseCase:   deleteUC,
		logger:          log,
	}
}

// Upload accepts a multipart form with a single "file" field. The bytes are
// streamed to the use case, which enforces the size cap.
func (h *AttachmentHandler) Upload(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	ticketID, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "file field is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read uploaded file")
		return
	}
	defer file.Close()

	result, err := h.uploadUseCase.Execute(c.Request.Context(), usecases.UploadAttachmentCommand{
		TicketID:    ticketID,
		UserID:      p.UserID,
		Role:        p.Role,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     file,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "attachment uploaded")
}

func (h *AttachmentHandler) List(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	ticketID, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), usecases.ListAttachmentsQuery{
		TicketID: ticketID,
		UserID:   p.UserID,
		Role:     p.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *AttachmentHandler) Download(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	attachmentID, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.downloadUseCase.Execute(c.Request.Context(), usecases.DownloadAttachmentQuery{
		AttachmentID: attachmentID,
		UserID:       p.UserID,
		Role:         p.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	defer result.Content.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.DataFromReader(http.StatusOK, result.Size, result.ContentType, result.Content, nil)
}

func (h *AttachmentHandler) Delete(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	attachmentID, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), usecases.DeleteAttachmentCommand{
		AttachmentID: attachmentID,
		UserID:       p.UserID,
		Role:         p.Role,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
