package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/extsync/usecases"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/utils"
)

type SyncHandler struct {
	createLinkUseCase   usecases.CreateLinkExecutor
	setLinkStateUseCase usecases.SetLinkStateExecutor
	listLinksUseCase    usecases.ListLinksExecutor
	listAllLinksUseCase usecases.ListAllLinksExecutor
	listJobsUseCase     usecases.ListJobsExecutor
	retryJobUseCase     usecases.RetryJobExecutor
	logger              logger.Interface
}

func NewSyncHandler(
	createLinkUC usecases.CreateLinkExecutor,
	setLinkStateUC usecases.SetLinkStateExecutor,
	listLinksUC usecases.ListLinksExecutor,
	listAllLinksUC usecases.ListAllLinksExecutor,
	listJobsUC usecases.ListJobsExecutor,
	retryJobUC usecases.RetryJobExecutor,
	log logger.Interface,
) *SyncHandler {
	return &SyncHandler{
		createLinkUseCase:   createLinkUC,
		setLinkStateUseCase: setLinkStateUC,
		listLinksUseCase:    listLinksUC,
		listAllLinksUseCase: listAllLinksUC,
		listJobsUseCase:     listJobsUC,
		retryJobUseCase:     retryJobUC,
		logger:              log,
	}
}

type CreateLinkRequest struct {
	Platform    string `json:"platform" binding:"required,syncplatform"`
	ExternalKey string `json:"external_key" binding:"required"`
}

type SetLinkStateRequest struct {
	Action string `json:"action" binding:"required"`
}

func (h *SyncHandler) CreateLink(c *gin.Context) {
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

	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.createLinkUseCase.Execute(c.Request.Context(), usecases.CreateLinkCommand{
		TicketID:    ticketID,
		Platform:    req.Platform,
		ExternalKey: req.ExternalKey,
		UserID:      p.UserID,
		Role:        p.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "ticket linked")
}

func (h *SyncHandler) ListLinks(c *gin.Context) {
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

	result, err := h.listLinksUseCase.Execute(c.Request.Context(), usecases.ListLinksQuery{
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

func (h *SyncHandler) ListAllLinks(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pagination := utils.ParsePagination(c)
	result, err := h.listAllLinksUseCase.Execute(c.Request.Context(), usecases.ListAllLinksQuery{
		State:    c.Query("state"),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
		UserID:   p.UserID,
		Role:     p.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Links, result.Total, result.Page, result.PageSize)
}

func (h *SyncHandler) ListJobs(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pagination := utils.ParsePagination(c)
	result, err := h.listJobsUseCase.Execute(c.Request.Context(), usecases.ListJobsQuery{
		State:    c.Query("state"),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
		UserID:   p.UserID,
		Role:     p.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Jobs, result.Total, result.Page, result.PageSize)
}

func (h *SyncHandler) SetLinkState(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	linkID, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetLinkStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.setLinkStateUseCase.Execute(c.Request.Context(), usecases.SetLinkStateCommand{
		LinkID: linkID,
		Action: usecases.LinkAction(req.Action),
		UserID: p.UserID,
		Role:   p.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "link updated", result)
}

func (h *SyncHandler) RetryJob(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	jobID, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.retryJobUseCase.Execute(c.Request.Context(), usecases.RetryJobCommand{
		JobID:  jobID,
		UserID: p.UserID,
		Role:   p.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "job requeued", result)
}
