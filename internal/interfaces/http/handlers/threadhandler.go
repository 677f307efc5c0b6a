package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/thread/usecases"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/utils"
)

type ThreadHandler struct {
	createUseCase      usecases.CreateThreadExecutor
	getUseCase         usecases.GetThreadExecutor
	listUseCase        usecases.ListThreadsExecutor
	postMessageUseCase usecases.PostMessageExecutor
	closeUseCase       usecases.CloseThreadExecutor
	reopenUseCase      usecases.ReopenThreadExecutor
	linkTicketUseCase  usecases.LinkTicketExecutor
	logger             logger.Interface
}

func NewThreadHandler(
	createUC usecases.CreateThreadExecutor,
	getUC usecases.GetThreadExecutor,
	listUC usecases.ListThreadsExecutor,
	postMessageUC usecases.PostMessageExecutor,
	closeUC usecases.CloseThreadExecutor,
	reopenUC usecases.ReopenThreadExecutor,
	linkTicketUC usecases.LinkTicketExecutor,
	log logger.Interface,
) *ThreadHandler {
	return &ThreadHandler{
		createUseCase:      createUC,
		getUseCase:         getUC,
		listUseCase:        listUC,
		postMessageUseCase: postMessageUC,
		closeUseCase:       closeUC,
		reopenUseCase:      reopenUC,
		linkTicketUseCase:  linkTicketUC,
		logger:             log,
	}
}

type CreateThreadRequest struct {
	Subject   string `json:"subject" binding:"required,max=200"`
	AgentSlug string `json:"agent_slug" binding:"required"`
}

type PostMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

type LinkTicketRequest struct {
	TicketID uint `json:"ticket_id" binding:"required"`
}

func (h *ThreadHandler) Create(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), usecases.CreateThreadCommand{
		Subject:   req.Subject,
		AgentSlug: req.AgentSlug,
		CreatorID: p.UserID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

func (h *ThreadHandler) Get(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	threadID, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), usecases.GetThreadQuery{
		ThreadID: threadID,
		UserID:   p.UserID,
		Role:     p.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *ThreadHandler) List(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pagination := utils.ParsePagination(c)
	query := usecases.ListThreadsQuery{
		UserID:    p.UserID,
		Role:      p.Role,
		Status:    c.Query("status"),
		Page:      pagination.Page,
		PageSize:  pagination.PageSize,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if agentID := c.Query("agent_id"); agentID != "" {
		if n, err := strconv.ParseUint(agentID, 10, 32); err == nil {
			query.AgentID = uint(n)
		}
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Threads, result.Total, result.Page, result.PageSize)
}

func (h *ThreadHandler) PostMessage(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	threadID, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.postMessageUseCase.Execute(c.Request.Context(), usecases.PostMessageCommand{
		ThreadID: threadID,
		UserID:   p.UserID,
		Role:     p.Role,
		Content:  req.Content,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "message posted")
}

func (h *ThreadHandler) Close(c *gin.Context) {
	h.transition(c, func(threadID uint, p principal) error {
		return h.closeUseCase.Execute(c.Request.Context(), usecases.CloseThreadCommand{
			ThreadID: threadID,
			UserID:   p.UserID,
			Role:     p.Role,
		})
	}, "thread closed")
}

func (h *ThreadHandler) Reopen(c *gin.Context) {
	h.transition(c, func(threadID uint, p principal) error {
		return h.reopenUseCase.Execute(c.Request.Context(), usecases.ReopenThreadCommand{
			ThreadID: threadID,
			UserID:   p.UserID,
			Role:     p.Role,
		})
	}, "thread reopened")
}

func (h *ThreadHandler) transition(c *gin.Context, fn func(threadID uint, p principal) error, message string) {
	p, err := currentPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	threadID, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := fn(threadID, p); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, message, nil)
}

func (h *ThreadHandler) LinkTicket(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	threadID, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req LinkTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.linkTicketUseCase.Execute(c.Request.Context(), usecases.LinkTicketCommand{
		ThreadID: threadID,
		TicketID: req.TicketID,
		UserID:   p.UserID,
		Role:     p.Role,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "thread linked to ticket", nil)
}
