package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/ticket/usecases"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/utils"
)

type TicketHandler struct {
	createUseCase         usecases.CreateTicketExecutor
	updateUseCase         usecases.UpdateTicketExecutor
	deleteUseCase         usecases.DeleteTicketExecutor
	getUseCase            usecases.GetTicketExecutor
	listUseCase           usecases.ListTicketsExecutor
	searchUseCase         usecases.SearchTicketsExecutor
	addCommentUseCase     usecases.AddCommentExecutor
	assignUseCase         usecases.AssignTicketExecutor
	changeStatusUseCase   usecases.ChangeStatusExecutor
	changePriorityUseCase usecases.ChangePriorityExecutor
	closeUseCase          usecases.CloseTicketExecutor
	reopenUseCase         usecases.ReopenTicketExecutor
	logger                logger.Interface
}

func NewTicketHandler(
	createUC usecases.CreateTicketExecutor,
	updateUC usecases.UpdateTicketExecutor,
	deleteUC usecases.DeleteTicketExecutor,
	getUC usecases.GetTicketExecutor,
	listUC usecases.ListTicketsExecutor,
	searchUC usecases.SearchTicketsExecutor,
	addCommentUC usecases.AddCommentExecutor,
	assignUC usecases.AssignTicketExecutor,
	changeStatusUC usecases.ChangeStatusExecutor,
	changePriorityUC usecases.ChangePriorityExecutor,
	closeUC usecases.CloseTicketExecutor,
	reopenUC usecases.ReopenTicketExecutor,
	log logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createUseCase:         createUC,
		updateUseCase:         updateUC,
		deleteUseCase:         deleteUC,
		getUseCase:            getUC,
		listUseCase:           listUC,
		searchUseCase:         searchUC,
		addCommentUseCase:     addCommentUC,
		assignUseCase:         assignUC,
		changeStatusUseCase:   changeStatusUC,
		changePriorityUseCase: changePriorityUC,
		closeUseCase:          closeUC,
		reopenUseCase:         reopenUC,
		logger:                log,
	}
}

type CreateTicketRequest struct {
	Title       string                 `json:"title" binding:"required,max=200"`
	Description string                 `json:"description" binding:"required"`
	Category    string                 `json:"category" binding:"required,ticketcategory"`
	Priority    string                 `json:"priority" binding:"omitempty,ticketpriority"`
	Tags        []string               `json:"tags"`
	Metadata    map[string]interface{} `json:"metadata"`
}

type UpdateTicketRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
}

type AddCommentRequest struct {
	Content    string `json:"content" binding:"required"`
	IsInternal bool   `json:"is_internal"`
}

type AssignTicketRequest struct {
	AssigneeID uint `json:"assignee_id" binding:"required"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,ticketstatus"`
	Reason string `json:"reason"`
}

type ChangePriorityRequest struct {
	Priority string `json:"priority" binding:"required,ticketpriority"`
}

type CloseTicketRequest struct {
	Reason string `json:"reason"`
}

type ReopenTicketRequest struct {
	Reason string `json:"reason"`
}

func (h *TicketHandler) Create(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), usecases.CreateTicketCommand{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		CreatorID:   p.UserID,
		Tags:        req.Tags,
		Metadata:    req.Metadata,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

func (h *TicketHandler) Get(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.GetTicketQuery{UserID: p.UserID, Role: p.Role}

	// Tickets resolve by numeric ID or by their TKT number.
	raw := c.Param("id")
	if strings.HasPrefix(raw, "TKT-") {
		query.Number = raw
	} else {
		ticketID, err := parseUintParam(c, "id")
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
		query.TicketID = ticketID
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *TicketHandler) List(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	pagination := utils.ParsePagination(c)
	query := usecases.ListTicketsQuery{
		UserID:       p.UserID,
		Role:         p.Role,
		Status:       c.Query("status"),
		Priority:     c.Query("priority"),
		Category:     c.Query("category"),
		AssignedToMe: c.Query("assigned_to_me") == "true",
		Page:         pagination.Page,
		PageSize:     pagination.PageSize,
		SortBy:       c.Query("sort_by"),
		SortOrder:    c.Query("sort_order"),
	}
	if tags := c.Query("tags"); tags != "" {
		query.Tags = strings.Split(tags, ",")
	}
	if assignee := c.Query("assignee_id"); assignee != "" {
		if n, err := strconv.ParseUint(assignee, 10, 32); err == nil {
			id := uint(n)
			query.AssigneeID = &id
		}
	}
	if overdue := c.Query("overdue"); overdue != "" {
		v := overdue == "true"
		query.Overdue = &v
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

func (h *TicketHandler) Search(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	q := c.Query("q")
	if q == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "search query is required")
		return
	}

	pagination := utils.ParsePagination(c)
	result, err := h.searchUseCase.Execute(c.Request.Context(), usecases.SearchTicketsQuery{
		Query:    q,
		UserID:   p.UserID,
		Role:     p.Role,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

func (h *TicketHandler) Update(c *gin.Context) {
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

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), usecases.UpdateTicketCommand{
		TicketID:    ticketID,
		UserID:      p.UserID,
		Role:        p.Role,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "ticket updated", result)
}

func (h *TicketHandler) Delete(c *gin.Context) {
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

	if err := h.deleteUseCase.Execute(c.Request.Context(), usecases.DeleteTicketCommand{
		TicketID:  ticketID,
		DeletedBy: p.UserID,
		Role:      p.Role,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *TicketHandler) AddComment(c *gin.Context) {
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

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.addCommentUseCase.Execute(c.Request.Context(), usecases.AddCommentCommand{
		TicketID:   ticketID,
		UserID:     p.UserID,
		Role:       p.Role,
		Content:    req.Content,
		IsInternal: req.IsInternal,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "comment added")
}

func (h *TicketHandler) Assign(c *gin.Context) {
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

	var req AssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.assignUseCase.Execute(c.Request.Context(), usecases.AssignTicketCommand{
		TicketID:   ticketID,
		AssigneeID: req.AssigneeID,
		AssignedBy: p.UserID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "ticket assigned", nil)
}

func (h *TicketHandler) ChangeStatus(c *gin.Context) {
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

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.changeStatusUseCase.Execute(c.Request.Context(), usecases.ChangeStatusCommand{
		TicketID:  ticketID,
		NewStatus: req.Status,
		ChangedBy: p.UserID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "status changed", result)
}

func (h *TicketHandler) Close(c *gin.Context) {
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

	// The reason is optional; an empty body is fine.
	var req CloseTicketRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.closeUseCase.Execute(c.Request.Context(), usecases.CloseTicketCommand{
		TicketID: ticketID,
		Reason:   req.Reason,
		ClosedBy: p.UserID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "ticket closed", nil)
}

func (h *TicketHandler) Reopen(c *gin.Context) {
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

	var req ReopenTicketRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.reopenUseCase.Execute(c.Request.Context(), usecases.ReopenTicketCommand{
		TicketID:   ticketID,
		Reason:     req.Reason,
		ReopenedBy: p.UserID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "ticket reopened", nil)
}

func (h *TicketHandler) ChangePriority(c *gin.Context) {
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

	var req ChangePriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.changePriorityUseCase.Execute(c.Request.Context(), usecases.ChangePriorityCommand{
		TicketID:    ticketID,
		NewPriority: req.Priority,
		ChangedBy:   p.UserID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "priority changed", nil)
}
