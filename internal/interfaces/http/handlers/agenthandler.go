package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/agent/usecases"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/utils"
)

type AgentHandler struct {
	createUseCase       usecases.CreateAgentExecutor
	updateUseCase       usecases.UpdateAgentExecutor
	updatePromptUseCase usecases.UpdatePromptExecutor
	setEnabledUseCase   usecases.SetAgentEnabledExecutor
	deleteUseCase       usecases.DeleteAgentExecutor
	getUseCase          usecases.GetAgentExecutor
	listUseCase         usecases.ListAgentsExecutor
	logger              logger.Interface
}

func NewAgentHandler(
	createUC usecases.CreateAgentExecutor,
	updateUC usecases.UpdateAgentExecutor,
	updatePromptUC usecases.UpdatePromptExecutor,
	setEnabledUC usecases.SetAgentEnabledExecutor,
	deleteUC usecases.DeleteAgentExecutor,
	getUC usecases.GetAgentExecutor,
	listUC usecases.ListAgentsExecutor,
	log logger.Interface,
) *AgentHandler {
	return &AgentHandler{
		createUseCase:       createUC,
		updateUseCase:       updateUC,
		updatePromptUseCase: updatePromptUC,
		setEnabledUseCase:   setEnabledUC,
		deleteUseCase:       deleteUC,
		getUseCase:          getUC,
		listUseCase:         listUC,
		logger:              log,
	}
}

type CreateAgentRequest struct {
	Slug         string   `json:"slug" binding:"required"`
	DisplayName  string   `json:"display_name" binding:"required"`
	ModelName    string   `json:"model_name" binding:"required"`
	SystemPrompt string   `json:"system_prompt" binding:"required"`
	AllowedTools []string `json:"allowed_tools"`
}

type UpdateAgentRequest struct {
	DisplayName  *string  `json:"display_name"`
	ModelName    *string  `json:"model_name"`
	AllowedTools []string `json:"allowed_tools"`
}

type UpdatePromptRequest struct {
	SystemPrompt  string `json:"system_prompt" binding:"required"`
	PromptVersion string `json:"prompt_version" binding:"required"`
}

type SetEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

func (h *AgentHandler) Create(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), usecases.CreateAgentCommand{
		Slug:         req.Slug,
		DisplayName:  req.DisplayName,
		ModelName:    req.ModelName,
		SystemPrompt: req.SystemPrompt,
		AllowedTools: req.AllowedTools,
		Role:         p.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

func (h *AgentHandler) Update(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	agentID, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), usecases.UpdateAgentCommand{
		AgentID:      agentID,
		DisplayName:  req.DisplayName,
		ModelName:    req.ModelName,
		AllowedTools: req.AllowedTools,
		Role:         p.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "agent updated", result)
}

func (h *AgentHandler) UpdatePrompt(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	agentID, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.updatePromptUseCase.Execute(c.Request.Context(), usecases.UpdatePromptCommand{
		AgentID:       agentID,
		SystemPrompt:  req.SystemPrompt,
		PromptVersion: req.PromptVersion,
		Role:          p.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "prompt updated", result)
}

func (h *AgentHandler) SetEnabled(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	agentID, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.setEnabledUseCase.Execute(c.Request.Context(), usecases.SetAgentEnabledCommand{
		AgentID: agentID,
		Enabled: *req.Enabled,
		Role:    p.Role,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "agent availability updated", nil)
}

func (h *AgentHandler) Delete(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	agentID, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), usecases.DeleteAgentCommand{
		AgentID: agentID,
		Role:    p.Role,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *AgentHandler) Get(c *gin.Context) {
	agentID, err := parseUintParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), usecases.GetAgentQuery{AgentID: agentID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *AgentHandler) List(c *gin.Context) {
	result, err := h.listUseCase.Execute(c.Request.Context(), usecases.ListAgentsQuery{
		EnabledOnly: c.Query("enabled_only") == "true",
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
