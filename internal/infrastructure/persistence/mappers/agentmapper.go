package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"helpdesk/internal/domain/agent"
	"helpdesk/internal/infrastructure/persistence/models"
)

// AgentMapper handles the conversion between Agent domain entities and persistence models.
type AgentMapper interface {
	ToModel(a *agent.Agent) *models.AgentModel
	ToDomain(model *models.AgentModel) (*agent.Agent, error)
}

type AgentMapperImpl struct{}

func NewAgentMapper() AgentMapper {
	return &AgentMapperImpl{}
}

func (m *AgentMapperImpl) ToModel(a *agent.Agent) *models.AgentModel {
	model := &models.AgentModel{
		ID:            a.ID(),
		Slug:          a.Slug(),
		DisplayName:   a.DisplayName(),
		ModelName:     a.ModelName(),
		SystemPrompt:  a.SystemPrompt(),
		PromptVersion: a.PromptVersion(),
		Enabled:       a.Enabled(),
		CreatedAt:     a.CreatedAt().UnixMilli(),
		UpdatedAt:     a.UpdatedAt().UnixMilli(),
	}

	if len(a.AllowedTools()) > 0 {
		toolsJSON, _ := json.Marshal(a.AllowedTools())
		model.AllowedTools = datatypes.JSON(toolsJSON)
	}

	return model
}

func (m *AgentMapperImpl) ToDomain(model *models.AgentModel) (*agent.Agent, error) {
	var allowedTools []string
	if len(model.AllowedTools) > 0 {
		if err := json.Unmarshal(model.AllowedTools, &allowedTools); err != nil {
			return nil, fmt.Errorf("failed to unmarshal agent allowed tools (id=%d): %w", model.ID, err)
		}
	}

	return agent.ReconstructAgent(
		model.ID,
		model.Slug,
		model.DisplayName,
		model.ModelName,
		model.SystemPrompt,
		model.PromptVersion,
		model.Enabled,
		allowedTools,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}
