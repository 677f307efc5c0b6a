package dto

import (
	"time"

	"helpdesk/internal/domain/agent"
)

type AgentDTO struct {
	ID            uint      `json:"id"`
	Slug          string    `json:"slug"`
	DisplayName   string    `json:"display_name"`
	ModelName     string    `json:"model_name"`
	SystemPrompt  string    `json:"system_prompt"`
	PromptVersion string    `json:"prompt_version"`
	Enabled       bool      `json:"enabled"`
	AllowedTools  []string  `json:"allowed_tools"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToAgentDTO(a *agent.Agent) *AgentDTO {
	if a == nil {
		return nil
	}
	return &AgentDTO{
		ID:            a.ID(),
		Slug:          a.Slug(),
		DisplayName:   a.DisplayName(),
		ModelName:     a.ModelName(),
		SystemPrompt:  a.SystemPrompt(),
		PromptVersion: a.PromptVersion(),
		Enabled:       a.Enabled(),
		AllowedTools:  a.AllowedTools(),
		CreatedAt:     a.CreatedAt(),
		UpdatedAt:     a.UpdatedAt(),
	}
}

func ToAgentDTOs(agents []*agent.Agent) []*AgentDTO {
	dtos := make([]*AgentDTO, 0, len(agents))
	for _, a := range agents {
		dtos = append(dtos, ToAgentDTO(a))
	}
	return dtos
}
