package usecases

import (
	"context"

	"helpdesk/internal/application/agent/dto"
	"helpdesk/internal/domain/agent"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type CreateAgentCommand struct {
	Slug         string   `json:"slug"`
	DisplayName  string   `json:"display_name"`
	ModelName    string   `json:"model_name"`
	SystemPrompt string   `json:"system_prompt"`
	AllowedTools []string `json:"allowed_tools"`
	Role         string   `json:"role"`
}

type CreateAgentUseCase struct {
	agentRepo  agent.Repository
	knownTools []string
	logger     logger.Interface
}

// NewCreateAgentUseCase takes the catalog of tool names agents may be granted.
func NewCreateAgentUseCase(agentRepo agent.Repository, knownTools []string, logger logger.Interface) *CreateAgentUseCase {
	return &CreateAgentUseCase{
		agentRepo:  agentRepo,
		knownTools: knownTools,
		logger:     logger,
	}
}

func (uc *CreateAgentUseCase) Execute(ctx context.Context, cmd CreateAgentCommand) (*dto.AgentDTO, error) {
	if !authorization.ParseUserRole(cmd.Role).IsAdmin() {
		return nil, errors.NewForbiddenError("only administrators can manage agents")
	}
	if err := validateToolNames(cmd.AllowedTools, uc.knownTools); err != nil {
		return nil, err
	}

	exists, err := uc.agentRepo.ExistsBySlug(ctx, cmd.Slug)
	if err != nil {
		uc.logger.Errorw("failed to check agent slug", "slug", cmd.Slug, "error", err)
		return nil, err
	}
	if exists {
		return nil, errors.NewValidationError("an agent with this slug already exists")
	}

	ag, err := agent.NewAgent(cmd.Slug, cmd.DisplayName, cmd.ModelName, cmd.SystemPrompt, cmd.AllowedTools)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.agentRepo.Save(ctx, ag); err != nil {
		uc.logger.Errorw("failed to save agent", "slug", cmd.Slug, "error", err)
		return nil, err
	}

	uc.logger.Infow("agent created", "agent_id", ag.ID(), "slug", ag.Slug(), "model", ag.ModelName())
	return dto.ToAgentDTO(ag), nil
}

func validateToolNames(tools, known []string) error {
	for _, tool := range tools {
		found := false
		for _, k := range known {
			if tool == k {
				found = true
				break
			}
		}
		if !found {
			return errors.NewValidationError("unknown tool: " + tool)
		}
	}
	return nil
}
