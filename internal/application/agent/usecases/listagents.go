package usecases

import (
	"context"

	"helpdesk/internal/application/agent/dto"
	"helpdesk/internal/domain/agent"
	"helpdesk/internal/shared/logger"
)

type ListAgentsQuery struct {
	EnabledOnly bool `json:"enabled_only"`
}

type ListAgentsUseCase struct {
	agentRepo agent.Repository
	logger    logger.Interface
}

func NewListAgentsUseCase(agentRepo agent.Repository, logger logger.Interface) *ListAgentsUseCase {
	return &ListAgentsUseCase{
		agentRepo: agentRepo,
		logger:    logger,
	}
}

func (uc *ListAgentsUseCase) Execute(ctx context.Context, query ListAgentsQuery) ([]*dto.AgentDTO, error) {
	agents, err := uc.agentRepo.List(ctx, query.EnabledOnly)
	if err != nil {
		uc.logger.Errorw("failed to list agents", "error", err)
		return nil, err
	}
	return dto.ToAgentDTOs(agents), nil
}
