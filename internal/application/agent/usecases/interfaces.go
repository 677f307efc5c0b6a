package usecases

import (
	"context"

	"helpdesk/internal/application/agent/dto"
)

type CreateAgentExecutor interface {
	Execute(ctx context.Context, cmd CreateAgentCommand) (*dto.AgentDTO, error)
}

type UpdateAgentExecutor interface {
	Execute(ctx context.Context, cmd UpdateAgentCommand) (*dto.AgentDTO, error)
}

type UpdatePromptExecutor interface {
	Execute(ctx context.Context, cmd UpdatePromptCommand) (*dto.AgentDTO, error)
}

type SetAgentEnabledExecutor interface {
	Execute(ctx context.Context, cmd SetAgentEnabledCommand) error
}

type DeleteAgentExecutor interface {
	Execute(ctx context.Context, cmd DeleteAgentCommand) error
}

type GetAgentExecutor interface {
	Execute(ctx context.Context, query GetAgentQuery) (*dto.AgentDTO, error)
}

type ListAgentsExecutor interface {
	Execute(ctx context.Context, query ListAgentsQuery) ([]*dto.AgentDTO, error)
}
