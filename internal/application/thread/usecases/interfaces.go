package usecases

import (
	"context"

	"helpdesk/internal/application/thread/dto"
	"helpdesk/internal/domain/agent"
	"helpdesk/internal/domain/thread"
)

// AgentRunner produces an AI reply for a thread. Implementations call the
// model provider with the agent's system prompt and the conversation so far.
type AgentRunner interface {
	Reply(ctx context.Context, ag *agent.Agent, history []*thread.Message, userMessage *thread.Message) (content string, tokensUsed int, err error)
}

type CreateThreadExecutor interface {
	Execute(ctx context.Context, cmd CreateThreadCommand) (*dto.ThreadDTO, error)
}

type PostMessageExecutor interface {
	Execute(ctx context.Context, cmd PostMessageCommand) (*PostMessageResult, error)
}

type GetThreadExecutor interface {
	Execute(ctx context.Context, query GetThreadQuery) (*dto.ThreadDTO, error)
}

type ListThreadsExecutor interface {
	Execute(ctx context.Context, query ListThreadsQuery) (*ListThreadsResult, error)
}

type CloseThreadExecutor interface {
	Execute(ctx context.Context, cmd CloseThreadCommand) error
}

type ReopenThreadExecutor interface {
	Execute(ctx context.Context, cmd ReopenThreadCommand) error
}

type LinkTicketExecutor interface {
	Execute(ctx context.Context, cmd LinkTicketCommand) error
}
