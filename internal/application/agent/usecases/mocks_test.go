package usecases

import (
	"context"

	"helpdesk/internal/domain/agent"
	"helpdesk/internal/shared/logger"
)

type mockAgentRepository struct {
	SaveFunc         func(ctx context.Context, a *agent.Agent) error
	UpdateFunc       func(ctx context.Context, a *agent.Agent) error
	DeleteFunc       func(ctx context.Context, agentID uint) error
	GetByIDFunc      func(ctx context.Context, agentID uint) (*agent.Agent, error)
	GetBySlugFunc    func(ctx context.Context, slug string) (*agent.Agent, error)
	ListFunc         func(ctx context.Context, enabledOnly bool) ([]*agent.Agent, error)
	ExistsBySlugFunc func(ctx context.Context, slug string) (bool, error)
}

func (m *mockAgentRepository) Save(ctx context.Context, a *agent.Agent) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, a)
	}
	return nil
}

func (m *mockAgentRepository) Update(ctx context.Context, a *agent.Agent) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, a)
	}
	return nil
}

func (m *mockAgentRepository) Delete(ctx context.Context, agentID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, agentID)
	}
	return nil
}

func (m *mockAgentRepository) GetByID(ctx context.Context, agentID uint) (*agent.Agent, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, agentID)
	}
	return nil, nil
}

func (m *mockAgentRepository) GetBySlug(ctx context.Context, slug string) (*agent.Agent, error) {
	if m.GetBySlugFunc != nil {
		return m.GetBySlugFunc(ctx, slug)
	}
	return nil, nil
}

func (m *mockAgentRepository) List(ctx context.Context, enabledOnly bool) ([]*agent.Agent, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, enabledOnly)
	}
	return nil, nil
}

func (m *mockAgentRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	if m.ExistsBySlugFunc != nil {
		return m.ExistsBySlugFunc(ctx, slug)
	}
	return false, nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                   {}
func (m *mockLogger) Info(msg string, args ...any)                    {}
func (m *mockLogger) Warn(msg string, args ...any)                    {}
func (m *mockLogger) Error(msg string, args ...any)                   {}
func (m *mockLogger) Fatal(msg string, args ...any)                   {}
func (m *mockLogger) With(args ...any) logger.Interface               { return m }
func (m *mockLogger) Named(name string) logger.Interface              { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Fatalw(msg string, keysAndValues ...interface{}) {}
