package usecases

import (
	"context"

	"helpdesk/internal/domain/agent"
	"helpdesk/internal/domain/thread"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/logger"
)

type mockThreadRepository struct {
	SaveFunc          func(ctx context.Context, t *thread.Thread) error
	UpdateFunc        func(ctx context.Context, t *thread.Thread) error
	DeleteFunc        func(ctx context.Context, threadID uint) error
	GetByIDFunc       func(ctx context.Context, threadID uint) (*thread.Thread, error)
	ListFunc          func(ctx context.Context, filter thread.ThreadFilter) ([]*thread.Thread, int64, error)
	GetByTicketIDFunc func(ctx context.Context, ticketID uint) ([]*thread.Thread, error)
}

func (m *mockThreadRepository) Save(ctx context.Context, t *thread.Thread) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return nil
}

func (m *mockThreadRepository) Update(ctx context.Context, t *thread.Thread) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockThreadRepository) Delete(ctx context.Context, threadID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, threadID)
	}
	return nil
}

func (m *mockThreadRepository) GetByID(ctx context.Context, threadID uint) (*thread.Thread, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, threadID)
	}
	return nil, nil
}

func (m *mockThreadRepository) List(ctx context.Context, filter thread.ThreadFilter) ([]*thread.Thread, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockThreadRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*thread.Thread, error) {
	if m.GetByTicketIDFunc != nil {
		return m.GetByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

type mockMessageRepository struct {
	SaveFunc            func(ctx context.Context, message *thread.Message) error
	GetByThreadIDFunc   func(ctx context.Context, threadID uint) ([]*thread.Message, error)
	CountByThreadIDFunc func(ctx context.Context, threadID uint) (int64, error)
}

func (m *mockMessageRepository) Save(ctx context.Context, message *thread.Message) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, message)
	}
	return nil
}

func (m *mockMessageRepository) GetByThreadID(ctx context.Context, threadID uint) ([]*thread.Message, error) {
	if m.GetByThreadIDFunc != nil {
		return m.GetByThreadIDFunc(ctx, threadID)
	}
	return nil, nil
}

func (m *mockMessageRepository) CountByThreadID(ctx context.Context, threadID uint) (int64, error) {
	if m.CountByThreadIDFunc != nil {
		return m.CountByThreadIDFunc(ctx, threadID)
	}
	return 0, nil
}

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

type mockAgentRunner struct {
	ReplyFunc func(ctx context.Context, ag *agent.Agent, history []*thread.Message, userMessage *thread.Message) (string, int, error)
}

func (m *mockAgentRunner) Reply(ctx context.Context, ag *agent.Agent, history []*thread.Message, userMessage *thread.Message) (string, int, error) {
	if m.ReplyFunc != nil {
		return m.ReplyFunc(ctx, ag, history, userMessage)
	}
	return "Happy to help with that.", 42, nil
}

type mockTicketRepository struct {
	GetByIDFunc func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error   { return nil }
func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error { return nil }
func (m *mockTicketRepository) Delete(ctx context.Context, ticketID uint) error    { return nil }

func (m *mockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	return nil, 0, nil
}

func (m *mockTicketRepository) GetUserTickets(ctx context.Context, userID uint, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	return nil, 0, nil
}

func (m *mockTicketRepository) GetAssignedTickets(ctx context.Context, assigneeID uint, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	return nil, 0, nil
}

func (m *mockTicketRepository) GetOverdueTickets(ctx context.Context) ([]*ticket.Ticket, error) {
	return nil, nil
}

func (m *mockTicketRepository) Search(ctx context.Context, query string, filters ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	return nil, 0, nil
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
