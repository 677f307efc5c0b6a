package mcp

import (
	"context"
	"time"

	"helpdesk/internal/application/ticket/dto"
	ticketuc "helpdesk/internal/application/ticket/usecases"
	threaddto "helpdesk/internal/application/thread/dto"
	threaduc "helpdesk/internal/application/thread/usecases"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/infrastructure/ratelimit"
	"helpdesk/internal/shared/logger"
)

type mockUserRepository struct {
	CreateFunc        func(ctx context.Context, u *user.User) error
	GetByIDFunc       func(ctx context.Context, id uint) (*user.User, error)
	GetByIDsFunc      func(ctx context.Context, ids []uint) ([]*user.User, error)
	GetByUUIDFunc     func(ctx context.Context, uuid string) (*user.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*user.User, error)
	UpdateFunc        func(ctx context.Context, u *user.User) error
	DeleteFunc        func(ctx context.Context, id uint) error
	ListFunc          func(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByUUID(ctx context.Context, uuid string) (*user.User, error) {
	if m.GetByUUIDFunc != nil {
		return m.GetByUUIDFunc(ctx, uuid)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockUserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

type mockSessionRepository struct {
	CreateFunc                func(session *user.Session) error
	GetByIDFunc               func(id string) (*user.Session, error)
	GetByUserIDFunc           func(userID uint) ([]*user.Session, error)
	GetByRefreshTokenHashFunc func(hash string) (*user.Session, error)
	UpdateFunc                func(session *user.Session) error
	DeleteFunc                func(id string) error
	DeleteByUserIDFunc        func(userID uint) error
	DeleteExpiredFunc         func() error
}

func (m *mockSessionRepository) Create(session *user.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(session)
	}
	return nil
}

func (m *mockSessionRepository) GetByID(id string) (*user.Session, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(id)
	}
	return nil, nil
}

func (m *mockSessionRepository) GetByUserID(userID uint) ([]*user.Session, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(userID)
	}
	return nil, nil
}

func (m *mockSessionRepository) GetByRefreshTokenHash(hash string) (*user.Session, error) {
	if m.GetByRefreshTokenHashFunc != nil {
		return m.GetByRefreshTokenHashFunc(hash)
	}
	return nil, nil
}

func (m *mockSessionRepository) Update(session *user.Session) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(session)
	}
	return nil
}

func (m *mockSessionRepository) Delete(id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

func (m *mockSessionRepository) DeleteByUserID(userID uint) error {
	if m.DeleteByUserIDFunc != nil {
		return m.DeleteByUserIDFunc(userID)
	}
	return nil
}

func (m *mockSessionRepository) DeleteExpired() error {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc()
	}
	return nil
}

type mockChecker struct {
	EnforceFunc    func(subject, resource, action string) (bool, error)
	CanUseToolFunc func(role, tool string) (bool, error)
}

func (m *mockChecker) Enforce(subject, resource, action string) (bool, error) {
	if m.EnforceFunc != nil {
		return m.EnforceFunc(subject, resource, action)
	}
	return true, nil
}

func (m *mockChecker) CanUseTool(role, tool string) (bool, error) {
	if m.CanUseToolFunc != nil {
		return m.CanUseToolFunc(role, tool)
	}
	return true, nil
}

type mockRateLimiter struct {
	AllowFunc func(key string, config ratelimit.RateLimitConfig) (bool, error)
	keys      []string
}

func (m *mockRateLimiter) Allow(key string, config ratelimit.RateLimitConfig) (bool, error) {
	m.keys = append(m.keys, key)
	if m.AllowFunc != nil {
		return m.AllowFunc(key, config)
	}
	return true, nil
}

func (m *mockRateLimiter) GetRemaining(key string, window time.Duration) (int64, error) {
	return 0, nil
}

func (m *mockRateLimiter) Reset(key string) error {
	return nil
}

type mockCreateTicket struct {
	ExecuteFunc func(ctx context.Context, cmd ticketuc.CreateTicketCommand) (*ticketuc.CreateTicketResult, error)
}

func (m *mockCreateTicket) Execute(ctx context.Context, cmd ticketuc.CreateTicketCommand) (*ticketuc.CreateTicketResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &ticketuc.CreateTicketResult{}, nil
}

type mockGetTicket struct {
	ExecuteFunc func(ctx context.Context, query ticketuc.GetTicketQuery) (*dto.TicketDTO, error)
}

func (m *mockGetTicket) Execute(ctx context.Context, query ticketuc.GetTicketQuery) (*dto.TicketDTO, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, query)
	}
	return &dto.TicketDTO{}, nil
}

type mockListTickets struct {
	ExecuteFunc func(ctx context.Context, query ticketuc.ListTicketsQuery) (*ticketuc.ListTicketsResult, error)
}

func (m *mockListTickets) Execute(ctx context.Context, query ticketuc.ListTicketsQuery) (*ticketuc.ListTicketsResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, query)
	}
	return &ticketuc.ListTicketsResult{}, nil
}

type mockSearchTickets struct {
	ExecuteFunc func(ctx context.Context, query ticketuc.SearchTicketsQuery) (*ticketuc.ListTicketsResult, error)
}

func (m *mockSearchTickets) Execute(ctx context.Context, query ticketuc.SearchTicketsQuery) (*ticketuc.ListTicketsResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, query)
	}
	return &ticketuc.ListTicketsResult{}, nil
}

type mockAddComment struct {
	ExecuteFunc func(ctx context.Context, cmd ticketuc.AddCommentCommand) (*ticketuc.AddCommentResult, error)
}

func (m *mockAddComment) Execute(ctx context.Context, cmd ticketuc.AddCommentCommand) (*ticketuc.AddCommentResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &ticketuc.AddCommentResult{}, nil
}

type mockChangeStatus struct {
	ExecuteFunc func(ctx context.Context, cmd ticketuc.ChangeStatusCommand) (*ticketuc.ChangeStatusResult, error)
}

func (m *mockChangeStatus) Execute(ctx context.Context, cmd ticketuc.ChangeStatusCommand) (*ticketuc.ChangeStatusResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &ticketuc.ChangeStatusResult{}, nil
}

type mockListThreads struct {
	ExecuteFunc func(ctx context.Context, query threaduc.ListThreadsQuery) (*threaduc.ListThreadsResult, error)
}

func (m *mockListThreads) Execute(ctx context.Context, query threaduc.ListThreadsQuery) (*threaduc.ListThreadsResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, query)
	}
	return &threaduc.ListThreadsResult{}, nil
}

type mockGetThread struct {
	ExecuteFunc func(ctx context.Context, query threaduc.GetThreadQuery) (*threaddto.ThreadDTO, error)
}

func (m *mockGetThread) Execute(ctx context.Context, query threaduc.GetThreadQuery) (*threaddto.ThreadDTO, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, query)
	}
	return &threaddto.ThreadDTO{}, nil
}

type mockPostMessage struct {
	ExecuteFunc func(ctx context.Context, cmd threaduc.PostMessageCommand) (*threaduc.PostMessageResult, error)
}

func (m *mockPostMessage) Execute(ctx context.Context, cmd threaduc.PostMessageCommand) (*threaduc.PostMessageResult, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, cmd)
	}
	return &threaduc.PostMessageResult{}, nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)        {}
func (m *mockLogger) Info(msg string, args ...any)         {}
func (m *mockLogger) Warn(msg string, args ...any)         {}
func (m *mockLogger) Error(msg string, args ...any)        {}
func (m *mockLogger) Fatal(msg string, args ...any)        {}
func (m *mockLogger) Debugw(msg string, kv ...interface{}) {}
func (m *mockLogger) Infow(msg string, kv ...interface{})  {}
func (m *mockLogger) Warnw(msg string, kv ...interface{})  {}
func (m *mockLogger) Errorw(msg string, kv ...interface{}) {}
func (m *mockLogger) Fatalw(msg string, kv ...interface{}) {}
func (m *mockLogger) With(args ...any) logger.Interface    { return m }
func (m *mockLogger) Named(name string) logger.Interface   { return m }
