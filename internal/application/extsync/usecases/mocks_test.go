package usecases

import (
	"context"
	"time"

	"helpdesk/internal/domain/extsync"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/logger"
)

type mockLinkRepository struct {
	SaveFunc                   func(ctx context.Context, link *extsync.ExternalLink) error
	UpdateFunc                 func(ctx context.Context, link *extsync.ExternalLink) error
	DeleteFunc                 func(ctx context.Context, linkID uint) error
	GetByIDFunc                func(ctx context.Context, linkID uint) (*extsync.ExternalLink, error)
	GetByTicketIDFunc          func(ctx context.Context, ticketID uint) ([]*extsync.ExternalLink, error)
	GetByTicketAndPlatformFunc func(ctx context.Context, ticketID uint, platform extsync.Platform) (*extsync.ExternalLink, error)
	GetByExternalKeyFunc       func(ctx context.Context, platform extsync.Platform, externalKey string) (*extsync.ExternalLink, error)
	ListFunc                   func(ctx context.Context, state extsync.LinkState, limit, offset int) ([]*extsync.ExternalLink, int64, error)
}

func (m *mockLinkRepository) List(ctx context.Context, state extsync.LinkState, limit, offset int) ([]*extsync.ExternalLink, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, state, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockLinkRepository) Save(ctx context.Context, link *extsync.ExternalLink) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, link)
	}
	return nil
}

func (m *mockLinkRepository) Update(ctx context.Context, link *extsync.ExternalLink) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, link)
	}
	return nil
}

func (m *mockLinkRepository) Delete(ctx context.Context, linkID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, linkID)
	}
	return nil
}

func (m *mockLinkRepository) GetByID(ctx context.Context, linkID uint) (*extsync.ExternalLink, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, linkID)
	}
	return nil, nil
}

func (m *mockLinkRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*extsync.ExternalLink, error) {
	if m.GetByTicketIDFunc != nil {
		return m.GetByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockLinkRepository) GetByTicketAndPlatform(ctx context.Context, ticketID uint, platform extsync.Platform) (*extsync.ExternalLink, error) {
	if m.GetByTicketAndPlatformFunc != nil {
		return m.GetByTicketAndPlatformFunc(ctx, ticketID, platform)
	}
	return nil, nil
}

func (m *mockLinkRepository) GetByExternalKey(ctx context.Context, platform extsync.Platform, externalKey string) (*extsync.ExternalLink, error) {
	if m.GetByExternalKeyFunc != nil {
		return m.GetByExternalKeyFunc(ctx, platform, externalKey)
	}
	return nil, nil
}

type mockJobRepository struct {
	SaveFunc                    func(ctx context.Context, job *extsync.SyncJob) error
	UpdateFunc                  func(ctx context.Context, job *extsync.SyncJob) error
	GetByIDFunc                 func(ctx context.Context, jobID uint) (*extsync.SyncJob, error)
	GetDueFunc                  func(ctx context.Context, now time.Time, limit int) ([]*extsync.SyncJob, error)
	ListFunc                    func(ctx context.Context, state extsync.JobState, limit, offset int) ([]*extsync.SyncJob, int64, error)
	GetByLinkIDFunc             func(ctx context.Context, linkID uint) ([]*extsync.SyncJob, error)
	ExistsPendingForCommentFunc func(ctx context.Context, linkID, commentID uint) (bool, error)
}

func (m *mockJobRepository) Save(ctx context.Context, job *extsync.SyncJob) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, job)
	}
	return nil
}

func (m *mockJobRepository) Update(ctx context.Context, job *extsync.SyncJob) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, job)
	}
	return nil
}

func (m *mockJobRepository) GetByID(ctx context.Context, jobID uint) (*extsync.SyncJob, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, jobID)
	}
	return nil, nil
}

func (m *mockJobRepository) GetDue(ctx context.Context, now time.Time, limit int) ([]*extsync.SyncJob, error) {
	if m.GetDueFunc != nil {
		return m.GetDueFunc(ctx, now, limit)
	}
	return nil, nil
}

func (m *mockJobRepository) List(ctx context.Context, state extsync.JobState, limit, offset int) ([]*extsync.SyncJob, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, state, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockJobRepository) GetByLinkID(ctx context.Context, linkID uint) ([]*extsync.SyncJob, error) {
	if m.GetByLinkIDFunc != nil {
		return m.GetByLinkIDFunc(ctx, linkID)
	}
	return nil, nil
}

func (m *mockJobRepository) ExistsPendingForComment(ctx context.Context, linkID, commentID uint) (bool, error) {
	if m.ExistsPendingForCommentFunc != nil {
		return m.ExistsPendingForCommentFunc(ctx, linkID, commentID)
	}
	return false, nil
}

type mockAuditLogRepository struct {
	SaveFunc       func(ctx context.Context, log *extsync.SyncAuditLog) error
	GetByJobIDFunc func(ctx context.Context, jobID uint) ([]*extsync.SyncAuditLog, error)
	ListRecentFunc func(ctx context.Context, platform extsync.Platform, limit int) ([]*extsync.SyncAuditLog, error)
}

func (m *mockAuditLogRepository) Save(ctx context.Context, log *extsync.SyncAuditLog) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, log)
	}
	return nil
}

func (m *mockAuditLogRepository) GetByJobID(ctx context.Context, jobID uint) ([]*extsync.SyncAuditLog, error) {
	if m.GetByJobIDFunc != nil {
		return m.GetByJobIDFunc(ctx, jobID)
	}
	return nil, nil
}

func (m *mockAuditLogRepository) ListRecent(ctx context.Context, platform extsync.Platform, limit int) ([]*extsync.SyncAuditLog, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, platform, limit)
	}
	return nil, nil
}

type mockCommentRepository struct {
	GetByIDFunc func(ctx context.Context, commentID uint) (*ticket.Comment, error)
}

func (m *mockCommentRepository) Save(ctx context.Context, comment *ticket.Comment) error { return nil }
func (m *mockCommentRepository) Delete(ctx context.Context, commentID uint) error        { return nil }

func (m *mockCommentRepository) GetByID(ctx context.Context, commentID uint) (*ticket.Comment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, commentID)
	}
	return nil, nil
}

func (m *mockCommentRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	return nil, nil
}

func (m *mockCommentRepository) GetByExternalID(ctx context.Context, source ticket.CommentSource, externalID string) (*ticket.Comment, error) {
	return nil, nil
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

// mockCommentPoster fakes one external tracker client.
type mockCommentPoster struct {
	platform    string
	PostFunc    func(ctx context.Context, externalKey, body string) error
	postedKeys  []string
	postedBodys []string
}

func (m *mockCommentPoster) Platform() string {
	return m.platform
}

func (m *mockCommentPoster) PostComment(ctx context.Context, externalKey, body string) error {
	m.postedKeys = append(m.postedKeys, externalKey)
	m.postedBodys = append(m.postedBodys, body)
	if m.PostFunc != nil {
		return m.PostFunc(ctx, externalKey, body)
	}
	return nil
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
