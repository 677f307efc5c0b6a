package extsync

import (
	"context"
	"time"
)

type LinkRepository interface {
	Save(ctx context.Context, link *ExternalLink) error
	Update(ctx context.Context, link *ExternalLink) error
	Delete(ctx context.Context, linkID uint) error
	GetByID(ctx context.Context, linkID uint) (*ExternalLink, error)
	GetByTicketID(ctx context.Context, ticketID uint) ([]*ExternalLink, error)
	GetByTicketAndPlatform(ctx context.Context, ticketID uint, platform Platform) (*ExternalLink, error)
	GetByExternalKey(ctx context.Context, platform Platform, externalKey string) (*ExternalLink, error)
	// List returns links newest first, optionally filtered by state, with
	// the total count for pagination.
	List(ctx context.Context, state LinkState, limit, offset int) ([]*ExternalLink, int64, error)
}

type JobRepository interface {
	Save(ctx context.Context, job *SyncJob) error
	Update(ctx context.Context, job *SyncJob) error
	GetByID(ctx context.Context, jobID uint) (*SyncJob, error)
	// GetDue returns pending jobs whose nextRunAt is at or before now,
	// oldest first, capped at limit.
	GetDue(ctx context.Context, now time.Time, limit int) ([]*SyncJob, error)
	// List returns jobs newest first, optionally filtered by state, with
	// the total count for pagination.
	List(ctx context.Context, state JobState, limit, offset int) ([]*SyncJob, int64, error)
	GetByLinkID(ctx context.Context, linkID uint) ([]*SyncJob, error)
	ExistsPendingForComment(ctx context.Context, linkID, commentID uint) (bool, error)
}

type AuditLogRepository interface {
	Save(ctx context.Context, log *SyncAuditLog) error
	GetByJobID(ctx context.Context, jobID uint) ([]*SyncAuditLog, error)
	ListRecent(ctx context.Context, platform Platform, limit int) ([]*SyncAuditLog, error)
}
