package models

import (
	"helpdesk/internal/shared/constants"
)

type ExternalLinkModel struct {
	ID          uint   `gorm:"primaryKey"`
	TicketID    uint   `gorm:"not null;uniqueIndex:idx_link_ticket_platform"`
	Platform    string `gorm:"size:20;not null;uniqueIndex:idx_link_ticket_platform"`
	ExternalKey string `gorm:"size:100;not null;index"`
	State       string `gorm:"size:20;not null;index"`
	LastSyncAt  *int64
	CreatedAt   int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt   int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (ExternalLinkModel) TableName() string {
	return constants.TableExternalLinks
}

type SyncJobModel struct {
	ID          uint   `gorm:"primaryKey"`
	LinkID      uint   `gorm:"not null;index"`
	CommentID   uint   `gorm:"not null;index"`
	State       string `gorm:"size:20;not null;index:idx_job_state_next"`
	Attempts    int    `gorm:"not null;default:0"`
	MaxAttempts int    `gorm:"not null;default:5"`
	LastError   string `gorm:"type:text"`
	NextRunAt   int64  `gorm:"not null;index:idx_job_state_next"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt   int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (SyncJobModel) TableName() string {
	return constants.TableSyncJobs
}

type SyncAuditLogModel struct {
	ID        uint   `gorm:"primaryKey"`
	JobID     uint   `gorm:"not null;index"`
	Platform  string `gorm:"size:20;not null;index"`
	Outcome   string `gorm:"size:20;not null"`
	LatencyMs int64  `gorm:"not null"`
	Detail    string `gorm:"type:text"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (SyncAuditLogModel) TableName() string {
	return constants.TableSyncAuditLogs
}
