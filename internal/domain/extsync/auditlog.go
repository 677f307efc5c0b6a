package extsync

import (
	"fmt"
	"time"
)

// Outcome is the result of one outbound call to an external tracker.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailure  Outcome = "failure"
	OutcomeRejected Outcome = "rejected"
)

func (o Outcome) IsValid() bool {
	switch o {
	case OutcomeSuccess, OutcomeFailure, OutcomeRejected:
		return true
	}
	return false
}

// SyncAuditLog records every outbound sync attempt for operational review.
// It is append only.
type SyncAuditLog struct {
	id        uint
	jobID     uint
	platform  Platform
	outcome   Outcome
	latency   time.Duration
	detail    string
	createdAt time.Time
}

func NewSyncAuditLog(jobID uint, platform Platform, outcome Outcome, latency time.Duration, detail string) (*SyncAuditLog, error) {
	if jobID == 0 {
		return nil, fmt.Errorf("job ID is required")
	}
	if !platform.IsValid() {
		return nil, fmt.Errorf("invalid platform: %s", platform)
	}
	if !outcome.IsValid() {
		return nil, fmt.Errorf("invalid outcome: %s", outcome)
	}
	if latency < 0 {
		return nil, fmt.Errorf("latency cannot be negative")
	}

	return &SyncAuditLog{
		jobID:     jobID,
		platform:  platform,
		outcome:   outcome,
		latency:   latency,
		detail:    detail,
		createdAt: time.Now().UTC(),
	}, nil
}

func ReconstructSyncAuditLog(
	id uint,
	jobID uint,
	platform Platform,
	outcome Outcome,
	latency time.Duration,
	detail string,
	createdAt time.Time,
) (*SyncAuditLog, error) {
	if id == 0 {
		return nil, fmt.Errorf("audit log ID cannot be zero")
	}

	return &SyncAuditLog{
		id:        id,
		jobID:     jobID,
		platform:  platform,
		outcome:   outcome,
		latency:   latency,
		detail:    detail,
		createdAt: createdAt,
	}, nil
}

func (a *SyncAuditLog) ID() uint {
	return a.id
}

func (a *SyncAuditLog) JobID() uint {
	return a.jobID
}

func (a *SyncAuditLog) Platform() Platform {
	return a.platform
}

func (a *SyncAuditLog) Outcome() Outcome {
	return a.outcome
}

func (a *SyncAuditLog) Latency() time.Duration {
	return a.latency
}

func (a *SyncAuditLog) Detail() string {
	return a.detail
}

func (a *SyncAuditLog) CreatedAt() time.Time {
	return a.createdAt
}

func (a *SyncAuditLog) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("audit log ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("audit log ID cannot be zero")
	}
	a.id = id
	return nil
}
