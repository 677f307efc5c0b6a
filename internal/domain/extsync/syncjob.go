package extsync

import (
	"fmt"
	"time"
)

// JobState is the lifecycle of an outbound comment sync job.
type JobState string

const (
	JobPending   JobState = "pending"
	JobSucceeded JobState = "succeeded"
	JobFailed    JobState = "failed"
)

func (s JobState) IsValid() bool {
	switch s {
	case JobPending, JobSucceeded, JobFailed:
		return true
	}
	return false
}

// SyncJob queues one comment for delivery to one external link. The worker
// retries pending jobs until they succeed or exhaust maxAttempts, after which
// the job fails permanently.
type SyncJob struct {
	id          uint
	linkID      uint
	commentID   uint
	state       JobState
	attempts    int
	maxAttempts int
	lastError   string
	nextRunAt   time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

func NewSyncJob(linkID, commentID uint, maxAttempts int) (*SyncJob, error) {
	if linkID == 0 {
		return nil, fmt.Errorf("link ID is required")
	}
	if commentID == 0 {
		return nil, fmt.Errorf("comment ID is required")
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}

	now := time.Now().UTC()
	return &SyncJob{
		linkID:      linkID,
		commentID:   commentID,
		state:       JobPending,
		maxAttempts: maxAttempts,
		nextRunAt:   now,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructSyncJob(
	id uint,
	linkID, commentID uint,
	state JobState,
	attempts, maxAttempts int,
	lastError string,
	nextRunAt time.Time,
	createdAt, updatedAt time.Time,
) (*SyncJob, error) {
	if id == 0 {
		return nil, fmt.Errorf("job ID cannot be zero")
	}
	if !state.IsValid() {
		return nil, fmt.Errorf("invalid job state: %s", state)
	}

	return &SyncJob{
		id:          id,
		linkID:      linkID,
		commentID:   commentID,
		state:       state,
		attempts:    attempts,
		maxAttempts: maxAttempts,
		lastError:   lastError,
		nextRunAt:   nextRunAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (j *SyncJob) ID() uint {
	return j.id
}

func (j *SyncJob) LinkID() uint {
	return j.linkID
}

func (j *SyncJob) CommentID() uint {
	return j.commentID
}

func (j *SyncJob) State() JobState {
	return j.state
}

func (j *SyncJob) Attempts() int {
	return j.attempts
}

func (j *SyncJob) MaxAttempts() int {
	return j.maxAttempts
}

func (j *SyncJob) LastError() string {
	return j.lastError
}

func (j *SyncJob) NextRunAt() time.Time {
	return j.nextRunAt
}

func (j *SyncJob) CreatedAt() time.Time {
	return j.createdAt
}

func (j *SyncJob) UpdatedAt() time.Time {
	return j.updatedAt
}

func (j *SyncJob) SetID(id uint) error {
	if j.id != 0 {
		return fmt.Errorf("job ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("job ID cannot be zero")
	}
	j.id = id
	return nil
}

func (j *SyncJob) IsPending() bool {
	return j.state == JobPending
}

// IsDue reports whether the worker should pick the job up now.
func (j *SyncJob) IsDue(now time.Time) bool {
	return j.state == JobPending && !now.Before(j.nextRunAt)
}

// MarkSucceeded finalizes the job after a successful delivery.
func (j *SyncJob) MarkSucceeded() error {
	if j.state != JobPending {
		return fmt.Errorf("cannot succeed job in state %s", j.state)
	}

	j.state = JobSucceeded
	j.attempts++
	j.lastError = ""
	j.updatedAt = time.Now().UTC()
	return nil
}

// RecordFailure records a failed attempt. The job backs off exponentially and
// fails permanently once attempts reach maxAttempts.
func (j *SyncJob) RecordFailure(cause string) error {
	if j.state != JobPending {
		return fmt.Errorf("cannot fail job in state %s", j.state)
	}
	if cause == "" {
		cause = "unknown error"
	}

	now := time.Now().UTC()
	j.attempts++
	j.lastError = cause
	j.updatedAt = now

	if j.attempts >= j.maxAttempts {
		j.state = JobFailed
		return nil
	}

	// 1m, 2m, 4m, 8m, ... capped at one hour.
	backoff := time.Minute << (j.attempts - 1)
	if backoff > time.Hour {
		backoff = time.Hour
	}
	j.nextRunAt = now.Add(backoff)
	return nil
}

// FailPermanently ends the job after an error that a retry can never fix,
// such as a rejected payload or a deleted external issue.
func (j *SyncJob) FailPermanently(cause string) error {
	if j.state != JobPending {
		return fmt.Errorf("cannot fail job in state %s", j.state)
	}
	if cause == "" {
		cause = "unknown error"
	}

	j.attempts++
	j.lastError = cause
	j.state = JobFailed
	j.updatedAt = time.Now().UTC()
	return nil
}

// Retry resets a permanently failed job so the worker picks it up again.
func (j *SyncJob) Retry() error {
	if j.state != JobFailed {
		return fmt.Errorf("only failed jobs can be retried")
	}

	now := time.Now().UTC()
	j.state = JobPending
	j.attempts = 0
	j.lastError = ""
	j.nextRunAt = now
	j.updatedAt = now
	return nil
}
