package dto

import (
	"time"

	"helpdesk/internal/domain/extsync"
)

type ExternalLinkDTO struct {
	ID          uint       `json:"id"`
	TicketID    uint       `json:"ticket_id"`
	Platform    string     `json:"platform"`
	ExternalKey string     `json:"external_key"`
	State       string     `json:"state"`
	LastSyncAt  *time.Time `json:"last_sync_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type SyncJobDTO struct {
	ID          uint      `json:"id"`
	LinkID      uint      `json:"link_id"`
	CommentID   uint      `json:"comment_id"`
	State       string    `json:"state"`
	Attempts    int       `json:"attempts"`
	MaxAttempts int       `json:"max_attempts"`
	LastError   string    `json:"last_error,omitempty"`
	NextRunAt   time.Time `json:"next_run_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToExternalLinkDTO(l *extsync.ExternalLink) *ExternalLinkDTO {
	if l == nil {
		return nil
	}
	return &ExternalLinkDTO{
		ID:          l.ID(),
		TicketID:    l.TicketID(),
		Platform:    l.Platform().String(),
		ExternalKey: l.ExternalKey(),
		State:       string(l.State()),
		LastSyncAt:  l.LastSyncAt(),
		CreatedAt:   l.CreatedAt(),
		UpdatedAt:   l.UpdatedAt(),
	}
}

func ToExternalLinkDTOs(links []*extsync.ExternalLink) []*ExternalLinkDTO {
	dtos := make([]*ExternalLinkDTO, 0, len(links))
	for _, l := range links {
		dtos = append(dtos, ToExternalLinkDTO(l))
	}
	return dtos
}

func ToSyncJobDTO(j *extsync.SyncJob) *SyncJobDTO {
	if j == nil {
		return nil
	}
	return &SyncJobDTO{
		ID:          j.ID(),
		LinkID:      j.LinkID(),
		CommentID:   j.CommentID(),
		State:       string(j.State()),
		Attempts:    j.Attempts(),
		MaxAttempts: j.MaxAttempts(),
		LastError:   j.LastError(),
		NextRunAt:   j.NextRunAt(),
		CreatedAt:   j.CreatedAt(),
	}
}
