package mappers

import (
	"time"

	"helpdesk/internal/domain/extsync"
	"helpdesk/internal/infrastructure/persistence/models"
)

// ExtSyncMapper handles the conversion between external sync domain entities and persistence models.
type ExtSyncMapper interface {
	LinkToModel(l *extsync.ExternalLink) *models.ExternalLinkModel
	LinkToDomain(model *models.ExternalLinkModel) (*extsync.ExternalLink, error)
	JobToModel(j *extsync.SyncJob) *models.SyncJobModel
	JobToDomain(model *models.SyncJobModel) (*extsync.SyncJob, error)
	AuditLogToModel(a *extsync.SyncAuditLog) *models.SyncAuditLogModel
	AuditLogToDomain(model *models.SyncAuditLogModel) (*extsync.SyncAuditLog, error)
}

type ExtSyncMapperImpl struct{}

func NewExtSyncMapper() ExtSyncMapper {
	return &ExtSyncMapperImpl{}
}

func (m *ExtSyncMapperImpl) LinkToModel(l *extsync.ExternalLink) *models.ExternalLinkModel {
	return &models.ExternalLinkModel{
		ID:          l.ID(),
		TicketID:    l.TicketID(),
		Platform:    l.Platform().String(),
		ExternalKey: l.ExternalKey(),
		State:       string(l.State()),
		LastSyncAt:  timePtrToMillis(l.LastSyncAt()),
		CreatedAt:   l.CreatedAt().UnixMilli(),
		UpdatedAt:   l.UpdatedAt().UnixMilli(),
	}
}

func (m *ExtSyncMapperImpl) LinkToDomain(model *models.ExternalLinkModel) (*extsync.ExternalLink, error) {
	return extsync.ReconstructExternalLink(
		model.ID,
		model.TicketID,
		extsync.Platform(model.Platform),
		model.ExternalKey,
		extsync.LinkState(model.State),
		millisPtrToTime(model.LastSyncAt),
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}

func (m *ExtSyncMapperImpl) JobToModel(j *extsync.SyncJob) *models.SyncJobModel {
	return &models.SyncJobModel{
		ID:          j.ID(),
		LinkID:      j.LinkID(),
		CommentID:   j.CommentID(),
		State:       string(j.State()),
		Attempts:    j.Attempts(),
		MaxAttempts: j.MaxAttempts(),
		LastError:   j.LastError(),
		NextRunAt:   j.NextRunAt().UnixMilli(),
		CreatedAt:   j.CreatedAt().UnixMilli(),
		UpdatedAt:   j.UpdatedAt().UnixMilli(),
	}
}

func (m *ExtSyncMapperImpl) JobToDomain(model *models.SyncJobModel) (*extsync.SyncJob, error) {
	return extsync.ReconstructSyncJob(
		model.ID,
		model.LinkID,
		model.CommentID,
		extsync.JobState(model.State),
		model.Attempts,
		model.MaxAttempts,
		model.LastError,
		millisToTime(model.NextRunAt),
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}

func (m *ExtSyncMapperImpl) AuditLogToModel(a *extsync.SyncAuditLog) *models.SyncAuditLogModel {
	return &models.SyncAuditLogModel{
		ID:        a.ID(),
		JobID:     a.JobID(),
		Platform:  a.Platform().String(),
		Outcome:   string(a.Outcome()),
		LatencyMs: a.Latency().Milliseconds(),
		Detail:    a.Detail(),
		CreatedAt: a.CreatedAt().UnixMilli(),
	}
}

func (m *ExtSyncMapperImpl) AuditLogToDomain(model *models.SyncAuditLogModel) (*extsync.SyncAuditLog, error) {
	return extsync.ReconstructSyncAuditLog(
		model.ID,
		model.JobID,
		extsync.Platform(model.Platform),
		extsync.Outcome(model.Outcome),
		time.Duration(model.LatencyMs)*time.Millisecond,
		model.Detail,
		millisToTime(model.CreatedAt),
	)
}
