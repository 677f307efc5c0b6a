package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"helpdesk/internal/domain/extsync"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	db "helpdesk/internal/shared/db"
)

type ExternalLinkRepository struct {
	db     *gorm.DB
	mapper mappers.ExtSyncMapper
}

func NewExternalLinkRepository(db *gorm.DB) extsync.LinkRepository {
	return &ExternalLinkRepository{
		db:     db,
		mapper: mappers.NewExtSyncMapper(),
	}
}

func (r *ExternalLinkRepository) Save(ctx context.Context, link *extsync.ExternalLink) error {
	model := r.mapper.LinkToModel(link)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save external link: %w", err)
	}

	if err := link.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *ExternalLinkRepository) Update(ctx context.Context, link *extsync.ExternalLink) error {
	model := r.mapper.LinkToModel(link)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.ExternalLinkModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"state":        model.State,
			"last_sync_at": model.LastSyncAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update external link: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("external link not found")
	}

	return nil
}

func (r *ExternalLinkRepository) Delete(ctx context.Context, linkID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.ExternalLinkModel{}, linkID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete external link: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("external link not found")
	}
	return nil
}

func (r *ExternalLinkRepository) GetByID(ctx context.Context, linkID uint) (*extsync.ExternalLink, error) {
	var model models.ExternalLinkModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, linkID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("external link not found")
		}
		return nil, fmt.Errorf("failed to find external link: %w", err)
	}

	return r.mapper.LinkToDomain(&model)
}

func (r *ExternalLinkRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*extsync.ExternalLink, error) {
	var linkModels []models.ExternalLinkModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Find(&linkModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find external links: %w", err)
	}

	links := make([]*extsync.ExternalLink, len(linkModels))
	for i, model := range linkModels {
		l, err := r.mapper.LinkToDomain(&model)
		if err != nil {
			return nil, err
		}
		links[i] = l
	}

	return links, nil
}

func (r *ExternalLinkRepository) GetByTicketAndPlatform(
	ctx context.Context,
	ticketID uint,
	platform extsync.Platform,
) (*extsync.ExternalLink, error) {
	var model models.ExternalLinkModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ? AND platform = ?", ticketID, platform.String()).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("external link not found")
		}
		return nil, fmt.Errorf("failed to find external link: %w", err)
	}

	return r.mapper.LinkToDomain(&model)
}

func (r *ExternalLinkRepository) GetByExternalKey(
	ctx context.Context,
	platform extsync.Platform,
	externalKey string,
) (*extsync.ExternalLink, error) {
	var model models.ExternalLinkModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("platform = ? AND external_key = ?", platform.String(), externalKey).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("external link not found")
		}
		return nil, fmt.Errorf("failed to find external link: %w", err)
	}

	return r.mapper.LinkToDomain(&model)
}

func (r *ExternalLinkRepository) List(
	ctx context.Context,
	state extsync.LinkState,
	limit, offset int,
) ([]*extsync.ExternalLink, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.ExternalLinkModel{})
	if state != "" {
		query = query.Where("state = ?", string(state))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count external links: %w", err)
	}

	var linkModels []models.ExternalLinkModel
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&linkModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list external links: %w", err)
	}

	links := make([]*extsync.ExternalLink, len(linkModels))
	for i, model := range linkModels {
		l, err := r.mapper.LinkToDomain(&model)
		if err != nil {
			return nil, 0, err
		}
		links[i] = l
	}

	return links, total, nil
}

type SyncJobRepository struct {
	db     *gorm.DB
	mapper mappers.ExtSyncMapper
}

func NewSyncJobRepository(db *gorm.DB) extsync.JobRepository {
	return &SyncJobRepository{
		db:     db,
		mapper: mappers.NewExtSyncMapper(),
	}
}

func (r *SyncJobRepository) Save(ctx context.Context, job *extsync.SyncJob) error {
	model := r.mapper.JobToModel(job)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save sync job: %w", err)
	}

	if err := job.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *SyncJobRepository) Update(ctx context.Context, job *extsync.SyncJob) error {
	model := r.mapper.JobToModel(job)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.SyncJobModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"state":       model.State,
			"attempts":    model.Attempts,
			"last_error":  model.LastError,
			"next_run_at": model.NextRunAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update sync job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("sync job not found")
	}

	return nil
}

func (r *SyncJobRepository) GetByID(ctx context.Context, jobID uint) (*extsync.SyncJob, error) {
	var model models.SyncJobModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("sync job not found")
		}
		return nil, fmt.Errorf("failed to find sync job: %w", err)
	}

	return r.mapper.JobToDomain(&model)
}

func (r *SyncJobRepository) GetDue(ctx context.Context, now time.Time, limit int) ([]*extsync.SyncJob, error) {
	if limit <= 0 {
		limit = 20
	}

	var jobModels []models.SyncJobModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("state = ? AND next_run_at <= ?", string(extsync.JobPending), now.UnixMilli()).
		Order("next_run_at ASC").
		Limit(limit).
		Find(&jobModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find due sync jobs: %w", err)
	}

	jobs := make([]*extsync.SyncJob, len(jobModels))
	for i, model := range jobModels {
		j, err := r.mapper.JobToDomain(&model)
		if err != nil {
			return nil, err
		}
		jobs[i] = j
	}

	return jobs, nil
}

func (r *SyncJobRepository) List(
	ctx context.Context,
	state extsync.JobState,
	limit, offset int,
) ([]*extsync.SyncJob, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.SyncJobModel{})
	if state != "" {
		query = query.Where("state = ?", string(state))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sync jobs: %w", err)
	}

	var jobModels []models.SyncJobModel
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&jobModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list sync jobs: %w", err)
	}

	jobs := make([]*extsync.SyncJob, len(jobModels))
	for i, model := range jobModels {
		j, err := r.mapper.JobToDomain(&model)
		if err != nil {
			return nil, 0, err
		}
		jobs[i] = j
	}

	return jobs, total, nil
}

func (r *SyncJobRepository) GetByLinkID(ctx context.Context, linkID uint) ([]*extsync.SyncJob, error) {
	var jobModels []models.SyncJobModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("link_id = ?", linkID).
		Order("created_at ASC").
		Find(&jobModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find sync jobs: %w", err)
	}

	jobs := make([]*extsync.SyncJob, len(jobModels))
	for i, model := range jobModels {
		j, err := r.mapper.JobToDomain(&model)
		if err != nil {
			return nil, err
		}
		jobs[i] = j
	}

	return jobs, nil
}

func (r *SyncJobRepository) ExistsPendingForComment(ctx context.Context, linkID, commentID uint) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Model(&models.SyncJobModel{}).
		Where("link_id = ? AND comment_id = ? AND state = ?", linkID, commentID, string(extsync.JobPending)).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check pending sync job: %w", err)
	}

	return count > 0, nil
}

type SyncAuditLogRepository struct {
	db     *gorm.DB
	mapper mappers.ExtSyncMapper
}

func NewSyncAuditLogRepository(db *gorm.DB) extsync.AuditLogRepository {
	return &SyncAuditLogRepository{
		db:     db,
		mapper: mappers.NewExtSyncMapper(),
	}
}

func (r *SyncAuditLogRepository) Save(ctx context.Context, log *extsync.SyncAuditLog) error {
	model := r.mapper.AuditLogToModel(log)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save sync audit log: %w", err)
	}

	if err := log.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *SyncAuditLogRepository) GetByJobID(ctx context.Context, jobID uint) ([]*extsync.SyncAuditLog, error) {
	var logModels []models.SyncAuditLogModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&logModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find sync audit logs: %w", err)
	}

	logs := make([]*extsync.SyncAuditLog, len(logModels))
	for i, model := range logModels {
		l, err := r.mapper.AuditLogToDomain(&model)
		if err != nil {
			return nil, err
		}
		logs[i] = l
	}

	return logs, nil
}

func (r *SyncAuditLogRepository) ListRecent(
	ctx context.Context,
	platform extsync.Platform,
	limit int,
) ([]*extsync.SyncAuditLog, error) {
	if limit <= 0 {
		limit = 50
	}

	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.SyncAuditLogModel{}).Order("created_at DESC").Limit(limit)

	if platform != "" {
		query = query.Where("platform = ?", platform.String())
	}

	var logModels []models.SyncAuditLogModel
	if err := query.Find(&logModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list sync audit logs: %w", err)
	}

	logs := make([]*extsync.SyncAuditLog, len(logModels))
	for i, model := range logModels {
		l, err := r.mapper.AuditLogToDomain(&model)
		if err != nil {
			return nil, err
		}
		logs[i] = l
	}

	return logs, nil
}
