package usecases

import (
	"context"
	"time"

	"helpdesk/internal/domain/extsync"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/infrastructure/external"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/services/markdown"
)

// SyncWorker drains due sync jobs and delivers comment bodies to the external
// trackers. One worker per process is enough; GetDue hands out jobs oldest
// first and a delivered job never comes back.
type SyncWorker struct {
	jobRepo      extsync.JobRepository
	linkRepo     extsync.LinkRepository
	auditRepo    extsync.AuditLogRepository
	commentRepo  ticket.CommentRepository
	posters      map[extsync.Platform]external.CommentPoster
	renderer     markdown.MarkdownService
	pollInterval time.Duration
	batchSize    int
	logger       logger.Interface
}

func NewSyncWorker(
	jobRepo extsync.JobRepository,
	linkRepo extsync.LinkRepository,
	auditRepo extsync.AuditLogRepository,
	commentRepo ticket.CommentRepository,
	posters []external.CommentPoster,
	renderer markdown.MarkdownService,
	pollInterval time.Duration,
	batchSize int,
	log logger.Interface,
) *SyncWorker {
	if pollInterval <= 0 {
		pollInterval = 30 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 20
	}

	byPlatform := make(map[extsync.Platform]external.CommentPoster, len(posters))
	for _, p := range posters {
		byPlatform[extsync.Platform(p.Platform())] = p
	}

	return &SyncWorker{
		jobRepo:      jobRepo,
		linkRepo:     linkRepo,
		auditRepo:    auditRepo,
		commentRepo:  commentRepo,
		posters:      byPlatform,
		renderer:     renderer,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		logger:       log.Named("syncworker"),
	}
}

// Run polls for due jobs until the context is cancelled.
func (w *SyncWorker) Run(ctx context.Context) {
	w.logger.Infow("sync worker started",
		"poll_interval", w.pollInterval.String(),
		"batch_size", w.batchSize)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Infow("sync worker stopped")
			return
		case <-ticker.C:
			w.ProcessDue(ctx)
		}
	}
}

// ProcessDue handles one batch of due jobs.
func (w *SyncWorker) ProcessDue(ctx context.Context) {
	jobs, err := w.jobRepo.GetDue(ctx, time.Now().UTC(), w.batchSize)
	if err != nil {
		w.logger.Errorw("failed to fetch due jobs", "error", err)
		return
	}

	for _, job := range jobs {
		if ctx.Err() != nil {
			return
		}
		w.processJob(ctx, job)
	}
}

func (w *SyncWorker) processJob(ctx context.Context, job *extsync.SyncJob) {
	link, err := w.linkRepo.GetByID(ctx, job.LinkID())
	if err != nil {
		w.logger.Errorw("failed to load link", "job_id", job.ID(), "link_id", job.LinkID(), "error", err)
		return
	}
	if link == nil {
		w.finishJob(ctx, job, func() error { return job.FailPermanently("link no longer exists") })
		return
	}
	if !link.IsActive() {
		// Paused and broken links keep their jobs queued; archived links
		// will never sync again.
		if link.State() == extsync.LinkArchived {
			w.finishJob(ctx, job, func() error { return job.FailPermanently("link is archived") })
		}
		return
	}

	poster, ok := w.posters[link.Platform()]
	if !ok {
		w.finishJob(ctx, job, func() error {
			return job.FailPermanently("no client configured for " + link.Platform().String())
		})
		return
	}

	comment, err := w.commentRepo.GetByID(ctx, job.CommentID())
	if err != nil {
		w.logger.Errorw("failed to load comment", "job_id", job.ID(), "comment_id", job.CommentID(), "error", err)
		return
	}
	if comment == nil {
		w.finishJob(ctx, job, func() error { return job.FailPermanently("comment no longer exists") })
		return
	}

	body, err := w.renderer.ToHTMLSanitized(comment.Content())
	if err != nil {
		// Deliver the raw markdown rather than dropping the comment.
		w.logger.Warnw("markdown rendering failed", "comment_id", comment.ID(), "error", err)
		body = comment.Content()
	}

	start := time.Now()
	postErr := poster.PostComment(ctx, link.ExternalKey(), body)
	latency := time.Since(start)

	if postErr == nil {
		w.finishJob(ctx, job, job.MarkSucceeded)
		link.MarkSynced()
		if err := w.linkRepo.Update(ctx, link); err != nil {
			w.logger.Errorw("failed to update link", "link_id", link.ID(), "error", err)
		}
		w.audit(ctx, job, link.Platform(), extsync.OutcomeSuccess, latency, "")
		w.logger.Infow("comment synced",
			"job_id", job.ID(),
			"comment_id", job.CommentID(),
			"platform", link.Platform().String(),
			"external_key", link.ExternalKey(),
			"latency_ms", latency.Milliseconds())
		return
	}

	if external.Permanent(postErr) {
		w.finishJob(ctx, job, func() error { return job.FailPermanently(postErr.Error()) })
		link.MarkBroken()
		if err := w.linkRepo.Update(ctx, link); err != nil {
			w.logger.Errorw("failed to update link", "link_id", link.ID(), "error", err)
		}
		w.audit(ctx, job, link.Platform(), extsync.OutcomeRejected, latency, postErr.Error())
		w.logger.Warnw("external tracker rejected comment",
			"job_id", job.ID(),
			"platform", link.Platform().String(),
			"error", postErr)
		return
	}

	w.finishJob(ctx, job, func() error { return job.RecordFailure(postErr.Error()) })
	if job.State() == extsync.JobFailed {
		link.MarkBroken()
		if err := w.linkRepo.Update(ctx, link); err != nil {
			w.logger.Errorw("failed to update link", "link_id", link.ID(), "error", err)
		}
	}
	w.audit(ctx, job, link.Platform(), extsync.OutcomeFailure, latency, postErr.Error())
	w.logger.Warnw("comment sync attempt failed",
		"job_id", job.ID(),
		"attempts", job.Attempts(),
		"max_attempts", job.MaxAttempts(),
		"platform", link.Platform().String(),
		"error", postErr)
}

func (w *SyncWorker) finishJob(ctx context.Context, job *extsync.SyncJob, transition func() error) {
	if err := transition(); err != nil {
		w.logger.Errorw("invalid job transition", "job_id", job.ID(), "error", err)
		return
	}
	if err := w.jobRepo.Update(ctx, job); err != nil {
		w.logger.Errorw("failed to update job", "job_id", job.ID(), "error", err)
	}
}

func (w *SyncWorker) audit(ctx context.Context, job *extsync.SyncJob, platform extsync.Platform, outcome extsync.Outcome, latency time.Duration, detail string) {
	entry, err := extsync.NewSyncAuditLog(job.ID(), platform, outcome, latency, detail)
	if err != nil {
		w.logger.Warnw("failed to build audit entry", "job_id", job.ID(), "error", err)
		return
	}
	if err := w.auditRepo.Save(ctx, entry); err != nil {
		w.logger.Warnw("failed to save audit entry", "job_id", job.ID(), "error", err)
	}
}
