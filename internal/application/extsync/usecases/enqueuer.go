package usecases

import (
	"context"

	"helpdesk/internal/domain/extsync"
	"helpdesk/internal/domain/shared/events"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/logger"
)

// CommentSyncEnqueuer listens for new comments and queues one sync job per
// active external link on the ticket.
type CommentSyncEnqueuer struct {
	linkRepo    extsync.LinkRepository
	jobRepo     extsync.JobRepository
	maxAttempts int
	logger      logger.Interface
}

func NewCommentSyncEnqueuer(
	linkRepo extsync.LinkRepository,
	jobRepo extsync.JobRepository,
	maxAttempts int,
	logger logger.Interface,
) *CommentSyncEnqueuer {
	return &CommentSyncEnqueuer{
		linkRepo:    linkRepo,
		jobRepo:     jobRepo,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

func (e *CommentSyncEnqueuer) Register(bus events.Subscriber) {
	bus.Subscribe(ticket.EventCommentAdded, e.HandleCommentAdded)
}

func (e *CommentSyncEnqueuer) HandleCommentAdded(event events.Event) error {
	evt, ok := event.(ticket.CommentAddedEvent)
	if !ok {
		return nil
	}

	// Internal notes stay inside the helpdesk. Comments mirrored in from an
	// external tracker are never pushed back out, or the two systems would
	// echo each other forever.
	if evt.IsInternal {
		return nil
	}
	if evt.Source != string(ticket.SourceHelpdesk) {
		return nil
	}

	ctx := context.Background()
	links, err := e.linkRepo.GetByTicketID(ctx, evt.TicketID)
	if err != nil {
		e.logger.Errorw("failed to load links for comment fan-out",
			"ticket_id", evt.TicketID,
			"comment_id", evt.CommentID,
			"error", err)
		return err
	}

	for _, link := range links {
		if !link.IsActive() {
			continue
		}

		exists, err := e.jobRepo.ExistsPendingForComment(ctx, link.ID(), evt.CommentID)
		if err != nil {
			e.logger.Errorw("failed to check pending job",
				"link_id", link.ID(),
				"comment_id", evt.CommentID,
				"error", err)
			continue
		}
		if exists {
			continue
		}

		job, err := extsync.NewSyncJob(link.ID(), evt.CommentID, e.maxAttempts)
		if err != nil {
			e.logger.Errorw("failed to build sync job",
				"link_id", link.ID(),
				"comment_id", evt.CommentID,
				"error", err)
			continue
		}
		if err := e.jobRepo.Save(ctx, job); err != nil {
			e.logger.Errorw("failed to enqueue sync job",
				"link_id", link.ID(),
				"comment_id", evt.CommentID,
				"error", err)
			continue
		}

		e.logger.Debugw("sync job enqueued",
			"job_id", job.ID(),
			"link_id", link.ID(),
			"comment_id", evt.CommentID,
			"platform", link.Platform().String())
	}

	return nil
}
