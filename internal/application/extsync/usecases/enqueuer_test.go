package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/extsync"
	"helpdesk/internal/domain/ticket"
)

func reconstructLink(t *testing.T, linkID, ticketID uint, platform extsync.Platform, state extsync.LinkState) *extsync.ExternalLink {
	t.Helper()

	link, err := extsync.ReconstructExternalLink(
		linkID,
		ticketID,
		platform,
		"PROJ-123",
		state,
		nil,
		time.Now().UTC().Add(-time.Hour),
		time.Now().UTC().Add(-time.Hour),
	)
	require.NoError(t, err)
	return link
}

func commentEvent(source string, isInternal bool) ticket.CommentAddedEvent {
	return ticket.NewCommentAddedEvent(1, 100, 10, isInternal, source, time.Now().UTC())
}

func TestCommentSyncEnqueuer_EnqueuesPerActiveLink(t *testing.T) {
	jiraLink := reconstructLink(t, 1, 1, extsync.PlatformJira, extsync.LinkActive)
	snowLink := reconstructLink(t, 2, 1, extsync.PlatformServiceNow, extsync.LinkActive)
	pausedLink := reconstructLink(t, 3, 1, extsync.PlatformJira, extsync.LinkPaused)

	mockLinks := &mockLinkRepository{
		GetByTicketIDFunc: func(ctx context.Context, ticketID uint) ([]*extsync.ExternalLink, error) {
			return []*extsync.ExternalLink{jiraLink, snowLink, pausedLink}, nil
		},
	}

	var saved []*extsync.SyncJob
	mockJobs := &mockJobRepository{
		SaveFunc: func(ctx context.Context, job *extsync.SyncJob) error {
			saved = append(saved, job)
			return job.SetID(uint(len(saved)))
		},
	}

	enqueuer := NewCommentSyncEnqueuer(mockLinks, mockJobs, 5, &mockLogger{})
	require.NoError(t, enqueuer.HandleCommentAdded(commentEvent("helpdesk", false)))

	require.Len(t, saved, 2)
	assert.Equal(t, uint(1), saved[0].LinkID())
	assert.Equal(t, uint(2), saved[1].LinkID())
	assert.Equal(t, uint(100), saved[0].CommentID())
	assert.Equal(t, 5, saved[0].MaxAttempts())
}

func TestCommentSyncEnqueuer_SkipsInternalComments(t *testing.T) {
	mockLinks := &mockLinkRepository{
		GetByTicketIDFunc: func(ctx context.Context, ticketID uint) ([]*extsync.ExternalLink, error) {
			t.Fatal("internal comments should not reach the link lookup")
			return nil, nil
		},
	}

	enqueuer := NewCommentSyncEnqueuer(mockLinks, &mockJobRepository{}, 5, &mockLogger{})
	require.NoError(t, enqueuer.HandleCommentAdded(commentEvent("helpdesk", true)))
}

func TestCommentSyncEnqueuer_SkipsMirroredComments(t *testing.T) {
	var lookedUp bool
	mockLinks := &mockLinkRepository{
		GetByTicketIDFunc: func(ctx context.Context, ticketID uint) ([]*extsync.ExternalLink, error) {
			lookedUp = true
			return nil, nil
		},
	}

	enqueuer := NewCommentSyncEnqueuer(mockLinks, &mockJobRepository{}, 5, &mockLogger{})
	require.NoError(t, enqueuer.HandleCommentAdded(commentEvent("jira", false)))
	require.NoError(t, enqueuer.HandleCommentAdded(commentEvent("servicenow", false)))
	assert.False(t, lookedUp)
}

func TestCommentSyncEnqueuer_SkipsDuplicatePendingJobs(t *testing.T) {
	jiraLink := reconstructLink(t, 1, 1, extsync.PlatformJira, extsync.LinkActive)

	mockLinks := &mockLinkRepository{
		GetByTicketIDFunc: func(ctx context.Context, ticketID uint) ([]*extsync.ExternalLink, error) {
			return []*extsync.ExternalLink{jiraLink}, nil
		},
	}
	mockJobs := &mockJobRepository{
		ExistsPendingForCommentFunc: func(ctx context.Context, linkID, commentID uint) (bool, error) {
			return true, nil
		},
		SaveFunc: func(ctx context.Context, job *extsync.SyncJob) error {
			t.Fatal("duplicate job should not be saved")
			return nil
		},
	}

	enqueuer := NewCommentSyncEnqueuer(mockLinks, mockJobs, 5, &mockLogger{})
	require.NoError(t, enqueuer.HandleCommentAdded(commentEvent("helpdesk", false)))
}
