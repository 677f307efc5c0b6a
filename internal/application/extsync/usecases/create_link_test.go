package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/extsync"
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
)

func reconstructTicket(t *testing.T, ticketID uint) *ticket.Ticket {
	t.Helper()

	tkt, err := ticket.ReconstructTicket(
		ticketID,
		"TKT-20260101-0001",
		"Test ticket",
		"Test description",
		vo.CategoryTechnical,
		vo.PriorityMedium,
		vo.StatusOpen,
		10,
		nil,
		[]string{},
		nil,
		nil,
		nil,
		nil,
		1,
		time.Now().UTC().Add(-time.Hour),
		time.Now().UTC().Add(-time.Hour),
		nil,
	)
	require.NoError(t, err)
	return tkt
}

func TestCreateLinkUseCase_Execute_Success(t *testing.T) {
	existingTicket := reconstructTicket(t, 1)

	mockTicketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return existingTicket, nil
		},
	}

	var saved *extsync.ExternalLink
	mockLinks := &mockLinkRepository{
		SaveFunc: func(ctx context.Context, link *extsync.ExternalLink) error {
			if err := link.SetID(1); err != nil {
				return err
			}
			saved = link
			return nil
		},
	}

	useCase := NewCreateLinkUseCase(mockLinks, mockTicketRepo, &mockLogger{})
	result, err := useCase.Execute(context.Background(), CreateLinkCommand{
		TicketID:    1,
		Platform:    "jira",
		ExternalKey: "PROJ-123",
		UserID:      88,
		Role:        "support_agent",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "jira", result.Platform)
	assert.Equal(t, "PROJ-123", result.ExternalKey)
	assert.Equal(t, "active", result.State)

	require.NotNil(t, saved)
	assert.True(t, saved.IsActive())
}

func TestCreateLinkUseCase_Execute_CustomerForbidden(t *testing.T) {
	useCase := NewCreateLinkUseCase(&mockLinkRepository{}, &mockTicketRepository{}, &mockLogger{})
	_, err := useCase.Execute(context.Background(), CreateLinkCommand{
		TicketID:    1,
		Platform:    "jira",
		ExternalKey: "PROJ-123",
		UserID:      10,
		Role:        "customer",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "support staff")
}

func TestCreateLinkUseCase_Execute_OneLinkPerPlatform(t *testing.T) {
	existingTicket := reconstructTicket(t, 1)
	existingLink := reconstructLink(t, 1, 1, extsync.PlatformJira, extsync.LinkActive)

	mockTicketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return existingTicket, nil
		},
	}
	mockLinks := &mockLinkRepository{
		GetByTicketAndPlatformFunc: func(ctx context.Context, ticketID uint, platform extsync.Platform) (*extsync.ExternalLink, error) {
			return existingLink, nil
		},
	}

	useCase := NewCreateLinkUseCase(mockLinks, mockTicketRepo, &mockLogger{})
	_, err := useCase.Execute(context.Background(), CreateLinkCommand{
		TicketID:    1,
		Platform:    "jira",
		ExternalKey: "PROJ-456",
		UserID:      88,
		Role:        "support_agent",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already linked")
}

func TestCreateLinkUseCase_Execute_UnknownPlatform(t *testing.T) {
	useCase := NewCreateLinkUseCase(&mockLinkRepository{}, &mockTicketRepository{}, &mockLogger{})
	_, err := useCase.Execute(context.Background(), CreateLinkCommand{
		TicketID:    1,
		Platform:    "github",
		ExternalKey: "org/repo#1",
		UserID:      88,
		Role:        "admin",
	})

	require.Error(t, err)
}

func TestSetLinkStateUseCase_Execute(t *testing.T) {
	link := reconstructLink(t, 1, 1, extsync.PlatformJira, extsync.LinkActive)

	mockLinks := &mockLinkRepository{
		GetByIDFunc: func(ctx context.Context, linkID uint) (*extsync.ExternalLink, error) {
			return link, nil
		},
	}

	useCase := NewSetLinkStateUseCase(mockLinks, &mockLogger{})

	result, err := useCase.Execute(context.Background(), SetLinkStateCommand{
		LinkID: 1, Action: ActionPause, UserID: 88, Role: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "paused", result.State)

	result, err = useCase.Execute(context.Background(), SetLinkStateCommand{
		LinkID: 1, Action: ActionResume, UserID: 88, Role: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "active", result.State)

	result, err = useCase.Execute(context.Background(), SetLinkStateCommand{
		LinkID: 1, Action: ActionArchive, UserID: 88, Role: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "archived", result.State)

	_, err = useCase.Execute(context.Background(), SetLinkStateCommand{
		LinkID: 1, Action: "explode", UserID: 88, Role: "admin",
	})
	require.Error(t, err)
}

func TestRetryJobUseCase_Execute(t *testing.T) {
	now := time.Now().UTC()
	failedJob, err := extsync.ReconstructSyncJob(
		5, 1, 100,
		extsync.JobFailed,
		5, 5,
		"gateway timeout",
		now.Add(-time.Hour),
		now.Add(-2*time.Hour),
		now.Add(-time.Hour),
	)
	require.NoError(t, err)

	mockJobs := &mockJobRepository{
		GetByIDFunc: func(ctx context.Context, jobID uint) (*extsync.SyncJob, error) {
			return failedJob, nil
		},
	}

	useCase := NewRetryJobUseCase(mockJobs, &mockLogger{})
	result, err := useCase.Execute(context.Background(), RetryJobCommand{
		JobID:  5,
		UserID: 88,
		Role:   "support_agent",
	})

	require.NoError(t, err)
	assert.Equal(t, "pending", result.State)
	assert.Equal(t, 0, result.Attempts)

	// A pending job cannot be retried again.
	_, err = useCase.Execute(context.Background(), RetryJobCommand{JobID: 5, UserID: 88, Role: "admin"})
	require.Error(t, err)
}
