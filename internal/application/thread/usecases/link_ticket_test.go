package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/thread"
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
)

func reconstructLinkableTicket(t *testing.T, ticketID, creatorID uint) *ticket.Ticket {
	t.Helper()

	tkt, err := ticket.ReconstructTicket(
		ticketID,
		"TKT-20260101-0001",
		"Test ticket",
		"Test description",
		vo.CategoryTechnical,
		vo.PriorityMedium,
		vo.StatusOpen,
		creatorID,
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

func TestLinkTicketUseCase_Execute_Success(t *testing.T) {
	existingThread := reconstructOpenThread(t, 1, 10, 5)
	existingTicket := reconstructLinkableTicket(t, 7, 10)

	mockThreadRepo := &mockThreadRepository{
		GetByIDFunc: func(ctx context.Context, threadID uint) (*thread.Thread, error) {
			return existingThread, nil
		},
	}
	mockTicketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return existingTicket, nil
		},
	}

	var systemMsg *thread.Message
	mockMsgRepo := &mockMessageRepository{
		SaveFunc: func(ctx context.Context, message *thread.Message) error {
			systemMsg = message
			return message.SetID(1)
		},
	}

	useCase := NewLinkTicketUseCase(mockThreadRepo, mockMsgRepo, mockTicketRepo, &mockLogger{})
	err := useCase.Execute(context.Background(), LinkTicketCommand{
		ThreadID: 1,
		TicketID: 7,
		UserID:   10,
		Role:     "customer",
	})

	require.NoError(t, err)
	require.NotNil(t, existingThread.TicketID())
	assert.Equal(t, uint(7), *existingThread.TicketID())

	require.NotNil(t, systemMsg)
	assert.Equal(t, thread.RoleSystem, systemMsg.Role())
	assert.Contains(t, systemMsg.Content(), "TKT-20260101-0001")
}

func TestLinkTicketUseCase_Execute_AlreadyLinked(t *testing.T) {
	existingThread := reconstructOpenThread(t, 1, 10, 5)
	require.NoError(t, existingThread.LinkTicket(3))
	existingTicket := reconstructLinkableTicket(t, 7, 10)

	mockThreadRepo := &mockThreadRepository{
		GetByIDFunc: func(ctx context.Context, threadID uint) (*thread.Thread, error) {
			return existingThread, nil
		},
	}
	mockTicketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return existingTicket, nil
		},
	}

	useCase := NewLinkTicketUseCase(mockThreadRepo, &mockMessageRepository{}, mockTicketRepo, &mockLogger{})
	err := useCase.Execute(context.Background(), LinkTicketCommand{
		ThreadID: 1,
		TicketID: 7,
		UserID:   10,
		Role:     "customer",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already linked")
}

func TestLinkTicketUseCase_Execute_TicketNotVisible(t *testing.T) {
	existingThread := reconstructOpenThread(t, 1, 10, 5)
	foreignTicket := reconstructLinkableTicket(t, 7, 999)

	mockThreadRepo := &mockThreadRepository{
		GetByIDFunc: func(ctx context.Context, threadID uint) (*thread.Thread, error) {
			return existingThread, nil
		},
	}
	mockTicketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
			return foreignTicket, nil
		},
	}

	useCase := NewLinkTicketUseCase(mockThreadRepo, &mockMessageRepository{}, mockTicketRepo, &mockLogger{})
	err := useCase.Execute(context.Background(), LinkTicketCommand{
		ThreadID: 1,
		TicketID: 7,
		UserID:   10,
		Role:     "customer",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "access")
}
