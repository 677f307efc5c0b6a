package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/shared/events"
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
)

func reconstructOpenTicket(t *testing.T, ticketID, creatorID uint) *ticket.Ticket {
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

func TestAddCommentUseCase_Execute_Success(t *testing.T) {
	tests := []struct {
		name       string
		userID     uint
		role       string
		isInternal bool
	}{
		{
			name:       "customer adds public comment",
			userID:     10,
			role:       "customer",
			isInternal: false,
		},
		{
			name:       "admin adds internal comment",
			userID:     99,
			role:       "admin",
			isInternal: true,
		},
		{
			name:       "support agent adds internal comment",
			userID:     88,
			role:       "support_agent",
			isInternal: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existingTicket := reconstructOpenTicket(t, 1, 10)

			mockTicketRepo := &mockTicketRepository{
				GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
					return existingTicket, nil
				},
			}

			var savedComment *ticket.Comment
			mockCommentRepo := &mockCommentRepository{
				SaveFunc: func(ctx context.Context, comment *ticket.Comment) error {
					if err := comment.SetID(100); err != nil {
						return err
					}
					savedComment = comment
					return nil
				},
			}

			var published []events.Event
			mockBus := &mockEventBus{
				PublishFunc: func(event events.Event) error {
					published = append(published, event)
					return nil
				},
			}

			useCase := NewAddCommentUseCase(mockTicketRepo, mockCommentRepo, &mockTransactionManager{}, mockBus, &mockLogger{})
			result, err := useCase.Execute(context.Background(), AddCommentCommand{
				TicketID:   1,
				UserID:     tt.userID,
				Role:       tt.role,
				Content:    "This is a test comment",
				IsInternal: tt.isInternal,
			})

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, uint(100), result.CommentID)
			assert.NotZero(t, result.CreatedAt)

			require.NotNil(t, savedComment)
			assert.Equal(t, tt.isInternal, savedComment.IsInternal())
			assert.Equal(t, ticket.SourceHelpdesk, savedComment.Source())

			require.Len(t, published, 1)
			assert.Equal(t, ticket.EventCommentAdded, published[0].EventName())
		})
	}
}

func TestAddCommentUseCase_Execute_CustomerCannotAddInternalComment(t *testing.T) {
	existingTicket := reconstructOpenTicket(t, 1, 10)

	mockTicketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return existingTicket, nil
		},
	}

	useCase := NewAddCommentUseCase(mockTicketRepo, &mockCommentRepository{}, &mockTransactionManager{}, &mockEventBus{}, &mockLogger{})
	result, err := useCase.Execute(context.Background(), AddCommentCommand{
		TicketID:   1,
		UserID:     10,
		Role:       "customer",
		Content:    "sneaky internal note",
		IsInternal: true,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "support staff")
}

func TestAddCommentUseCase_Execute_StrangerCannotComment(t *testing.T) {
	existingTicket := reconstructOpenTicket(t, 1, 10)

	mockTicketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return existingTicket, nil
		},
	}

	useCase := NewAddCommentUseCase(mockTicketRepo, &mockCommentRepository{}, &mockTransactionManager{}, &mockEventBus{}, &mockLogger{})
	result, err := useCase.Execute(context.Background(), AddCommentCommand{
		TicketID: 1,
		UserID:   777,
		Role:     "customer",
		Content:  "I should not see this ticket",
	})

	require.Error(t, err)
	assert.Nil(t, result)
}

func TestAddCommentUseCase_Execute_FirstStaffReplyMarksResponse(t *testing.T) {
	existingTicket := reconstructOpenTicket(t, 1, 10)
	require.Nil(t, existingTicket.ResponseTime())

	mockTicketRepo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return existingTicket, nil
		},
	}
	mockCommentRepo := &mockCommentRepository{
		SaveFunc: func(ctx context.Context, comment *ticket.Comment) error {
			return comment.SetID(5)
		},
	}

	useCase := NewAddCommentUseCase(mockTicketRepo, mockCommentRepo, &mockTransactionManager{}, &mockEventBus{}, &mockLogger{})
	_, err := useCase.Execute(context.Background(), AddCommentCommand{
		TicketID: 1,
		UserID:   88,
		Role:     "support_agent",
		Content:  "Looking into this now",
	})

	require.NoError(t, err)
	assert.NotNil(t, existingTicket.ResponseTime())
}
