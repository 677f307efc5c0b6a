package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/shared/events"
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
)

func TestCreateTicketUseCase_Execute_Success(t *testing.T) {
	tests := []struct {
		name    string
		command CreateTicketCommand
	}{
		{
			name: "create technical ticket with high priority",
			command: CreateTicketCommand{
				Title:       "System crashes on login",
				Description: "Users experiencing crashes when attempting to login",
				Category:    string(vo.CategoryTechnical),
				Priority:    string(vo.PriorityHigh),
				CreatorID:   1,
				Tags:        []string{"crash", "login"},
				Metadata:    map[string]interface{}{"env": "production"},
			},
		},
		{
			name: "create billing ticket with low priority",
			command: CreateTicketCommand{
				Title:       "Invoice clarification needed",
				Description: "Need clarification on last month's invoice",
				Category:    string(vo.CategoryBilling),
				Priority:    string(vo.PriorityLow),
				CreatorID:   2,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var savedTicket *ticket.Ticket
			mockRepo := &mockTicketRepository{
				SaveFunc: func(ctx context.Context, tkt *ticket.Ticket) error {
					if err := tkt.SetID(100); err != nil {
						return err
					}
					savedTicket = tkt
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

			useCase := NewCreateTicketUseCase(mockRepo, &mockNumberGenerator{}, mockBus, &mockLogger{})
			result, err := useCase.Execute(context.Background(), tt.command)

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, uint(100), result.TicketID)
			assert.Equal(t, "TKT-20260101-0001", result.Number)
			assert.Equal(t, vo.StatusNew.String(), result.Status)
			assert.NotZero(t, result.CreatedAt)

			require.NotNil(t, savedTicket)
			assert.Equal(t, tt.command.Title, savedTicket.Title())
			assert.Equal(t, vo.Category(tt.command.Category), savedTicket.Category())
			assert.Equal(t, vo.Priority(tt.command.Priority), savedTicket.Priority())
			assert.ElementsMatch(t, tt.command.Tags, savedTicket.Tags())

			require.Len(t, published, 1)
			assert.Equal(t, ticket.EventTicketCreated, published[0].EventName())
		})
	}
}

func TestCreateTicketUseCase_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name          string
		command       CreateTicketCommand
		expectedError string
	}{
		{
			name: "empty title",
			command: CreateTicketCommand{
				Description: "Some description",
				Category:    string(vo.CategoryTechnical),
				Priority:    string(vo.PriorityMedium),
				CreatorID:   1,
			},
			expectedError: "title is required",
		},
		{
			name: "empty description",
			command: CreateTicketCommand{
				Title:     "Valid title",
				Category:  string(vo.CategoryTechnical),
				Priority:  string(vo.PriorityMedium),
				CreatorID: 1,
			},
			expectedError: "description is required",
		},
		{
			name: "missing creator ID",
			command: CreateTicketCommand{
				Title:       "Valid title",
				Description: "Valid description",
				Category:    string(vo.CategoryTechnical),
				Priority:    string(vo.PriorityMedium),
			},
			expectedError: "creator ID is required",
		},
		{
			name: "invalid category",
			command: CreateTicketCommand{
				Title:       "Valid title",
				Description: "Valid description",
				Category:    "invalid_category",
				Priority:    string(vo.PriorityMedium),
				CreatorID:   1,
			},
			expectedError: "invalid category",
		},
		{
			name: "invalid priority",
			command: CreateTicketCommand{
				Title:       "Valid title",
				Description: "Valid description",
				Category:    string(vo.CategoryTechnical),
				Priority:    "invalid_priority",
				CreatorID:   1,
			},
			expectedError: "invalid priority",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase := NewCreateTicketUseCase(&mockTicketRepository{}, &mockNumberGenerator{}, &mockEventBus{}, &mockLogger{})
			result, err := useCase.Execute(context.Background(), tt.command)

			require.Error(t, err)
			assert.Nil(t, result)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestCreateTicketUseCase_Execute_RepositoryError(t *testing.T) {
	mockRepo := &mockTicketRepository{
		SaveFunc: func(ctx context.Context, tkt *ticket.Ticket) error {
			return errors.New("database connection failed")
		},
	}

	useCase := NewCreateTicketUseCase(mockRepo, &mockNumberGenerator{}, &mockEventBus{}, &mockLogger{})
	result, err := useCase.Execute(context.Background(), CreateTicketCommand{
		Title:       "Valid title",
		Description: "Valid description",
		Category:    string(vo.CategoryTechnical),
		Priority:    string(vo.PriorityMedium),
		CreatorID:   1,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "database connection failed")
}

func TestCreateTicketUseCase_Execute_EventPublishErrorIsIgnored(t *testing.T) {
	mockRepo := &mockTicketRepository{
		SaveFunc: func(ctx context.Context, tkt *ticket.Ticket) error {
			return tkt.SetID(100)
		},
	}
	mockBus := &mockEventBus{
		PublishFunc: func(event events.Event) error {
			return errors.New("event publish failed")
		},
	}

	useCase := NewCreateTicketUseCase(mockRepo, &mockNumberGenerator{}, mockBus, &mockLogger{})
	result, err := useCase.Execute(context.Background(), CreateTicketCommand{
		Title:       "Valid title",
		Description: "Valid description",
		Category:    string(vo.CategoryTechnical),
		Priority:    string(vo.PriorityMedium),
		CreatorID:   1,
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, uint(100), result.TicketID)
}
