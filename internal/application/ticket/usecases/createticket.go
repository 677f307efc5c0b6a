package usecases

import (
	"context"
	"time"

	"helpdesk/internal/domain/shared/events"
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type CreateTicketCommand struct {
	Title       string
	Description string
	Category    string
	Priority    string
	CreatorID   uint
	Tags        []string
	Metadata    map[string]interface{}
}

type CreateTicketResult struct {
	TicketID  uint
	Number    string
	Status    string
	CreatedAt time.Time
}

type CreateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	numberGen  ticket.NumberGenerator
	eventBus   events.Publisher
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	numberGen ticket.NumberGenerator,
	eventBus events.Publisher,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo: ticketRepo,
		numberGen:  numberGen,
		eventBus:   eventBus,
		logger:     logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	uc.logger.Infow("executing create ticket use case", "title", cmd.Title, "creator_id", cmd.CreatorID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid create ticket command", "error", err)
		return nil, err
	}

	newTicket, err := ticket.NewTicket(
		cmd.Title,
		cmd.Description,
		vo.Category(cmd.Category),
		vo.Priority(cmd.Priority),
		cmd.CreatorID,
	)
	if err != nil {
		uc.logger.Errorw("failed to create ticket entity", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	if len(cmd.Tags) > 0 {
		newTicket.SetTags(cmd.Tags)
	}
	if len(cmd.Metadata) > 0 {
		newTicket.SetMetadata(cmd.Metadata)
	}

	number, err := uc.numberGen.Generate(ctx)
	if err != nil {
		uc.logger.Errorw("failed to generate ticket number", "error", err)
		return nil, err
	}
	if err := newTicket.SetNumber(number); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Save(ctx, newTicket); err != nil {
		uc.logger.Errorw("failed to save ticket", "error", err)
		return nil, err
	}

	// Event delivery is best effort; the ticket is already persisted.
	if err := uc.eventBus.Publish(ticket.NewTicketCreatedEvent(
		newTicket.ID(),
		newTicket.Number(),
		newTicket.Title(),
		newTicket.CreatorID(),
		newTicket.Priority().String(),
		newTicket.Category().String(),
		newTicket.CreatedAt(),
	)); err != nil {
		uc.logger.Warnw("failed to publish ticket created event", "error", err, "ticket_id", newTicket.ID())
	}

	uc.logger.Infow("ticket created successfully", "ticket_id", newTicket.ID(), "number", newTicket.Number())

	return &CreateTicketResult{
		TicketID:  newTicket.ID(),
		Number:    newTicket.Number(),
		Status:    newTicket.Status().String(),
		CreatedAt: newTicket.CreatedAt(),
	}, nil
}

func (uc *CreateTicketUseCase) validateCommand(cmd CreateTicketCommand) error {
	if len(cmd.Title) == 0 {
		return errors.NewValidationError("title is required")
	}

	if len(cmd.Title) > 200 {
		return errors.NewValidationError("title exceeds maximum length of 200 characters")
	}

	if len(cmd.Description) == 0 {
		return errors.NewValidationError("description is required")
	}

	if len(cmd.Description) > 5000 {
		return errors.NewValidationError("description exceeds maximum length of 5000 characters")
	}

	if cmd.CreatorID == 0 {
		return errors.NewValidationError("creator ID is required")
	}

	if !vo.Category(cmd.Category).IsValid() {
		return errors.NewValidationError("invalid category")
	}

	if !vo.Priority(cmd.Priority).IsValid() {
		return errors.NewValidationError("invalid priority")
	}

	return nil
}
