package usecases

import (
	"context"
	"time"

	"helpdesk/internal/domain/shared/events"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type ReopenTicketCommand struct {
	TicketID   uint
	Reason     string
	ReopenedBy uint
}

type ReopenTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	eventBus   events.Publisher
	logger     logger.Interface
}

func NewReopenTicketUseCase(
	ticketRepo ticket.TicketRepository,
	eventBus events.Publisher,
	logger logger.Interface,
) *ReopenTicketUseCase {
	return &ReopenTicketUseCase{
		ticketRepo: ticketRepo,
		eventBus:   eventBus,
		logger:     logger,
	}
}

func (uc *ReopenTicketUseCase) Execute(ctx context.Context, cmd ReopenTicketCommand) error {
	uc.logger.Infow("executing reopen ticket use case", "ticket_id", cmd.TicketID, "reopened_by", cmd.ReopenedBy)

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return err
	}

	if err := t.Reopen(cmd.Reason, cmd.ReopenedBy); err != nil {
		return errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
		return err
	}

	if err := uc.eventBus.Publish(ticket.NewTicketReopenedEvent(
		t.ID(),
		cmd.Reason,
		cmd.ReopenedBy,
		time.Now().UTC(),
	)); err != nil {
		uc.logger.Warnw("failed to publish ticket reopened event", "error", err, "ticket_id", t.ID())
	}

	uc.logger.Infow("ticket reopened", "ticket_id", t.ID())
	return nil
}
