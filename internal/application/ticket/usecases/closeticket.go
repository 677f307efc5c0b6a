package usecases

import (
	"context"
	"time"

	"helpdesk/internal/domain/shared/events"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type CloseTicketCommand struct {
	TicketID uint
	Reason   string
	ClosedBy uint
}

type CloseTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	eventBus   events.Publisher
	logger     logger.Interface
}

func NewCloseTicketUseCase(
	ticketRepo ticket.TicketRepository,
	eventBus events.Publisher,
	logger logger.Interface,
) *CloseTicketUseCase {
	return &CloseTicketUseCase{
		ticketRepo: ticketRepo,
		eventBus:   eventBus,
		logger:     logger,
	}
}

func (uc *CloseTicketUseCase) Execute(ctx context.Context, cmd CloseTicketCommand) error {
	uc.logger.Infow("executing close ticket use case", "ticket_id", cmd.TicketID, "closed_by", cmd.ClosedBy)

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return err
	}

	if err := t.Close(cmd.Reason, cmd.ClosedBy); err != nil {
		return errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
		return err
	}

	if err := uc.eventBus.Publish(ticket.NewTicketClosedEvent(
		t.ID(),
		cmd.Reason,
		cmd.ClosedBy,
		time.Now().UTC(),
	)); err != nil {
		uc.logger.Warnw("failed to publish ticket closed event", "error", err, "ticket_id", t.ID())
	}

	uc.logger.Infow("ticket closed", "ticket_id", t.ID())
	return nil
}
