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

type ChangeStatusCommand struct {
	TicketID  uint
	NewStatus string
	ChangedBy uint
}

type ChangeStatusResult struct {
	TicketID  uint
	OldStatus string
	NewStatus string
	UpdatedAt time.Time
}

type ChangeStatusUseCase struct {
	ticketRepo ticket.TicketRepository
	eventBus   events.Publisher
	logger     logger.Interface
}

func NewChangeStatusUseCase(
	ticketRepo ticket.TicketRepository,
	eventBus events.Publisher,
	logger logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		ticketRepo: ticketRepo,
		eventBus:   eventBus,
		logger:     logger,
	}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error) {
	uc.logger.Infow("executing change status use case", "ticket_id", cmd.TicketID, "new_status", cmd.NewStatus)

	newStatus, err := vo.NewTicketStatus(cmd.NewStatus)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	oldStatus := t.Status()

	if err := t.ChangeStatus(newStatus, cmd.ChangedBy); err != nil {
		uc.logger.Warnw("invalid status transition", "ticket_id", cmd.TicketID, "from", oldStatus.String(), "to", cmd.NewStatus, "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	if oldStatus != t.Status() {
		if err := uc.eventBus.Publish(ticket.NewTicketStatusChangedEvent(
			t.ID(),
			oldStatus.String(),
			t.Status().String(),
			cmd.ChangedBy,
			t.UpdatedAt(),
		)); err != nil {
			uc.logger.Warnw("failed to publish status changed event", "error", err, "ticket_id", t.ID())
		}
	}

	uc.logger.Infow("ticket status changed", "ticket_id", t.ID(), "from", oldStatus.String(), "to", t.Status().String())

	return &ChangeStatusResult{
		TicketID:  t.ID(),
		OldStatus: oldStatus.String(),
		NewStatus: t.Status().String(),
		UpdatedAt: t.UpdatedAt(),
	}, nil
}
