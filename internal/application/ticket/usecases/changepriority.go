package usecases

import (
	"context"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type ChangePriorityCommand struct {
	TicketID    uint
	NewPriority string
	ChangedBy   uint
}

type ChangePriorityUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewChangePriorityUseCase(
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *ChangePriorityUseCase {
	return &ChangePriorityUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

// Execute changes the priority and recomputes the SLA due time from the
// ticket's creation time.
func (uc *ChangePriorityUseCase) Execute(ctx context.Context, cmd ChangePriorityCommand) error {
	uc.logger.Infow("executing change priority use case", "ticket_id", cmd.TicketID, "new_priority", cmd.NewPriority)

	newPriority, err := vo.NewPriority(cmd.NewPriority)
	if err != nil {
		return errors.NewValidationError(err.Error())
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return err
	}

	if err := t.ChangePriority(newPriority, cmd.ChangedBy); err != nil {
		return errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
		return err
	}

	uc.logger.Infow("ticket priority changed", "ticket_id", t.ID(), "priority", t.Priority().String())
	return nil
}
