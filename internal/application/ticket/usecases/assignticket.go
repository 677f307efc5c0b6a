package usecases

import (
	"context"
	"time"

	"helpdesk/internal/domain/shared/events"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type AssignTicketCommand struct {
	TicketID   uint
	AssigneeID uint
	AssignedBy uint
}

type AssignTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.Repository
	eventBus   events.Publisher
	logger     logger.Interface
}

func NewAssignTicketUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	eventBus events.Publisher,
	logger logger.Interface,
) *AssignTicketUseCase {
	return &AssignTicketUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		eventBus:   eventBus,
		logger:     logger,
	}
}

func (uc *AssignTicketUseCase) Execute(ctx context.Context, cmd AssignTicketCommand) error {
	uc.logger.Infow("executing assign ticket use case", "ticket_id", cmd.TicketID, "assignee_id", cmd.AssigneeID)

	assignee, err := uc.userRepo.GetByID(ctx, cmd.AssigneeID)
	if err != nil {
		uc.logger.Errorw("failed to load assignee", "assignee_id", cmd.AssigneeID, "error", err)
		return err
	}
	if assignee == nil {
		return errors.NewNotFoundError("assignee not found")
	}
	if !assignee.Role().IsSupportStaff() {
		return errors.NewValidationError("tickets can only be assigned to support staff")
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return err
	}

	if err := t.AssignTo(cmd.AssigneeID, cmd.AssignedBy); err != nil {
		return errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
		return err
	}

	if err := uc.eventBus.Publish(ticket.NewTicketAssignedEvent(
		t.ID(),
		cmd.AssigneeID,
		cmd.AssignedBy,
		time.Now().UTC(),
	)); err != nil {
		uc.logger.Warnw("failed to publish ticket assigned event", "error", err, "ticket_id", t.ID())
	}

	uc.logger.Infow("ticket assigned successfully", "ticket_id", t.ID(), "assignee_id", cmd.AssigneeID)
	return nil
}
