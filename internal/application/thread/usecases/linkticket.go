package usecases

import (
	"context"
	"fmt"

	"helpdesk/internal/domain/thread"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type LinkTicketCommand struct {
	ThreadID uint   `json:"thread_id"`
	TicketID uint   `json:"ticket_id"`
	UserID   uint   `json:"user_id"`
	Role     string `json:"role"`
}

type LinkTicketUseCase struct {
	threadRepo  thread.ThreadRepository
	messageRepo thread.MessageRepository
	ticketRepo  ticket.TicketRepository
	logger      logger.Interface
}

func NewLinkTicketUseCase(
	threadRepo thread.ThreadRepository,
	messageRepo thread.MessageRepository,
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *LinkTicketUseCase {
	return &LinkTicketUseCase{
		threadRepo:  threadRepo,
		messageRepo: messageRepo,
		ticketRepo:  ticketRepo,
		logger:      logger,
	}
}

func (uc *LinkTicketUseCase) Execute(ctx context.Context, cmd LinkTicketCommand) error {
	if cmd.ThreadID == 0 {
		return errors.NewValidationError("thread ID is required")
	}
	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}

	t, err := uc.threadRepo.GetByID(ctx, cmd.ThreadID)
	if err != nil {
		uc.logger.Errorw("failed to get thread", "thread_id", cmd.ThreadID, "error", err)
		return err
	}
	if t == nil {
		return errors.NewNotFoundError("thread not found")
	}
	if !t.CanBeViewedBy(cmd.UserID, cmd.Role) {
		return errors.NewForbiddenError("you do not have access to this thread")
	}

	tkt, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", cmd.TicketID, "error", err)
		return err
	}
	if tkt == nil {
		return errors.NewNotFoundError("ticket not found")
	}
	if !tkt.CanBeViewedBy(cmd.UserID, cmd.Role) {
		return errors.NewForbiddenError("you do not have access to this ticket")
	}

	if err := t.LinkTicket(cmd.TicketID); err != nil {
		return errors.NewValidationError(err.Error())
	}
	if err := uc.threadRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update thread", "thread_id", cmd.ThreadID, "error", err)
		return err
	}

	// The link marker lands in the conversation itself so both sides can see
	// when the handoff happened. Losing it does not undo the link.
	note, err := thread.NewSystemMessage(cmd.ThreadID, fmt.Sprintf("Thread linked to ticket %s", tkt.Number()))
	if err == nil {
		if err := uc.messageRepo.Save(ctx, note); err != nil {
			uc.logger.Warnw("failed to record link message", "thread_id", cmd.ThreadID, "error", err)
		}
	}

	uc.logger.Infow("thread linked to ticket",
		"thread_id", cmd.ThreadID,
		"ticket_id", cmd.TicketID,
		"ticket_number", tkt.Number())
	return nil
}
