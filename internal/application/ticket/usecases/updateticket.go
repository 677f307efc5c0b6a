package usecases

import (
	"context"
	"time"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type UpdateTicketCommand struct {
	TicketID    uint
	UserID      uint
	Role        string
	Title       *string
	Description *string
	Tags        []string
}

type UpdateTicketResult struct {
	TicketID  uint
	UpdatedAt time.Time
}

type UpdateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

// Execute updates ticket details. Customers may only edit tickets they
// created; support staff may edit any ticket.
func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error) {
	uc.logger.Infow("executing update ticket use case", "ticket_id", cmd.TicketID, "user_id", cmd.UserID)

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	if !authorization.CanAccessResourceByOwnerID(cmd.UserID, authorization.ParseUserRole(cmd.Role), t.CreatorID()) {
		return nil, errors.NewForbiddenError("you can only edit your own tickets")
	}

	if cmd.Title != nil || cmd.Description != nil {
		title := t.Title()
		description := t.Description()
		if cmd.Title != nil {
			title = *cmd.Title
		}
		if cmd.Description != nil {
			description = *cmd.Description
		}
		if err := t.UpdateDetails(title, description); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if cmd.Tags != nil {
		t.SetTags(cmd.Tags)
	}

	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket updated successfully", "ticket_id", t.ID())

	return &UpdateTicketResult{
		TicketID:  t.ID(),
		UpdatedAt: t.UpdatedAt(),
	}, nil
}
