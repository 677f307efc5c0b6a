package usecases

import (
	"context"

	"helpdesk/internal/application/ticket/dto"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type GetTicketQuery struct {
	TicketID uint
	Number   string
	UserID   uint
	Role     string
}

type GetTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

// Execute loads a ticket by ID or, when ID is zero, by number.
func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
	var (
		t   *ticket.Ticket
		err error
	)

	switch {
	case query.TicketID != 0:
		t, err = uc.ticketRepo.GetByID(ctx, query.TicketID)
	case query.Number != "":
		t, err = uc.ticketRepo.GetByNumber(ctx, query.Number)
	default:
		return nil, errors.NewValidationError("ticket ID or number is required")
	}

	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", query.TicketID, "number", query.Number, "error", err)
		return nil, err
	}

	if !t.CanBeViewedBy(query.UserID, query.Role) {
		uc.logger.Warnw("user cannot view ticket", "ticket_id", t.ID(), "user_id", query.UserID)
		return nil, errors.NewForbiddenError("you do not have access to this ticket")
	}

	isStaff := authorization.ParseUserRole(query.Role).IsSupportStaff()
	return dto.ToTicketDTO(t, isStaff), nil
}
