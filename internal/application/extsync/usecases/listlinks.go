package usecases

import (
	"context"

	"helpdesk/internal/application/extsync/dto"
	"helpdesk/internal/domain/extsync"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type ListLinksQuery struct {
	TicketID uint   `json:"ticket_id"`
	UserID   uint   `json:"user_id"`
	Role     string `json:"role"`
}

type ListLinksUseCase struct {
	linkRepo   extsync.LinkRepository
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewListLinksUseCase(
	linkRepo extsync.LinkRepository,
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *ListLinksUseCase {
	return &ListLinksUseCase{
		linkRepo:   linkRepo,
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *ListLinksUseCase) Execute(ctx context.Context, query ListLinksQuery) ([]*dto.ExternalLinkDTO, error) {
	if query.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	tkt, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", query.TicketID, "error", err)
		return nil, err
	}
	if tkt == nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}
	if !tkt.CanBeViewedBy(query.UserID, query.Role) {
		return nil, errors.NewForbiddenError("you do not have access to this ticket")
	}

	links, err := uc.linkRepo.GetByTicketID(ctx, query.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to list links", "ticket_id", query.TicketID, "error", err)
		return nil, err
	}

	return dto.ToExternalLinkDTOs(links), nil
}
