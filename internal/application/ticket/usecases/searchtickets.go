package usecases

import (
	"context"
	"strings"

	"helpdesk/internal/application/ticket/dto"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type SearchTicketsQuery struct {
	Query    string
	UserID   uint
	Role     string
	Page     int
	PageSize int
}

type SearchTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewSearchTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *SearchTicketsUseCase {
	return &SearchTicketsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

// Execute matches the query against ticket number, title and description.
// Customers are scoped to tickets they created.
func (uc *SearchTicketsUseCase) Execute(ctx context.Context, query SearchTicketsQuery) (*ListTicketsResult, error) {
	q := strings.TrimSpace(query.Query)
	if q == "" {
		return nil, errors.NewValidationError("search query is required")
	}
	if len(q) > 200 {
		return nil, errors.NewValidationError("search query exceeds maximum length of 200 characters")
	}

	filter := ticket.TicketFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
	}

	if !authorization.ParseUserRole(query.Role).IsSupportStaff() {
		creatorID := query.UserID
		filter.CreatorID = &creatorID
	}

	tickets, total, err := uc.ticketRepo.Search(ctx, q, filter)
	if err != nil {
		uc.logger.Errorw("failed to search tickets", "query", q, "error", err)
		return nil, err
	}

	return &ListTicketsResult{
		Tickets:  dto.ToTicketListItemDTOs(tickets),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}
