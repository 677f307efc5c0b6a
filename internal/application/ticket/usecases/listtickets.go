package usecases

import (
	"context"

	"helpdesk/internal/application/ticket/dto"
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type ListTicketsQuery struct {
	UserID       uint
	Role         string
	Status       string
	Priority     string
	Category     string
	AssigneeID   *uint
	Tags         []string
	Overdue      *bool
	AssignedToMe bool
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}

type ListTicketsResult struct {
	Tickets  []dto.TicketListItemDTO
	Total    int64
	Page     int
	PageSize int
}

type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewListTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

// Execute lists tickets visible to the caller. Customers only ever see
// their own tickets regardless of the requested filters.
func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error) {
	filter, err := buildTicketFilter(query)
	if err != nil {
		return nil, err
	}

	role := authorization.ParseUserRole(query.Role)

	var (
		tickets []*ticket.Ticket
		total   int64
	)

	switch {
	case !role.IsSupportStaff():
		tickets, total, err = uc.ticketRepo.GetUserTickets(ctx, query.UserID, filter)
	case query.AssignedToMe:
		tickets, total, err = uc.ticketRepo.GetAssignedTickets(ctx, query.UserID, filter)
	default:
		tickets, total, err = uc.ticketRepo.List(ctx, filter)
	}

	if err != nil {
		uc.logger.Errorw("failed to list tickets", "user_id", query.UserID, "error", err)
		return nil, err
	}

	return &ListTicketsResult{
		Tickets:  dto.ToTicketListItemDTOs(tickets),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func buildTicketFilter(query ListTicketsQuery) (ticket.TicketFilter, error) {
	filter := ticket.TicketFilter{
		AssigneeID: query.AssigneeID,
		Tags:       query.Tags,
		Overdue:    query.Overdue,
		Page:       query.Page,
		PageSize:   query.PageSize,
		SortBy:     query.SortBy,
		SortOrder:  query.SortOrder,
	}

	if query.Status != "" {
		status, err := vo.NewTicketStatus(query.Status)
		if err != nil {
			return filter, errors.NewValidationError("invalid status filter")
		}
		filter.Status = &status
	}

	if query.Priority != "" {
		priority, err := vo.NewPriority(query.Priority)
		if err != nil {
			return filter, errors.NewValidationError("invalid priority filter")
		}
		filter.Priority = &priority
	}

	if query.Category != "" {
		category, err := vo.NewCategory(query.Category)
		if err != nil {
			return filter, errors.NewValidationError("invalid category filter")
		}
		filter.Category = &category
	}

	return filter, nil
}
