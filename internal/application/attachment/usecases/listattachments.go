package usecases

import (
	"context"

	"helpdesk/internal/application/attachment/dto"
	"helpdesk/internal/domain/attachment"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type ListAttachmentsQuery struct {
	TicketID uint   `json:"ticket_id"`
	UserID   uint   `json:"user_id"`
	Role     string `json:"role"`
}

type ListAttachmentsUseCase struct {
	attachmentRepo attachment.Repository
	ticketRepo     ticket.TicketRepository
	logger         logger.Interface
}

func NewListAttachmentsUseCase(
	attachmentRepo attachment.Repository,
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *ListAttachmentsUseCase {
	return &ListAttachmentsUseCase{
		attachmentRepo: attachmentRepo,
		ticketRepo:     ticketRepo,
		logger:         logger,
	}
}

func (uc *ListAttachmentsUseCase) Execute(ctx context.Context, query ListAttachmentsQuery) ([]*dto.AttachmentDTO, error) {
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

	attachments, err := uc.attachmentRepo.GetByTicketID(ctx, query.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to list attachments", "ticket_id", query.TicketID, "error", err)
		return nil, err
	}

	return dto.ToAttachmentDTOs(attachments), nil
}
