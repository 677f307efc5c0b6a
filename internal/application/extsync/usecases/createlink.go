package usecases

import (
	"context"

	"helpdesk/internal/application/extsync/dto"
	"helpdesk/internal/domain/extsync"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type CreateLinkCommand struct {
	TicketID    uint   `json:"ticket_id"`
	Platform    string `json:"platform"`
	ExternalKey string `json:"external_key"`
	UserID      uint   `json:"user_id"`
	Role        string `json:"role"`
}

type CreateLinkUseCase struct {
	linkRepo   extsync.LinkRepository
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewCreateLinkUseCase(
	linkRepo extsync.LinkRepository,
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *CreateLinkUseCase {
	return &CreateLinkUseCase{
		linkRepo:   linkRepo,
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *CreateLinkUseCase) Execute(ctx context.Context, cmd CreateLinkCommand) (*dto.ExternalLinkDTO, error) {
	if !authorization.ParseUserRole(cmd.Role).IsSupportStaff() {
		return nil, errors.NewForbiddenError("only support staff can link tickets to external trackers")
	}
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.ExternalKey == "" {
		return nil, errors.NewValidationError("external key is required")
	}

	platform, err := extsync.NewPlatform(cmd.Platform)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	tkt, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}
	if tkt == nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	existing, err := uc.linkRepo.GetByTicketAndPlatform(ctx, cmd.TicketID, platform)
	if err != nil {
		uc.logger.Errorw("failed to check existing link", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, errors.NewValidationError("ticket is already linked to " + platform.String())
	}

	link, err := extsync.NewExternalLink(cmd.TicketID, platform, cmd.ExternalKey)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.linkRepo.Save(ctx, link); err != nil {
		uc.logger.Errorw("failed to save link", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket linked to external tracker",
		"link_id", link.ID(),
		"ticket_id", cmd.TicketID,
		"platform", platform.String(),
		"external_key", cmd.ExternalKey,
		"linked_by", cmd.UserID)
	return dto.ToExternalLinkDTO(link), nil
}
