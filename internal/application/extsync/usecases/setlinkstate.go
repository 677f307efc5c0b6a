package usecases

import (
	"context"

	"helpdesk/internal/application/extsync/dto"
	"helpdesk/internal/domain/extsync"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

// LinkAction is an operator request against an external link.
type LinkAction string

const (
	ActionPause   LinkAction = "pause"
	ActionResume  LinkAction = "resume"
	ActionArchive LinkAction = "archive"
)

type SetLinkStateCommand struct {
	LinkID uint       `json:"link_id"`
	Action LinkAction `json:"action"`
	UserID uint       `json:"user_id"`
	Role   string     `json:"role"`
}

type SetLinkStateUseCase struct {
	linkRepo extsync.LinkRepository
	logger   logger.Interface
}

func NewSetLinkStateUseCase(linkRepo extsync.LinkRepository, logger logger.Interface) *SetLinkStateUseCase {
	return &SetLinkStateUseCase{
		linkRepo: linkRepo,
		logger:   logger,
	}
}

func (uc *SetLinkStateUseCase) Execute(ctx context.Context, cmd SetLinkStateCommand) (*dto.ExternalLinkDTO, error) {
	if !authorization.ParseUserRole(cmd.Role).IsSupportStaff() {
		return nil, errors.NewForbiddenError("only support staff can manage external links")
	}
	if cmd.LinkID == 0 {
		return nil, errors.NewValidationError("link ID is required")
	}

	link, err := uc.linkRepo.GetByID(ctx, cmd.LinkID)
	if err != nil {
		uc.logger.Errorw("failed to get link", "link_id", cmd.LinkID, "error", err)
		return nil, err
	}
	if link == nil {
		return nil, errors.NewNotFoundError("link not found")
	}

	switch cmd.Action {
	case ActionPause:
		link.Pause()
	case ActionResume:
		link.Resume()
	case ActionArchive:
		link.Archive()
	default:
		return nil, errors.NewValidationError("unknown link action: " + string(cmd.Action))
	}

	if err := uc.linkRepo.Update(ctx, link); err != nil {
		uc.logger.Errorw("failed to update link", "link_id", cmd.LinkID, "error", err)
		return nil, err
	}

	uc.logger.Infow("external link state changed",
		"link_id", cmd.LinkID,
		"action", string(cmd.Action),
		"state", string(link.State()),
		"changed_by", cmd.UserID)
	return dto.ToExternalLinkDTO(link), nil
}
