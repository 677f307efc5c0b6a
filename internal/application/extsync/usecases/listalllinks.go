package usecases

import (
	"context"

	"helpdesk/internal/application/extsync/dto"
	"helpdesk/internal/domain/extsync"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type ListAllLinksQuery struct {
	State    string `json:"state"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	UserID   uint   `json:"user_id"`
	Role     string `json:"role"`
}

type ListAllLinksResult struct {
	Links    []*dto.ExternalLinkDTO `json:"links"`
	Total    int64                  `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"page_size"`
}

// ListAllLinksUseCase lists external links across all tickets for the sync
// dashboard. Per-ticket listing goes through ListLinksUseCase instead.
type ListAllLinksUseCase struct {
	linkRepo extsync.LinkRepository
	logger   logger.Interface
}

func NewListAllLinksUseCase(linkRepo extsync.LinkRepository, logger logger.Interface) *ListAllLinksUseCase {
	return &ListAllLinksUseCase{
		linkRepo: linkRepo,
		logger:   logger,
	}
}

func (uc *ListAllLinksUseCase) Execute(ctx context.Context, query ListAllLinksQuery) (*ListAllLinksResult, error) {
	if !authorization.ParseUserRole(query.Role).IsSupportStaff() {
		return nil, errors.NewForbiddenError("only support staff can view sync links")
	}

	state := extsync.LinkState(query.State)
	if query.State != "" && !state.IsValid() {
		return nil, errors.NewValidationError("invalid link state: " + query.State)
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	links, total, err := uc.linkRepo.List(ctx, state, pageSize, (page-1)*pageSize)
	if err != nil {
		uc.logger.Errorw("failed to list external links", "state", query.State, "error", err)
		return nil, err
	}

	return &ListAllLinksResult{
		Links:    dto.ToExternalLinkDTOs(links),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
