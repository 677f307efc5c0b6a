package usecases

import (
	"context"

	"helpdesk/internal/application/thread/dto"
	"helpdesk/internal/domain/thread"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type ListThreadsQuery struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	AgentID   uint   `json:"agent_id"`
	Page      int    `json:"page"`
	PageSize  int    `json:"page_size"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

type ListThreadsResult struct {
	Threads  []dto.ThreadListItemDTO `json:"threads"`
	Total    int64                   `json:"total"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"page_size"`
}

type ListThreadsUseCase struct {
	threadRepo thread.ThreadRepository
	logger     logger.Interface
}

func NewListThreadsUseCase(threadRepo thread.ThreadRepository, logger logger.Interface) *ListThreadsUseCase {
	return &ListThreadsUseCase{
		threadRepo: threadRepo,
		logger:     logger,
	}
}

func (uc *ListThreadsUseCase) Execute(ctx context.Context, query ListThreadsQuery) (*ListThreadsResult, error) {
	filter, err := uc.buildFilter(query)
	if err != nil {
		return nil, err
	}

	threads, total, err := uc.threadRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list threads", "user_id", query.UserID, "error", err)
		return nil, err
	}

	return &ListThreadsResult{
		Threads:  dto.ToThreadListItemDTOs(threads),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (uc *ListThreadsUseCase) buildFilter(query ListThreadsQuery) (thread.ThreadFilter, error) {
	filter := thread.ThreadFilter{
		Page:      query.Page,
		PageSize:  query.PageSize,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	// Customers only see their own threads.
	if !authorization.ParseUserRole(query.Role).IsSupportStaff() {
		userID := query.UserID
		filter.CreatorID = &userID
	}

	if query.Status != "" {
		status := thread.ThreadStatus(query.Status)
		if !status.IsValid() {
			return thread.ThreadFilter{}, errors.NewValidationError("invalid thread status: " + query.Status)
		}
		filter.Status = &status
	}
	if query.AgentID != 0 {
		agentID := query.AgentID
		filter.AgentID = &agentID
	}

	return filter, nil
}
