package usecases

import (
	"context"

	"helpdesk/internal/application/extsync/dto"
	"helpdesk/internal/domain/extsync"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type ListJobsQuery struct {
	State    string `json:"state"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	UserID   uint   `json:"user_id"`
	Role     string `json:"role"`
}

type ListJobsResult struct {
	Jobs     []*dto.SyncJobDTO `json:"jobs"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

type ListJobsUseCase struct {
	jobRepo extsync.JobRepository
	logger  logger.Interface
}

func NewListJobsUseCase(jobRepo extsync.JobRepository, logger logger.Interface) *ListJobsUseCase {
	return &ListJobsUseCase{
		jobRepo: jobRepo,
		logger:  logger,
	}
}

func (uc *ListJobsUseCase) Execute(ctx context.Context, query ListJobsQuery) (*ListJobsResult, error) {
	if !authorization.ParseUserRole(query.Role).IsSupportStaff() {
		return nil, errors.NewForbiddenError("only support staff can view sync jobs")
	}

	state := extsync.JobState(query.State)
	if query.State != "" && !state.IsValid() {
		return nil, errors.NewValidationError("invalid job state: " + query.State)
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	jobs, total, err := uc.jobRepo.List(ctx, state, pageSize, (page-1)*pageSize)
	if err != nil {
		uc.logger.Errorw("failed to list sync jobs", "state", query.State, "error", err)
		return nil, err
	}

	jobDTOs := make([]*dto.SyncJobDTO, 0, len(jobs))
	for _, j := range jobs {
		jobDTOs = append(jobDTOs, dto.ToSyncJobDTO(j))
	}

	return &ListJobsResult{
		Jobs:     jobDTOs,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
