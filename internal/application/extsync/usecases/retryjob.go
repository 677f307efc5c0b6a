package usecases

import (
	"context"

	"helpdesk/internal/application/extsync/dto"
	"helpdesk/internal/domain/extsync"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type RetryJobCommand struct {
	JobID  uint   `json:"job_id"`
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

type RetryJobUseCase struct {
	jobRepo extsync.JobRepository
	logger  logger.Interface
}

func NewRetryJobUseCase(jobRepo extsync.JobRepository, logger logger.Interface) *RetryJobUseCase {
	return &RetryJobUseCase{
		jobRepo: jobRepo,
		logger:  logger,
	}
}

func (uc *RetryJobUseCase) Execute(ctx context.Context, cmd RetryJobCommand) (*dto.SyncJobDTO, error) {
	if !authorization.ParseUserRole(cmd.Role).IsSupportStaff() {
		return nil, errors.NewForbiddenError("only support staff can retry sync jobs")
	}
	if cmd.JobID == 0 {
		return nil, errors.NewValidationError("job ID is required")
	}

	job, err := uc.jobRepo.GetByID(ctx, cmd.JobID)
	if err != nil {
		uc.logger.Errorw("failed to get sync job", "job_id", cmd.JobID, "error", err)
		return nil, err
	}
	if job == nil {
		return nil, errors.NewNotFoundError("sync job not found")
	}

	if err := job.Retry(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.jobRepo.Update(ctx, job); err != nil {
		uc.logger.Errorw("failed to update sync job", "job_id", cmd.JobID, "error", err)
		return nil, err
	}

	uc.logger.Infow("sync job requeued", "job_id", cmd.JobID, "requeued_by", cmd.UserID)
	return dto.ToSyncJobDTO(job), nil
}
