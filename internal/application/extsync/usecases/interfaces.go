package usecases

import (
	"context"

	"helpdesk/internal/application/extsync/dto"
)

type CreateLinkExecutor interface {
	Execute(ctx context.Context, cmd CreateLinkCommand) (*dto.ExternalLinkDTO, error)
}

type SetLinkStateExecutor interface {
	Execute(ctx context.Context, cmd SetLinkStateCommand) (*dto.ExternalLinkDTO, error)
}

type ListLinksExecutor interface {
	Execute(ctx context.Context, query ListLinksQuery) ([]*dto.ExternalLinkDTO, error)
}

type ListAllLinksExecutor interface {
	Execute(ctx context.Context, query ListAllLinksQuery) (*ListAllLinksResult, error)
}

type ListJobsExecutor interface {
	Execute(ctx context.Context, query ListJobsQuery) (*ListJobsResult, error)
}

type RetryJobExecutor interface {
	Execute(ctx context.Context, cmd RetryJobCommand) (*dto.SyncJobDTO, error)
}
