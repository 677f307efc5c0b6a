package usecases

import (
	"context"
	"io"

	"helpdesk/internal/application/attachment/dto"
)

// BlobStore persists and retrieves attachment bytes by storage key.
type BlobStore interface {
	Save(key string, r io.Reader) (int64, error)
	Open(key string) (io.ReadCloser, error)
	Delete(key string) error
}

type UploadAttachmentExecutor interface {
	Execute(ctx context.Context, cmd UploadAttachmentCommand) (*dto.AttachmentDTO, error)
}

type ListAttachmentsExecutor interface {
	Execute(ctx context.Context, query ListAttachmentsQuery) ([]*dto.AttachmentDTO, error)
}

type DownloadAttachmentExecutor interface {
	Execute(ctx context.Context, query DownloadAttachmentQuery) (*DownloadAttachmentResult, error)
}

type DeleteAttachmentExecutor interface {
	Execute(ctx context.Context, cmd DeleteAttachmentCommand) error
}
