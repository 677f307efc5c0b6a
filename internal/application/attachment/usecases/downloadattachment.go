package usecases

import (
	"context"
	"io"

	"helpdesk/internal/domain/attachment"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type DownloadAttachmentQuery struct {
	AttachmentID uint   `json:"attachment_id"`
	UserID       uint   `json:"user_id"`
	Role         string `json:"role"`
}

// DownloadAttachmentResult carries the blob stream. The caller owns Content
// and must close it.
type DownloadAttachmentResult struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.ReadCloser
}

type DownloadAttachmentUseCase struct {
	attachmentRepo attachment.Repository
	ticketRepo     ticket.TicketRepository
	blobs          BlobStore
	logger         logger.Interface
}

func NewDownloadAttachmentUseCase(
	attachmentRepo attachment.Repository,
	ticketRepo ticket.TicketRepository,
	blobs BlobStore,
	logger logger.Interface,
) *DownloadAttachmentUseCase {
	return &DownloadAttachmentUseCase{
		attachmentRepo: attachmentRepo,
		ticketRepo:     ticketRepo,
		blobs:          blobs,
		logger:         logger,
	}
}

func (uc *DownloadAttachmentUseCase) Execute(ctx context.Context, query DownloadAttachmentQuery) (*DownloadAttachmentResult, error) {
	if query.AttachmentID == 0 {
		return nil, errors.NewValidationError("attachment ID is required")
	}

	att, err := uc.attachmentRepo.GetByID(ctx, query.AttachmentID)
	if err != nil {
		uc.logger.Errorw("failed to get attachment", "attachment_id", query.AttachmentID, "error", err)
		return nil, err
	}
	if att == nil {
		return nil, errors.NewNotFoundError("attachment not found")
	}

	tkt, err := uc.ticketRepo.GetByID(ctx, att.TicketID())
	if err != nil {
		uc.logger.Errorw("failed to get ticket", "ticket_id", att.TicketID(), "error", err)
		return nil, err
	}
	if tkt == nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}
	if !tkt.CanBeViewedBy(query.UserID, query.Role) {
		return nil, errors.NewForbiddenError("you do not have access to this ticket")
	}

	content, err := uc.blobs.Open(att.StorageKey())
	if err != nil {
		uc.logger.Errorw("failed to open attachment blob", "key", att.StorageKey(), "error", err)
		return nil, err
	}

	return &DownloadAttachmentResult{
		Filename:    att.Filename(),
		ContentType: att.ContentType(),
		Size:        att.Size(),
		Content:     content,
	}, nil
}
