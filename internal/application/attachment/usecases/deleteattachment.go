package usecases

import (
	"context"

	"helpdesk/internal/domain/attachment"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type DeleteAttachmentCommand struct {
	AttachmentID uint   `json:"attachment_id"`
	UserID       uint   `json:"user_id"`
	Role         string `json:"role"`
}

type DeleteAttachmentUseCase struct {
	attachmentRepo attachment.Repository
	blobs          BlobStore
	logger         logger.Interface
}

func NewDeleteAttachmentUseCase(
	attachmentRepo attachment.Repository,
	blobs BlobStore,
	logger logger.Interface,
) *DeleteAttachmentUseCase {
	return &DeleteAttachmentUseCase{
		attachmentRepo: attachmentRepo,
		blobs:          blobs,
		logger:         logger,
	}
}

func (uc *DeleteAttachmentUseCase) Execute(ctx context.Context, cmd DeleteAttachmentCommand) error {
	if cmd.AttachmentID == 0 {
		return errors.NewValidationError("attachment ID is required")
	}

	att, err := uc.attachmentRepo.GetByID(ctx, cmd.AttachmentID)
	if err != nil {
		uc.logger.Errorw("failed to get attachment", "attachment_id", cmd.AttachmentID, "error", err)
		return err
	}
	if att == nil {
		return errors.NewNotFoundError("attachment not found")
	}

	role := authorization.ParseUserRole(cmd.Role)
	if !authorization.CanAccessResourceByOwnerID(cmd.UserID, role, att.UploaderID()) {
		return errors.NewForbiddenError("only the uploader or support staff can delete an attachment")
	}

	if err := uc.attachmentRepo.Delete(ctx, cmd.AttachmentID); err != nil {
		uc.logger.Errorw("failed to delete attachment", "attachment_id", cmd.AttachmentID, "error", err)
		return err
	}

	// Metadata is gone either way; a stranded blob only wastes disk.
	if err := uc.blobs.Delete(att.StorageKey()); err != nil {
		uc.logger.Warnw("failed to delete attachment blob", "key", att.StorageKey(), "error", err)
	}

	uc.logger.Infow("attachment deleted",
		"attachment_id", cmd.AttachmentID,
		"ticket_id", att.TicketID(),
		"deleted_by", cmd.UserID)
	return nil
}
