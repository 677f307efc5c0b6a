package usecases

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"helpdesk/internal/application/attachment/dto"
	"helpdesk/internal/domain/attachment"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/infrastructure/storage"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type UploadAttachmentCommand struct {
	TicketID    uint
	UserID      uint
	Role        string
	Filename    string
	ContentType string
	Content     io.Reader
}

type UploadAttachmentUseCase struct {
	attachmentRepo attachment.Repository
	ticketRepo     ticket.TicketRepository
	blobs          BlobStore
	maxFileSize    int64
	logger         logger.Interface
}

func NewUploadAttachmentUseCase(
	attachmentRepo attachment.Repository,
	ticketRepo ticket.TicketRepository,
	blobs BlobStore,
	maxFileSize int64,
	logger logger.Interface,
) *UploadAttachmentUseCase {
	if maxFileSize <= 0 {
		maxFileSize = attachment.MaxFileSize
	}
	return &UploadAttachmentUseCase{
		attachmentRepo: attachmentRepo,
		ticketRepo:     ticketRepo,
		blobs:          blobs,
		maxFileSize:    maxFileSize,
		logger:         logger,
	}
}

func (uc *UploadAttachmentUseCase) Execute(ctx context.Context, cmd UploadAttachmentCommand) (*dto.AttachmentDTO, error) {
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.Content == nil {
		return nil, errors.NewValidationError("file content is required")
	}
	if err := attachment.ValidateFilename(cmd.Filename); err != nil {
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
	if !tkt.CanBeViewedBy(cmd.UserID, cmd.Role) {
		return nil, errors.NewForbiddenError("you do not have access to this ticket")
	}

	// Buffer the upload while hashing so the digest is known before any
	// bytes hit blob storage. The size ceiling bounds memory use.
	var buf bytes.Buffer
	hasher := sha256.New()
	size, err := io.Copy(io.MultiWriter(&buf, hasher), io.LimitReader(cmd.Content, uc.maxFileSize+1))
	if err != nil {
		uc.logger.Errorw("failed to read upload", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}
	if size == 0 {
		return nil, errors.NewValidationError("file is empty")
	}
	if size > uc.maxFileSize {
		return nil, errors.NewValidationError(fmt.Sprintf("file exceeds maximum size of %d bytes", uc.maxFileSize))
	}

	digest := hex.EncodeToString(hasher.Sum(nil))

	// The same bytes uploaded twice to one ticket dedupe to the existing row.
	existing, err := uc.attachmentRepo.GetBySHA256(ctx, cmd.TicketID, digest)
	if err != nil {
		uc.logger.Errorw("failed to check for duplicate attachment", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}
	if existing != nil {
		return dto.ToAttachmentDTO(existing), nil
	}

	key := storage.KeyFor(cmd.TicketID, digest, cmd.Filename)
	if _, err := uc.blobs.Save(key, &buf); err != nil {
		uc.logger.Errorw("failed to store attachment blob", "key", key, "error", err)
		return nil, err
	}

	att, err := attachment.NewAttachment(cmd.TicketID, cmd.UserID, cmd.Filename, size, cmd.ContentType, key, digest)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.attachmentRepo.Save(ctx, att); err != nil {
		uc.logger.Errorw("failed to save attachment", "ticket_id", cmd.TicketID, "error", err)
		if delErr := uc.blobs.Delete(key); delErr != nil {
			uc.logger.Warnw("failed to remove orphaned blob", "key", key, "error", delErr)
		}
		return nil, err
	}

	uc.logger.Infow("attachment uploaded",
		"attachment_id", att.ID(),
		"ticket_id", cmd.TicketID,
		"filename", cmd.Filename,
		"size", size)
	return dto.ToAttachmentDTO(att), nil
}
