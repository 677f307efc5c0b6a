package dto

import (
	"time"

	"helpdesk/internal/domain/attachment"
)

type AttachmentDTO struct {
	ID          uint      `json:"id"`
	TicketID    uint      `json:"ticket_id"`
	UploaderID  uint      `json:"uploader_id"`
	Filename    string    `json:"filename"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	SHA256      string    `json:"sha256"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToAttachmentDTO(a *attachment.Attachment) *AttachmentDTO {
	if a == nil {
		return nil
	}
	return &AttachmentDTO{
		ID:          a.ID(),
		TicketID:    a.TicketID(),
		UploaderID:  a.UploaderID(),
		Filename:    a.Filename(),
		Size:        a.Size(),
		ContentType: a.ContentType(),
		SHA256:      a.SHA256(),
		CreatedAt:   a.CreatedAt(),
	}
}

func ToAttachmentDTOs(attachments []*attachment.Attachment) []*AttachmentDTO {
	dtos := make([]*AttachmentDTO, 0, len(attachments))
	for _, a := range attachments {
		dtos = append(dtos, ToAttachmentDTO(a))
	}
	return dtos
}
