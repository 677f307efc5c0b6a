package mappers

import (
	"helpdesk/internal/domain/attachment"
	"helpdesk/internal/infrastructure/persistence/models"
)

// AttachmentMapper handles the conversion between Attachment domain entities and persistence models.
type AttachmentMapper interface {
	ToModel(a *attachment.Attachment) *models.AttachmentModel
	ToDomain(model *models.AttachmentModel) (*attachment.Attachment, error)
}

type AttachmentMapperImpl struct{}

func NewAttachmentMapper() AttachmentMapper {
	return &AttachmentMapperImpl{}
}

func (m *AttachmentMapperImpl) ToModel(a *attachment.Attachment) *models.AttachmentModel {
	return &models.AttachmentModel{
		ID:          a.ID(),
		TicketID:    a.TicketID(),
		UploaderID:  a.UploaderID(),
		Filename:    a.Filename(),
		Size:        a.Size(),
		ContentType: a.ContentType(),
		StorageKey:  a.StorageKey(),
		SHA256:      a.SHA256(),
		CreatedAt:   a.CreatedAt().UnixMilli(),
	}
}

func (m *AttachmentMapperImpl) ToDomain(model *models.AttachmentModel) (*attachment.Attachment, error) {
	return attachment.ReconstructAttachment(
		model.ID,
		model.TicketID,
		model.UploaderID,
		model.Filename,
		model.Size,
		model.ContentType,
		model.StorageKey,
		model.SHA256,
		millisToTime(model.CreatedAt),
	)
}
