package models

import (
	"helpdesk/internal/shared/constants"
)

type AttachmentModel struct {
	ID          uint   `gorm:"primaryKey"`
	TicketID    uint   `gorm:"not null;index"`
	UploaderID  uint   `gorm:"not null;index"`
	Filename    string `gorm:"size:255;not null"`
	Size        int64  `gorm:"not null"`
	ContentType string `gorm:"size:100;not null"`
	StorageKey  string `gorm:"size:500;not null"`
	SHA256      string `gorm:"size:64;not null;index:idx_attachment_digest"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null"`
}

func (AttachmentModel) TableName() string {
	return constants.TableAttachments
}
