package models

import (
	"helpdesk/internal/shared/constants"
)

type ThreadModel struct {
	ID        uint   `gorm:"primaryKey"`
	Subject   string `gorm:"size:200;not null"`
	CreatorID uint   `gorm:"not null;index"`
	AgentID   uint   `gorm:"not null;index"`
	TicketID  *uint  `gorm:"index"`
	Status    string `gorm:"size:20;not null;index"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`
	ClosedAt  *int64
}

func (ThreadModel) TableName() string {
	return constants.TableThreads
}

type MessageModel struct {
	ID         uint   `gorm:"primaryKey"`
	ThreadID   uint   `gorm:"not null;index"`
	Role       string `gorm:"size:20;not null"`
	AuthorID   *uint  `gorm:"index"`
	Content    string `gorm:"type:text;not null"`
	TokensUsed int    `gorm:"not null;default:0"`
	CreatedAt  int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (MessageModel) TableName() string {
	return constants.TableThreadMessages
}
