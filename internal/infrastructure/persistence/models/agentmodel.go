package models

import (
	"gorm.io/datatypes"

	"helpdesk/internal/shared/constants"
)

type AgentModel struct {
	ID            uint   `gorm:"primaryKey"`
	Slug          string `gorm:"uniqueIndex;size:100;not null"`
	DisplayName   string `gorm:"size:100;not null"`
	ModelName     string `gorm:"size:100;not null"`
	SystemPrompt  string `gorm:"type:text;not null"`
	PromptVersion string `gorm:"size:20;not null"`
	Enabled       bool   `gorm:"not null;default:true;index"`
	AllowedTools  datatypes.JSON
	CreatedAt     int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt     int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (AgentModel) TableName() string {
	return constants.TableAgents
}
