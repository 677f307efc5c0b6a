package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"helpdesk/internal/domain/thread"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	db "helpdesk/internal/shared/db"
)

type MessageRepository struct {
	db     *gorm.DB
	mapper mappers.ThreadMapper
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{
		db:     db,
		mapper: mappers.NewThreadMapper(),
	}
}

func (r *MessageRepository) Save(ctx context.Context, msg *thread.Message) error {
	model := r.mapper.MessageToModel(msg)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}

	if err := msg.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *MessageRepository) GetByThreadID(ctx context.Context, threadID uint) ([]*thread.Message, error) {
	var messageModels []models.MessageModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("thread_id = ?", threadID).
		Order("created_at ASC").
		Find(&messageModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find messages: %w", err)
	}

	messages := make([]*thread.Message, len(messageModels))
	for i, model := range messageModels {
		msg, err := r.mapper.MessageToDomain(&model)
		if err != nil {
			return nil, err
		}
		messages[i] = msg
	}

	return messages, nil
}

func (r *MessageRepository) CountByThreadID(ctx context.Context, threadID uint) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Model(&models.MessageModel{}).
		Where("thread_id = ?", threadID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}

	return count, nil
}
