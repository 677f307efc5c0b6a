package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"helpdesk/internal/domain/thread"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	db "helpdesk/internal/shared/db"
)

// allowedThreadOrderByFields defines the whitelist of allowed ORDER BY fields
// to prevent SQL injection attacks.
var allowedThreadOrderByFields = map[string]bool{
	"id":         true,
	"subject":    true,
	"status":     true,
	"creator_id": true,
	"agent_id":   true,
	"created_at": true,
	"updated_at": true,
}

type ThreadRepository struct {
	db     *gorm.DB
	mapper mappers.ThreadMapper
}

func NewThreadRepository(db *gorm.DB) *ThreadRepository {
	return &ThreadRepository{
		db:     db,
		mapper: mappers.NewThreadMapper(),
	}
}

func (r *ThreadRepository) Save(ctx context.Context, t *thread.Thread) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save thread: %w", err)
	}

	if err := t.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *ThreadRepository) Update(ctx context.Context, t *thread.Thread) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.ThreadModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"subject":   model.Subject,
			"ticket_id": model.TicketID,
			"status":    model.Status,
			"closed_at": model.ClosedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update thread: %w", result.Error)
	}

	return nil
}

func (r *ThreadRepository) Delete(ctx context.Context, threadID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("thread_id = ?", threadID).Delete(&models.MessageModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete thread messages: %w", err)
	}

	result := tx.Delete(&models.ThreadModel{}, threadID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete thread: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("thread not found")
	}
	return nil
}

func (r *ThreadRepository) GetByID(ctx context.Context, threadID uint) (*thread.Thread, error) {
	var model models.ThreadModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, threadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("thread not found")
		}
		return nil, fmt.Errorf("failed to find thread: %w", err)
	}

	t, err := r.mapper.ToDomain(&model)
	if err != nil {
		return nil, err
	}

	if err := r.loadMessages(ctx, t, model.ID); err != nil {
		return nil, err
	}

	return t, nil
}

func (r *ThreadRepository) List(
	ctx context.Context,
	filter thread.ThreadFilter,
) ([]*thread.Thread, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.ThreadModel{})

	if filter.CreatorID != nil {
		query = query.Where("creator_id = ?", *filter.CreatorID)
	}
	if filter.AgentID != nil {
		query = query.Where("agent_id = ?", *filter.AgentID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count threads: %w", err)
	}

	sortBy := strings.ToLower(filter.SortBy)
	if sortBy != "" && allowedThreadOrderByFields[sortBy] {
		order := strings.ToUpper(filter.SortOrder)
		if order != "ASC" && order != "DESC" {
			order = "DESC"
		}
		query = query.Order(sortBy + " " + order)
	} else {
		query = query.Order("updated_at DESC")
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var threadModels []models.ThreadModel
	if err := query.Find(&threadModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list threads: %w", err)
	}

	threads := make([]*thread.Thread, len(threadModels))
	for i, model := range threadModels {
		t, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, 0, err
		}
		threads[i] = t
	}

	return threads, total, nil
}

func (r *ThreadRepository) GetByTicketID(ctx context.Context, ticketID uint) ([]*thread.Thread, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var threadModels []models.ThreadModel
	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&threadModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find threads by ticket: %w", err)
	}

	threads := make([]*thread.Thread, len(threadModels))
	for i, model := range threadModels {
		t, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, err
		}
		threads[i] = t
	}

	return threads, nil
}

// loadMessages queries messages for a thread and attaches them in order.
func (r *ThreadRepository) loadMessages(ctx context.Context, t *thread.Thread, threadID uint) error {
	var messageModels []models.MessageModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("thread_id = ?", threadID).
		Order("created_at ASC").
		Find(&messageModels).Error; err != nil {
		return fmt.Errorf("failed to load messages: %w", err)
	}

	messages := make([]*thread.Message, len(messageModels))
	for i, mm := range messageModels {
		msg, err := r.mapper.MessageToDomain(&mm)
		if err != nil {
			return err
		}
		messages[i] = msg
	}
	t.AttachMessages(messages)

	return nil
}
