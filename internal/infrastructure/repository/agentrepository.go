package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"helpdesk/internal/domain/agent"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	db "helpdesk/internal/shared/db"
)

type AgentRepository struct {
	db     *gorm.DB
	mapper mappers.AgentMapper
}

func NewAgentRepository(db *gorm.DB) agent.Repository {
	return &AgentRepository{
		db:     db,
		mapper: mappers.NewAgentMapper(),
	}
}

func (r *AgentRepository) Save(ctx context.Context, a *agent.Agent) error {
	model := r.mapper.ToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save agent: %w", err)
	}

	if err := a.SetID(model.ID); err != nil {
		return err
	}

	return nil
}

func (r *AgentRepository) Update(ctx context.Context, a *agent.Agent) error {
	model := r.mapper.ToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.AgentModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"display_name":   model.DisplayName,
			"model_name":     model.ModelName,
			"system_prompt":  model.SystemPrompt,
			"prompt_version": model.PromptVersion,
			"enabled":        model.Enabled,
			"allowed_tools":  model.AllowedTools,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update agent: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("agent not found")
	}

	return nil
}

func (r *AgentRepository) Delete(ctx context.Context, agentID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.AgentModel{}, agentID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete agent: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("agent not found")
	}
	return nil
}

func (r *AgentRepository) GetByID(ctx context.Context, agentID uint) (*agent.Agent, error) {
	var model models.AgentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, agentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("agent not found")
		}
		return nil, fmt.Errorf("failed to find agent: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *AgentRepository) GetBySlug(ctx context.Context, slug string) (*agent.Agent, error) {
	var model models.AgentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("slug = ?", slug).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("agent not found")
		}
		return nil, fmt.Errorf("failed to find agent: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *AgentRepository) List(ctx context.Context, enabledOnly bool) ([]*agent.Agent, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.AgentModel{}).Order("slug ASC")

	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}

	var agentModels []models.AgentModel
	if err := query.Find(&agentModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}

	agents := make([]*agent.Agent, len(agentModels))
	for i, model := range agentModels {
		a, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, err
		}
		agents[i] = a
	}

	return agents, nil
}

func (r *AgentRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Model(&models.AgentModel{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check agent existence: %w", err)
	}

	return count > 0, nil
}
