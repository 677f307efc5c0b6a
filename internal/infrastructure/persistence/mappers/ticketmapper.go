package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between Ticket domain entities and persistence models.
type TicketMapper interface {
	// ToModel converts a ticket domain entity to a persistence model.
	ToModel(t *ticket.Ticket) *models.TicketModel

	// ToDomain converts a ticket persistence model to a domain entity.
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)

	// CommentToModel converts a comment domain entity to a persistence model.
	CommentToModel(c *ticket.Comment) *models.CommentModel

	// CommentToDomain converts a comment persistence model to a domain entity.
	CommentToDomain(model *models.CommentModel) (*ticket.Comment, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

// ToModel converts a ticket domain entity to a persistence model.
func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	model := &models.TicketModel{
		ID:           t.ID(),
		Number:       t.Number(),
		Title:        t.Title(),
		Description:  t.Description(),
		Category:     t.Category().String(),
		Priority:     t.Priority().String(),
		Status:       t.Status().String(),
		CreatorID:    t.CreatorID(),
		AssigneeID:   t.AssigneeID(),
		SLADueTime:   timePtrToMillis(t.SLADueTime()),
		ResponseTime: timePtrToMillis(t.ResponseTime()),
		ResolvedTime: timePtrToMillis(t.ResolvedTime()),
		Version:      t.Version(),
		CreatedAt:    t.CreatedAt().UnixMilli(),
		UpdatedAt:    t.UpdatedAt().UnixMilli(),
		ClosedAt:     timePtrToMillis(t.ClosedAt()),
	}

	if len(t.Tags()) > 0 {
		tagsJSON, _ := json.Marshal(t.Tags())
		model.Tags = datatypes.JSON(tagsJSON)
	}

	if len(t.Metadata()) > 0 {
		metaJSON, _ := json.Marshal(t.Metadata())
		model.Metadata = datatypes.JSON(metaJSON)
	}

	return model
}

// ToDomain converts a ticket persistence model to a domain entity.
// Comments must be loaded separately by the repository.
func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	category, err := vo.NewCategory(model.Category)
	if err != nil {
		return nil, fmt.Errorf("invalid category in ticket record (id=%d): %w", model.ID, err)
	}

	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, fmt.Errorf("invalid priority in ticket record (id=%d): %w", model.ID, err)
	}

	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid status in ticket record (id=%d): %w", model.ID, err)
	}

	var tags []string
	if len(model.Tags) > 0 {
		if err := json.Unmarshal(model.Tags, &tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ticket tags (id=%d): %w", model.ID, err)
		}
	}

	var metadata map[string]interface{}
	if len(model.Metadata) > 0 {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ticket metadata (id=%d): %w", model.ID, err)
		}
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.Number,
		model.Title,
		model.Description,
		category,
		priority,
		status,
		model.CreatorID,
		model.AssigneeID,
		tags,
		metadata,
		millisPtrToTime(model.SLADueTime),
		millisPtrToTime(model.ResponseTime),
		millisPtrToTime(model.ResolvedTime),
		model.Version,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
		millisPtrToTime(model.ClosedAt),
	)
}

// CommentToModel converts a comment domain entity to a persistence model.
func (m *TicketMapperImpl) CommentToModel(c *ticket.Comment) *models.CommentModel {
	return &models.CommentModel{
		ID:         c.ID(),
		TicketID:   c.TicketID(),
		UserID:     c.UserID(),
		Content:    c.Content(),
		IsInternal: c.IsInternal(),
		Source:     c.Source().String(),
		ExternalID: c.ExternalID(),
		CreatedAt:  c.CreatedAt().UnixMilli(),
		UpdatedAt:  c.UpdatedAt().UnixMilli(),
	}
}

// CommentToDomain converts a comment persistence model to a domain entity.
func (m *TicketMapperImpl) CommentToDomain(model *models.CommentModel) (*ticket.Comment, error) {
	return ticket.ReconstructComment(
		model.ID,
		model.TicketID,
		model.UserID,
		model.Content,
		model.IsInternal,
		ticket.CommentSource(model.Source),
		model.ExternalID,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}
