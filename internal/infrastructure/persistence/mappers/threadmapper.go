package mappers

import (
	"fmt"

	"helpdesk/internal/domain/thread"
	"helpdesk/internal/infrastructure/persistence/models"
)

// ThreadMapper handles the conversion between Thread domain entities and persistence models.
type ThreadMapper interface {
	ToModel(t *thread.Thread) *models.ThreadModel
	ToDomain(model *models.ThreadModel) (*thread.Thread, error)
	MessageToModel(msg *thread.Message) *models.MessageModel
	MessageToDomain(model *models.MessageModel) (*thread.Message, error)
}

type ThreadMapperImpl struct{}

func NewThreadMapper() ThreadMapper {
	return &ThreadMapperImpl{}
}

func (m *ThreadMapperImpl) ToModel(t *thread.Thread) *models.ThreadModel {
	return &models.ThreadModel{
		ID:        t.ID(),
		Subject:   t.Subject(),
		CreatorID: t.CreatorID(),
		AgentID:   t.AgentID(),
		TicketID:  t.TicketID(),
		Status:    t.Status().String(),
		CreatedAt: t.CreatedAt().UnixMilli(),
		UpdatedAt: t.UpdatedAt().UnixMilli(),
		ClosedAt:  timePtrToMillis(t.ClosedAt()),
	}
}

// ToDomain converts a thread persistence model to a domain entity.
// Messages must be loaded separately by the repository.
func (m *ThreadMapperImpl) ToDomain(model *models.ThreadModel) (*thread.Thread, error) {
	status := thread.ThreadStatus(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status in thread record (id=%d): %s", model.ID, model.Status)
	}

	return thread.ReconstructThread(
		model.ID,
		model.Subject,
		model.CreatorID,
		model.AgentID,
		model.TicketID,
		status,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
		millisPtrToTime(model.ClosedAt),
	)
}

func (m *ThreadMapperImpl) MessageToModel(msg *thread.Message) *models.MessageModel {
	return &models.MessageModel{
		ID:         msg.ID(),
		ThreadID:   msg.ThreadID(),
		Role:       msg.Role().String(),
		AuthorID:   msg.AuthorID(),
		Content:    msg.Content(),
		TokensUsed: msg.TokensUsed(),
		CreatedAt:  msg.CreatedAt().UnixMilli(),
	}
}

func (m *ThreadMapperImpl) MessageToDomain(model *models.MessageModel) (*thread.Message, error) {
	return thread.ReconstructMessage(
		model.ID,
		model.ThreadID,
		thread.MessageRole(model.Role),
		model.AuthorID,
		model.Content,
		model.TokensUsed,
		millisToTime(model.CreatedAt),
	)
}
