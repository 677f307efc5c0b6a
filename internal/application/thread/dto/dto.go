package dto

import (
	"time"

	"helpdesk/internal/domain/thread"
)

type ThreadDTO struct {
	ID        uint         `json:"id"`
	Subject   string       `json:"subject"`
	CreatorID uint         `json:"creator_id"`
	AgentID   uint         `json:"agent_id"`
	TicketID  *uint        `json:"ticket_id"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	ClosedAt  *time.Time   `json:"closed_at"`
	Messages  []MessageDTO `json:"messages"`
}

type MessageDTO struct {
	ID         uint      `json:"id"`
	Role       string    `json:"role"`
	AuthorID   *uint     `json:"author_id"`
	Content    string    `json:"content"`
	TokensUsed int       `json:"tokens_used"`
	CreatedAt  time.Time `json:"created_at"`
}

type ThreadListItemDTO struct {
	ID        uint   `json:"id"`
	Subject   string `json:"subject"`
	CreatorID uint   `json:"creator_id"`
	AgentID   uint   `json:"agent_id"`
	TicketID  *uint  `json:"ticket_id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func ToThreadDTO(t *thread.Thread) *ThreadDTO {
	if t == nil {
		return nil
	}

	messages := make([]MessageDTO, 0, len(t.Messages()))
	for _, m := range t.Messages() {
		messages = append(messages, ToMessageDTO(m))
	}

	return &ThreadDTO{
		ID:        t.ID(),
		Subject:   t.Subject(),
		CreatorID: t.CreatorID(),
		AgentID:   t.AgentID(),
		TicketID:  t.TicketID(),
		Status:    t.Status().String(),
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
		ClosedAt:  t.ClosedAt(),
		Messages:  messages,
	}
}

func ToMessageDTO(m *thread.Message) MessageDTO {
	return MessageDTO{
		ID:         m.ID(),
		Role:       m.Role().String(),
		AuthorID:   m.AuthorID(),
		Content:    m.Content(),
		TokensUsed: m.TokensUsed(),
		CreatedAt:  m.CreatedAt(),
	}
}

func ToThreadListItemDTO(t *thread.Thread) ThreadListItemDTO {
	return ThreadListItemDTO{
		ID:        t.ID(),
		Subject:   t.Subject(),
		CreatorID: t.CreatorID(),
		AgentID:   t.AgentID(),
		TicketID:  t.TicketID(),
		Status:    t.Status().String(),
		CreatedAt: t.CreatedAt().Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt().Format(time.RFC3339),
	}
}

func ToThreadListItemDTOs(threads []*thread.Thread) []ThreadListItemDTO {
	items := make([]ThreadListItemDTO, 0, len(threads))
	for _, t := range threads {
		items = append(items, ToThreadListItemDTO(t))
	}
	return items
}
