package thread

import (
	"fmt"
	"time"
)

type MessageRole string

const (
	RoleUser   MessageRole = "user"
	RoleAgent  MessageRole = "agent"
	RoleSystem MessageRole = "system"
)

func (r MessageRole) IsValid() bool {
	switch r {
	case RoleUser, RoleAgent, RoleSystem:
		return true
	}
	return false
}

func (r MessageRole) String() string {
	return string(r)
}

type Message struct {
	id         uint
	threadID   uint
	role       MessageRole
	authorID   *uint
	content    string
	tokensUsed int
	createdAt  time.Time
}

// NewUserMessage creates a message authored by a human user.
func NewUserMessage(threadID, authorID uint, content string) (*Message, error) {
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	return newMessage(threadID, RoleUser, &authorID, content, 0)
}

// NewAgentMessage creates a message produced by an AI agent, recording the
// token usage the model reported.
func NewAgentMessage(threadID uint, content string, tokensUsed int) (*Message, error) {
	return newMessage(threadID, RoleAgent, nil, content, tokensUsed)
}

// NewSystemMessage creates an informational message (e.g. "thread linked to
// ticket TKT-...").
func NewSystemMessage(threadID uint, content string) (*Message, error) {
	return newMessage(threadID, RoleSystem, nil, content, 0)
}

func newMessage(threadID uint, role MessageRole, authorID *uint, content string, tokensUsed int) (*Message, error) {
	if threadID == 0 {
		return nil, fmt.Errorf("thread ID is required")
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("content cannot be empty")
	}
	if len(content) > 20000 {
		return nil, fmt.Errorf("content exceeds maximum length of 20000 characters")
	}
	if tokensUsed < 0 {
		return nil, fmt.Errorf("tokens used cannot be negative")
	}

	return &Message{
		threadID:   threadID,
		role:       role,
		authorID:   authorID,
		content:    content,
		tokensUsed: tokensUsed,
		createdAt:  time.Now().UTC(),
	}, nil
}

func ReconstructMessage(
	id uint,
	threadID uint,
	role MessageRole,
	authorID *uint,
	content string,
	tokensUsed int,
	createdAt time.Time,
) (*Message, error) {
	if id == 0 {
		return nil, fmt.Errorf("message ID cannot be zero")
	}
	if threadID == 0 {
		return nil, fmt.Errorf("thread ID is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid message role: %s", role)
	}

	return &Message{
		id:         id,
		threadID:   threadID,
		role:       role,
		authorID:   authorID,
		content:    content,
		tokensUsed: tokensUsed,
		createdAt:  createdAt,
	}, nil
}

func (m *Message) ID() uint {
	return m.id
}

func (m *Message) ThreadID() uint {
	return m.threadID
}

func (m *Message) Role() MessageRole {
	return m.role
}

func (m *Message) AuthorID() *uint {
	return m.authorID
}

func (m *Message) Content() string {
	return m.content
}

func (m *Message) TokensUsed() int {
	return m.tokensUsed
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Message) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("message ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("message ID cannot be zero")
	}
	m.id = id
	return nil
}
