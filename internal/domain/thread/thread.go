package thread

import (
	"fmt"
	"time"
)

type ThreadStatus string

const (
	StatusOpen   ThreadStatus = "open"
	StatusClosed ThreadStatus = "closed"
)

func (s ThreadStatus) IsValid() bool {
	return s == StatusOpen || s == StatusClosed
}

func (s ThreadStatus) String() string {
	return string(s)
}

// Thread is a chat conversation between a user and an AI agent. A thread can
// optionally be linked to a ticket, in which case the conversation shows up
// on the ticket timeline.
type Thread struct {
	id        uint
	subject   string
	creatorID uint
	agentID   uint
	ticketID  *uint
	status    ThreadStatus
	createdAt time.Time
	updatedAt time.Time
	closedAt  *time.Time
	messages  []*Message
}

func NewThread(subject string, creatorID, agentID uint) (*Thread, error) {
	if len(subject) == 0 {
		return nil, fmt.Errorf("subject is required")
	}
	if len(subject) > 200 {
		return nil, fmt.Errorf("subject exceeds maximum length of 200 characters")
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}
	if agentID == 0 {
		return nil, fmt.Errorf("agent ID is required")
	}

	now := time.Now().UTC()
	return &Thread{
		subject:   subject,
		creatorID: creatorID,
		agentID:   agentID,
		status:    StatusOpen,
		createdAt: now,
		updatedAt: now,
		messages:  []*Message{},
	}, nil
}

func ReconstructThread(
	id uint,
	subject string,
	creatorID, agentID uint,
	ticketID *uint,
	status ThreadStatus,
	createdAt, updatedAt time.Time,
	closedAt *time.Time,
) (*Thread, error) {
	if id == 0 {
		return nil, fmt.Errorf("thread ID cannot be zero")
	}
	if len(subject) == 0 {
		return nil, fmt.Errorf("subject is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid thread status: %s", status)
	}

	return &Thread{
		id:        id,
		subject:   subject,
		creatorID: creatorID,
		agentID:   agentID,
		ticketID:  ticketID,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
		closedAt:  closedAt,
		messages:  []*Message{},
	}, nil
}

func (t *Thread) ID() uint {
	return t.id
}

func (t *Thread) Subject() string {
	return t.subject
}

func (t *Thread) CreatorID() uint {
	return t.creatorID
}

func (t *Thread) AgentID() uint {
	return t.agentID
}

func (t *Thread) TicketID() *uint {
	return t.ticketID
}

func (t *Thread) Status() ThreadStatus {
	return t.status
}

func (t *Thread) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Thread) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Thread) ClosedAt() *time.Time {
	return t.closedAt
}

func (t *Thread) Messages() []*Message {
	messagesCopy := make([]*Message, len(t.messages))
	copy(messagesCopy, t.messages)
	return messagesCopy
}

func (t *Thread) IsOpen() bool {
	return t.status == StatusOpen
}

func (t *Thread) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("thread ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("thread ID cannot be zero")
	}
	t.id = id
	return nil
}

// LinkTicket associates the thread with a ticket. A thread links to at most
// one ticket.
func (t *Thread) LinkTicket(ticketID uint) error {
	if ticketID == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	if t.ticketID != nil {
		return fmt.Errorf("thread is already linked to ticket %d", *t.ticketID)
	}

	t.ticketID = &ticketID
	t.updatedAt = time.Now().UTC()
	return nil
}

// AttachMessages replaces the in-memory message list without touching
// timestamps or status checks. Used when rehydrating from storage.
func (t *Thread) AttachMessages(messages []*Message) {
	if messages == nil {
		messages = []*Message{}
	}
	t.messages = messages
}

func (t *Thread) AddMessage(msg *Message) error {
	if msg == nil {
		return fmt.Errorf("message cannot be nil")
	}
	if msg.ThreadID() != t.id {
		return fmt.Errorf("message thread ID mismatch")
	}
	if !t.IsOpen() {
		return fmt.Errorf("cannot post to a closed thread")
	}

	t.messages = append(t.messages, msg)
	t.updatedAt = time.Now().UTC()
	return nil
}

func (t *Thread) Close() error {
	if t.status == StatusClosed {
		return nil
	}

	now := time.Now().UTC()
	t.status = StatusClosed
	t.closedAt = &now
	t.updatedAt = now
	return nil
}

func (t *Thread) Reopen() error {
	if t.status == StatusOpen {
		return nil
	}

	t.status = StatusOpen
	t.closedAt = nil
	t.updatedAt = time.Now().UTC()
	return nil
}

func (t *Thread) CanBeViewedBy(userID uint, role string) bool {
	if role == "admin" || role == "support_agent" {
		return true
	}
	return t.creatorID == userID
}
