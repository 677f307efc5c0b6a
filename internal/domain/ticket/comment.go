package ticket

import (
	"fmt"
	"time"
)

// CommentSource identifies where a comment originated.
type CommentSource string

const (
	SourceHelpdesk   CommentSource = "helpdesk"
	SourceJira       CommentSource = "jira"
	SourceServiceNow CommentSource = "servicenow"
)

func (s CommentSource) IsValid() bool {
	switch s {
	case SourceHelpdesk, SourceJira, SourceServiceNow:
		return true
	}
	return false
}

// IsExternal reports whether the comment was mirrored from an external tracker.
func (s CommentSource) IsExternal() bool {
	return s == SourceJira || s == SourceServiceNow
}

func (s CommentSource) String() string {
	return string(s)
}

type Comment struct {
	id         uint
	ticketID   uint
	userID     uint
	content    string
	isInternal bool
	source     CommentSource
	externalID string
	createdAt  time.Time
	updatedAt  time.Time
}

func NewComment(
	ticketID uint,
	userID uint,
	content string,
	isInternal bool,
) (*Comment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("content cannot be empty")
	}
	if len(content) > 5000 {
		return nil, fmt.Errorf("content exceeds maximum length of 5000 characters")
	}

	now := time.Now().UTC()
	return &Comment{
		ticketID:   ticketID,
		userID:     userID,
		content:    content,
		isInternal: isInternal,
		source:     SourceHelpdesk,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// NewExternalComment creates a comment mirrored from an external tracker.
// userID is the service account the mirrored comment is attributed to.
func NewExternalComment(
	ticketID uint,
	userID uint,
	content string,
	source CommentSource,
	externalID string,
) (*Comment, error) {
	if !source.IsExternal() {
		return nil, fmt.Errorf("source %s is not an external tracker", source)
	}
	if len(externalID) == 0 {
		return nil, fmt.Errorf("external comment ID is required")
	}

	c, err := NewComment(ticketID, userID, content, false)
	if err != nil {
		return nil, err
	}
	c.source = source
	c.externalID = externalID
	return c, nil
}

func ReconstructComment(
	id uint,
	ticketID uint,
	userID uint,
	content string,
	isInternal bool,
	source CommentSource,
	externalID string,
	createdAt, updatedAt time.Time,
) (*Comment, error) {
	if id == 0 {
		return nil, fmt.Errorf("comment ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if source == "" {
		source = SourceHelpdesk
	}
	if !source.IsValid() {
		return nil, fmt.Errorf("invalid comment source: %s", source)
	}

	return &Comment{
		id:         id,
		ticketID:   ticketID,
		userID:     userID,
		content:    content,
		isInternal: isInternal,
		source:     source,
		externalID: externalID,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (c *Comment) ID() uint {
	return c.id
}

func (c *Comment) TicketID() uint {
	return c.ticketID
}

func (c *Comment) UserID() uint {
	return c.userID
}

func (c *Comment) Content() string {
	return c.content
}

func (c *Comment) IsInternal() bool {
	return c.isInternal
}

func (c *Comment) Source() CommentSource {
	return c.source
}

func (c *Comment) ExternalID() string {
	return c.externalID
}

// IsExternal reports whether the comment was mirrored from an external tracker.
func (c *Comment) IsExternal() bool {
	return c.source.IsExternal()
}

func (c *Comment) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Comment) UpdatedAt() time.Time {
	return c.updatedAt
}

func (c *Comment) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("comment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("comment ID cannot be zero")
	}
	c.id = id
	return nil
}

func (c *Comment) UpdateContent(content string) error {
	if c.IsExternal() {
		return fmt.Errorf("externally mirrored comments cannot be edited")
	}
	if len(content) == 0 {
		return fmt.Errorf("content cannot be empty")
	}
	if len(content) > 5000 {
		return fmt.Errorf("content exceeds maximum length of 5000 characters")
	}

	c.content = content
	c.updatedAt = time.Now().UTC()
	return nil
}
