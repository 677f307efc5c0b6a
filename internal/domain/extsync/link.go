package extsync

import (
	"fmt"
	"time"
)

// Platform identifies an external issue tracker.
type Platform string

const (
	PlatformJira       Platform = "jira"
	PlatformServiceNow Platform = "servicenow"
)

func (p Platform) IsValid() bool {
	return p == PlatformJira || p == PlatformServiceNow
}

func (p Platform) String() string {
	return string(p)
}

func NewPlatform(s string) (Platform, error) {
	p := Platform(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid platform: %s", s)
	}
	return p, nil
}

// LinkState tracks the health of a ticket's external link.
type LinkState string

const (
	LinkActive   LinkState = "active"
	LinkPaused   LinkState = "paused"
	LinkBroken   LinkState = "broken"
	LinkArchived LinkState = "archived"
)

func (s LinkState) IsValid() bool {
	switch s {
	case LinkActive, LinkPaused, LinkBroken, LinkArchived:
		return true
	}
	return false
}

// ExternalLink ties a ticket to an issue in an external tracker. A ticket has
// at most one link per platform.
type ExternalLink struct {
	id          uint
	ticketID    uint
	platform    Platform
	externalKey string
	state       LinkState
	lastSyncAt  *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

func NewExternalLink(ticketID uint, platform Platform, externalKey string) (*ExternalLink, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !platform.IsValid() {
		return nil, fmt.Errorf("invalid platform: %s", platform)
	}
	if externalKey == "" {
		return nil, fmt.Errorf("external key is required")
	}

	now := time.Now().UTC()
	return &ExternalLink{
		ticketID:    ticketID,
		platform:    platform,
		externalKey: externalKey,
		state:       LinkActive,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructExternalLink(
	id uint,
	ticketID uint,
	platform Platform,
	externalKey string,
	state LinkState,
	lastSyncAt *time.Time,
	createdAt, updatedAt time.Time,
) (*ExternalLink, error) {
	if id == 0 {
		return nil, fmt.Errorf("link ID cannot be zero")
	}
	if !platform.IsValid() {
		return nil, fmt.Errorf("invalid platform: %s", platform)
	}
	if !state.IsValid() {
		return nil, fmt.Errorf("invalid link state: %s", state)
	}

	return &ExternalLink{
		id:          id,
		ticketID:    ticketID,
		platform:    platform,
		externalKey: externalKey,
		state:       state,
		lastSyncAt:  lastSyncAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (l *ExternalLink) ID() uint {
	return l.id
}

func (l *ExternalLink) TicketID() uint {
	return l.ticketID
}

func (l *ExternalLink) Platform() Platform {
	return l.platform
}

func (l *ExternalLink) ExternalKey() string {
	return l.externalKey
}

func (l *ExternalLink) State() LinkState {
	return l.state
}

func (l *ExternalLink) LastSyncAt() *time.Time {
	return l.lastSyncAt
}

func (l *ExternalLink) CreatedAt() time.Time {
	return l.createdAt
}

func (l *ExternalLink) UpdatedAt() time.Time {
	return l.updatedAt
}

func (l *ExternalLink) SetID(id uint) error {
	if l.id != 0 {
		return fmt.Errorf("link ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("link ID cannot be zero")
	}
	l.id = id
	return nil
}

func (l *ExternalLink) IsActive() bool {
	return l.state == LinkActive
}

// MarkSynced records a successful sync and repairs a broken link.
func (l *ExternalLink) MarkSynced() {
	now := time.Now().UTC()
	l.lastSyncAt = &now
	if l.state == LinkBroken {
		l.state = LinkActive
	}
	l.updatedAt = now
}

// MarkBroken flags the link after repeated sync failures. Paused and archived
// links stay as they are.
func (l *ExternalLink) MarkBroken() {
	if l.state != LinkActive {
		return
	}
	l.state = LinkBroken
	l.updatedAt = time.Now().UTC()
}

func (l *ExternalLink) Pause() {
	if l.state == LinkArchived {
		return
	}
	l.state = LinkPaused
	l.updatedAt = time.Now().UTC()
}

func (l *ExternalLink) Resume() {
	if l.state != LinkPaused {
		return
	}
	l.state = LinkActive
	l.updatedAt = time.Now().UTC()
}

func (l *ExternalLink) Archive() {
	if l.state == LinkArchived {
		return
	}
	l.state = LinkArchived
	l.updatedAt = time.Now().UTC()
}
