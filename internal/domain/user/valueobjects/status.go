package valueobjects

import (
	"fmt"
	"strings"
)

// Status represents the user status value object
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusPending   Status = "pending"
	StatusSuspended Status = "suspended"
	StatusDeleted   Status = "deleted"
)

// ValidStatuses contains all valid status values
var ValidStatuses = map[Status]bool{
	StatusActive:    true,
	StatusInactive:  true,
	StatusPending:   true,
	StatusSuspended: true,
	StatusDeleted:   true,
}

// StatusTransitions defines allowed status transitions
var StatusTransitions = map[Status][]Status{
	StatusPending: {
		StatusActive,
		StatusInactive,
		StatusDeleted,
	},
	StatusActive: {
		StatusInactive,
		StatusSuspended,
		StatusDeleted,
	},
	StatusInactive: {
		StatusActive,
		StatusDeleted,
	},
	StatusSuspended: {
		StatusActive,
		StatusInactive,
		StatusDeleted,
	},
	StatusDeleted: {
		// No transitions from deleted status
	},
}

// NewStatus creates a new Status value object with validation
func NewStatus(value string) (*Status, error) {
	status := Status(value)

	if value == "" {
		// Default to pending for new users
		status = StatusPending
		return &status, nil
	}

	if !ValidStatuses[status] {
		return nil, fmt.Errorf("invalid status: %s", value)
	}

	return &status, nil
}

// ParseStatus parses a string to Status (case-insensitive)
func ParseStatus(value string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	status := Status(normalized)

	if normalized == "" {
		return "", fmt.Errorf("status cannot be empty")
	}

	if !ValidStatuses[status] {
		return "", fmt.Errorf("invalid status: %s", value)
	}

	return status, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsActive() bool {
	return s == StatusActive
}

func (s Status) IsInactive() bool {
	return s == StatusInactive
}

func (s Status) IsPending() bool {
	return s == StatusPending
}

func (s Status) IsSuspended() bool {
	return s == StatusSuspended
}

func (s Status) IsDeleted() bool {
	return s == StatusDeleted
}

// CanTransitionTo checks if the current status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	allowedTransitions, exists := StatusTransitions[s]
	if !exists {
		return false
	}

	for _, allowed := range allowedTransitions {
		if allowed == target {
			return true
		}
	}

	return false
}

// RequiresVerification checks if the status requires verification before activation
func (s Status) RequiresVerification() bool {
	return s == StatusPending
}

// CanPerformActions checks if a user with this status can perform actions
func (s Status) CanPerformActions() bool {
	return s == StatusActive
}

// MarshalJSON implements json.Marshaler interface
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler interface
func (s *Status) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}

	status, err := NewStatus(str)
	if err != nil {
		return err
	}

	*s = *status
	return nil
}
