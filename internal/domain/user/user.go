package user

import (
	"fmt"
	"time"

	"helpdesk/internal/shared/authorization"

	vo "helpdesk/internal/domain/user/valueobjects"
)

// User represents the user aggregate root (pure domain model without persistence concerns)
type User struct {
	id           uint
	uuid         string
	email        *vo.Email
	name         *vo.Name
	role         authorization.UserRole
	status       vo.Status
	passwordHash *string
	createdAt    time.Time
	updatedAt    time.Time
	version      int
}

// NewUser creates a new user aggregate with initial values
func NewUser(uuid string, email *vo.Email, name *vo.Name, role authorization.UserRole) (*User, error) {
	if uuid == "" {
		return nil, fmt.Errorf("uuid is required")
	}
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if name == nil {
		return nil, fmt.Errorf("name is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	now := time.Now().UTC()
	return &User{
		uuid:      uuid,
		email:     email,
		name:      name,
		role:      role,
		status:    vo.StatusPending,
		createdAt: now,
		updatedAt: now,
		version:   1,
	}, nil
}

// ReconstructUser reconstructs a user from persistence
func ReconstructUser(
	id uint,
	uuid string,
	email *vo.Email,
	name *vo.Name,
	role authorization.UserRole,
	status vo.Status,
	passwordHash *string,
	createdAt, updatedAt time.Time,
	version int,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if uuid == "" {
		return nil, fmt.Errorf("uuid is required")
	}
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if name == nil {
		return nil, fmt.Errorf("name is required")
	}

	return &User{
		id:           id,
		uuid:         uuid,
		email:        email,
		name:         name,
		role:         role,
		status:       status,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		version:      version,
	}, nil
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) UUID() string {
	return u.uuid
}

func (u *User) Email() *vo.Email {
	return u.email
}

func (u *User) Name() *vo.Name {
	return u.name
}

func (u *User) Role() authorization.UserRole {
	return u.role
}

func (u *User) Status() vo.Status {
	return u.status
}

func (u *User) PasswordHash() *string {
	return u.passwordHash
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// Version returns the aggregate version for optimistic locking
func (u *User) Version() int {
	return u.version
}

// SetID sets the user ID (only for persistence layer use)
func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// SetPasswordHash stores the bcrypt hash produced by the auth layer.
func (u *User) SetPasswordHash(hash string) error {
	if hash == "" {
		return fmt.Errorf("password hash cannot be empty")
	}
	u.passwordHash = &hash
	u.updatedAt = time.Now().UTC()
	return nil
}

// HasPassword reports whether the user has a local password (OAuth-only users
// do not).
func (u *User) HasPassword() bool {
	return u.passwordHash != nil && *u.passwordHash != ""
}

// UpdateEmail updates the user's email address
func (u *User) UpdateEmail(newEmail *vo.Email) error {
	if newEmail == nil {
		return fmt.Errorf("email cannot be nil")
	}

	if u.email.Equals(newEmail) {
		return nil
	}

	u.email = newEmail
	u.updatedAt = time.Now().UTC()
	u.version++
	return nil
}

// UpdateName updates the user's name
func (u *User) UpdateName(newName *vo.Name) error {
	if newName == nil {
		return fmt.Errorf("name cannot be nil")
	}

	if u.name.Equals(newName) {
		return nil
	}

	u.name = newName
	u.updatedAt = time.Now().UTC()
	u.version++
	return nil
}

// ChangeRole changes the user's role. Only admins may call this; enforcement
// lives in the application layer.
func (u *User) ChangeRole(newRole authorization.UserRole) error {
	if !newRole.IsValid() {
		return fmt.Errorf("invalid role: %s", newRole)
	}
	if u.role == newRole {
		return nil
	}

	u.role = newRole
	u.updatedAt = time.Now().UTC()
	u.version++
	return nil
}

// Activate activates a pending or inactive user
func (u *User) Activate() error {
	if u.status.IsActive() {
		return nil
	}

	if !u.status.CanTransitionTo(vo.StatusActive) {
		return fmt.Errorf("cannot activate user with status %s", u.status.String())
	}

	u.status = vo.StatusActive
	u.updatedAt = time.Now().UTC()
	u.version++
	return nil
}

// Deactivate deactivates an active user
func (u *User) Deactivate() error {
	if u.status.IsInactive() {
		return nil
	}

	if !u.status.CanTransitionTo(vo.StatusInactive) {
		return fmt.Errorf("cannot deactivate user with status %s", u.status.String())
	}

	u.status = vo.StatusInactive
	u.updatedAt = time.Now().UTC()
	u.version++
	return nil
}

// Suspend suspends a user (typically for policy violations)
func (u *User) Suspend(reason string) error {
	if u.status.IsSuspended() {
		return nil
	}

	if reason == "" {
		return fmt.Errorf("suspension reason is required")
	}

	if !u.status.CanTransitionTo(vo.StatusSuspended) {
		return fmt.Errorf("cannot suspend user with status %s", u.status.String())
	}

	u.status = vo.StatusSuspended
	u.updatedAt = time.Now().UTC()
	u.version++
	return nil
}

// Delete marks the user as deleted (soft delete)
func (u *User) Delete() error {
	if u.status.IsDeleted() {
		return nil
	}

	if !u.status.CanTransitionTo(vo.StatusDeleted) {
		return fmt.Errorf("cannot delete user with status %s", u.status.String())
	}

	u.status = vo.StatusDeleted
	u.updatedAt = time.Now().UTC()
	u.version++
	return nil
}

// CanPerformActions checks if the user can perform actions
func (u *User) CanPerformActions() bool {
	return u.status.CanPerformActions()
}

// Validate performs domain-level validation
func (u *User) Validate() error {
	if u.uuid == "" {
		return fmt.Errorf("uuid is required")
	}
	if u.email == nil {
		return fmt.Errorf("email is required")
	}
	if u.name == nil {
		return fmt.Errorf("name is required")
	}
	if !u.role.IsValid() {
		return fmt.Errorf("invalid role: %s", u.role)
	}
	if !vo.ValidStatuses[u.status] {
		return fmt.Errorf("invalid status: %s", u.status)
	}
	return nil
}
