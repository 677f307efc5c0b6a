package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/authorization"
)

func sessionFor(t *testing.T, userID uint, refreshToken string, expiresAt time.Time) *user.Session {
	t.Helper()

	session, err := user.NewSession(userID, "laptop", "203.0.113.9", "test-agent", expiresAt)
	require.NoError(t, err)
	session.RefreshTokenHash = hashToken(refreshToken)
	return session
}

func TestRefreshTokenUseCase_Execute_RotatesHashes(t *testing.T) {
	existing := reconstructActiveUser(t, 10, authorization.RoleCustomer, "hunter2hunter2")
	session := sessionFor(t, 10, "refresh-old", time.Now().UTC().Add(time.Hour))
	oldHash := session.RefreshTokenHash

	mockUsers := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			return existing, nil
		},
	}
	var updated *user.Session
	mockSessions := &mockSessionRepository{
		GetByRefreshTokenHashFunc: func(refreshTokenHash string) (*user.Session, error) {
			if refreshTokenHash == oldHash {
				return session, nil
			}
			return nil, nil
		},
		UpdateFunc: func(s *user.Session) error {
			updated = s
			return nil
		},
	}
	invalidator := &mockInvalidator{}

	useCase := NewRefreshTokenUseCase(mockUsers, mockSessions, &mockJWTService{}, invalidator, &mockLogger{})
	result, err := useCase.Execute(context.Background(), RefreshTokenCommand{RefreshToken: "refresh-old"})

	require.NoError(t, err)
	assert.Equal(t, "access-rotated", result.AccessToken)
	assert.Equal(t, "refresh-rotated", result.RefreshToken)

	require.NotNil(t, updated)
	assert.NotEqual(t, oldHash, updated.RefreshTokenHash)
	assert.Equal(t, hashToken("refresh-rotated"), updated.RefreshTokenHash)
	assert.Equal(t, []string{session.ID}, invalidator.invalidated)
}

func TestRefreshTokenUseCase_Execute_UnknownToken(t *testing.T) {
	useCase := NewRefreshTokenUseCase(&mockUserRepository{}, &mockSessionRepository{}, &mockJWTService{}, &mockInvalidator{}, &mockLogger{})
	_, err := useCase.Execute(context.Background(), RefreshTokenCommand{RefreshToken: "never-issued"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid refresh token")
}

func TestRefreshTokenUseCase_Execute_ExpiredSessionDeleted(t *testing.T) {
	session := sessionFor(t, 10, "refresh-old", time.Now().UTC().Add(-time.Minute))

	var deleted string
	mockSessions := &mockSessionRepository{
		GetByRefreshTokenHashFunc: func(refreshTokenHash string) (*user.Session, error) {
			return session, nil
		},
		DeleteFunc: func(sessionID string) error {
			deleted = sessionID
			return nil
		},
	}

	useCase := NewRefreshTokenUseCase(&mockUserRepository{}, mockSessions, &mockJWTService{}, &mockInvalidator{}, &mockLogger{})
	_, err := useCase.Execute(context.Background(), RefreshTokenCommand{RefreshToken: "refresh-old"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
	assert.Equal(t, session.ID, deleted)
}

func TestRefreshTokenUseCase_Execute_SuspendedUserRejected(t *testing.T) {
	session := sessionFor(t, 10, "refresh-old", time.Now().UTC().Add(time.Hour))
	suspended := reconstructActiveUser(t, 10, authorization.RoleCustomer, "hunter2hunter2")
	require.NoError(t, suspended.Suspend("abuse"))

	mockUsers := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			return suspended, nil
		},
	}
	mockSessions := &mockSessionRepository{
		GetByRefreshTokenHashFunc: func(refreshTokenHash string) (*user.Session, error) {
			return session, nil
		},
	}

	useCase := NewRefreshTokenUseCase(mockUsers, mockSessions, &mockJWTService{}, &mockInvalidator{}, &mockLogger{})
	_, err := useCase.Execute(context.Background(), RefreshTokenCommand{RefreshToken: "refresh-old"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not active")
}

func TestLogoutUseCase_Execute(t *testing.T) {
	session := sessionFor(t, 10, "refresh-old", time.Now().UTC().Add(time.Hour))

	var deleted string
	mockSessions := &mockSessionRepository{
		GetByIDFunc: func(sessionID string) (*user.Session, error) {
			if sessionID == session.ID {
				return session, nil
			}
			return nil, nil
		},
		DeleteFunc: func(sessionID string) error {
			deleted = sessionID
			return nil
		},
	}
	invalidator := &mockInvalidator{}

	useCase := NewLogoutUseCase(mockSessions, invalidator, &mockLogger{})
	err := useCase.Execute(context.Background(), LogoutCommand{SessionID: session.ID, UserID: 10})

	require.NoError(t, err)
	assert.Equal(t, session.ID, deleted)
	assert.Equal(t, []string{session.ID}, invalidator.invalidated)
}

func TestLogoutUseCase_Execute_OtherUsersSession(t *testing.T) {
	session := sessionFor(t, 10, "refresh-old", time.Now().UTC().Add(time.Hour))

	mockSessions := &mockSessionRepository{
		GetByIDFunc: func(sessionID string) (*user.Session, error) {
			return session, nil
		},
	}

	useCase := NewLogoutUseCase(mockSessions, &mockInvalidator{}, &mockLogger{})
	err := useCase.Execute(context.Background(), LogoutCommand{SessionID: session.ID, UserID: 99})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "another user")
}

func TestChangePasswordUseCase_Execute(t *testing.T) {
	existing := reconstructActiveUser(t, 10, authorization.RoleCustomer, "old-password-1")

	mockUsers := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			return existing, nil
		},
	}
	var clearedUserID uint
	mockSessions := &mockSessionRepository{
		DeleteByUserIDFunc: func(userID uint) error {
			clearedUserID = userID
			return nil
		},
	}

	useCase := NewChangePasswordUseCase(mockUsers, mockSessions, &mockHasher{}, &mockLogger{})

	err := useCase.Execute(context.Background(), ChangePasswordCommand{
		UserID:      10,
		OldPassword: "old-password-1",
		NewPassword: "new-password-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "hashed:new-password-1", *existing.PasswordHash())
	assert.Equal(t, uint(10), clearedUserID)

	err = useCase.Execute(context.Background(), ChangePasswordCommand{
		UserID:      10,
		OldPassword: "not-the-password",
		NewPassword: "another-new-pass",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incorrect")
}
