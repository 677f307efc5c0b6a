package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/user"
	vo "helpdesk/internal/domain/user/valueobjects"
	"helpdesk/internal/infrastructure/auth"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/constants"
	"helpdesk/internal/shared/logger"
)

const testUserUUID = "c4d1e2f3-0000-4000-8000-000000000007"

func testUser(t *testing.T, id uint, role authorization.UserRole) *user.User {
	t.Helper()
	email, err := vo.NewEmail("dana@example.com")
	require.NoError(t, err)
	name, err := vo.NewName("Dana Reyes")
	require.NoError(t, err)
	u, err := user.ReconstructUser(
		id,
		testUserUUID,
		email,
		name,
		role,
		vo.StatusActive,
		nil,
		time.Now().Add(-time.Hour),
		time.Now(),
		1,
	)
	require.NoError(t, err)
	return u
}

func newTestAuthMiddleware(t *testing.T, accessExpMinutes int) (*AuthMiddleware, *auth.JWTService) {
	t.Helper()
	jwtService := auth.NewJWTService("test-secret", accessExpMinutes, 7)

	u := testUser(t, 7, authorization.RoleSupportAgent)
	userRepo := &mockUserRepository{
		GetByUUIDFunc: func(ctx context.Context, uuid string) (*user.User, error) {
			return u, nil
		},
	}
	sessionRepo := &mockSessionRepository{}

	m := NewAuthMiddleware(jwtService, auth.NewTokenCache(), sessionRepo, userRepo, &mockLogger{})
	return m, jwtService
}

func performRequest(t *testing.T, m *AuthMiddleware, token string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/tickets", nil)
	if token != "" {
		c.Request.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}

	m.RequireAuth()(c)
	return w
}

func issueSession(t *testing.T, m *AuthMiddleware, jwtService *auth.JWTService) string {
	t.Helper()

	pair, err := jwtService.Generate(testUserUUID, "sess-http-1", authorization.RoleSupportAgent)
	require.NoError(t, err)

	session := &user.Session{
		ID:        "sess-http-1",
		UserID:    7,
		TokenHash: hashAccessToken(pair.AccessToken),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	m.sessionRepo.(*mockSessionRepository).GetByIDFunc = func(id string) (*user.Session, error) {
		return session, nil
	}
	return pair.AccessToken
}

func TestRequireAuth_Success(t *testing.T) {
	m, jwtService := newTestAuthMiddleware(t, 15)
	token := issueSession(t, m, jwtService)

	w := performRequest(t, m, token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-Token-Refresh-Suggested"))
}

func TestRequireAuth_MissingToken(t *testing.T) {
	m, _ := newTestAuthMiddleware(t, 15)

	w := performRequest(t, m, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_RefreshTokenRejected(t *testing.T) {
	m, jwtService := newTestAuthMiddleware(t, 15)

	pair, err := jwtService.Generate(testUserUUID, "sess-http-1", authorization.RoleSupportAgent)
	require.NoError(t, err)

	w := performRequest(t, m, pair.RefreshToken)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_SuggestsRefreshNearExpiry(t *testing.T) {
	// A 3 minute access token is already inside the 5 minute refresh window.
	m, jwtService := newTestAuthMiddleware(t, 3)
	token := issueSession(t, m, jwtService)

	w := performRequest(t, m, token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get("X-Token-Refresh-Suggested"))
}

type mockUserRepository struct {
	CreateFunc        func(ctx context.Context, u *user.User) error
	GetByIDFunc       func(ctx context.Context, id uint) (*user.User, error)
	GetByIDsFunc      func(ctx context.Context, ids []uint) ([]*user.User, error)
	GetByUUIDFunc     func(ctx context.Context, uuid string) (*user.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*user.User, error)
	UpdateFunc        func(ctx context.Context, u *user.User) error
	DeleteFunc        func(ctx context.Context, id uint) error
	ListFunc          func(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByUUID(ctx context.Context, uuid string) (*user.User, error) {
	if m.GetByUUIDFunc != nil {
		return m.GetByUUIDFunc(ctx, uuid)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockUserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

type mockSessionRepository struct {
	CreateFunc                func(session *user.Session) error
	GetByIDFunc               func(id string) (*user.Session, error)
	GetByUserIDFunc           func(userID uint) ([]*user.Session, error)
	GetByRefreshTokenHashFunc func(hash string) (*user.Session, error)
	UpdateFunc                func(session *user.Session) error
	DeleteFunc                func(id string) error
	DeleteByUserIDFunc        func(userID uint) error
	DeleteExpiredFunc         func() error
}

func (m *mockSessionRepository) Create(session *user.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(session)
	}
	return nil
}

func (m *mockSessionRepository) GetByID(id string) (*user.Session, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(id)
	}
	return nil, nil
}

func (m *mockSessionRepository) GetByUserID(userID uint) ([]*user.Session, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(userID)
	}
	return nil, nil
}

func (m *mockSessionRepository) GetByRefreshTokenHash(hash string) (*user.Session, error) {
	if m.GetByRefreshTokenHashFunc != nil {
		return m.GetByRefreshTokenHashFunc(hash)
	}
	return nil, nil
}

func (m *mockSessionRepository) Update(session *user.Session) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(session)
	}
	return nil
}

func (m *mockSessionRepository) Delete(id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

func (m *mockSessionRepository) DeleteByUserID(userID uint) error {
	if m.DeleteByUserIDFunc != nil {
		return m.DeleteByUserIDFunc(userID)
	}
	return nil
}

func (m *mockSessionRepository) DeleteExpired() error {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc()
	}
	return nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)        {}
func (m *mockLogger) Info(msg string, args ...any)         {}
func (m *mockLogger) Warn(msg string, args ...any)         {}
func (m *mockLogger) Error(msg string, args ...any)        {}
func (m *mockLogger) Fatal(msg string, args ...any)        {}
func (m *mockLogger) Debugw(msg string, kv ...interface{}) {}
func (m *mockLogger) Infow(msg string, kv ...interface{})  {}
func (m *mockLogger) Warnw(msg string, kv ...interface{})  {}
func (m *mockLogger) Errorw(msg string, kv ...interface{}) {}
func (m *mockLogger) Fatalw(msg string, kv ...interface{}) {}
func (m *mockLogger) With(args ...any) logger.Interface    { return m }
func (m *mockLogger) Named(name string) logger.Interface   { return m }
