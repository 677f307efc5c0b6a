package mcp

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/domain/user"
	vo "helpdesk/internal/domain/user/valueobjects"
	"helpdesk/internal/infrastructure/auth"
	"helpdesk/internal/shared/authorization"
)

const testUserUUID = "b9a6f1de-0000-4000-8000-000000000042"

func activeUser(t *testing.T, id uint, role authorization.UserRole) *user.User {
	t.Helper()
	email, err := vo.NewEmail("sam@example.com")
	require.NoError(t, err)
	name, err := vo.NewName("Sam Okafor")
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

// issueToken generates a real access token and a matching session row.
func issueToken(t *testing.T, jwtService *auth.JWTService, role authorization.UserRole) (token string, session *user.Session) {
	t.Helper()
	pair, err := jwtService.Generate(testUserUUID, "sess-mcp-1", role)
	require.NoError(t, err)
	return pair.AccessToken, &user.Session{
		ID:        "sess-mcp-1",
		UserID:    42,
		TokenHash: hashBearerToken(pair.AccessToken),
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func newAuthenticator(userRepo *mockUserRepository, sessionRepo *mockSessionRepository) (*Authenticator, *auth.JWTService, *auth.TokenCache) {
	jwtService := auth.NewJWTService("test-secret", 15, 7)
	cache := auth.NewTokenCache()
	return NewAuthenticator(jwtService, cache, sessionRepo, userRepo, &mockLogger{}), jwtService, cache
}

func TestAuthenticator_MissingToken(t *testing.T) {
	authn, _, _ := newAuthenticator(&mockUserRepository{}, &mockSessionRepository{})

	p, err := authn.Authenticate(context.Background())

	require.Error(t, err)
	assert.Nil(t, p)
	assert.Contains(t, err.Error(), "missing bearer token")
}

func TestAuthenticator_GarbageToken(t *testing.T) {
	authn, _, _ := newAuthenticator(&mockUserRepository{}, &mockSessionRepository{})

	ctx := ContextWithToken(context.Background(), "not-a-jwt")
	p, err := authn.Authenticate(ctx)

	require.Error(t, err)
	assert.Nil(t, p)
}

func TestAuthenticator_Success(t *testing.T) {
	userRepo := &mockUserRepository{
		GetByUUIDFunc: func(ctx context.Context, uuid string) (*user.User, error) {
			return activeUser(t, 42, authorization.RoleSupportAgent), nil
		},
	}
	sessionRepo := &mockSessionRepository{}
	authn, jwtService, cache := newAuthenticator(userRepo, sessionRepo)

	token, session := issueToken(t, jwtService, authorization.RoleSupportAgent)
	sessionRepo.GetByIDFunc = func(id string) (*user.Session, error) {
		return session, nil
	}

	ctx := ContextWithToken(context.Background(), token)
	p, err := authn.Authenticate(ctx)

	require.NoError(t, err)
	assert.Equal(t, uint(42), p.UserID)
	assert.Equal(t, testUserUUID, p.UserUUID)
	assert.Equal(t, "sess-mcp-1", p.SessionID)
	assert.Equal(t, "support_agent", p.Role)

	// The verified token is cached for the session.
	cached, ok := cache.Get("sess-mcp-1")
	assert.True(t, ok)
	assert.Equal(t, token, cached)
}

func TestAuthenticator_CacheHitSkipsSessionLookup(t *testing.T) {
	lookups := 0
	userRepo := &mockUserRepository{
		GetByUUIDFunc: func(ctx context.Context, uuid string) (*user.User, error) {
			return activeUser(t, 42, authorization.RoleCustomer), nil
		},
	}
	sessionRepo := &mockSessionRepository{}
	authn, jwtService, _ := newAuthenticator(userRepo, sessionRepo)

	token, session := issueToken(t, jwtService, authorization.RoleCustomer)
	sessionRepo.GetByIDFunc = func(id string) (*user.Session, error) {
		lookups++
		return session, nil
	}

	ctx := ContextWithToken(context.Background(), token)
	_, err := authn.Authenticate(ctx)
	require.NoError(t, err)
	_, err = authn.Authenticate(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, lookups)
}

func TestAuthenticator_RotatedTokenRejected(t *testing.T) {
	sessionRepo := &mockSessionRepository{}
	authn, jwtService, _ := newAuthenticator(&mockUserRepository{}, sessionRepo)

	token, session := issueToken(t, jwtService, authorization.RoleCustomer)
	session.TokenHash = hashBearerToken("a-newer-token")
	sessionRepo.GetByIDFunc = func(id string) (*user.Session, error) {
		return session, nil
	}

	ctx := ContextWithToken(context.Background(), token)
	p, err := authn.Authenticate(ctx)

	require.Error(t, err)
	assert.Nil(t, p)
	assert.Contains(t, err.Error(), "revoked")
}

func TestAuthenticator_ExpiredSessionRejected(t *testing.T) {
	sessionRepo := &mockSessionRepository{}
	authn, jwtService, _ := newAuthenticator(&mockUserRepository{}, sessionRepo)

	token, session := issueToken(t, jwtService, authorization.RoleCustomer)
	session.ExpiresAt = time.Now().Add(-time.Minute)
	sessionRepo.GetByIDFunc = func(id string) (*user.Session, error) {
		return session, nil
	}

	ctx := ContextWithToken(context.Background(), token)
	_, err := authn.Authenticate(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestAuthenticator_SuspendedUserRejected(t *testing.T) {
	userRepo := &mockUserRepository{
		GetByUUIDFunc: func(ctx context.Context, uuid string) (*user.User, error) {
			u := activeUser(t, 42, authorization.RoleCustomer)
			require.NoError(t, u.Suspend("abuse"))
			return u, nil
		},
	}
	sessionRepo := &mockSessionRepository{}
	authn, jwtService, _ := newAuthenticator(userRepo, sessionRepo)

	token, session := issueToken(t, jwtService, authorization.RoleCustomer)
	sessionRepo.GetByIDFunc = func(id string) (*user.Session, error) {
		return session, nil
	}

	ctx := ContextWithToken(context.Background(), token)
	_, err := authn.Authenticate(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not active")
}

func TestAuthenticator_RefreshTokenNotAccepted(t *testing.T) {
	sessionRepo := &mockSessionRepository{}
	authn, jwtService, _ := newAuthenticator(&mockUserRepository{}, sessionRepo)

	pair, err := jwtService.Generate(testUserUUID, "sess-mcp-1", authorization.RoleCustomer)
	require.NoError(t, err)

	ctx := ContextWithToken(context.Background(), pair.RefreshToken)
	_, err = authn.Authenticate(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "token type")
}

func newHTTPRequest(t *testing.T, authHeader string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, "http://localhost/mcp", nil)
	require.NoError(t, err)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return req
}

func TestBearerTokenToContext(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer header", "Bearer abc123", "abc123"},
		{"case insensitive scheme", "bearer abc123", "abc123"},
		{"no header", "", ""},
		{"wrong scheme", "Basic abc123", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newHTTPRequest(t, tt.header)
			ctx := bearerTokenToContext(context.Background(), req)
			assert.Equal(t, tt.want, tokenFromContext(ctx))
		})
	}
}
