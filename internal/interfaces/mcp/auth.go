package mcp

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"helpdesk/internal/domain/user"
	"helpdesk/internal/infrastructure/auth"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

// Principal is the authenticated caller of a tool.
type Principal struct {
	UserID    uint
	UserUUID  string
	SessionID string
	Role      string
}

type tokenKeyType struct{}

var tokenKey = tokenKeyType{}

// ContextWithToken returns a context carrying the bearer token used to
// authenticate tool calls. The stdio transport has no request headers, so
// the process owner supplies the token up front and it rides in the root
// context for the lifetime of the session.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// bearerTokenToContext lifts the Authorization header of a Streamable HTTP
// request into the context for per-call authentication.
func bearerTokenToContext(ctx context.Context, r *http.Request) context.Context {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ctx
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ctx
	}
	return ContextWithToken(ctx, parts[1])
}

type principalKeyType struct{}

var principalKey = principalKeyType{}

func contextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func principalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok
}

// Authenticator resolves a bearer token to a Principal. It shares the
// session token cache with the HTTP layer, so a token verified by either
// surface skips the session table on the other.
type Authenticator struct {
	jwtService  *auth.JWTService
	tokenCache  *auth.TokenCache
	sessionRepo user.SessionRepository
	userRepo    user.Repository
	logger      logger.Interface
}

func NewAuthenticator(
	jwtService *auth.JWTService,
	tokenCache *auth.TokenCache,
	sessionRepo user.SessionRepository,
	userRepo user.Repository,
	log logger.Interface,
) *Authenticator {
	return &Authenticator{
		jwtService:  jwtService,
		tokenCache:  tokenCache,
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		logger:      log,
	}
}

// Authenticate verifies the bearer token carried in ctx and returns the
// caller it belongs to.
func (a *Authenticator) Authenticate(ctx context.Context) (*Principal, error) {
	token := tokenFromContext(ctx)
	if token == "" {
		return nil, errors.NewUnauthorizedError("missing bearer token")
	}

	claims, err := a.jwtService.Verify(token)
	if err != nil {
		return nil, errors.NewUnauthorizedError("invalid or expired token")
	}
	if claims.TokenType != auth.TokenTypeAccess {
		return nil, errors.NewUnauthorizedError("invalid token type")
	}

	if cached, ok := a.tokenCache.Get(claims.SessionID); !ok || cached != token {
		if err := a.validateSession(claims, token); err != nil {
			return nil, err
		}
	}

	u, err := a.userRepo.GetByUUID(ctx, claims.UserUUID)
	if err != nil || u == nil {
		return nil, errors.NewUnauthorizedError("account no longer exists")
	}
	if !u.CanPerformActions() {
		return nil, errors.NewForbiddenError("account is not active")
	}

	return &Principal{
		UserID:    u.ID(),
		UserUUID:  claims.UserUUID,
		SessionID: claims.SessionID,
		Role:      string(claims.Role),
	}, nil
}

// validateSession checks the session row on a cache miss and primes the
// cache on success.
func (a *Authenticator) validateSession(claims *auth.Claims, token string) error {
	session, err := a.sessionRepo.GetByID(claims.SessionID)
	if err != nil {
		a.logger.Errorw("failed to load session", "session_id", claims.SessionID, "error", err)
		return errors.NewUnauthorizedError("failed to validate session")
	}
	if session == nil || session.IsExpired() {
		return errors.NewUnauthorizedError("session has expired")
	}
	if session.TokenHash != hashBearerToken(token) {
		// The session rotated its tokens; this one was superseded.
		return errors.NewUnauthorizedError("token has been revoked")
	}

	if claims.ExpiresAt != nil {
		a.tokenCache.Put(claims.SessionID, token, claims.ExpiresAt.Time)
	}
	return nil
}

func hashBearerToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
