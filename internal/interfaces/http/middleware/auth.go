package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/domain/user"
	"helpdesk/internal/infrastructure/auth"
	"helpdesk/internal/shared/constants"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/utils"
)

type AuthMiddleware struct {
	jwtService  *auth.JWTService
	tokenCache  *auth.TokenCache
	sessionRepo user.SessionRepository
	userRepo    user.Repository
	logger      logger.Interface
}

func NewAuthMiddleware(
	jwtService *auth.JWTService,
	tokenCache *auth.TokenCache,
	sessionRepo user.SessionRepository,
	userRepo user.Repository,
	log logger.Interface,
) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		tokenCache:  tokenCache,
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		logger:      log,
	}
}

// RequireAuth authenticates the request from the access token cookie or the
// Authorization header. A verified token is cached per session so follow-up
// requests skip the session table; logout invalidates the cache entry, which
// forces the next request back through the full check.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}
		if claims.TokenType != auth.TokenTypeAccess {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid token type")
			c.Abort()
			return
		}

		if cached, ok := m.tokenCache.Get(claims.SessionID); !ok || cached != token {
			if !m.validateSession(c, claims, token) {
				return
			}
		}

		u, err := m.userRepo.GetByUUID(c.Request.Context(), claims.UserUUID)
		if err != nil || u == nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "account no longer exists")
			c.Abort()
			return
		}
		if !u.CanPerformActions() {
			utils.ErrorResponse(c, http.StatusForbidden, "account is not active")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, u.ID())
		c.Set("user_uuid", claims.UserUUID)
		c.Set(constants.ContextKeySessionID, claims.SessionID)
		c.Set(constants.ContextKeyUserRole, string(claims.Role))

		// Nudge the client toward /auth/refresh before the access token
		// lapses mid-session.
		if m.jwtService.ShouldRefresh(claims) {
			c.Header("X-Token-Refresh-Suggested", "true")
		}

		c.Next()
	}
}

// validateSession checks the session row on a cache miss and primes the
// cache on success. Returns false after writing the error response.
func (m *AuthMiddleware) validateSession(c *gin.Context, claims *auth.Claims, token string) bool {
	session, err := m.sessionRepo.GetByID(claims.SessionID)
	if err != nil {
		m.logger.Errorw("failed to load session", "session_id", claims.SessionID, "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to validate session")
		c.Abort()
		return false
	}
	if session == nil || session.IsExpired() {
		utils.ErrorResponse(c, http.StatusUnauthorized, "session has expired")
		c.Abort()
		return false
	}
	if session.TokenHash != hashAccessToken(token) {
		// The session rotated its tokens; this one was superseded.
		utils.ErrorResponse(c, http.StatusUnauthorized, "token has been revoked")
		c.Abort()
		return false
	}

	if claims.ExpiresAt != nil {
		m.tokenCache.Put(claims.SessionID, token, claims.ExpiresAt.Time)
	}
	return true
}

// OptionalAuth resolves the caller identity when a valid token is present
// and stays silent otherwise.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil || claims.TokenType != auth.TokenTypeAccess {
			c.Next()
			return
		}

		if u, err := m.userRepo.GetByUUID(c.Request.Context(), claims.UserUUID); err == nil && u != nil && u.CanPerformActions() {
			c.Set(constants.ContextKeyUserID, u.ID())
			c.Set("user_uuid", claims.UserUUID)
			c.Set(constants.ContextKeySessionID, claims.SessionID)
			c.Set(constants.ContextKeyUserRole, string(claims.Role))
		}

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if token := utils.GetTokenFromCookie(c, utils.AccessTokenCookie); token != "" {
		return token
	}

	authHeader := c.GetHeader(constants.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func hashAccessToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
