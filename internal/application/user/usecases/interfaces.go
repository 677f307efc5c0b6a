package usecases

import (
	"context"

	"helpdesk/internal/application/user/dto"
	"helpdesk/internal/infrastructure/auth"
	"helpdesk/internal/shared/authorization"
)

// JWTService issues and rotates token pairs.
type JWTService interface {
	Generate(userUUID string, sessionID string, role authorization.UserRole) (*auth.TokenPair, error)
	Refresh(refreshToken string) (*auth.TokenPair, error)
	Verify(token string) (*auth.Claims, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// TokenInvalidator drops cached bearer tokens when a session ends.
type TokenInvalidator interface {
	Invalidate(sessionID string)
}

// OAuthClient is the provider side of an OAuth login flow.
type OAuthClient interface {
	GetAuthURL(state string) (url string, codeVerifier string, err error)
	ExchangeCode(ctx context.Context, code, codeVerifier string) (accessToken string, err error)
	GetUserInfo(ctx context.Context, accessToken string) (*auth.OAuthUserInfo, error)
}

type RegisterExecutor interface {
	Execute(ctx context.Context, cmd RegisterCommand) (*dto.UserDTO, error)
}

type LoginExecutor interface {
	Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error)
}

type RefreshTokenExecutor interface {
	Execute(ctx context.Context, cmd RefreshTokenCommand) (*RefreshTokenResult, error)
}

type LogoutExecutor interface {
	Execute(ctx context.Context, cmd LogoutCommand) error
}

type GetUserExecutor interface {
	Execute(ctx context.Context, query GetUserQuery) (*dto.UserDTO, error)
}

type ChangePasswordExecutor interface {
	Execute(ctx context.Context, cmd ChangePasswordCommand) error
}
