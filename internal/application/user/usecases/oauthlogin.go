package usecases

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"

	"helpdesk/internal/application/user/dto"
	"helpdesk/internal/domain/user"
	vo "helpdesk/internal/domain/user/valueobjects"
	"helpdesk/internal/infrastructure/auth"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type BeginOAuthResult struct {
	AuthURL      string `json:"auth_url"`
	State        string `json:"state"`
	CodeVerifier string `json:"-"`
}

// BeginOAuthUseCase starts the authorization code flow. The caller keeps the
// state and PKCE verifier, usually in a short lived cookie, until the
// provider redirects back.
type BeginOAuthUseCase struct {
	oauthClient OAuthClient
	logger      logger.Interface
}

func NewBeginOAuthUseCase(oauthClient OAuthClient, logger logger.Interface) *BeginOAuthUseCase {
	return &BeginOAuthUseCase{
		oauthClient: oauthClient,
		logger:      logger,
	}
}

func (uc *BeginOAuthUseCase) Execute(ctx context.Context) (*BeginOAuthResult, error) {
	state, err := generateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state: %w", err)
	}

	authURL, codeVerifier, err := uc.oauthClient.GetAuthURL(state)
	if err != nil {
		uc.logger.Errorw("failed to build auth URL", "error", err)
		return nil, err
	}

	return &BeginOAuthResult{
		AuthURL:      authURL,
		State:        state,
		CodeVerifier: codeVerifier,
	}, nil
}

type CompleteOAuthCommand struct {
	Code         string `json:"code"`
	CodeVerifier string `json:"-"`
	DeviceName   string `json:"device_name"`
	IPAddress    string `json:"-"`
	UserAgent    string `json:"-"`
}

type CompleteOAuthUseCase struct {
	userRepo    user.Repository
	oauthRepo   user.OAuthAccountRepository
	sessionRepo user.SessionRepository
	oauthClient OAuthClient
	jwtService  JWTService
	sessionTTL  time.Duration
	logger      logger.Interface
}

func NewCompleteOAuthUseCase(
	userRepo user.Repository,
	oauthRepo user.OAuthAccountRepository,
	sessionRepo user.SessionRepository,
	oauthClient OAuthClient,
	jwtService JWTService,
	sessionTTL time.Duration,
	logger logger.Interface,
) *CompleteOAuthUseCase {
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	return &CompleteOAuthUseCase{
		userRepo:    userRepo,
		oauthRepo:   oauthRepo,
		sessionRepo: sessionRepo,
		oauthClient: oauthClient,
		jwtService:  jwtService,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

func (uc *CompleteOAuthUseCase) Execute(ctx context.Context, cmd CompleteOAuthCommand) (*LoginResult, error) {
	if cmd.Code == "" {
		return nil, errors.NewValidationError("authorization code is required")
	}

	accessToken, err := uc.oauthClient.ExchangeCode(ctx, cmd.Code, cmd.CodeVerifier)
	if err != nil {
		uc.logger.Warnw("code exchange failed", "error", err)
		return nil, errors.NewUnauthorizedError("authorization code was rejected")
	}

	info, err := uc.oauthClient.GetUserInfo(ctx, accessToken)
	if err != nil {
		uc.logger.Errorw("failed to fetch user info", "error", err)
		return nil, err
	}
	if !info.EmailVerified {
		return nil, errors.NewForbiddenError("email address is not verified with the provider")
	}

	u, err := uc.findOrCreateUser(ctx, info)
	if err != nil {
		return nil, err
	}
	if !u.CanPerformActions() {
		return nil, errors.NewForbiddenError("account is not active")
	}

	session, err := user.NewSession(u.ID(), cmd.DeviceName, cmd.IPAddress, cmd.UserAgent, time.Now().UTC().Add(uc.sessionTTL))
	if err != nil {
		return nil, err
	}

	pair, err := uc.jwtService.Generate(u.UUID(), session.ID, u.Role())
	if err != nil {
		uc.logger.Errorw("failed to generate tokens", "error", err)
		return nil, err
	}

	session.TokenHash = hashToken(pair.AccessToken)
	session.RefreshTokenHash = hashToken(pair.RefreshToken)

	if err := uc.sessionRepo.Create(session); err != nil {
		uc.logger.Errorw("failed to create session", "error", err)
		return nil, err
	}

	uc.logger.Infow("user logged in via oauth", "user_id", u.ID(), "provider", info.Provider)
	return &LoginResult{
		User:         dto.ToUserDTO(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

func (uc *CompleteOAuthUseCase) findOrCreateUser(ctx context.Context, info *auth.OAuthUserInfo) (*user.User, error) {
	account, err := uc.oauthRepo.GetByProviderAndUserID(info.Provider, info.ProviderID)
	if err != nil {
		uc.logger.Errorw("failed to look up oauth account", "error", err)
		return nil, err
	}
	if account != nil {
		account.RecordLogin()
		if err := uc.oauthRepo.Update(account); err != nil {
			uc.logger.Warnw("failed to record oauth login", "error", err)
		}
		u, err := uc.userRepo.GetByID(ctx, account.UserID)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, errors.NewNotFoundError("user not found")
		}
		return u, nil
	}

	// First login with this provider identity. Attach it to an existing
	// account with the same verified email, or provision a fresh customer.
	u, err := uc.userRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		uc.logger.Errorw("failed to look up user", "error", err)
		return nil, err
	}
	if u == nil {
		email, err := vo.NewEmail(info.Email)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		name, err := vo.NewName(info.Name)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}

		u, err = user.NewUser(uuid.NewString(), email, name, authorization.RoleCustomer)
		if err != nil {
			return nil, err
		}
		if err := u.Activate(); err != nil {
			return nil, err
		}
		if err := uc.userRepo.Create(ctx, u); err != nil {
			uc.logger.Errorw("failed to create user", "error", err)
			return nil, err
		}
	}

	account, err = user.NewOAuthAccount(u.ID(), info.Provider, info.ProviderID, info.Email)
	if err != nil {
		return nil, err
	}
	if err := uc.oauthRepo.Create(account); err != nil {
		uc.logger.Errorw("failed to create oauth account", "error", err)
		return nil, err
	}

	return u, nil
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
