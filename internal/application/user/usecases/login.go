package usecases

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"helpdesk/internal/application/user/dto"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type LoginCommand struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	DeviceName string `json:"device_name"`
	IPAddress  string `json:"-"`
	UserAgent  string `json:"-"`
}

type LoginResult struct {
	User         *dto.UserDTO `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
}

type LoginUseCase struct {
	userRepo    user.Repository
	sessionRepo user.SessionRepository
	hasher      PasswordHasher
	jwtService  JWTService
	sessionTTL  time.Duration
	logger      logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	sessionRepo user.SessionRepository,
	hasher PasswordHasher,
	jwtService JWTService,
	sessionTTL time.Duration,
	logger logger.Interface,
) *LoginUseCase {
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	return &LoginUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		jwtService:  jwtService,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	if cmd.Email == "" || cmd.Password == "" {
		return nil, errors.NewValidationError("email and password are required")
	}

	u, err := uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		uc.logger.Errorw("failed to look up user", "error", err)
		return nil, err
	}
	// A missing account and a wrong password produce the same error so the
	// login form cannot be used to enumerate registered emails.
	if u == nil || !u.HasPassword() {
		return nil, errors.NewUnauthorizedError("invalid email or password")
	}
	if err := uc.hasher.Verify(cmd.Password, *u.PasswordHash()); err != nil {
		return nil, errors.NewUnauthorizedError("invalid email or password")
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

	uc.logger.Infow("user logged in", "user_id", u.ID(), "session_id", session.ID)
	return &LoginResult{
		User:         dto.ToUserDTO(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

// hashToken stores only a digest of issued tokens so a leaked sessions table
// cannot be replayed.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
