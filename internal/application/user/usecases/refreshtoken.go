package usecases

import (
	"context"

	"helpdesk/internal/domain/user"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type RefreshTokenCommand struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type RefreshTokenUseCase struct {
	userRepo    user.Repository
	sessionRepo user.SessionRepository
	jwtService  JWTService
	invalidator TokenInvalidator
	logger      logger.Interface
}

func NewRefreshTokenUseCase(
	userRepo user.Repository,
	sessionRepo user.SessionRepository,
	jwtService JWTService,
	invalidator TokenInvalidator,
	logger logger.Interface,
) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
		invalidator: invalidator,
		logger:      logger,
	}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, cmd RefreshTokenCommand) (*RefreshTokenResult, error) {
	if cmd.RefreshToken == "" {
		return nil, errors.NewValidationError("refresh token is required")
	}

	session, err := uc.sessionRepo.GetByRefreshTokenHash(hashToken(cmd.RefreshToken))
	if err != nil {
		uc.logger.Errorw("failed to look up session", "error", err)
		return nil, err
	}
	if session == nil {
		return nil, errors.NewUnauthorizedError("invalid refresh token")
	}
	if session.IsExpired() {
		if err := uc.sessionRepo.Delete(session.ID); err != nil {
			uc.logger.Warnw("failed to delete expired session", "session_id", session.ID, "error", err)
		}
		return nil, errors.NewUnauthorizedError("session has expired")
	}

	u, err := uc.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		uc.logger.Errorw("failed to look up user", "user_id", session.UserID, "error", err)
		return nil, err
	}
	if u == nil || !u.CanPerformActions() {
		return nil, errors.NewForbiddenError("account is not active")
	}

	pair, err := uc.jwtService.Refresh(cmd.RefreshToken)
	if err != nil {
		return nil, errors.NewUnauthorizedError("invalid refresh token")
	}

	// Rotation: the old pair stops working the moment the new hashes land.
	session.TokenHash = hashToken(pair.AccessToken)
	session.RefreshTokenHash = hashToken(pair.RefreshToken)
	session.UpdateActivity()

	if err := uc.sessionRepo.Update(session); err != nil {
		uc.logger.Errorw("failed to update session", "session_id", session.ID, "error", err)
		return nil, err
	}
	uc.invalidator.Invalidate(session.ID)

	uc.logger.Infow("token refreshed", "user_id", u.ID(), "session_id", session.ID)
	return &RefreshTokenResult{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}
