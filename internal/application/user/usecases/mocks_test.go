package usecases

import (
	"context"
	"fmt"

	"helpdesk/internal/domain/user"
	"helpdesk/internal/infrastructure/auth"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/logger"
)

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
	GetByIDFunc               func(sessionID string) (*user.Session, error)
	GetByUserIDFunc           func(userID uint) ([]*user.Session, error)
	GetByRefreshTokenHashFunc func(refreshTokenHash string) (*user.Session, error)
	UpdateFunc                func(session *user.Session) error
	DeleteFunc                func(sessionID string) error
	DeleteByUserIDFunc        func(userID uint) error
	DeleteExpiredFunc         func() error
}

func (m *mockSessionRepository) Create(session *user.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(session)
	}
	return nil
}

func (m *mockSessionRepository) GetByID(sessionID string) (*user.Session, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(sessionID)
	}
	return nil, nil
}

func (m *mockSessionRepository) GetByUserID(userID uint) ([]*user.Session, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(userID)
	}
	return nil, nil
}

func (m *mockSessionRepository) GetByRefreshTokenHash(refreshTokenHash string) (*user.Session, error) {
	if m.GetByRefreshTokenHashFunc != nil {
		return m.GetByRefreshTokenHashFunc(refreshTokenHash)
	}
	return nil, nil
}

func (m *mockSessionRepository) Update(session *user.Session) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(session)
	}
	return nil
}

func (m *mockSessionRepository) Delete(sessionID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(sessionID)
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

type mockOAuthAccountRepository struct {
	CreateFunc                 func(account *user.OAuthAccount) error
	GetByProviderAndUserIDFunc func(provider, providerUserID string) (*user.OAuthAccount, error)
	GetByUserIDFunc            func(userID uint) ([]*user.OAuthAccount, error)
	UpdateFunc                 func(account *user.OAuthAccount) error
	DeleteFunc                 func(id uint) error
}

func (m *mockOAuthAccountRepository) Create(account *user.OAuthAccount) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(account)
	}
	return nil
}

func (m *mockOAuthAccountRepository) GetByProviderAndUserID(provider, providerUserID string) (*user.OAuthAccount, error) {
	if m.GetByProviderAndUserIDFunc != nil {
		return m.GetByProviderAndUserIDFunc(provider, providerUserID)
	}
	return nil, nil
}

func (m *mockOAuthAccountRepository) GetByUserID(userID uint) ([]*user.OAuthAccount, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(userID)
	}
	return nil, nil
}

func (m *mockOAuthAccountRepository) Update(account *user.OAuthAccount) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(account)
	}
	return nil
}

func (m *mockOAuthAccountRepository) Delete(id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

// mockHasher matches on plain string comparison so tests can use readable
// "passwords" without paying bcrypt cost.
type mockHasher struct{}

func (m *mockHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (m *mockHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("hash mismatch")
	}
	return nil
}

type mockJWTService struct {
	GenerateFunc func(userUUID, sessionID string, role authorization.UserRole) (*auth.TokenPair, error)
	RefreshFunc  func(refreshToken string) (*auth.TokenPair, error)
	VerifyFunc   func(token string) (*auth.Claims, error)
}

func (m *mockJWTService) Generate(userUUID, sessionID string, role authorization.UserRole) (*auth.TokenPair, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(userUUID, sessionID, role)
	}
	return &auth.TokenPair{AccessToken: "access-" + sessionID, RefreshToken: "refresh-" + sessionID, ExpiresIn: 900}, nil
}

func (m *mockJWTService) Refresh(refreshToken string) (*auth.TokenPair, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(refreshToken)
	}
	return &auth.TokenPair{AccessToken: "access-rotated", RefreshToken: "refresh-rotated", ExpiresIn: 900}, nil
}

func (m *mockJWTService) Verify(token string) (*auth.Claims, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(token)
	}
	return nil, fmt.Errorf("not implemented")
}

type mockInvalidator struct {
	invalidated []string
}

func (m *mockInvalidator) Invalidate(sessionID string) {
	m.invalidated = append(m.invalidated, sessionID)
}

type mockOAuthClient struct {
	GetAuthURLFunc   func(state string) (string, string, error)
	ExchangeCodeFunc func(ctx context.Context, code, codeVerifier string) (string, error)
	GetUserInfoFunc  func(ctx context.Context, accessToken string) (*auth.OAuthUserInfo, error)
}

func (m *mockOAuthClient) GetAuthURL(state string) (string, string, error) {
	if m.GetAuthURLFunc != nil {
		return m.GetAuthURLFunc(state)
	}
	return "https://accounts.example.com/authorize?state=" + state, "verifier-123", nil
}

func (m *mockOAuthClient) ExchangeCode(ctx context.Context, code, codeVerifier string) (string, error) {
	if m.ExchangeCodeFunc != nil {
		return m.ExchangeCodeFunc(ctx, code, codeVerifier)
	}
	return "provider-access-token", nil
}

func (m *mockOAuthClient) GetUserInfo(ctx context.Context, accessToken string) (*auth.OAuthUserInfo, error) {
	if m.GetUserInfoFunc != nil {
		return m.GetUserInfoFunc(ctx, accessToken)
	}
	return &auth.OAuthUserInfo{
		Email:         "new.user@example.com",
		Name:          "New User",
		EmailVerified: true,
		Provider:      "google",
		ProviderID:    "google-uid-1",
	}, nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                   {}
func (m *mockLogger) Info(msg string, args ...any)                    {}
func (m *mockLogger) Warn(msg string, args ...any)                    {}
func (m *mockLogger) Error(msg string, args ...any)                   {}
func (m *mockLogger) Fatal(msg string, args ...any)                   {}
func (m *mockLogger) With(args ...any) logger.Interface               { return m }
func (m *mockLogger) Named(name string) logger.Interface              { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Fatalw(msg string, keysAndValues ...interface{}) {}
