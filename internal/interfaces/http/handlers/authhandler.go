package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/user/usecases"
	"helpdesk/internal/shared/config"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/utils"
)

const (
	oauthStateCookie    = "oauth_state"
	oauthVerifierCookie = "oauth_verifier"
	oauthCookieMaxAge   = 600
)

type AuthHandler struct {
	registerUseCase       *usecases.RegisterUseCase
	loginUseCase          *usecases.LoginUseCase
	refreshTokenUseCase   *usecases.RefreshTokenUseCase
	logoutUseCase         *usecases.LogoutUseCase
	getUserUseCase        *usecases.GetUserUseCase
	changePasswordUseCase *usecases.ChangePasswordUseCase
	beginOAuthUseCase     *usecases.BeginOAuthUseCase
	completeOAuthUseCase  *usecases.CompleteOAuthUseCase
	cookieConfig          config.CookieConfig
	jwtConfig             config.JWTConfig
	logger                logger.Interface
}

func NewAuthHandler(
	registerUC *usecases.RegisterUseCase,
	loginUC *usecases.LoginUseCase,
	refreshTokenUC *usecases.RefreshTokenUseCase,
	logoutUC *usecases.LogoutUseCase,
	getUserUC *usecases.GetUserUseCase,
	changePasswordUC *usecases.ChangePasswordUseCase,
	beginOAuthUC *usecases.BeginOAuthUseCase,
	completeOAuthUC *usecases.CompleteOAuthUseCase,
	cookieConfig config.CookieConfig,
	jwtConfig config.JWTConfig,
	log logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		registerUseCase:       registerUC,
		loginUseCase:          loginUC,
		refreshTokenUseCase:   refreshTokenUC,
		logoutUseCase:         logoutUC,
		getUserUseCase:        getUserUC,
		changePasswordUseCase: changePasswordUC,
		beginOAuthUseCase:     beginOAuthUC,
		completeOAuthUseCase:  completeOAuthUC,
		cookieConfig:          cookieConfig,
		jwtConfig:             jwtConfig,
		logger:                log,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), usecases.RegisterCommand{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "registration successful")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:      req.Email,
		Password:   req.Password,
		DeviceName: c.GetHeader("User-Agent"),
		IPAddress:  c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
	})
	if err != nil {
		h.logger.Warnw("login failed", "error", err, "email", req.Email)
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	utils.SuccessResponse(c, http.StatusOK, "login successful", gin.H{
		"user":          result.User,
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"expires_in":    result.ExpiresIn,
	})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken := utils.GetTokenFromCookie(c, utils.RefreshTokenCookie)
	if refreshToken == "" {
		var req RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
			utils.ErrorResponse(c, http.StatusBadRequest, "refresh token is required")
			return
		}
		refreshToken = req.RefreshToken
	}

	result, err := h.refreshTokenUseCase.Execute(c.Request.Context(), usecases.RefreshTokenCommand{
		RefreshToken: refreshToken,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	utils.SuccessResponse(c, http.StatusOK, "token refreshed", gin.H{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"expires_in":    result.ExpiresIn,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.logoutUseCase.Execute(c.Request.Context(), usecases.LogoutCommand{
		SessionID: p.SessionID,
		UserID:    p.UserID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ClearAuthCookies(c, h.cookieConfig)
	utils.SuccessResponse(c, http.StatusOK, "logged out", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUserUseCase.Execute(c.Request.Context(), usecases.GetUserQuery{UserID: p.UserID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	p, err := currentPrincipal(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.changePasswordUseCase.Execute(c.Request.Context(), usecases.ChangePasswordCommand{
		UserID:      p.UserID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	// All sessions are revoked, the current one included.
	utils.ClearAuthCookies(c, h.cookieConfig)
	utils.SuccessResponse(c, http.StatusOK, "password changed, please log in again", nil)
}

func (h *AuthHandler) BeginGoogleOAuth(c *gin.Context) {
	result, err := h.beginOAuthUseCase.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	// State and verifier ride in short lived cookies until the provider
	// redirects back.
	c.SetCookie(oauthStateCookie, result.State, oauthCookieMaxAge, h.cookieConfig.Path, h.cookieConfig.Domain, h.cookieConfig.Secure, true)
	c.SetCookie(oauthVerifierCookie, result.CodeVerifier, oauthCookieMaxAge, h.cookieConfig.Path, h.cookieConfig.Domain, h.cookieConfig.Secure, true)

	c.Redirect(http.StatusTemporaryRedirect, result.AuthURL)
}

func (h *AuthHandler) GoogleOAuthCallback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		h.logger.Warnw("oauth provider returned error", "error_code", errParam, "description", c.Query("error_description"))
		utils.ErrorResponse(c, http.StatusBadRequest, "authorization was denied")
		return
	}

	state := c.Query("state")
	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != expectedState {
		utils.ErrorResponse(c, http.StatusBadRequest, "state mismatch")
		return
	}
	verifier, err := c.Cookie(oauthVerifierCookie)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "missing verifier")
		return
	}

	c.SetCookie(oauthStateCookie, "", -1, h.cookieConfig.Path, h.cookieConfig.Domain, h.cookieConfig.Secure, true)
	c.SetCookie(oauthVerifierCookie, "", -1, h.cookieConfig.Path, h.cookieConfig.Domain, h.cookieConfig.Secure, true)

	result, err := h.completeOAuthUseCase.Execute(c.Request.Context(), usecases.CompleteOAuthCommand{
		Code:         c.Query("code"),
		CodeVerifier: verifier,
		DeviceName:   c.GetHeader("User-Agent"),
		IPAddress:    c.ClientIP(),
		UserAgent:    c.GetHeader("User-Agent"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	utils.SuccessResponse(c, http.StatusOK, "login successful", gin.H{
		"user":       result.User,
		"expires_in": result.ExpiresIn,
	})
}

func (h *AuthHandler) setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	accessMaxAge := h.jwtConfig.AccessExpMinutes * 60
	refreshMaxAge := h.jwtConfig.RefreshExpDays * 24 * 60 * 60
	utils.SetAuthCookies(c, h.cookieConfig, accessToken, refreshToken, accessMaxAge, refreshMaxAge)
}
