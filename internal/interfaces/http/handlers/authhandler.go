package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aula-lms/aula/internal/application/identity/usecases"
	"github.com/aula-lms/aula/internal/interfaces/http/middleware"
	"github.com/aula-lms/aula/internal/shared/config"
	"github.com/aula-lms/aula/internal/shared/logger"
	"github.com/aula-lms/aula/internal/shared/utils"
)

// AuthHandler serves the credential lifecycle: registration, verification,
// login, token refresh, logout, password reset and email change.
type AuthHandler struct {
	registerUC             *usecases.RegisterUseCase
	verifyEmailUC          *usecases.VerifyEmailUseCase
	resendVerificationUC   *usecases.ResendVerificationUseCase
	loginUC                *usecases.LoginUseCase
	refreshTokenUC         *usecases.RefreshTokenUseCase
	logoutUC               *usecases.LogoutUseCase
	logoutAllUC            *usecases.LogoutAllUseCase
	requestPasswordResetUC *usecases.RequestPasswordResetUseCase
	resetPasswordUC        *usecases.ResetPasswordUseCase
	requestEmailChangeUC   *usecases.RequestEmailChangeUseCase
	confirmEmailChangeUC   *usecases.ConfirmEmailChangeUseCase
	getAccountUC           *usecases.GetAccountUseCase
	authConfig             config.AuthConfig
	logger                 logger.Interface
}

func NewAuthHandler(
	registerUC *usecases.RegisterUseCase,
	verifyEmailUC *usecases.VerifyEmailUseCase,
	resendVerificationUC *usecases.ResendVerificationUseCase,
	loginUC *usecases.LoginUseCase,
	refreshTokenUC *usecases.RefreshTokenUseCase,
	logoutUC *usecases.LogoutUseCase,
	logoutAllUC *usecases.LogoutAllUseCase,
	requestPasswordResetUC *usecases.RequestPasswordResetUseCase,
	resetPasswordUC *usecases.ResetPasswordUseCase,
	requestEmailChangeUC *usecases.RequestEmailChangeUseCase,
	confirmEmailChangeUC *usecases.ConfirmEmailChangeUseCase,
	getAccountUC *usecases.GetAccountUseCase,
	authConfig config.AuthConfig,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		registerUC:             registerUC,
		verifyEmailUC:          verifyEmailUC,
		resendVerificationUC:   resendVerificationUC,
		loginUC:                loginUC,
		refreshTokenUC:         refreshTokenUC,
		logoutUC:               logoutUC,
		logoutAllUC:            logoutAllUC,
		requestPasswordResetUC: requestPasswordResetUC,
		resetPasswordUC:        resetPasswordUC,
		requestEmailChangeUC:   requestEmailChangeUC,
		confirmEmailChangeUC:   confirmEmailChangeUC,
		getAccountUC:           getAccountUC,
		authConfig:             authConfig,
		logger:                 logger,
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128,password"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), usecases.RegisterCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result.Account.GetDisplayInfo(), "Account created, check your email for a verification code")
}

type verifyEmailRequest struct {
	Email string `json:"email" form:"email" binding:"required,email"`
	Code  string `json:"code" form:"code" binding:"required,len=6"`
}

// VerifyEmail handles POST and GET /auth/verify-email. GET exists so the
// link in the verification email works directly.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	var err error
	if c.Request.Method == http.MethodGet {
		err = c.ShouldBindQuery(&req)
	} else {
		err = c.ShouldBindJSON(&req)
	}
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	if err := h.verifyEmailUC.Execute(c.Request.Context(), usecases.VerifyEmailCommand{
		Email: req.Email,
		Code:  req.Code,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Email verified successfully", nil)
}

type resendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResendVerification handles POST /auth/resend-verification
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req resendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	if err := h.resendVerificationUC.Execute(c.Request.Context(), usecases.ResendVerificationCommand{
		Email: req.Email,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "If the address is registered, a new code is on its way", nil)
}

type loginRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required"`
	TwoFactorCode string `json:"two_factor_code"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:         req.Email,
		Password:      req.Password,
		TwoFactorCode: req.TwoFactorCode,
		IPAddress:     c.ClientIP(),
		UserAgent:     c.Request.UserAgent(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	// The password checked out but a TOTP code is still missing. This is
	// a distinguished outcome, not an error: no session or tokens exist.
	if result.TwoFactorRequired {
		utils.SuccessResponse(c, http.StatusOK, "Two-factor authentication code required", gin.H{
			"two_factor_required": true,
		})
		return
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	utils.SuccessResponse(c, http.StatusOK, "Logged in successfully", gin.H{
		"account":    result.Account.GetDisplayInfo(),
		"expires_in": result.ExpiresIn,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh handles POST /auth/refresh. The refresh token comes from the
// cookie for browsers, or the body for other clients.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken := utils.GetTokenFromCookie(c, utils.RefreshTokenCookie)
	if refreshToken == "" {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}
	if refreshToken == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing refresh token")
		return
	}

	result, err := h.refreshTokenUC.Execute(c.Request.Context(), usecases.RefreshTokenCommand{
		RefreshToken: refreshToken,
	})
	if err != nil {
		utils.ClearAuthCookies(c, h.authConfig.Cookie)
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.setAuthCookies(c, result.AccessToken, result.RefreshToken)

	utils.SuccessResponse(c, http.StatusOK, "Tokens refreshed", gin.H{
		"expires_in": result.ExpiresIn,
	})
}

// Logout handles POST /auth/logout. It always succeeds and always clears
// the cookies, even when no matching session row is found.
func (h *AuthHandler) Logout(c *gin.Context) {
	accountID, _ := middleware.GetAccountID(c)

	if err := h.logoutUC.Execute(c.Request.Context(), usecases.LogoutCommand{
		AccountID: accountID,
		SessionID: middleware.GetSessionID(c),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}); err != nil {
		h.logger.Errorw("logout failed", "account_id", accountID, "error", err)
	}

	utils.ClearAuthCookies(c, h.authConfig.Cookie)
	utils.SuccessResponse(c, http.StatusOK, "Logged out successfully", nil)
}

// LogoutAll handles POST /auth/logout-all
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.logoutAllUC.Execute(c.Request.Context(), usecases.LogoutAllCommand{
		AccountID: accountID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ClearAuthCookies(c, h.authConfig.Cookie)
	utils.SuccessResponse(c, http.StatusOK, "Logged out everywhere", nil)
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ForgotPassword handles POST /auth/forgot-password. The response is
// identical whether or not the address is registered.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	_ = h.requestPasswordResetUC.Execute(c.Request.Context(), usecases.RequestPasswordResetCommand{
		Email: req.Email,
	})

	utils.SuccessResponse(c, http.StatusOK, "If the address is registered, a reset link is on its way", nil)
}

type resetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128,password"`
}

// ResetPassword handles POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	if err := h.resetPasswordUC.Execute(c.Request.Context(), usecases.ResetPasswordCommand{
		Token:       req.Token,
		NewPassword: req.NewPassword,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password reset successfully, please login again", nil)
}

type requestEmailChangeRequest struct {
	NewEmail string `json:"new_email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RequestEmailChange handles POST /auth/email-change/request
func (h *AuthHandler) RequestEmailChange(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req requestEmailChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	if err := h.requestEmailChangeUC.Execute(c.Request.Context(), usecases.RequestEmailChangeCommand{
		AccountID: accountID,
		NewEmail:  req.NewEmail,
		Password:  req.Password,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Confirmation code sent to the new address", nil)
}

type confirmEmailChangeRequest struct {
	Code string `json:"code" binding:"required,len=6"`
}

// ConfirmEmailChange handles POST /auth/email-change/confirm
func (h *AuthHandler) ConfirmEmailChange(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req confirmEmailChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	if err := h.confirmEmailChangeUC.Execute(c.Request.Context(), usecases.ConfirmEmailChangeCommand{
		AccountID: accountID,
		Code:      req.Code,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	// The swap revoked every session, including this one.
	utils.ClearAuthCookies(c, h.authConfig.Cookie)
	utils.SuccessResponse(c, http.StatusOK, "Email changed, please login again", nil)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	result, err := h.getAccountUC.Execute(c.Request.Context(), usecases.GetAccountCommand{
		AccountID: accountID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result.Account.GetDisplayInfo())
}

func (h *AuthHandler) setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	accessMaxAge := h.authConfig.JWT.AccessExpMinutes * 60
	refreshMaxAge := h.authConfig.JWT.RefreshExpDays * 24 * 60 * 60
	utils.SetAuthCookies(c, h.authConfig.Cookie, accessToken, refreshToken, accessMaxAge, refreshMaxAge)
}
