package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/aula-lms/aula/internal/application/identity/usecases"
	"github.com/aula-lms/aula/internal/domain/verification"
	"github.com/aula-lms/aula/internal/infrastructure/auth"
	"github.com/aula-lms/aula/internal/infrastructure/config"
	"github.com/aula-lms/aula/internal/infrastructure/email"
	"github.com/aula-lms/aula/internal/infrastructure/repository"
	"github.com/aula-lms/aula/internal/interfaces/http/handlers"
	"github.com/aula-lms/aula/internal/interfaces/http/middleware"
	"github.com/aula-lms/aula/internal/interfaces/http/routes"
	"github.com/aula-lms/aula/internal/shared/authorization"
	"github.com/aula-lms/aula/internal/shared/logger"
)

// Router wires the HTTP surface together.
type Router struct {
	engine *gin.Engine
}

// tokenServiceAdapter bridges the JWT service to the use-case interface.
type tokenServiceAdapter struct {
	jwt *auth.JWTService
}

func (a *tokenServiceAdapter) Generate(accountSID, sessionID string, role authorization.Role, tokenVersion int) (*usecases.TokenPair, error) {
	pair, err := a.jwt.Generate(accountSID, sessionID, role, tokenVersion)
	if err != nil {
		return nil, err
	}
	return &usecases.TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

func (a *tokenServiceAdapter) VerifyRefresh(token string) (*usecases.TokenClaims, error) {
	claims, err := a.jwt.VerifyRefresh(token)
	if err != nil {
		return nil, err
	}
	return &usecases.TokenClaims{
		AccountSID:   claims.AccountSID,
		SessionID:    claims.SessionID,
		Role:         claims.Role,
		TokenVersion: claims.TokenVersion,
	}, nil
}

// NewRouter creates the HTTP router with all dependencies.
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.ErrorHandler())

	accountRepo := repository.NewAccountRepository(db, log)
	sessionRepo := repository.NewSessionRepository(db, log)
	codeRepo := repository.NewVerificationCodeRepository(db, log)

	registry := verification.NewRegistry(
		codeRepo,
		time.Duration(cfg.Auth.Code.VerificationExpiresMinutes)*time.Minute,
		time.Duration(cfg.Auth.Code.ResendCooldownMinutes)*time.Minute,
	)

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService := auth.NewJWTService(
		cfg.Auth.JWT.AccessSecret,
		cfg.Auth.JWT.RefreshSecret,
		cfg.Auth.JWT.AccessExpMinutes,
		cfg.Auth.JWT.RefreshExpDays,
	)
	tokenService := &tokenServiceAdapter{jwt: jwtService}
	totpService := auth.NewTOTPService(cfg.Auth.TOTP.Issuer)

	emailService := email.NewSMTPEmailService(email.SMTPConfig{
		Host:        cfg.Email.SMTPHost,
		Port:        cfg.Email.SMTPPort,
		Username:    cfg.Email.SMTPUser,
		Password:    cfg.Email.SMTPPassword,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		BaseURL:     cfg.Email.BaseURL,
	})

	resetTTL := time.Duration(cfg.Auth.Code.ResetExpiresMinutes) * time.Minute

	registerUC := usecases.NewRegisterUseCase(accountRepo, registry, hasher, emailService, cfg.Features, log)
	verifyEmailUC := usecases.NewVerifyEmailUseCase(accountRepo, registry, log)
	resendVerificationUC := usecases.NewResendVerificationUseCase(accountRepo, registry, emailService, log)
	loginUC := usecases.NewLoginUseCase(accountRepo, sessionRepo, hasher, tokenService, totpService, log)
	refreshTokenUC := usecases.NewRefreshTokenUseCase(accountRepo, sessionRepo, tokenService, log)
	logoutUC := usecases.NewLogoutUseCase(sessionRepo, log)
	logoutAllUC := usecases.NewLogoutAllUseCase(accountRepo, sessionRepo, log)
	listSessionsUC := usecases.NewListSessionsUseCase(sessionRepo, log)
	revokeSessionUC := usecases.NewRevokeSessionUseCase(sessionRepo, log)
	requestPasswordResetUC := usecases.NewRequestPasswordResetUseCase(accountRepo, emailService, resetTTL, log)
	resetPasswordUC := usecases.NewResetPasswordUseCase(accountRepo, sessionRepo, hasher, emailService, log)
	requestEmailChangeUC := usecases.NewRequestEmailChangeUseCase(accountRepo, registry, hasher, emailService, cfg.Features, log)
	confirmEmailChangeUC := usecases.NewConfirmEmailChangeUseCase(accountRepo, sessionRepo, registry, emailService, log)
	initiateTwoFactorUC := usecases.NewInitiateTwoFactorUseCase(accountRepo, totpService, log)
	confirmTwoFactorUC := usecases.NewConfirmTwoFactorUseCase(accountRepo, totpService, log)
	disableTwoFactorUC := usecases.NewDisableTwoFactorUseCase(accountRepo, hasher, totpService, log)
	getAccountUC := usecases.NewGetAccountUseCase(accountRepo, log)

	authHandler := handlers.NewAuthHandler(
		registerUC,
		verifyEmailUC,
		resendVerificationUC,
		loginUC,
		refreshTokenUC,
		logoutUC,
		logoutAllUC,
		requestPasswordResetUC,
		resetPasswordUC,
		requestEmailChangeUC,
		confirmEmailChangeUC,
		getAccountUC,
		cfg.Auth,
		log,
	)
	sessionHandler := handlers.NewSessionHandler(listSessionsUC, revokeSessionUC, log)
	twoFactorHandler := handlers.NewTwoFactorHandler(initiateTwoFactorUC, confirmTwoFactorUC, disableTwoFactorUC, log)

	authMiddleware := middleware.NewAuthMiddleware(jwtService, accountRepo, log)
	rateLimiter := middleware.NewRateLimiter(
		redisClient,
		cfg.RateLimit.Requests,
		time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	routes.SetupAuthRoutes(engine, &routes.AuthRouteConfig{
		AuthHandler:      authHandler,
		SessionHandler:   sessionHandler,
		TwoFactorHandler: twoFactorHandler,
		AuthMiddleware:   authMiddleware,
		RateLimiter:      rateLimiter,
	})

	return &Router{engine: engine}
}

// Engine exposes the underlying gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server on the given address.
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
