package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/aula-lms/aula/internal/interfaces/http/handlers"
	"github.com/aula-lms/aula/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for the identity routes.
type AuthRouteConfig struct {
	AuthHandler      *handlers.AuthHandler
	SessionHandler   *handlers.SessionHandler
	TwoFactorHandler *handlers.TwoFactorHandler
	AuthMiddleware   *middleware.AuthMiddleware
	RateLimiter      *middleware.RateLimiter
}

// SetupAuthRoutes configures the identity and session routes.
func SetupAuthRoutes(engine *gin.Engine, cfg *AuthRouteConfig) {
	auth := engine.Group("/auth")
	{
		auth.POST("/register", cfg.RateLimiter.Limit(), cfg.AuthHandler.Register)
		auth.POST("/verify-email", cfg.RateLimiter.Limit(), cfg.AuthHandler.VerifyEmail)
		auth.GET("/verify-email", cfg.RateLimiter.Limit(), cfg.AuthHandler.VerifyEmail)
		auth.POST("/resend-verification", cfg.RateLimiter.Limit(), cfg.AuthHandler.ResendVerification)
		auth.POST("/login", cfg.RateLimiter.Limit(), cfg.AuthHandler.Login)
		auth.POST("/refresh", cfg.AuthHandler.Refresh)
		auth.POST("/forgot-password", cfg.RateLimiter.Limit(), cfg.AuthHandler.ForgotPassword)
		auth.POST("/reset-password", cfg.RateLimiter.Limit(), cfg.AuthHandler.ResetPassword)

		auth.POST("/logout", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.Logout)
		auth.POST("/logout-all", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.LogoutAll)
		auth.GET("/me", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.Me)

		emailChange := auth.Group("/email-change", cfg.AuthMiddleware.RequireAuth())
		{
			emailChange.POST("/request", cfg.AuthHandler.RequestEmailChange)
			emailChange.POST("/confirm", cfg.AuthHandler.ConfirmEmailChange)
		}

		twofa := auth.Group("/2fa", cfg.AuthMiddleware.RequireAuth())
		{
			twofa.POST("/initiate", cfg.TwoFactorHandler.Initiate)
			twofa.POST("/confirm", cfg.TwoFactorHandler.Confirm)
			twofa.POST("/disable", cfg.TwoFactorHandler.Disable)
		}

		sessions := auth.Group("/sessions", cfg.AuthMiddleware.RequireAuth())
		{
			sessions.GET("", cfg.SessionHandler.List)
			sessions.DELETE("/:id", cfg.SessionHandler.Revoke)
		}
	}
}
