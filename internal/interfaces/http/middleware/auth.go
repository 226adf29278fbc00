package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aula-lms/aula/internal/domain/account"
	"github.com/aula-lms/aula/internal/infrastructure/auth"
	"github.com/aula-lms/aula/internal/shared/logger"
	"github.com/aula-lms/aula/internal/shared/utils"
)

// Context keys set by the auth middleware.
const (
	ContextKeyAccountID  = "account_id"
	ContextKeyAccountSID = "account_sid"
	ContextKeySessionID  = "session_id"
	ContextKeyRole       = "role"
)

type AuthMiddleware struct {
	jwtService  *auth.JWTService
	accountRepo account.Repository
	logger      logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, accountRepo account.Repository, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// RequireAuth validates the access token and loads the account behind it.
// The account's current token version is compared against the claim, so a
// logout-all revokes access tokens immediately rather than at expiry.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Try to get token from cookie first
		token := utils.GetTokenFromCookie(c, utils.AccessTokenCookie)

		// Fallback to Authorization header for non-browser clients
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
				c.Abort()
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
				c.Abort()
				return
			}

			token = parts[1]
		}

		claims, err := m.jwtService.VerifyAccess(token)
		if err != nil {
			m.logger.Warnw("failed to verify access token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		acct, err := m.accountRepo.GetBySID(c.Request.Context(), claims.AccountSID)
		if err != nil {
			m.logger.Errorw("failed to load account for token", "error", err)
			utils.ErrorResponse(c, http.StatusInternalServerError, "failed to authenticate request")
			c.Abort()
			return
		}
		if acct == nil || claims.TokenVersion != acct.TokenVersion() {
			utils.ErrorResponse(c, http.StatusUnauthorized, "token has been revoked")
			c.Abort()
			return
		}

		c.Set(ContextKeyAccountID, acct.ID())
		c.Set(ContextKeyAccountSID, acct.SID())
		c.Set(ContextKeySessionID, claims.SessionID)
		c.Set(ContextKeyRole, string(claims.Role))

		c.Next()
	}
}

// GetAccountID extracts the authenticated account's internal ID from the context.
func GetAccountID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextKeyAccountID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

// GetSessionID extracts the authenticated session id from the context.
func GetSessionID(c *gin.Context) string {
	return c.GetString(ContextKeySessionID)
}
