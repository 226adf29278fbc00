package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aula-lms/aula/internal/application/identity/usecases"
	"github.com/aula-lms/aula/internal/interfaces/http/middleware"
	"github.com/aula-lms/aula/internal/shared/logger"
	"github.com/aula-lms/aula/internal/shared/utils"
)

// SessionHandler serves the signed-in-devices list and per-device revocation.
type SessionHandler struct {
	listSessionsUC  *usecases.ListSessionsUseCase
	revokeSessionUC *usecases.RevokeSessionUseCase
	logger          logger.Interface
}

func NewSessionHandler(
	listSessionsUC *usecases.ListSessionsUseCase,
	revokeSessionUC *usecases.RevokeSessionUseCase,
	logger logger.Interface,
) *SessionHandler {
	return &SessionHandler{
		listSessionsUC:  listSessionsUC,
		revokeSessionUC: revokeSessionUC,
		logger:          logger,
	}
}

type sessionResponse struct {
	ID         string    `json:"id"`
	IPAddress  string    `json:"ip_address"`
	Browser    string    `json:"browser"`
	OS         string    `json:"os"`
	Device     string    `json:"device"`
	Current    bool      `json:"current"`
	CreatedAt  time.Time `json:"created_at"`
	LastUsedAt time.Time `json:"last_used_at"`
}

// List handles GET /auth/sessions
func (h *SessionHandler) List(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	result, err := h.listSessionsUC.Execute(c.Request.Context(), usecases.ListSessionsCommand{
		AccountID: accountID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	currentSessionID := middleware.GetSessionID(c)

	sessions := make([]sessionResponse, 0, len(result.Sessions))
	for _, sess := range result.Sessions {
		sessions = append(sessions, sessionResponse{
			ID:         sess.ID(),
			IPAddress:  sess.IPAddress(),
			Browser:    sess.Browser(),
			OS:         sess.OS(),
			Device:     sess.Device(),
			Current:    sess.ID() == currentSessionID,
			CreatedAt:  sess.CreatedAt(),
			LastUsedAt: sess.LastUsedAt(),
		})
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"sessions": sessions})
}

// Revoke handles DELETE /auth/sessions/:id
func (h *SessionHandler) Revoke(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	sessionID := c.Param("id")
	if sessionID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "session id is required")
		return
	}

	if err := h.revokeSessionUC.Execute(c.Request.Context(), usecases.RevokeSessionCommand{
		AccountID: accountID,
		SessionID: sessionID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Session revoked", nil)
}
