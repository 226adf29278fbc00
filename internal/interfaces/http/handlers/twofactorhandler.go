package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aula-lms/aula/internal/application/identity/usecases"
	"github.com/aula-lms/aula/internal/interfaces/http/middleware"
	"github.com/aula-lms/aula/internal/shared/logger"
	"github.com/aula-lms/aula/internal/shared/utils"
)

// TwoFactorHandler serves the second-factor enrollment lifecycle.
type TwoFactorHandler struct {
	initiateUC *usecases.InitiateTwoFactorUseCase
	confirmUC  *usecases.ConfirmTwoFactorUseCase
	disableUC  *usecases.DisableTwoFactorUseCase
	logger     logger.Interface
}

func NewTwoFactorHandler(
	initiateUC *usecases.InitiateTwoFactorUseCase,
	confirmUC *usecases.ConfirmTwoFactorUseCase,
	disableUC *usecases.DisableTwoFactorUseCase,
	logger logger.Interface,
) *TwoFactorHandler {
	return &TwoFactorHandler{
		initiateUC: initiateUC,
		confirmUC:  confirmUC,
		disableUC:  disableUC,
		logger:     logger,
	}
}

// Initiate handles POST /auth/2fa/initiate
func (h *TwoFactorHandler) Initiate(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	result, err := h.initiateUC.Execute(c.Request.Context(), usecases.InitiateTwoFactorCommand{
		AccountID: accountID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Scan the QR code and confirm with a generated code", gin.H{
		"secret":      result.Secret,
		"otpauth_url": result.OtpauthURL,
	})
}

type confirmTwoFactorRequest struct {
	Code string `json:"code" binding:"required,len=6"`
}

// Confirm handles POST /auth/2fa/confirm
func (h *TwoFactorHandler) Confirm(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req confirmTwoFactorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	if err := h.confirmUC.Execute(c.Request.Context(), usecases.ConfirmTwoFactorCommand{
		AccountID: accountID,
		Code:      req.Code,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Two-factor authentication enabled", nil)
}

type disableTwoFactorRequest struct {
	Password string `json:"password" binding:"required"`
	Code     string `json:"code" binding:"required,len=6"`
}

// Disable handles POST /auth/2fa/disable
func (h *TwoFactorHandler) Disable(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req disableTwoFactorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	if err := h.disableUC.Execute(c.Request.Context(), usecases.DisableTwoFactorCommand{
		AccountID: accountID,
		Password:  req.Password,
		Code:      req.Code,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Two-factor authentication disabled", nil)
}
