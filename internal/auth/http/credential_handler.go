package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/onboarding/internal/auth/http/dto"
	authUseCase "github.com/allisson/onboarding/internal/auth/usecase"
	apperrors "github.com/allisson/onboarding/internal/errors"
	"github.com/allisson/onboarding/internal/httputil"
	customValidation "github.com/allisson/onboarding/internal/validation"
)

// CredentialHandler handles HTTP requests for login, token refresh and logout.
type CredentialHandler struct {
	credentialUseCase authUseCase.CredentialUseCase
	logger            *slog.Logger
}

// NewCredentialHandler creates a new credential handler with required dependencies.
func NewCredentialHandler(
	credentialUseCase authUseCase.CredentialUseCase,
	logger *slog.Logger,
) *CredentialHandler {
	return &CredentialHandler{
		credentialUseCase: credentialUseCase,
		logger:            logger,
	}
}

// LoginHandler exchanges email and password for a token pair.
// POST /v1/auth/login - No authentication required.
// Returns 200 OK with the token pair, or 401 with a generic body on any credential failure.
func (h *CredentialHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	pair, err := h.credentialUseCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTokenPairToResponse(pair))
}

// RefreshHandler rotates a refresh token and issues a new token pair.
// POST /v1/auth/refresh - No authentication required; the refresh token is the credential.
func (h *CredentialHandler) RefreshHandler(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	pair, err := h.credentialUseCase.Refresh(c.Request.Context(), req.RefreshToken, req.AccessToken)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTokenPairToResponse(pair))
}

// LogoutHandler revokes a refresh token.
// POST /v1/auth/logout - Returns 204 No Content, including for unknown tokens.
func (h *CredentialHandler) LogoutHandler(c *gin.Context) {
	var req dto.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.credentialUseCase.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// LogoutAllHandler revokes every active refresh token of the authenticated user.
// POST /v1/auth/logout-all - Requires a valid access token.
func (h *CredentialHandler) LogoutAllHandler(c *gin.Context) {
	userID, ok := GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, nil)
		return
	}

	if err := h.credentialUseCase.RevokeAllForUser(c.Request.Context(), userID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
