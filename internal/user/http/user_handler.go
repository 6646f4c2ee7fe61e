// Package http provides HTTP handlers for user registration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/onboarding/internal/httputil"
	"github.com/allisson/onboarding/internal/user/domain"
	"github.com/allisson/onboarding/internal/user/http/dto"
	userUseCase "github.com/allisson/onboarding/internal/user/usecase"
	customValidation "github.com/allisson/onboarding/internal/validation"
)

// UserHandler handles HTTP requests for user registration.
type UserHandler struct {
	userUseCase userUseCase.UseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler with required dependencies.
func NewUserHandler(userUseCase userUseCase.UseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// RegisterHandler creates an investor account.
// POST /v1/users - No authentication required. Returns 201 Created or 409 for a taken email.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	user, err := h.userUseCase.RegisterUser(c.Request.Context(), userUseCase.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     string(domain.RoleInvestor),
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("user registered", slog.String("user_id", user.ID.String()))

	c.JSON(http.StatusCreated, dto.MapUserToResponse(user))
}
