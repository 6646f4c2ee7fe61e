// Package http provides HTTP handlers for investor profile onboarding.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/onboarding/internal/auth/http"
	apperrors "github.com/allisson/onboarding/internal/errors"
	"github.com/allisson/onboarding/internal/httputil"
	"github.com/allisson/onboarding/internal/investor/http/dto"
	investorUseCase "github.com/allisson/onboarding/internal/investor/usecase"
	customValidation "github.com/allisson/onboarding/internal/validation"
)

// InvestorHandler handles HTTP requests for the authenticated user's investor profile.
type InvestorHandler struct {
	investorUseCase investorUseCase.InvestorUseCase
	logger          *slog.Logger
}

// NewInvestorHandler creates a new investor handler with required dependencies.
func NewInvestorHandler(investorUseCase investorUseCase.InvestorUseCase, logger *slog.Logger) *InvestorHandler {
	return &InvestorHandler{
		investorUseCase: investorUseCase,
		logger:          logger,
	}
}

// SelectTypeHandler creates the caller's profile with its type-specific detail.
// POST /v1/investor-profile - Returns 201 Created, or 409 when a profile already exists.
func (h *InvestorHandler) SelectTypeHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, nil)
		return
	}

	var req dto.SelectTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	profile, err := h.investorUseCase.SelectType(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapProfileToResponse(profile))
}

// GetHandler returns the caller's profile with masked tax identifiers.
// GET /v1/investor-profile
func (h *InvestorHandler) GetHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, nil)
		return
	}

	profile, err := h.investorUseCase.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProfileToResponse(profile))
}

// UpdateAccreditationHandler sets the accreditation state of the caller's profile
// and returns the updated profile.
// PUT /v1/investor-profile/accreditation
func (h *InvestorHandler) UpdateAccreditationHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, nil)
		return
	}

	var req dto.UpdateAccreditationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	ctx := c.Request.Context()
	profile, err := h.investorUseCase.GetByUserID(ctx, userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err := h.investorUseCase.UpdateAccreditation(ctx, profile.ID, *req.IsAccredited, req.Type()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	profile, err = h.investorUseCase.GetByUserID(ctx, userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProfileToResponse(profile))
}

// RevealTaxIDHandler returns the decrypted primary tax identifier of the
// caller's profile. Every reveal is audited.
// POST /v1/investor-profile/tax-id/reveal
func (h *InvestorHandler) RevealTaxIDHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, nil)
		return
	}

	profile, err := h.investorUseCase.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.reveal(c, profile.ID, userID)
}

// RevealProfileTaxIDHandler returns the decrypted tax identifier of any profile.
// POST /v1/investor-profiles/:id/tax-id/reveal - Admin and advisor only.
func (h *InvestorHandler) RevealProfileTaxIDHandler(c *gin.Context) {
	actorID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, nil)
		return
	}

	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(
			c,
			apperrors.Wrap(apperrors.ErrInvalidInput, "invalid profile id"),
			h.logger,
		)
		return
	}

	h.reveal(c, profileID, actorID)
}

// DeleteHandler removes the caller's profile.
// DELETE /v1/investor-profile - Returns 204 No Content.
func (h *InvestorHandler) DeleteHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, nil)
		return
	}

	ctx := c.Request.Context()
	profile, err := h.investorUseCase.GetByUserID(ctx, userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err := h.investorUseCase.Delete(ctx, profile.ID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *InvestorHandler) reveal(c *gin.Context, profileID, actorID uuid.UUID) {
	taxID, err := h.investorUseCase.RevealTaxID(c.Request.Context(), profileID, actorID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.RevealTaxIDResponse{TaxID: taxID})
}
