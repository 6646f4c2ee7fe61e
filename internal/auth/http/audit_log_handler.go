package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/onboarding/internal/auth/domain"
	"github.com/allisson/onboarding/internal/auth/http/dto"
	authUseCase "github.com/allisson/onboarding/internal/auth/usecase"
	"github.com/allisson/onboarding/internal/httputil"
)

// AuditLogHandler serves the admin audit trail.
type AuditLogHandler struct {
	auditLogUseCase authUseCase.AuditLogUseCase
	logger          *slog.Logger
}

// NewAuditLogHandler creates a new audit log handler with required dependencies.
func NewAuditLogHandler(
	auditLogUseCase authUseCase.AuditLogUseCase,
	logger *slog.Logger,
) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUseCase: auditLogUseCase,
		logger:          logger,
	}
}

// ListHandler lists audit logs newest first.
// GET /v1/audit-logs?offset=0&limit=50&user_id=<uuid>&action=investor.tax_id_revealed
//
//	&created_at_from=2026-02-01T00:00:00Z&created_at_to=2026-02-14T23:59:59Z
//
// Admin only. Every filter is optional. Time bounds are RFC3339, converted to
// UTC and inclusive. next_offset is present while more pages may follow.
func (h *AuditLogHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	filter, err := parseAuditLogFilter(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	auditLogs, err := h.auditLogUseCase.List(c.Request.Context(), offset, limit, filter)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAuditLogsToListResponse(auditLogs, httputil.NextOffset(offset, limit, len(auditLogs))))
}

func parseAuditLogFilter(c *gin.Context) (authDomain.AuditLogFilter, error) {
	var filter authDomain.AuditLogFilter

	from, err := parseTimeQuery(c, "created_at_from")
	if err != nil {
		return filter, err
	}
	to, err := parseTimeQuery(c, "created_at_to")
	if err != nil {
		return filter, err
	}
	if from != nil && to != nil && from.After(*to) {
		return filter, fmt.Errorf("created_at_from must be before or equal to created_at_to")
	}
	filter.CreatedAtFrom, filter.CreatedAtTo = from, to

	if raw := c.Query("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid user_id: must be a UUID")
		}
		filter.UserID = &userID
	}

	if action := c.Query("action"); action != "" {
		if !authDomain.IsKnownAction(action) {
			return filter, fmt.Errorf("unknown action %q", action)
		}
		filter.Action = action
	}

	return filter, nil
}

func parseTimeQuery(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s format: must be RFC3339 (e.g., 2026-02-01T00:00:00Z)", key)
	}
	utc := parsed.UTC()
	return &utc, nil
}
