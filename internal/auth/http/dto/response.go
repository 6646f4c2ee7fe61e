package dto

import (
	"time"

	authDomain "github.com/allisson/onboarding/internal/auth/domain"
)

// TokenPairResponse is returned on login and refresh.
// SECURITY: the refresh token is only returned once and must be stored securely by the client.
type TokenPairResponse struct {
	AccessToken           string    `json:"access_token"`
	TokenType             string    `json:"token_type"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshToken          string    `json:"refresh_token"` //nolint:gosec // returned once
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
}

// MapTokenPairToResponse converts a domain token pair to an API response.
func MapTokenPairToResponse(pair *authDomain.TokenPair) TokenPairResponse {
	return TokenPairResponse{
		AccessToken:           pair.AccessToken,
		TokenType:             "Bearer",
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshToken:          pair.RefreshToken,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
	}
}

// AuditLogResponse represents an audit log entry in API responses.
type AuditLogResponse struct {
	ID        string         `json:"id"`
	RequestID string         `json:"request_id"`
	UserID    string         `json:"user_id"`
	Action    string         `json:"action"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Signed    bool           `json:"signed"`
	CreatedAt time.Time      `json:"created_at"`
}

// MapAuditLogToResponse converts a domain audit log to an API response.
func MapAuditLogToResponse(auditLog *authDomain.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:        auditLog.ID.String(),
		RequestID: auditLog.RequestID.String(),
		UserID:    auditLog.UserID.String(),
		Action:    auditLog.Action,
		Metadata:  auditLog.Metadata,
		Signed:    auditLog.IsSigned(),
		CreatedAt: auditLog.CreatedAt,
	}
}

// ListAuditLogsResponse is one page of audit logs. NextOffset is omitted on
// the last page.
type ListAuditLogsResponse struct {
	Data       []AuditLogResponse `json:"data"`
	NextOffset *int               `json:"next_offset,omitempty"`
}

// MapAuditLogsToListResponse converts a page of domain audit logs to a list API response.
func MapAuditLogsToListResponse(auditLogs []*authDomain.AuditLog, nextOffset *int) ListAuditLogsResponse {
	auditLogResponses := make([]AuditLogResponse, 0, len(auditLogs))
	for _, auditLog := range auditLogs {
		auditLogResponses = append(auditLogResponses, MapAuditLogToResponse(auditLog))
	}
	return ListAuditLogsResponse{
		Data:       auditLogResponses,
		NextOffset: nextOffset,
	}
}
