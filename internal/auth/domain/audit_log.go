package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records a security relevant event. Signature is an HMAC over the
// canonical encoding of the other fields and makes tampering detectable.
type AuditLog struct {
	ID        uuid.UUID
	RequestID uuid.UUID
	UserID    uuid.UUID
	Action    string
	Metadata  map[string]any
	Signature []byte
	CreatedAt time.Time
}

// IsSigned reports whether the entry carries a signature.
func (a *AuditLog) IsSigned() bool {
	return len(a.Signature) > 0
}

// AuditLogFilter narrows audit log listings and verification runs. Nil bounds,
// a nil user and an empty action match everything. Both bounds are inclusive.
type AuditLogFilter struct {
	CreatedAtFrom *time.Time
	CreatedAtTo   *time.Time
	UserID        *uuid.UUID
	Action        string
}
