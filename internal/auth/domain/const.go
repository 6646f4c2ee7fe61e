// Package domain defines the credential model: refresh tokens, access token
// claims and signed audit logs of authentication events.
package domain

import "slices"

// TokenState is the lifecycle state of a refresh token, derived at read time.
type TokenState string

const (
	// TokenStateActive means the token may be exchanged for new credentials.
	TokenStateActive TokenState = "active"

	// TokenStateExpired means the token outlived its expiration time.
	TokenStateExpired TokenState = "expired"

	// TokenStateRevoked means the token was explicitly revoked.
	TokenStateRevoked TokenState = "revoked"
)

// Action names recorded in audit logs.
const (
	ActionLogin                = "auth.login"
	ActionLoginFailed          = "auth.login_failed"
	ActionRefresh              = "auth.refresh"
	ActionLogout               = "auth.logout"
	ActionRevokeAll            = "auth.revoke_all"
	ActionProfileCreated       = "investor.profile_created"
	ActionAccreditationUpdated = "investor.accreditation_updated"
	ActionTaxIDRevealed        = "investor.tax_id_revealed"
	ActionProfileDeleted       = "investor.profile_deleted"
)

var knownActions = []string{
	ActionLogin,
	ActionLoginFailed,
	ActionRefresh,
	ActionLogout,
	ActionRevokeAll,
	ActionProfileCreated,
	ActionAccreditationUpdated,
	ActionTaxIDRevealed,
	ActionProfileDeleted,
}

// IsKnownAction reports whether action is one this service records.
func IsKnownAction(action string) bool {
	return slices.Contains(knownActions, action)
}
