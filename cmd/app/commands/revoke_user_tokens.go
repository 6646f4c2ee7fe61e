package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	authUseCase "github.com/allisson/onboarding/internal/auth/usecase"
)

// RunRevokeUserTokens revokes every active refresh token of a user. Access tokens
// already issued stay valid until they expire.
func RunRevokeUserTokens(
	ctx context.Context,
	credentialUseCase authUseCase.CredentialUseCase,
	logger *slog.Logger,
	writer io.Writer,
	userIDStr string,
	format string,
) error {
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	if err := credentialUseCase.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, map[string]any{"user_id": userID.String(), "revoked": true}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Revoked all refresh tokens of user %s\n", userID)
	}

	logger.Info("user tokens revoked", slog.String("user_id", userID.String()))
	return nil
}
