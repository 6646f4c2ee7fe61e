package commands

import (
	"context"
	"fmt"
	"log/slog"

	secretsUseCase "github.com/allisson/onboarding/internal/secrets/usecase"
)

// RunSetSecret writes a named secret to the configured remote store and reads it
// back to confirm the write. When value is empty it is read from the terminal
// without echo. The value is never printed.
func RunSetSecret(
	ctx context.Context,
	secretProvider secretsUseCase.SecretProvider,
	logger *slog.Logger,
	stdio IOTuple,
	name, value string,
	format string,
) error {
	if name == "" {
		return fmt.Errorf("secret name is required")
	}

	if value == "" {
		var err error
		value, err = promptSecret(stdio, "Value for "+name)
		if err != nil {
			return err
		}
		if value == "" {
			return fmt.Errorf("secret value is required")
		}
	}

	if err := secretProvider.SetSecret(ctx, name, value); err != nil {
		return fmt.Errorf("failed to set secret: %w", err)
	}

	// Read back from the store rather than the cache SetSecret just filled.
	secretProvider.Invalidate(name)
	stored, err := secretProvider.GetSecret(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to verify secret: %w", err)
	}
	if stored != value {
		return fmt.Errorf("failed to verify secret: stored value differs")
	}

	if format == "json" {
		if err := writeJSON(stdio.Writer, map[string]any{"name": name, "stored": true}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(stdio.Writer, "Secret %q stored successfully\n", name)
	}

	logger.Info("secret stored", slog.String("name", name))
	return nil
}
