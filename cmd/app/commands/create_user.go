package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	userDomain "github.com/allisson/onboarding/internal/user/domain"
	userUseCase "github.com/allisson/onboarding/internal/user/usecase"
)

// RunCreateUser registers a user with an explicit role. This is the only way to
// create admin and advisor accounts. When password is empty it is read from the
// terminal without echo.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	useCase userUseCase.UseCase,
	logger *slog.Logger,
	stdio IOTuple,
	name, email, password, role string,
	format string,
) error {
	if _, err := userDomain.ParseRole(role); err != nil {
		return fmt.Errorf("invalid role %q (valid options: investor, advisor, admin)", role)
	}

	if password == "" {
		var err error
		password, err = promptSecret(stdio, "Password")
		if err != nil {
			return err
		}
	}

	logger.Info("creating user", slog.String("role", role))

	user, err := useCase.RegisterUser(ctx, userUseCase.RegisterUserInput{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		if err := writeJSON(stdio.Writer, map[string]string{
			"user_id": user.ID.String(),
			"email":   user.Email,
			"role":    string(user.Role),
		}); err != nil {
			return err
		}
	} else {
		outputCreateUserText(stdio.Writer, user)
	}

	logger.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)),
	)

	return nil
}

func outputCreateUserText(writer io.Writer, user *userDomain.User) {
	_, _ = fmt.Fprintln(writer, "User created successfully!")
	_, _ = fmt.Fprintf(writer, "User ID: %s\n", user.ID.String())
	_, _ = fmt.Fprintf(writer, "Email:   %s\n", user.Email)
	_, _ = fmt.Fprintf(writer, "Role:    %s\n", user.Role)
}
