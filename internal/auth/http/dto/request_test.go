package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginRequest_Validate(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		req := LoginRequest{Email: "john@example.com", Password: "SecurePass123!"}
		assert.NoError(t, req.Validate())
	})

	t.Run("Error_MissingEmail", func(t *testing.T) {
		req := LoginRequest{Password: "SecurePass123!"}
		assert.Error(t, req.Validate())
	})

	t.Run("Error_BlankEmail", func(t *testing.T) {
		req := LoginRequest{Email: "   ", Password: "SecurePass123!"}
		assert.Error(t, req.Validate())
	})

	t.Run("Error_MissingPassword", func(t *testing.T) {
		req := LoginRequest{Email: "john@example.com"}
		assert.Error(t, req.Validate())
	})
}

func TestRefreshRequest_Validate(t *testing.T) {
	t.Run("Success_WithoutAccessToken", func(t *testing.T) {
		req := RefreshRequest{RefreshToken: "abc"}
		assert.NoError(t, req.Validate())
	})

	t.Run("Error_BlankRefreshToken", func(t *testing.T) {
		req := RefreshRequest{RefreshToken: " \t"}
		assert.Error(t, req.Validate())
	})
}

func TestLogoutRequest_Validate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		req := LogoutRequest{RefreshToken: "abc"}
		assert.NoError(t, req.Validate())
	})

	t.Run("Error_Missing", func(t *testing.T) {
		req := LogoutRequest{}
		assert.Error(t, req.Validate())
	})
}
