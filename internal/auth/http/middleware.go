package http

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/onboarding/internal/auth/domain"
	authService "github.com/allisson/onboarding/internal/auth/service"
	authUseCase "github.com/allisson/onboarding/internal/auth/usecase"
	apperrors "github.com/allisson/onboarding/internal/errors"
	"github.com/allisson/onboarding/internal/httputil"
)

// AuthenticationMiddleware validates the Bearer access token in the Authorization header.
//
// Validation is stateless: signature, algorithm, issuer, audience and expiry are
// checked by AccessTokenService.Parse. Every failure produces the same 401 body.
//
// Usage:
//
//	router.Use(AuthenticationMiddleware(accessTokenService, logger))
//	router.GET("/protected", func(c *gin.Context) {
//	    userID, ok := GetUserID(c.Request.Context())
//	    ...
//	})
func AuthenticationMiddleware(
	accessTokenService authService.AccessTokenService,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, nil)
			c.Abort()
			return
		}

		claims, err := accessTokenService.Parse(token)
		if err != nil {
			logger.Debug("authentication failed: invalid access token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, nil)
			c.Abort()
			return
		}

		if _, err := claims.UserID(); err != nil {
			logger.Debug("authentication failed: invalid subject")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, nil)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

// RequireRole rejects authenticated users whose role is not one of roles.
// It MUST be used after AuthenticationMiddleware.
func RequireRole(logger *slog.Logger, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c.Request.Context())
		if !ok {
			logger.Debug("authorization failed: no claims in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, nil)
			c.Abort()
			return
		}

		if !slices.Contains(roles, claims.Role) {
			logger.Debug("authorization failed: role not allowed",
				slog.String("user_id", claims.Subject),
				slog.String("role", claims.Role))
			httputil.HandleErrorGin(c, authDomain.ErrInvalidRole, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

// AuditContextMiddleware copies the request id set by requestid.New into the
// request context so audit entries written during the request carry it.
func AuditContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := uuid.Parse(requestid.Get(c)); err == nil {
			c.Request = c.Request.WithContext(authUseCase.WithRequestID(c.Request.Context(), id))
		}
		c.Next()
	}
}

// bearerToken extracts the token from a "Bearer <token>" header (case-insensitive scheme).
func bearerToken(header string) (string, bool) {
	const bearerPrefix = "bearer "
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", false
	}
	return token, true
}
