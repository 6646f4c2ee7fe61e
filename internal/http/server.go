// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/onboarding/internal/auth/http"
	authService "github.com/allisson/onboarding/internal/auth/service"
	"github.com/allisson/onboarding/internal/config"
	investorHTTP "github.com/allisson/onboarding/internal/investor/http"
	"github.com/allisson/onboarding/internal/metrics"
	userDomain "github.com/allisson/onboarding/internal/user/domain"
	userHTTP "github.com/allisson/onboarding/internal/user/http"
)

// readinessTimeout bounds the database ping of the readiness probe.
const readinessTimeout = 2 * time.Second

// Server represents the HTTP server
type Server struct {
	db     *sql.DB
	server *http.Server
	logger *slog.Logger
	router *gin.Engine
}

// NewServer creates a new HTTP server
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Handlers groups the domain handlers mounted by SetupRouter.
type Handlers struct {
	Credential *authHTTP.CredentialHandler
	AuditLog   *authHTTP.AuditLogHandler
	User       *userHTTP.UserHandler
	Investor   *investorHTTP.InvestorHandler
}

// SetupRouter configures the Gin router with all routes and middleware.
// The ctx bounds the background cleanup of the rate limiters.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	handlers Handlers,
	accessTokenService authService.AccessTokenService,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(RequestLoggerMiddleware(s.logger))
	router.Use(authHTTP.AuditContextMiddleware())

	if corsMiddleware := newCORSMiddleware(cfg, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	// Every versioned route carries credentials or personal data.
	v1 := router.Group("/v1", NoStoreMiddleware())

	authenticate := authHTTP.AuthenticationMiddleware(accessTokenService, s.logger)
	authenticated := []gin.HandlerFunc{authenticate}
	if cfg.RateLimitEnabled {
		authenticated = append(authenticated, authHTTP.RateLimitMiddleware(
			ctx,
			cfg.RateLimitRequestsPerSec,
			cfg.RateLimitBurst,
			s.logger,
		))
	}

	// Unauthenticated endpoints that hash passwords or mint tokens share one per-IP limiter
	var public []gin.HandlerFunc
	if cfg.RateLimitAuthEnabled {
		public = append(public, authHTTP.IPRateLimitMiddleware(
			ctx,
			cfg.RateLimitAuthRequestsPerSec,
			cfg.RateLimitAuthBurst,
			s.logger,
		))
	}

	// Public authentication endpoints
	auth := v1.Group("/auth")
	{
		credentials := auth.Group("", public...)
		credentials.POST("/login", handlers.Credential.LoginHandler)
		credentials.POST("/refresh", handlers.Credential.RefreshHandler)

		auth.POST("/logout", handlers.Credential.LogoutHandler)
		auth.POST("/logout-all", append(authenticated, handlers.Credential.LogoutAllHandler)...)
	}

	// Registration
	v1.POST("/users", append(public, handlers.User.RegisterHandler)...)

	// Investor profile of the authenticated user
	profile := v1.Group("/investor-profile", authenticated...)
	{
		profile.POST("", handlers.Investor.SelectTypeHandler)
		profile.GET("", handlers.Investor.GetHandler)
		profile.DELETE("", handlers.Investor.DeleteHandler)
		profile.PUT("/accreditation", handlers.Investor.UpdateAccreditationHandler)
		profile.POST("/tax-id/reveal", handlers.Investor.RevealTaxIDHandler)
	}

	// Back-office access to other investors' profiles
	profiles := v1.Group("/investor-profiles", authenticated...)
	profiles.Use(authHTTP.RequireRole(s.logger, string(userDomain.RoleAdmin), string(userDomain.RoleAdvisor)))
	{
		profiles.POST("/:id/tax-id/reveal", handlers.Investor.RevealProfileTaxIDHandler)
	}

	auditLogs := v1.Group("/audit-logs", authenticated...)
	auditLogs.Use(authHTTP.RequireRole(s.logger, string(userDomain.RoleAdmin)))
	{
		auditLogs.GET("", handlers.AuditLog.ListHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured: call SetupRouter before Start")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can reach its database.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
