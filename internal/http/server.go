// Package http provides the HTTP server, routing and middleware.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/socioclub/membership/internal/config"
	identityHTTP "github.com/socioclub/membership/internal/identity/http"
	"github.com/socioclub/membership/internal/metrics"
	profileHTTP "github.com/socioclub/membership/internal/profile/http"
)

// Server represents the API HTTP server
type Server struct {
	server         *http.Server
	config         *config.Config
	logger         *slog.Logger
	userHandler    *identityHTTP.UserHandler
	profileHandler *profileHTTP.ProfileHandler
	meterProvider  otelmetric.MeterProvider
}

// NewServer creates a new HTTP server. meterProvider may be nil when metrics
// are disabled.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	userHandler *identityHTTP.UserHandler,
	profileHandler *profileHTTP.ProfileHandler,
	meterProvider otelmetric.MeterProvider,
) *Server {
	return &Server{
		config:         cfg,
		logger:         logger,
		userHandler:    userHandler,
		profileHandler: profileHandler,
		meterProvider:  meterProvider,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the gin engine with all middleware and routes. The
// context controls the readiness endpoint: once cancelled, /ready reports
// not ready.
func (s *Server) SetupRouter(ctx context.Context) *gin.Engine {
	router := gin.New()

	router.Use(RecoveryMiddleware(s.logger))
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(s.logger))

	if s.meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(s.meterProvider, s.config.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(s.config.CORSEnabled, s.config.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", HealthHandler)
	router.GET("/ready", ReadinessHandler(ctx))

	v1 := router.Group("/v1")
	{
		v1.POST("/users", s.userHandler.RegisterHandler)
		v1.GET("/users", s.userHandler.ListHandler)
		v1.GET("/users/:id", s.userHandler.GetHandler)
		v1.POST("/users/:id/verify-email", s.userHandler.VerifyEmailHandler)
		v1.GET("/users/:id/profile", s.profileHandler.GetByUserHandler)

		login := v1.Group("/login")
		if s.config.RateLimitLoginEnabled {
			login.Use(LoginRateLimitMiddleware(
				s.config.RateLimitLoginRequestsPerSec,
				s.config.RateLimitLoginBurst,
				s.logger,
			))
		}
		login.POST("", s.userHandler.LoginHandler)

		v1.POST("/profiles", s.profileHandler.CreateHandler)
		v1.GET("/profiles/:id", s.profileHandler.GetHandler)
		v1.PUT("/profiles/:id", s.profileHandler.UpdateHandler)
		v1.PUT("/profiles/:id/photo", s.profileHandler.AttachPhotoHandler)
	}

	return router
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.SetupRouter(ctx)

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
