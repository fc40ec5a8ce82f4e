package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/communityeye/auth-service/internal/server/handlers"
	"github.com/communityeye/auth-service/internal/server/middleware"
	"github.com/communityeye/auth-service/internal/server/storage"
)

// Options configures the HTTP server.
type Options struct {
	Logger           *slog.Logger
	UserStorage      storage.UserStorage
	TokenStorage     storage.TokenStorage
	Pinger           handlers.Pinger
	JWTConfig        handlers.JWTConfig
	Address          string
	RateLimitEnabled bool
	RateLimit        int
	RateLimitWindow  time.Duration
}

// Server wraps the http.Server with the composed route table.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// New builds the route table and middleware chain.
//
// Protected routes sit behind the auth guard; register and login sit
// behind the rate limiter instead, since they are the brute-force
// surface. Logging and recovery wrap everything.
func New(opts Options) *Server {
	authHandler := handlers.NewAuthHandler(opts.Logger, opts.UserStorage, opts.TokenStorage, opts.JWTConfig)
	usersHandler := handlers.NewUsersHandler(opts.Logger, opts.UserStorage)
	healthHandler := handlers.NewHealthHandler(opts.Logger, opts.Pinger)

	guard := middleware.AuthMiddleware(opts.Logger, opts.JWTConfig, opts.TokenStorage)

	throttle := func(next http.Handler) http.Handler { return next }
	if opts.RateLimitEnabled {
		throttle = middleware.RateLimitMiddleware(opts.RateLimit, opts.RateLimitWindow, opts.Logger)
	}

	mux := http.NewServeMux()

	mux.Handle("POST /api/v1/register", throttle(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /api/v1/login", throttle(http.HandlerFunc(authHandler.Login)))
	mux.Handle("GET /api/v1/logout", guard(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("DELETE /api/v1/delete_account", guard(http.HandlerFunc(authHandler.DeleteAccount)))
	mux.HandleFunc("POST /api/v1/validate-token", authHandler.ValidateToken)

	mux.Handle("GET /api/v1/users/{id}", guard(http.HandlerFunc(usersHandler.GetUser)))
	mux.Handle("PUT /api/v1/users/{id}", guard(http.HandlerFunc(usersHandler.UpdateUser)))

	mux.HandleFunc("GET /api/v1/health", healthHandler.Health)

	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(opts.Logger)(handler)
	handler = middleware.RecoveryMiddleware(opts.Logger)(handler)

	return &Server{
		httpServer: &http.Server{
			Addr:              opts.Address,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: opts.Logger,
	}
}

// Handler exposes the composed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info("HTTP server listening", "address", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
