package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blackburnd/portfolio-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	handler    http.Handler
	version    string

	// Services
	authService       driving.AuthService
	appConfigService  driving.AppConfigService
	oauthService      driving.OAuthFlowService
	connectionService driving.ConnectionService

	// popup renders the completion bridge page for the OAuth callback
	popup *PopupBridge

	// Infrastructure
	db Pinger // PostgreSQL health check
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string

	// BaseURL is the public application URL; its origin is the only
	// target the popup completion page will post messages to.
	BaseURL string

	// AllowedOrigins is the CORS allow-list for the admin UI. Empty
	// means same-origin only, no CORS headers are emitted.
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
		BaseURL: "http://localhost:8080",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	authService driving.AuthService,
	appConfigService driving.AppConfigService,
	oauthService driving.OAuthFlowService,
	connectionService driving.ConnectionService,
	db Pinger,
) (*Server, error) {
	popup, err := NewPopupBridge(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("create popup bridge: %w", err)
	}

	s := &Server{
		router:            http.NewServeMux(),
		version:           cfg.Version,
		authService:       authService,
		appConfigService:  appConfigService,
		oauthService:      oauthService,
		connectionService: connectionService,
		popup:             popup,
		db:                db,
	}

	s.setupRoutes()

	// Recovery wraps everything; logging sees the final status code
	handler := http.Handler(s.router)
	handler = NewCORSMiddleware(cfg.AllowedOrigins).Handler(handler)
	handler = NewLoggingMiddleware().Handler(handler)
	handler = NewRecoveryMiddleware().Handler(handler)
	s.handler = handler

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	authMiddleware := NewAuthMiddleware(s.authService)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Auth endpoints
	s.router.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	s.router.Handle("POST /api/v1/auth/logout",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleLogout)))

	// Provider catalog (authenticated)
	s.router.Handle("GET /api/v1/providers",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListProviders)))

	// App configuration endpoints (authenticated admin)
	s.router.Handle("GET /api/v1/providers/{provider}/config",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetAppConfig)))
	s.router.Handle("POST /api/v1/providers/{provider}/config",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleSaveAppConfig)))
	s.router.Handle("DELETE /api/v1/providers/{provider}/config",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleClearAppConfig)))

	// OAuth flow endpoints
	s.router.Handle("POST /api/v1/oauth/{provider}/authorize",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleOAuthAuthorize)))
	// Callback is public - receives redirects from OAuth providers and
	// responds with the popup completion page, never JSON
	s.router.HandleFunc("GET /api/v1/oauth/callback", s.handleOAuthCallback)

	// Connection endpoints (authenticated admin)
	s.router.Handle("GET /api/v1/oauth/status",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleOAuthStatus)))
	s.router.Handle("DELETE /api/v1/oauth/{provider}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleOAuthDisconnect)))

	// Opener-side bridge script (public static asset)
	s.router.HandleFunc("GET /static/js/oauth-popup.js", s.handlePopupScript)
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.router
}
