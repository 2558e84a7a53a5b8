// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/FelipeCupito/agrosynchro-platform/api"
	"github.com/FelipeCupito/agrosynchro-platform/api/middleware"
	"github.com/FelipeCupito/agrosynchro-platform/api/resources"
	"github.com/FelipeCupito/agrosynchro-platform/internal/agroapi"
	"github.com/FelipeCupito/agrosynchro-platform/internal/auth"
	"github.com/FelipeCupito/agrosynchro-platform/internal/config"
	"github.com/FelipeCupito/agrosynchro-platform/internal/monitoring"
	"github.com/FelipeCupito/agrosynchro-platform/internal/render"
	"github.com/FelipeCupito/agrosynchro-platform/internal/session"
	"github.com/FelipeCupito/agrosynchro-platform/web"
	"github.com/gorilla/handlers"
	nuts "github.com/vaudience/go-nuts"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	auth       *auth.Client
	monitoring *monitoring.Service
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		config: cfg,
		srv:    srv,
	}
}

// Start wires all services together and begins listening for requests
func (s *Server) Start() error {
	store, err := initializeSessionStore(s.config)
	if err != nil {
		return fmt.Errorf("error initializing session store: %w", err)
	}

	renderer, err := render.New(web.FS)
	if err != nil {
		return fmt.Errorf("error loading templates: %w", err)
	}

	s.auth = auth.New(s.config.Cognito, store)
	s.monitoring = monitoring.NewService(monitoring.Config{
		LogLevel: s.config.Monitoring.LogLevel,
	})

	s.setupAuthEventHandlers()

	router := api.NewRouter(resources.Deps{
		Auth:       s.auth,
		API:        agroapi.New(s.config.Backend),
		Renderer:   renderer,
		Monitoring: s.monitoring,
	}, middleware.SessionConfig{
		CookieName: s.config.Session.CookieName,
		HashKey:    s.config.Session.HashKey,
		MaxAge:     int(s.config.Session.TTL.Seconds()),
	})

	s.srv.Handler = handlers.RecoveryHandler()(
		handlers.CombinedLoggingHandler(os.Stdout, router),
	)

	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

// initializeSessionStore picks Redis when configured and falls back to the
// in-process store otherwise. The fallback loses sessions on restart, which
// is acceptable for single-instance deployments.
func initializeSessionStore(cfg *config.Config) (session.Store, error) {
	if cfg.Redis.Host == "" {
		nuts.L.Infof("[Server] No Redis configured, using in-memory session store")
		return session.NewMemoryStore(), nil
	}
	return session.NewRedisStore(cfg.Redis, cfg.Session.TTL)
}

func (s *Server) setupAuthEventHandlers() {
	s.auth.OnAuthEvent(auth.EventSessionEstablished, func(sessionID string) {
		nuts.L.Infof("[Auth] Session %s established", sessionID)
		s.monitoring.RecordEvent("session_established", map[string]string{
			"session_id": sessionID,
		})
	})

	s.auth.OnAuthEvent(auth.EventRefreshed, func(sessionID string) {
		nuts.L.Infof("[Auth] Session %s tokens refreshed", sessionID)
		s.monitoring.RecordEvent("session_refreshed", map[string]string{
			"session_id": sessionID,
		})
	})

	s.auth.OnAuthEvent(auth.EventRefreshFailed, func(sessionID string) {
		nuts.L.Infof("[Auth] Session %s refresh failed", sessionID)
		s.monitoring.RecordEvent("session_refresh_failed", map[string]string{
			"session_id": sessionID,
		})
	})

	s.auth.OnAuthEvent(auth.EventLoggedOut, func(sessionID string) {
		nuts.L.Infof("[Auth] Session %s logged out", sessionID)
		s.monitoring.RecordEvent("session_logged_out", map[string]string{
			"session_id": sessionID,
		})
	})
}
