package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kibshh/component-tracker/backend/internal/audit"
	"github.com/kibshh/component-tracker/backend/internal/registry"
)

// CallerHeader carries the already-authenticated caller identity.
const CallerHeader = "X-Caller-Identity"

// Registry is the subset of *registry.Registry the server drives.
type Registry interface {
	Admin() registry.Identity
	Paused() bool
	LastComponentID() uint64
	SetPaused(caller registry.Identity, pause bool) (bool, error)
	AssignRole(caller, user registry.Identity, role registry.Role) (bool, error)
	RegisterComponent(caller registry.Identity, serialNumber, material string) (uint64, error)
	RegisterBatch(caller registry.Identity, inputs []registry.ComponentInput) (uint64, error)
	AddLifecycleEvent(caller registry.Identity, componentID uint64, status registry.Status, notes string) (uint64, error)
	GetComponent(id uint64) (registry.Component, error)
	GetLifecycleEvent(componentID, eventIndex uint64) (registry.LifecycleEvent, error)
	GetEventCount(componentID uint64) uint64
	GetRole(user registry.Identity) registry.Role
}

// Server represents the HTTP server for the component tracking backend
type Server struct {
	httpServer *http.Server
	addr       string
	tlsCert    string
	tlsKey     string

	registry  Registry
	auditSink audit.Sink
	logger    *zap.Logger
}

// Config holds server configuration
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TLSCertFile  string // TLS is used when both files are set
	TLSKeyFile   string
}

// DefaultConfig returns a default server configuration
func DefaultConfig() Config {
	return Config{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// New creates a new server instance. auditSink may be nil.
func New(cfg Config, reg Registry, auditSink audit.Sink, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	mux := http.NewServeMux()

	server := &Server{
		addr:      addr,
		tlsCert:   cfg.TLSCertFile,
		tlsKey:    cfg.TLSKeyFile,
		registry:  reg,
		auditSink: auditSink,
		logger:    logger.Named("server"),
	}
	// Register API routes
	server.registerRoutes(mux)

	server.httpServer = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return server
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the HTTP server and blocks until context is cancelled
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.addr), zap.Bool("tls", s.tlsEnabled()))
		var err error
		if s.tlsEnabled() {
			err = s.httpServer.ListenAndServeTLS(s.tlsCert, s.tlsKey)
		} else {
			err = s.httpServer.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "server shutdown")
		}
		s.logger.Info("server shut down gracefully")
		return nil
	case err := <-errChan:
		return errors.Wrap(err, "server listen")
	}
}

func (s *Server) tlsEnabled() bool {
	return s.tlsCert != "" && s.tlsKey != ""
}

// registerRoutes registers all API endpoints
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)

	// Administration
	mux.HandleFunc("POST /api/v1/admin/pause", s.handlePause)
	mux.HandleFunc("POST /api/v1/roles", s.handleRoleAssign)
	mux.HandleFunc("GET /api/v1/roles/{user}", s.handleRoleGet)

	// Components
	mux.HandleFunc("POST /api/v1/components", s.handleComponentRegister)
	mux.HandleFunc("POST /api/v1/components/batch", s.handleComponentBatch)
	mux.HandleFunc("GET /api/v1/components/{id}", s.handleComponentGet)

	// Lifecycle events
	mux.HandleFunc("POST /api/v1/components/{id}/events", s.handleLifecycleAdd)
	mux.HandleFunc("GET /api/v1/components/{id}/events", s.handleEventCount)
	mux.HandleFunc("GET /api/v1/components/{id}/events/{index}", s.handleEventGet)
}

type healthResponse struct {
	Status          string `json:"status"`
	Paused          bool   `json:"paused"`
	LastComponentID uint64 `json:"last_component_id"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:          "ok",
		Paused:          s.registry.Paused(),
		LastComponentID: s.registry.LastComponentID(),
	})
}

// publish hands committed mutations to the audit sink. A sink failure is
// logged and never undoes the mutation.
func (s *Server) publish(ctx context.Context, records ...audit.Record) {
	if s.auditSink == nil {
		return
	}
	if err := s.auditSink.Ingest(ctx, records); err != nil {
		s.logger.Warn("audit ingest failed", zap.Error(err), zap.Int("records", len(records)))
	}
}
