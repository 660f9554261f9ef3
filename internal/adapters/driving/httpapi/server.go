package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/ocean48/oceanbot/internal/core/domain"
	"github.com/ocean48/oceanbot/internal/logger"
)

// Config holds HTTP server settings.
type Config struct {
	// Addr is the listen address. Port 0 picks a free port.
	Addr string

	// AllowedOrigins lists CORS origins. "*" allows any origin.
	AllowedOrigins []string

	// MaxUploadBytes caps the size of a multipart upload.
	MaxUploadBytes int64
}

// ConfigFromSettings builds a Config from resolved settings.
func ConfigFromSettings(s domain.ServerSettings) Config {
	return Config{
		Addr:           s.Addr,
		AllowedOrigins: s.AllowedOrigins,
		MaxUploadBytes: s.MaxUploadBytes,
	}
}

// Server is the OceanBot HTTP server.
type Server struct {
	mu       sync.Mutex
	cfg      Config
	ports    *Ports
	handler  http.Handler
	server   *http.Server
	listener net.Listener
}

// NewServer creates a new server with the given ports.
func NewServer(cfg Config, ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = domain.DefaultMaxUploadBytes
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	s := &Server{cfg: cfg, ports: ports}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("GET /chunking-stats", s.handleChunkingStats)
	mux.HandleFunc("GET /verify_system_prompt", s.handleVerifyPolicy)
	mux.HandleFunc("GET /{$}", s.handleRoot)

	return logRequests(cors(s.cfg.AllowedOrigins, mux))
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	s.listener = listener

	// WriteTimeout stays zero: answers stream for as long as the model talks.
	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server: %v", err)
		}
	}()

	logger.Info("Listening on %s", listener.Addr())
	return nil
}

// Run starts the server and blocks until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Addr returns the address the server is listening on, or the configured
// address before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.cfg.Addr
}
