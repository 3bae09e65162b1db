package apimock

import (
	"context"
	"errors"
	"net"
	"net/http"

	"go.uber.org/zap"
)

// DefaultAddr is the default listen address of the mock API.
const DefaultAddr = ":8080"

// Server runs the mock Property API over HTTP.
type Server struct {
	server *http.Server
	logger *zap.Logger
	ln     net.Listener
}

// NewServer creates a server for fx listening on addr.
func NewServer(addr string, fx Fixtures, logger *zap.Logger) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		server: &http.Server{
			Addr:    addr,
			Handler: NewRouter(fx, logger),
		},
		logger: logger,
	}
}

// Start binds the listener and serves in a background goroutine.
// Bind errors are returned; later serve errors are logged.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.logger.Info("mock property api listening", zap.String("addr", ln.Addr().String()))
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("mock property api stopped", zap.Error(err))
		}
	}()
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Addr returns the bound address once started, else the configured one.
func (s *Server) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.server.Addr
}
