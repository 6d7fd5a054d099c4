package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ytget/score-downloader/internal/metrics"
)

// DefaultPort is the port the file server listens on
const DefaultPort = 8041

// Config contains HTTP server configuration
type Config struct {
	Host        string // empty binds all interfaces
	Port        int
	Root        string
	MetricsAddr string // empty disables the metrics listener

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns default server configuration for root
func DefaultConfig(root string) Config {
	return Config{
		Port:         DefaultPort,
		Root:         root,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}
}

// Server serves the files under Root read-only
type Server struct {
	config   Config
	logger   *zap.Logger
	server   *http.Server
	listener net.Listener

	metricsServer   *http.Server
	metricsListener net.Listener
}

// New creates a new file server
func New(cfg Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	handler := LoggingMiddleware(logger)(ReadOnlyMiddleware(http.FileServer(http.Dir(cfg.Root))))

	s := &Server{
		config: cfg,
		logger: logger,
		server: &http.Server{
			Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		s.metricsServer = &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
	}

	return s
}

// Listen binds the sockets. It fails immediately if the port is taken.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("could not start server on %s: %w", s.server.Addr, err)
	}
	s.listener = ln

	if s.metricsServer != nil {
		mln, err := net.Listen("tcp", s.metricsServer.Addr)
		if err != nil {
			ln.Close()
			return fmt.Errorf("could not start metrics listener on %s: %w", s.metricsServer.Addr, err)
		}
		s.metricsListener = mln
	}
	return nil
}

// Addr returns the bound address, nil before Listen
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// URL returns the local URL of the served directory
func (s *Server) URL() string {
	port := s.config.Port
	if tcp, ok := s.Addr().(*net.TCPAddr); ok {
		port = tcp.Port
	}
	return "http://localhost:" + strconv.Itoa(port)
}

// Serve blocks until Stop is called
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("server is not listening")
	}

	s.logger.Info("serving directory",
		zap.String("root", s.config.Root),
		zap.String("url", s.URL()))

	if s.metricsListener != nil {
		go func() {
			s.logger.Info("metrics listener started", zap.String("addr", s.metricsListener.Addr().String()))
			if err := s.metricsServer.Serve(s.metricsListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("metrics listener failed", zap.Error(err))
			}
		}()
	}

	if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Start binds and serves
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Stop gracefully stops the server, releasing the socket
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")
	var errs []error
	if s.metricsServer != nil {
		errs = append(errs, s.metricsServer.Shutdown(ctx))
	}
	errs = append(errs, s.server.Shutdown(ctx))

	// Listeners bound but never served are not owned by http.Server
	for _, ln := range []net.Listener{s.listener, s.metricsListener} {
		if ln == nil {
			continue
		}
		if err := ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// IsAddrInUse reports whether err is a bind failure on a busy port
func IsAddrInUse(err error) bool {
	return errors.Is(err, syscall.EADDRINUSE)
}
