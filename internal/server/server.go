package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	valid "github.com/go-playground/validator/v10"

	"github.com/gradekit/hwcheck/internal/db"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	cfg        Config
	logger     *slog.Logger
	version    string
	db         *sql.DB
	queries    *db.Queries
	validate   *valid.Validate
	listener   net.Listener
	httpServer *http.Server
	errCh      chan error
}

func New(cfg Config, logger *slog.Logger, version string) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if version == "" {
		version = "dev"
	}

	validate, err := newRequestValidator()
	if err != nil {
		return nil, err
	}

	srv := &Server{
		cfg:      cfg,
		logger:   logger,
		version:  version,
		validate: validate,
		errCh:    make(chan error, 1),
	}

	mux := http.NewServeMux()
	registerRoutes(mux, srv)
	srv.httpServer = &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      mux,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return srv, nil
}

func (s *Server) Start() error {
	if dir := filepath.Dir(s.cfg.DBPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create database directory %s: %w", dir, err)
		}
	}

	sqlDB, err := db.Open(db.Options{
		Path:          s.cfg.DBPath,
		EnableWAL:     s.cfg.DBWAL,
		BusyTimeoutMS: 5000,
		MaxOpenConns:  5,
		MaxIdleConns:  5,
	})
	if err != nil {
		return err
	}
	if err := db.RunMigrations(context.Background(), sqlDB); err != nil {
		_ = sqlDB.Close()
		return err
	}
	s.db = sqlDB
	s.queries = db.NewQueries(sqlDB)

	ln, err := net.Listen("tcp", s.cfg.ListenAddr())
	if err != nil {
		_ = s.db.Close()
		s.db = nil
		s.queries = nil
		return fmt.Errorf("listen on %s: %w", s.cfg.ListenAddr(), err)
	}
	s.listener = ln

	if !isLoopbackHost(s.cfg.BindAddr) {
		s.logger.Warn("binding to non-loopback address", "bind", s.cfg.BindAddr)
	}

	s.logger.Info("hwcheckd starting",
		"listen_addr", ln.Addr().String(),
		"db_path", s.cfg.DBPath,
		"default_assignment", s.cfg.DefaultAssignment,
		"version", s.version,
	)

	go func() {
		err := s.httpServer.Serve(ln)
		if err != nil && err != http.ErrServerClosed {
			s.errCh <- err
		}
		close(s.errCh)
	}()

	return nil
}

func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}

	select {
	case err := <-s.errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.listener == nil && s.db == nil {
		return nil
	}

	s.logger.Info("hwcheckd shutting down")
	if s.listener != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}

		if err, ok := <-s.errCh; ok && err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		s.listener = nil
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("close sqlite db: %w", err)
		}
		s.db = nil
		s.queries = nil
	}
	return nil
}

func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func isLoopbackHost(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	return ip.IsLoopback()
}

func parseLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q (expected debug|info|warn|error)", level)
	}
}

func NewLogger(level string) (*slog.Logger, error) {
	parsed, err := parseLogLevel(level)
	if err != nil {
		return nil, err
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: parsed})
	return slog.New(h), nil
}
