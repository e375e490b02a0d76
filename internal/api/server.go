package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/nerrad567/calc-core/internal/history"
	"github.com/nerrad567/calc-core/internal/infrastructure/config"
	"github.com/nerrad567/calc-core/internal/infrastructure/logging"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// defaultRecordTimeout bounds a history insert when the config leaves it unset.
const defaultRecordTimeout = 2 * time.Second

// HealthChecker is implemented by every connectable dependency
// (database, MQTT, InfluxDB).
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Database is what the server needs from the history store's connection.
type Database interface {
	HealthChecker
	Stats() sql.DBStats
}

// Timeouts holds the server's deadlines, normally built with the
// config.Config Get*Timeout helpers. Zero HTTP timeouts mean none.
type Timeouts struct {
	Read   time.Duration
	Write  time.Duration
	Idle   time.Duration
	Record time.Duration // one history insert plus publisher fan-out
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config   config.APIConfig
	Timeouts Timeouts
	Logger   *logging.Logger
	Recorder *history.Recorder
	Database Database                 // optional: /health reports 503 when its check fails
	Checks   map[string]HealthChecker // optional components, reported by /health but never fatal
	Version  string
}

// Server is the HTTP API server for calc-core.
type Server struct {
	cfg      config.APIConfig
	timeouts Timeouts
	logger   *logging.Logger
	recorder *history.Recorder
	db       Database
	checks   map[string]HealthChecker
	version  string
	metrics  *metrics
	server   *http.Server
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called. A nil Recorder is
// allowed: operations still answer, nothing is recorded, and /history
// returns 500.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	timeouts := deps.Timeouts
	if timeouts.Record <= 0 {
		timeouts.Record = defaultRecordTimeout
	}

	s := &Server{
		cfg:      deps.Config,
		timeouts: timeouts,
		logger:   deps.Logger,
		recorder: deps.Recorder,
		db:       deps.Database,
		checks:   deps.Checks,
		version:  deps.Version,
	}
	s.metrics = newMetrics(deps.Version, time.Now(), deps.Database)

	return s, nil
}

// Handler returns the fully wired HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.buildRouter()
}

// Start binds the listener and serves in a background goroutine.
//
// Binding happens before Start returns, so a port already in use is
// reported as an error here rather than logged later.
func (s *Server) Start(_ context.Context) error {
	s.server = &http.Server{
		Addr:              net.JoinHostPort(s.cfg.Host, fmt.Sprintf("%d", s.cfg.Port)),
		Handler:           s.buildRouter(),
		ReadTimeout:       s.timeouts.Read,
		ReadHeaderTimeout: s.timeouts.Read,
		WriteTimeout:      s.timeouts.Write,
		IdleTimeout:       s.timeouts.Idle,
	}

	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.server.Addr, err)
	}

	go func() {
		var err error
		if s.cfg.TLS.Enabled {
			s.logger.Info("API server starting with TLS",
				"address", s.server.Addr,
				"cert", s.cfg.TLS.CertFile,
			)
			err = s.server.ServeTLS(ln, s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
		} else {
			s.logger.Info("API server starting", "address", s.server.Addr)
			err = s.server.Serve(ln)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server has been started.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}
	return nil
}
