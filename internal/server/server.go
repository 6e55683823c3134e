package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/yigit/placementhub/internal/bootstrap"
	"github.com/yigit/placementhub/internal/config"
)

// Server holds the state for the HTTP server.
type Server struct {
	config *config.Config
	router *gin.Engine
	dbPool *pgxpool.Pool
	deps   *bootstrap.Dependencies
	logger zerolog.Logger
	http   *http.Server

	stopHub      context.CancelFunc
	stopRecorder func()
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer(ctx context.Context) (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	dbPool, err := bootstrap.SetupDatabase(ctx, cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, dbPool, lgr)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	bootstrap.SeedDefaults(ctx, cfg, deps)

	router := bootstrap.SetupRouter(cfg, deps, lgr)

	return &Server{
		config: cfg,
		router: router,
		dbPool: dbPool,
		deps:   deps,
		logger: lgr,
	}, nil
}

// startBackground launches the notification hub, the recent-notification recorder
// and the cleanup schedule.
func (s *Server) startBackground() error {
	hubCtx, cancel := context.WithCancel(context.Background())
	s.stopHub = cancel
	go s.deps.Hub.Run(hubCtx)

	s.stopRecorder = s.deps.MessageHandler.Start()

	if err := s.deps.Cleanup.Start(); err != nil {
		return fmt.Errorf("failed to start cleanup job: %w", err)
	}
	return nil
}

// Run starts the HTTP server and handles graceful shutdown.
func (s *Server) Run() error {
	if err := s.startBackground(); err != nil {
		_ = s.Shutdown(context.Background())
		return err
	}

	s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting server...")

	s.http = &http.Server{
		Addr:        ":" + s.config.Server.Port,
		Handler:     s.router,
		ReadTimeout: 10 * time.Second,
		// student exports can take longer than a regular JSON response
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			_ = s.Shutdown(context.Background())
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	shutdownError := false

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownError = true
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	if s.deps != nil {
		s.deps.Cleanup.Stop(ctx)
	}
	if s.stopRecorder != nil {
		s.stopRecorder()
	}
	// closes every websocket connection
	if s.stopHub != nil {
		s.stopHub()
	}

	if s.dbPool != nil {
		s.logger.Info().Msg("Closing database connection pool...")
		s.dbPool.Close()
		s.logger.Info().Msg("Database connection pool closed.")
	}

	s.logger.Info().Msg("Server shutdown process complete.")
	if shutdownError {
		return errors.New("server shutdown completed with errors")
	}
	return nil
}
