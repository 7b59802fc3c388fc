package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ryafar/ESP32-IDF-HTTP-Server/internal/config"
	"github.com/Ryafar/ESP32-IDF-HTTP-Server/internal/console"
	"github.com/Ryafar/ESP32-IDF-HTTP-Server/internal/device"
)

type Server struct {
	cfg        config.Config
	counter    *device.Counter
	console    *console.Printer
	logger     *slog.Logger
	httpServer *http.Server
}

func New(cfg config.Config, counter *device.Counter, printer *console.Printer, logger *slog.Logger) *Server {
	return &Server{
		cfg:     cfg,
		counter: counter,
		console: printer,
		logger:  logger,
	}
}

// Start runs the listener until a fatal server error or an interrupt,
// whichever comes first. On SIGINT/SIGTERM it drains in-flight
// requests and returns nil so the process exits cleanly.
func (s *Server) Start() error {
	router, err := s.setupRoutes()
	if err != nil {
		return fmt.Errorf("failed to setup routes: %w", err)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
		// connection-level noise (aborted reads, TLS probes) goes to
		// debug so it never interleaves with the console diagnostics
		ErrorLog: slog.NewLogLogger(s.logger.Handler(), slog.LevelDebug),
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("listening for device messages",
			"host", s.cfg.Server.Host,
			"port", s.cfg.Server.Port,
		)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		s.logger.Info("received shutdown signal", "signal", sig)
		return s.Shutdown()
	}
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("error during server shutdown", "error", err)
		return err
	}

	s.logger.Info("server shutdown complete", "messages_received", s.counter.Value())
	return nil
}
