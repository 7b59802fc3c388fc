package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Ryafar/ESP32-IDF-HTTP-Server/internal/config"
	"github.com/Ryafar/ESP32-IDF-HTTP-Server/internal/console"
	"github.com/Ryafar/ESP32-IDF-HTTP-Server/internal/device"
	"github.com/Ryafar/ESP32-IDF-HTTP-Server/internal/server"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "esp32-server.yaml", "path to configuration file (optional)")
	showVersion := flag.Bool("version", false, "show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("esp32-server v%s\n", version)
		os.Exit(0)
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := setupLogger(cfg.Logging)
	logger.Info("starting esp32-server", "version", version)

	printer := console.New(os.Stdout)
	counter := &device.Counter{}

	fmt.Println("ESP32 Message Server starting...")
	fmt.Printf("Listening on port %d\n", cfg.Server.Port)
	fmt.Printf("Test it by visiting http://localhost:%d in your browser\n", cfg.Server.Port)
	fmt.Println("Waiting for ESP32 messages...")

	srv := server.New(*cfg, counter, printer, logger)
	return srv.Start()
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
