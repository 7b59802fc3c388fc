package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/Ryafar/ESP32-IDF-HTTP-Server/internal/simulator"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8000/", "listener URL to POST messages to")
	interval := flag.Duration("interval", 10*time.Second, "delay between messages")
	count := flag.Int("count", 0, "messages to send before exiting (0 = until interrupted)")
	message := flag.String("message", "", "custom message appended to each payload")
	flag.Parse()

	if err := run(*serverURL, *interval, *count, *message); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(serverURL string, interval time.Duration, count int, message string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	dev := simulator.NewDevice(uuid.NewString(), message)
	logger.Info("simulated device booted",
		"session_id", dev.SessionID,
		"server", serverURL,
		"interval", interval,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sent := 0
	for {
		ack, err := dev.Send(ctx, serverURL)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("interrupted", "messages_sent", sent)
				return nil
			}
			logger.Warn("send failed", "error", err)
		} else {
			sent++
			fmt.Printf("--- acknowledgment #%d ---\n%s\n", sent, ack)
		}

		if count > 0 && sent >= count {
			logger.Info("done", "messages_sent", sent)
			return nil
		}

		select {
		case <-ctx.Done():
			logger.Info("interrupted", "messages_sent", sent)
			return nil
		case <-ticker.C:
		}
	}
}
