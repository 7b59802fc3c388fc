package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Ryafar/ESP32-IDF-HTTP-Server/internal/config"
	"github.com/Ryafar/ESP32-IDF-HTTP-Server/internal/console"
	"github.com/Ryafar/ESP32-IDF-HTTP-Server/internal/device"
)

// MessageHandler receives device POSTs on every path. It owns no state
// of its own; the counter is the only value shared across requests.
type MessageHandler struct {
	counter *device.Counter
	scan    config.ScanConfig
	console *console.Printer
	logger  *slog.Logger
}

func NewMessageHandler(scan config.ScanConfig, counter *device.Counter, printer *console.Printer, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{
		counter: counter,
		scan:    scan,
		console: printer,
		logger:  logger,
	}
}

func (h *MessageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// The tally counts received POSTs, not well-formed ones, so it
	// moves before any parsing can go wrong.
	total := h.counter.IncrementAndGet()
	receivedAt := time.Now()

	msg := device.FromRequest(r)
	if msg.Truncated {
		h.logger.Warn("message body shorter than declared length",
			"client_ip", msg.ClientIP,
			"bytes_read", msg.PayloadBytes,
		)
	}
	if msg.LossyDecoded {
		h.logger.Warn("message payload held invalid UTF-8, decoded with replacements",
			"client_ip", msg.ClientIP,
		)
	}

	h.console.MessageReceived(console.Record{
		ReceiptID:     uuid.NewString(),
		ServerCount:   total,
		DeviceCounter: msg.DeviceCounter,
		UptimeSeconds: msg.UptimeSeconds,
		ClientIP:      msg.ClientIP,
		Path:          msg.Path,
		UserAgent:     msg.UserAgent,
		DeviceHeaders: msg.DeviceHeaders,
		Payload:       msg.Payload,
		PayloadBytes:  msg.PayloadBytes,
		ChangingData:  device.ScanChangingData(msg.Payload, h.scan.Keywords, h.scan.MaxMatches),
		ReceivedAt:    receivedAt,
	})

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "Message #%s received successfully\n", msg.DeviceCounter)
	fmt.Fprintf(w, "Server has now received %d total messages.\n", total)
	fmt.Fprintf(w, "Received at: %s\n", receivedAt.Format(console.TimestampFormat))
	fmt.Fprintf(w, "ESP32 uptime: %.3f seconds\n", msg.UptimeSeconds)
}
