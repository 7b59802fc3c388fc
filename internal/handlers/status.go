package handlers

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/Ryafar/ESP32-IDF-HTTP-Server/internal/console"
	"github.com/Ryafar/ESP32-IDF-HTTP-Server/internal/device"
)

//go:embed templates/*
var templatesFS embed.FS

// StatusHandler answers browser GETs on every path with a static page
// confirming the listener is up. It never touches the message counter.
type StatusHandler struct {
	console  *console.Printer
	logger   *slog.Logger
	template *template.Template
}

func NewStatusHandler(printer *console.Printer, logger *slog.Logger) (*StatusHandler, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/status.html")
	if err != nil {
		return nil, err
	}

	return &StatusHandler{
		console:  printer,
		logger:   logger,
		template: tmpl,
	}, nil
}

type statusPageData struct {
	Timestamp string
}

func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	h.console.StatusRequested(device.ClientIP(r.RemoteAddr), r.URL.Path, now)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := statusPageData{Timestamp: now.Format("2006-01-02 15:04:05")}
	if err := h.template.Execute(w, data); err != nil {
		h.logger.Error("failed to render status page", "error", err)
	}
}
