package server

import (
	"net/http"

	"github.com/Ryafar/ESP32-IDF-HTTP-Server/internal/handlers"
	"github.com/Ryafar/ESP32-IDF-HTTP-Server/internal/middleware"
)

// setupRoutes builds the handler chain. The surface is path-agnostic:
// the firmware may POST to any endpoint and a browser may GET any
// path, so a single root route dispatches on method alone.
func (s *Server) setupRoutes() (http.Handler, error) {
	messageHandler := handlers.NewMessageHandler(s.cfg.Scan, s.counter, s.console, s.logger)

	statusHandler, err := handlers.NewStatusHandler(s.console, s.logger)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			messageHandler.ServeHTTP(w, r)
		case http.MethodGet:
			statusHandler.ServeHTTP(w, r)
		default:
			w.Header().Set("Allow", "GET, POST")
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	handler := middleware.Recovery(s.logger)(
		middleware.Logging(s.logger)(mux),
	)

	return handler, nil
}
