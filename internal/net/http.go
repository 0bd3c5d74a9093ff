package net

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"dungeondelve/server/logging"
)

// RouterOptions carries the optional collaborators surfaced by /diagnostics.
type RouterOptions struct {
	LogRouter *logging.Router
	Logger    *log.Logger
}

// NewMux builds the HTTP surface: session join, the websocket endpoint, and
// the two operational probes.
func NewMux(hub *Hub, opts RouterOptions) *http.ServeMux {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/diagnostics", handleDiagnostics(hub, opts.LogRouter))
	mux.HandleFunc("/join", handleJoin(hub))
	mux.Handle("/ws", &wsHandler{hub: hub, logger: logger})
	return mux
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"ver":    ProtocolVersion,
		"time":   time.Now().UnixMilli(),
	})
}

func handleDiagnostics(hub *Hub, router *logging.Router) http.HandlerFunc {
	started := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{
			"sessions":      hub.SessionCount(),
			"uptimeSeconds": int64(time.Since(started).Seconds()),
		}
		if router != nil {
			stats := router.Stats()
			payload["logging"] = map[string]any{
				"eventsTotal":  stats.EventsTotal,
				"droppedTotal": stats.DroppedTotal,
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}
}

func handleJoin(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req struct {
			ID string `json:"id"`
		}
		if r.Body != nil {
			// An empty or malformed body simply means a fresh identity.
			json.NewDecoder(r.Body).Decode(&req)
		}

		id, state := hub.Join(req.ID)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(joinResponse{
			Ver:   ProtocolVersion,
			ID:    id,
			State: state,
		})
	}
}
