package net

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/invopop/jsonschema"
	"go.uber.org/zap"

	"github.com/ryholmdahl/groblins/internal/world"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewMux wires the HTTP surface: health, diagnostics, the snapshot
// schema, and the WebSocket endpoint.
func NewMux(hub *Hub, logger *zap.Logger) *http.ServeMux {
	if logger == nil {
		logger = zap.NewNop()
	}
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/diagnostics", func(w http.ResponseWriter, r *http.Request) {
		payload := struct {
			Status     string `json:"status"`
			ServerTime int64  `json:"serverTime"`
			Tick       uint64 `json:"tick"`
			Entities   int    `json:"entities"`
		}{
			Status:     "ok",
			ServerTime: time.Now().UnixMilli(),
		}
		if snapshot, ok := hub.Latest(); ok {
			payload.Tick = snapshot.Tick
			payload.Entities = len(snapshot.Entities)
		}
		writeJSON(w, logger, payload)
	})

	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) {
		snapshot, ok := hub.Latest()
		if !ok {
			http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, logger, snapshot)
	})

	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, snapshotSchema())
	})

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("upgrade failed", zap.Error(err))
			return
		}
		go hub.serve(conn)
	})

	return mux
}

// snapshotSchema describes the state broadcast format, letting viewer
// authors validate frames without reading server code.
func snapshotSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(world.Snapshot))
	schema.Title = "Groblins World Snapshot"
	schema.Description = "Per-tick state frame broadcast on /ws and served on /state"
	return schema
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("failed to encode response", zap.Error(err))
		http.Error(w, "failed to encode", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
