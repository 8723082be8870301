// Package net exposes a running simulation over HTTP and WebSocket:
// state broadcasts out, terrain edits and pan keys in.
package net

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ryholmdahl/groblins/internal/sim"
	"github.com/ryholmdahl/groblins/internal/world"
)

const writeWait = 5 * time.Second

// Hub fans simulation snapshots out to WebSocket subscribers and feeds
// client input into the loop's command queue.
type Hub struct {
	loop   *sim.Loop
	logger *zap.Logger

	mu          sync.Mutex
	subscribers map[string]*subscriber
	latest      *world.Snapshot
}

type subscriber struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

// NewHub creates a hub with no subscribers.
func NewHub(loop *sim.Loop, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		loop:        loop,
		logger:      logger,
		subscribers: make(map[string]*subscriber),
	}
}

// Broadcast sends a snapshot to every subscriber. It is wired as the
// loop's after-step hook, so it runs on the loop goroutine and only
// hands frames off under per-subscriber write locks.
func (h *Hub) Broadcast(s world.Snapshot) {
	data, err := json.Marshal(stateMessage{
		Type:       "state",
		ServerTime: time.Now().UnixMilli(),
		Snapshot:   s,
	})
	if err != nil {
		h.logger.Error("failed to marshal state", zap.Error(err))
		return
	}

	h.mu.Lock()
	h.latest = &s
	subs := make([]*subscriber, 0, len(h.subscribers))
	for _, sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		if err := sub.write(data); err != nil {
			h.logger.Info("dropping subscriber", zap.String("id", sub.id), zap.Error(err))
			h.remove(sub.id)
			sub.conn.Close()
		}
	}
}

// Latest returns the most recent broadcast snapshot, if any.
func (h *Hub) Latest() (world.Snapshot, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.latest == nil {
		return world.Snapshot{}, false
	}
	return *h.latest, true
}

func (sub *subscriber) write(data []byte) error {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return sub.conn.WriteMessage(websocket.TextMessage, data)
}

func (h *Hub) add(conn *websocket.Conn) *subscriber {
	sub := &subscriber{id: uuid.NewString(), conn: conn}
	h.mu.Lock()
	h.subscribers[sub.id] = sub
	h.mu.Unlock()
	return sub
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	delete(h.subscribers, id)
	h.mu.Unlock()
}

// serve owns one connection: send the latest frame, then pump client
// messages into the loop until the socket drops.
func (h *Hub) serve(conn *websocket.Conn) {
	sub := h.add(conn)
	h.logger.Info("subscriber connected", zap.String("id", sub.id))

	defer func() {
		h.remove(sub.id)
		conn.Close()
		h.logger.Info("subscriber disconnected", zap.String("id", sub.id))
	}()

	if snapshot, ok := h.Latest(); ok {
		data, err := json.Marshal(stateMessage{
			Type:       "state",
			ServerTime: time.Now().UnixMilli(),
			Snapshot:   snapshot,
		})
		if err == nil {
			if err := sub.write(data); err != nil {
				return
			}
		}
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			h.logger.Warn("discarding malformed message",
				zap.String("id", sub.id), zap.Error(err))
			continue
		}

		switch msg.Type {
		case msgEdit:
			x, y := msg.X, msg.Y
			h.loop.Enqueue(func(w *world.World) { w.PointerDown(x, y) })
		case msgKeyDown:
			key := msg.Key
			h.loop.Enqueue(func(w *world.World) { w.KeyDown(key) })
		case msgKeyUp:
			key := msg.Key
			h.loop.Enqueue(func(w *world.World) { w.KeyUp(key) })
		default:
			h.logger.Warn("unknown message type",
				zap.String("id", sub.id), zap.String("type", msg.Type))
		}
	}
}
