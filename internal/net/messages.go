package net

import "github.com/ryholmdahl/groblins/internal/world"

// Client message types.
const (
	msgEdit    = "edit"
	msgKeyDown = "keydown"
	msgKeyUp   = "keyup"
)

// clientMessage is the single envelope clients send over the socket.
// Edit carries world coordinates; key messages carry a key name.
type clientMessage struct {
	Type string  `json:"type"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
	Key  string  `json:"key,omitempty"`
}

// stateMessage is broadcast to every subscriber after each tick.
type stateMessage struct {
	Type       string         `json:"type"`
	ServerTime int64          `json:"serverTime"`
	Snapshot   world.Snapshot `json:"snapshot"`
}
