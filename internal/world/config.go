package world

import "strings"

const (
	// DefaultSeed seeds every deterministic RNG when none is configured.
	DefaultSeed = "groblins"

	defaultWidth  = 96
	defaultHeight = 64
)

// Config carries every tunable constant of a simulation. It is captured
// and normalized at world construction; nothing reads package-level
// state, so multiple worlds with different tuning can run side by side.
type Config struct {
	Seed   string `toml:"seed" json:"seed"`
	Width  int    `toml:"width" json:"width"`
	Height int    `toml:"height" json:"height"`

	CellSize float64 `toml:"cell_size" json:"cellSize"`
	MaxDelta float64 `toml:"max_delta" json:"maxDelta"`

	Gravity          float64 `toml:"gravity" json:"gravity"`
	TerminalVelocity float64 `toml:"terminal_velocity" json:"terminalVelocity"`
	Bounce           float64 `toml:"bounce" json:"bounce"`
	GroundDrag       float64 `toml:"ground_drag" json:"groundDrag"`

	AgentSpeed      float64 `toml:"agent_speed" json:"agentSpeed"`
	ClimbSpeed      float64 `toml:"climb_speed" json:"climbSpeed"`
	AgentVision     int     `toml:"agent_vision" json:"agentVision"`
	WaypointEpsilon float64 `toml:"waypoint_epsilon" json:"waypointEpsilon"`

	MaxFood       float64 `toml:"max_food" json:"maxFood"`
	FoodDecayRate float64 `toml:"food_decay_rate" json:"foodDecayRate"`
	HungryBelow   float64 `toml:"hungry_below" json:"hungryBelow"`
	FullAbove     float64 `toml:"full_above" json:"fullAbove"`
	StarvingBelow float64 `toml:"starving_below" json:"starvingBelow"`
	HungryAbove   float64 `toml:"hungry_above" json:"hungryAbove"`

	RestDrainRate    float64 `toml:"rest_drain_rate" json:"restDrainRate"`
	RestRecoveryRate float64 `toml:"rest_recovery_rate" json:"restRecoveryRate"`
	TiredBelow       float64 `toml:"tired_below" json:"tiredBelow"`
	RestedAbove      float64 `toml:"rested_above" json:"restedAbove"`
}

// DefaultConfig returns the tuning the simulation ships with.
func DefaultConfig() Config {
	return Config{
		Seed:   DefaultSeed,
		Width:  defaultWidth,
		Height: defaultHeight,

		CellSize: 4,
		MaxDelta: 1.0 / 15,

		Gravity:          30,
		TerminalVelocity: 25,
		Bounce:           0.3,
		GroundDrag:       0.6,

		AgentSpeed:      3,
		ClimbSpeed:      2,
		AgentVision:     12,
		WaypointEpsilon: 0.25,

		MaxFood:       10,
		FoodDecayRate: 0.2,
		HungryBelow:   5,
		FullAbove:     7,
		StarvingBelow: 2,
		HungryAbove:   3,

		RestDrainRate:    0.01,
		RestRecoveryRate: 0.1,
		TiredBelow:       0.3,
		RestedAbove:      0.6,
	}
}

func (cfg Config) normalized() Config {
	defaults := DefaultConfig()
	n := cfg

	n.Seed = strings.TrimSpace(n.Seed)
	if n.Seed == "" {
		n.Seed = defaults.Seed
	}
	if n.Width <= 0 {
		n.Width = defaults.Width
	}
	if n.Height <= 0 {
		n.Height = defaults.Height
	}
	if n.CellSize <= 0 {
		n.CellSize = defaults.CellSize
	}
	if n.MaxDelta <= 0 {
		n.MaxDelta = defaults.MaxDelta
	}
	if n.Gravity <= 0 {
		n.Gravity = defaults.Gravity
	}
	if n.TerminalVelocity <= 0 {
		n.TerminalVelocity = defaults.TerminalVelocity
	}
	if n.Bounce < 0 || n.Bounce > 1 {
		n.Bounce = defaults.Bounce
	}
	if n.GroundDrag < 0 || n.GroundDrag > 1 {
		n.GroundDrag = defaults.GroundDrag
	}
	if n.AgentSpeed <= 0 {
		n.AgentSpeed = defaults.AgentSpeed
	}
	if n.ClimbSpeed <= 0 {
		n.ClimbSpeed = defaults.ClimbSpeed
	}
	if n.AgentVision <= 0 {
		n.AgentVision = defaults.AgentVision
	}
	if n.WaypointEpsilon <= 0 {
		n.WaypointEpsilon = defaults.WaypointEpsilon
	}
	if n.MaxFood <= 0 {
		n.MaxFood = defaults.MaxFood
	}
	if n.FoodDecayRate <= 0 {
		n.FoodDecayRate = defaults.FoodDecayRate
	}
	if n.HungryBelow <= 0 || n.HungryBelow >= n.MaxFood {
		n.HungryBelow = defaults.HungryBelow
	}
	if n.FullAbove <= n.HungryBelow || n.FullAbove > n.MaxFood {
		n.FullAbove = defaults.FullAbove
	}
	if n.StarvingBelow <= 0 || n.StarvingBelow >= n.HungryBelow {
		n.StarvingBelow = defaults.StarvingBelow
	}
	if n.HungryAbove <= n.StarvingBelow || n.HungryAbove >= n.FullAbove {
		n.HungryAbove = defaults.HungryAbove
	}
	if n.RestDrainRate <= 0 {
		n.RestDrainRate = defaults.RestDrainRate
	}
	if n.RestRecoveryRate <= 0 {
		n.RestRecoveryRate = defaults.RestRecoveryRate
	}
	if n.TiredBelow <= 0 || n.TiredBelow >= 1 {
		n.TiredBelow = defaults.TiredBelow
	}
	if n.RestedAbove <= n.TiredBelow || n.RestedAbove >= 1 {
		n.RestedAbove = defaults.RestedAbove
	}
	return n
}

// Normalized exposes the normalization rules applied at construction.
func (cfg Config) Normalized() Config {
	return cfg.normalized()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
