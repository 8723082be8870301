package world

import "github.com/ryholmdahl/groblins/internal/nav"

// Passability classifies how terrain-facing collision treats an entity.
type Passability uint8

const (
	PassEmpty Passability = iota
	PassSolid
	PassClimbable
)

// Collision groups. An entity only collides with groups listed in its
// CollidesWith set.
const (
	GroupTerrain  = 1
	GroupCreature = 2
	GroupItem     = 3
)

// Positioned is an axis-aligned box in world units (tiles). X and Y are
// the top-left corner; the physics step is the only writer during a tick.
type Positioned struct {
	X float64
	Y float64
	W float64
	H float64
}

// CenterX returns the horizontal center of the box.
func (p *Positioned) CenterX() float64 { return p.X + p.W/2 }

// CenterY returns the vertical center of the box.
func (p *Positioned) CenterY() float64 { return p.Y + p.H/2 }

// Tile returns the tile containing the box center.
func (p *Positioned) Tile() nav.Point {
	return nav.Point{X: int(p.CenterX()), Y: int(p.CenterY())}
}

// Collidable is fixed at creation and never mutated afterwards.
type Collidable struct {
	Group        int
	CollidesWith []int
	Passability  Passability
}

func (c *Collidable) collidesWith(group int) bool {
	for _, g := range c.CollidesWith {
		if g == group {
			return true
		}
	}
	return false
}

// Movable carries velocity and the support reference. Landed holds the
// handle of the entity currently supporting this one from below, or the
// zero handle when airborne.
type Movable struct {
	VX      float64
	VY      float64
	Density float64
	Landed  Handle
}

// Edible is consumed on contact, transferring Food to the eater.
type Edible struct {
	Food float64
}

// Agent is the planning component of a groblin: its needs, the need
// currently holding priority, and the plan that need has committed to.
// Crawling references the climbable entity the agent currently occupies.
type Agent struct {
	Name       string
	Needs      map[string]NeedTracker
	Priority   string
	Plan       Plan
	Vision     int
	Speed      float64
	Crawling   Handle
	ExploreDir int
}
