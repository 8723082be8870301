package world

import "github.com/ryholmdahl/groblins/internal/nav"

// PlanKind tags the plan variant.
type PlanKind uint8

const (
	PlanIdle PlanKind = iota
	PlanMove
	PlanConsume
)

var planKindNames = [...]string{"idle", "move", "consume"}

func (k PlanKind) String() string {
	if int(k) < len(planKindNames) {
		return planKindNames[k]
	}
	return "unknown"
}

// Plan is the short-term goal an agent's dominant need has committed to.
// It stores handles, never owning references: consumers re-validate the
// target against the store every tick before acting. A plan is replaced
// wholesale each tick, never partially rolled back.
type Plan struct {
	Kind   PlanKind
	Target Handle
	Path   []nav.Point
}

// advanced returns the plan with every waypoint already within tolerance
// of (x, y) popped off the front. Advancing a committed plan is how
// re-planning avoids touching the pathfinder on the common tick.
func (p Plan) advanced(x, y, tolerance float64) Plan {
	for len(p.Path) > 0 {
		wp := p.Path[0]
		dx := (float64(wp.X) + 0.5) - x
		dy := (float64(wp.Y) + 0.5) - y
		if dx*dx+dy*dy > tolerance*tolerance {
			break
		}
		p.Path = p.Path[1:]
	}
	return p
}
