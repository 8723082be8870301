package world

import "github.com/ryholmdahl/groblins/internal/nav"

// tileSolid reports whether a tile holds solid terrain. Out-of-bounds
// tiles count as solid: position integration clamps entities inside the
// world, so its edges behave like walls and floor.
func (w *World) tileSolid(p nav.Point) bool {
	if !w.grid.InBounds(p) {
		return true
	}
	h, ok := w.terrain[p]
	if !ok {
		return false
	}
	ent, ok := w.store.Get(h)
	return ok && ent.Col.Passability == PassSolid
}

func (w *World) tileClimbable(p nav.Point) bool {
	h, ok := w.terrain[p]
	if !ok {
		return false
	}
	ent, ok := w.store.Get(h)
	return ok && ent.Col.Passability == PassClimbable
}

// tileSupports reports whether standing weight on a tile holds: solid
// terrain carries from above, climbable terrain carries from within.
func (w *World) tileSupports(p nav.Point) bool {
	return w.tileSolid(p) || w.tileClimbable(p)
}

// computeWalkable decides whether a route may pass through a tile. The
// tile itself must be open, and the agent must not free-fall through
// it: either the tile below supports, the tile itself is climbable, or
// the tile below is open with support one further down, which a groblin
// crosses as a one-tile hop or drop.
func (w *World) computeWalkable(p nav.Point) bool {
	if w.tileSolid(p) {
		return false
	}
	below := nav.Point{X: p.X, Y: p.Y + 1}
	if w.tileSupports(below) || w.tileClimbable(p) {
		return true
	}
	twoBelow := nav.Point{X: p.X, Y: p.Y + 2}
	return !w.tileSolid(below) && w.tileSupports(twoBelow)
}

// patchWalkability recomputes the walkable flags in a box around an
// edited tile. A single terrain change influences walkability at most
// two rows above itself, well inside the patch radius.
func (w *World) patchWalkability(center nav.Point, radius int) {
	for y := center.Y - radius; y <= center.Y+radius; y++ {
		for x := center.X - radius; x <= center.X+radius; x++ {
			p := nav.Point{X: x, Y: y}
			if !w.grid.InBounds(p) {
				continue
			}
			w.grid.SetWalkable(p, w.computeWalkable(p))
		}
	}
}

// RebuildWalkability recomputes the whole grid. Bulk spawning paths
// call it once instead of patching per tile.
func (w *World) RebuildWalkability() {
	if w == nil {
		return
	}
	cols, rows := w.grid.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			p := nav.Point{X: x, Y: y}
			w.grid.SetWalkable(p, w.computeWalkable(p))
		}
	}
}
