package world

import "math"

const (
	// overlapEpsilon keeps entities resting at exact contact distance
	// registered as touching instead of oscillating between landed and
	// falling.
	overlapEpsilon = 1e-5
	// axisTieEpsilon breaks near-equal penetration depths in favor of
	// vertical resolution, which stabilizes near-diagonal approaches.
	axisTieEpsilon = 1e-6
)

func overlaps(a, b *Positioned) bool {
	return a.X < b.X+b.W+overlapEpsilon && b.X < a.X+a.W+overlapEpsilon &&
		a.Y < b.Y+b.H+overlapEpsilon && b.Y < a.Y+a.H+overlapEpsilon
}

// penetration returns the overlap depth on each axis; values may be
// zero or slightly negative at resting contact.
func penetration(a, b *Positioned) (float64, float64) {
	px := math.Min(a.X+a.W, b.X+b.W) - math.Max(a.X, b.X)
	py := math.Min(a.Y+a.H, b.Y+b.H) - math.Max(a.Y, b.Y)
	return px, py
}

// applyGravity accelerates every unsupported, non-climbing movable. The
// landed reference is cleared exactly when the spatial partition saw the
// entity move last tick, or when its support was removed; an idle
// resting entity keeps its support indefinitely.
func (w *World) applyGravity(dt float64) {
	for _, h := range w.store.Query(MaskMovable|MaskPositioned, 0) {
		ent, _ := w.store.Get(h)
		mov := ent.Mov

		if !mov.Landed.Zero() {
			if _, ok := w.store.Get(mov.Landed); !ok {
				mov.Landed = Handle{}
			} else if w.spatial.MovedLastTick(h) {
				mov.Landed = Handle{}
			}
		}

		crawling := false
		if ent.Agent != nil && !ent.Agent.Crawling.Zero() {
			if _, ok := w.store.Get(ent.Agent.Crawling); ok {
				crawling = true
			} else {
				ent.Agent.Crawling = Handle{}
			}
		}

		if mov.Landed.Zero() && !crawling {
			mov.VY += w.config.Gravity * mov.Density * dt
			if mov.VY > w.config.TerminalVelocity {
				mov.VY = w.config.TerminalVelocity
			}
		}
	}
}

// resolveCollisions runs the narrow phase over dirty-cell neighborhoods
// only. Crawling is recomputed for every agent the pass re-examines;
// agents in untouched cells keep their previous contact state, which is
// correct because neither party moved.
func (w *World) resolveCollisions() {
	cells := w.spatial.MovedCells()
	if len(cells) == 0 {
		return
	}
	radius := w.spatial.CellSize()
	crawlCleared := make(map[Handle]struct{})
	seenPairs := make(map[[2]Handle]struct{})

	for _, cell := range cells {
		cx, cy := w.spatial.CellCenter(cell)
		hood := w.spatial.Neighborhood(cx, cy, radius)

		for _, h := range hood {
			if _, done := crawlCleared[h]; done {
				continue
			}
			if ent, ok := w.store.Get(h); ok && ent.Agent != nil {
				ent.Agent.Crawling = Handle{}
			}
			crawlCleared[h] = struct{}{}
		}

		for i := 0; i < len(hood); i++ {
			for j := i + 1; j < len(hood); j++ {
				pair := [2]Handle{hood[i], hood[j]}
				if _, seen := seenPairs[pair]; seen {
					continue
				}
				seenPairs[pair] = struct{}{}
				w.resolvePair(hood[i], hood[j])
			}
		}
	}
}

func (w *World) resolvePair(ha, hb Handle) {
	a, ok := w.store.Get(ha)
	if !ok {
		return
	}
	b, ok := w.store.Get(hb)
	if !ok {
		return
	}
	if a.Pos == nil || b.Pos == nil || a.Col == nil || b.Col == nil {
		return
	}
	if !a.Col.collidesWith(b.Col.Group) && !b.Col.collidesWith(a.Col.Group) {
		return
	}
	if !overlaps(a.Pos, b.Pos) {
		return
	}

	if a.Agent != nil && b.Col.Passability == PassClimbable {
		a.Agent.Crawling = hb
	}
	if b.Agent != nil && a.Col.Passability == PassClimbable {
		b.Agent.Crawling = ha
	}

	if a.Mov != nil && b.Col.Passability == PassSolid {
		w.resolveSolid(ha, a, hb, b)
	}
	if b.Mov != nil && a.Col.Passability == PassSolid {
		w.resolveSolid(hb, b, ha, a)
	}
}

// resolveSolid pushes a movable out of a solid along the axis of least
// penetration. Vertical resolution lands or bonks; horizontal resolution
// clamps to the wall face with a dampened bounce.
func (w *World) resolveSolid(h Handle, ent *Entity, solidH Handle, solid *Entity) {
	pos, mov := ent.Pos, ent.Mov
	px, py := penetration(pos, solid.Pos)

	if px < py-axisTieEpsilon {
		if pos.CenterX() < solid.Pos.CenterX() {
			pos.X = solid.Pos.X - pos.W
		} else {
			pos.X = solid.Pos.X + solid.Pos.W
		}
		mov.VX = -mov.VX * w.config.Bounce
	} else {
		if pos.CenterY() <= solid.Pos.CenterY() {
			pos.Y = solid.Pos.Y - pos.H
			if mov.VY > 0 {
				mov.VY = 0
			}
			mov.Landed = solidH
			mov.VX *= w.config.GroundDrag
		} else {
			pos.Y = solid.Pos.Y + solid.Pos.H
			if mov.VY < 0 {
				mov.VY = 0
			}
		}
	}
	w.spatial.Move(h, pos.CenterX(), pos.CenterY())
}

// integrate advances positions by velocity and reconciles the spatial
// partition, which is what flags cells for the next collision pass.
func (w *World) integrate(dt float64) {
	width := float64(w.config.Width)
	height := float64(w.config.Height)
	for _, h := range w.store.Query(MaskMovable|MaskPositioned, 0) {
		ent, _ := w.store.Get(h)
		mov, pos := ent.Mov, ent.Pos
		if mov.VX == 0 && mov.VY == 0 {
			continue
		}
		pos.X = clamp(pos.X+mov.VX*dt, 0, width-pos.W)
		pos.Y = clamp(pos.Y+mov.VY*dt, 0, height-pos.H)
		w.spatial.Move(h, pos.CenterX(), pos.CenterY())
	}
}
