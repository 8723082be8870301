// Package world owns the simulation core: the entity store, spatial
// partition, walkability grid, physics pass, and the needs-driven agent
// planners. Everything is mutated on a single goroutine inside Tick;
// hosts stage input between ticks and read immutable snapshots.
package world

import (
	"math/rand"
	"sort"

	"go.uber.org/zap"

	"github.com/ryholmdahl/groblins/internal/nav"
)

// walkPatchRadius bounds the walkability recomputation around a terrain
// edit. Edits influence walkability at most two rows away.
const walkPatchRadius = 3

// Deps bundles runtime dependencies injected at construction.
type Deps struct {
	Logger *zap.Logger
	RNG    RNGFactory
}

// Metrics counts planner search work. The route counter doubles as the
// instrumentation hook proving plan advancement skips the pathfinder.
type Metrics struct {
	RouteSearches   uint64
	ExploreSearches uint64
	TicksRun        uint64
}

// World is the single owner of all simulation state.
type World struct {
	config Config
	logger *zap.Logger
	rng    *rand.Rand

	store   *Store
	spatial *Partition
	grid    *nav.Grid
	terrain map[nav.Point]Handle

	tick        uint64
	stagedEdits []nav.Point
	keys        map[string]bool
	removals    []Handle
	metrics     Metrics
}

// New constructs a world with normalized configuration, a seeded
// deterministic RNG, and an empty grid.
func New(cfg Config, deps Deps) (*World, error) {
	normalized := cfg.normalized()

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	factory := deps.RNG
	if factory == nil {
		factory = NewDeterministicRNG
	}

	return &World{
		config:  normalized,
		logger:  logger,
		rng:     factory(normalized.Seed, "world"),
		store:   NewStore(),
		spatial: NewPartition(normalized.CellSize),
		grid:    nav.NewGrid(normalized.Width, normalized.Height),
		terrain: make(map[nav.Point]Handle),
		keys:    make(map[string]bool),
	}, nil
}

// Config returns the normalized configuration captured at construction.
func (w *World) Config() Config {
	if w == nil {
		return Config{}
	}
	return w.config
}

// TickCount reports how many ticks have run.
func (w *World) TickCount() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

// Metrics returns a copy of the search counters.
func (w *World) Metrics() Metrics {
	if w == nil {
		return Metrics{}
	}
	return w.metrics
}

// Walkable reports pathfinding walkability of a tile.
func (w *World) Walkable(p nav.Point) bool {
	if w == nil {
		return false
	}
	return w.grid.Walkable(p)
}

// Tick advances the simulation one step. Phases run in fixed order:
// staged input, gravity, planning, collision resolution over dirty
// neighborhoods, integration, then deferred removals. Delta is clamped
// to the configured maximum to avoid tunneling on frame hitches.
func (w *World) Tick(delta float64) {
	if w == nil || delta <= 0 {
		return
	}
	if delta > w.config.MaxDelta {
		delta = w.config.MaxDelta
	}

	w.applyStagedEdits()
	w.spatial.BeginTick()
	w.applyGravity(delta)
	w.planAgents(delta)
	w.resolveCollisions()
	w.integrate(delta)
	w.applyRemovals()

	w.tick++
	w.metrics.TicksRun++
}

// planAgents ticks every agent's needs, arbitrates priority, asks the
// winning tracker for a plan, and converts the plan into movement
// intent for the physics pass.
func (w *World) planAgents(dt float64) {
	for _, h := range w.store.Query(MaskAgent|MaskPositioned|MaskMovable, 0) {
		ent, _ := w.store.Get(h)
		ag := ent.Agent

		tickNeeds(ag, dt)
		tracker := arbitratePriority(ag)
		if tracker == nil {
			continue
		}
		ag.Plan = tracker.BuildPlan(w, h, dt)
		w.applyPlan(h, ent, ag.Plan)
	}
}

// applyPlan turns the committed plan into velocity intent. Horizontal
// steering is always applied; vertical steering needs a climbable hold.
func (w *World) applyPlan(h Handle, ent *Entity, plan Plan) {
	pos, mov, ag := ent.Pos, ent.Mov, ent.Agent
	grounded := !mov.Landed.Zero()
	crawling := !ag.Crawling.Zero()
	// The steering deadzone sits inside the waypoint tolerance so an
	// agent close enough to stop steering is always close enough to pop
	// the waypoint.
	eps := w.config.WaypointEpsilon / 2

	switch plan.Kind {
	case PlanConsume:
		target, ok := w.store.Get(plan.Target)
		if !ok || target.Pos == nil || target.Food == nil {
			return
		}
		if !overlaps(pos, target.Pos) {
			return
		}
		if food, ok := ag.Needs[NeedFood].(*FoodTracker); ok {
			food.Add(target.Food.Food)
		}
		w.Remove(plan.Target)
		if grounded {
			mov.VX = 0
		}
		w.logger.Debug("consumed edible",
			zap.String("agent", ag.Name),
			zap.Uint64("target", plan.Target.ID()),
			zap.Float64("food", target.Food.Food))

	case PlanMove:
		var tx, ty float64
		have := false
		if len(plan.Path) > 0 {
			wp := plan.Path[0]
			tx, ty = float64(wp.X)+0.5, float64(wp.Y)+0.5
			have = true
		} else if !plan.Target.Zero() {
			if target, ok := w.store.Get(plan.Target); ok && target.Pos != nil {
				tx, ty = target.Pos.CenterX(), target.Pos.CenterY()
				have = true
			}
		}
		if !have {
			if grounded {
				mov.VX = 0
			}
			return
		}
		// Landed is cleared every tick the entity moves and only restored
		// in the collision pass after planning, so horizontal steering
		// cannot require ground contact.
		dx := tx - pos.CenterX()
		dy := ty - pos.CenterY()
		switch {
		case dx > eps:
			mov.VX = ag.Speed
		case dx < -eps:
			mov.VX = -ag.Speed
		default:
			mov.VX = 0
		}
		if crawling {
			switch {
			case dy > eps:
				mov.VY = w.config.ClimbSpeed
			case dy < -eps:
				mov.VY = -w.config.ClimbSpeed
			default:
				mov.VY = 0
			}
		}

	default:
		if grounded {
			mov.VX = 0
		}
		if crawling {
			mov.VY = 0
		}
	}
}

// route wraps the grid search with call counting.
func (w *World) route(start, goal nav.Point) []nav.Point {
	w.metrics.RouteSearches++
	return w.grid.Route(start, goal)
}

// explore wraps frontier exploration with call counting.
func (w *World) explore(start nav.Point, radius, dir int) []nav.Point {
	w.metrics.ExploreSearches++
	return w.grid.Explore(start, radius, dir)
}

// edibleCandidates returns visible, landed edibles ranked by Manhattan
// distance to the agent, skipping cached-inaccessible targets.
func (w *World) edibleCandidates(self Handle, pos *Positioned, vision int, inaccessible map[Handle]struct{}) []Handle {
	hood := w.spatial.Neighborhood(pos.CenterX(), pos.CenterY(), float64(vision))
	from := pos.Tile()

	type ranked struct {
		h    Handle
		dist int
	}
	candidates := make([]ranked, 0, len(hood))
	for _, h := range hood {
		if h == self {
			continue
		}
		if _, skip := inaccessible[h]; skip {
			continue
		}
		ent, ok := w.store.Get(h)
		if !ok || ent.Food == nil || ent.Pos == nil || ent.Mov == nil {
			continue
		}
		if ent.Mov.Landed.Zero() {
			continue
		}
		tile := ent.Pos.Tile()
		dist := absInt(tile.X-from.X) + absInt(tile.Y-from.Y)
		candidates = append(candidates, ranked{h: h, dist: dist})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].h.idx < candidates[j].h.idx
	})

	result := make([]Handle, len(candidates))
	for i, c := range candidates {
		result[i] = c.h
	}
	return result
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Add takes ownership of an entity, registering it with the spatial
// partition and, for terrain, the tile index and walkability grid.
func (w *World) Add(ent Entity) Handle {
	if w == nil {
		return Handle{}
	}
	h := w.store.Add(ent)
	stored, _ := w.store.Get(h)
	if stored.Pos != nil && stored.Col != nil {
		w.spatial.Add(h, stored.Pos.CenterX(), stored.Pos.CenterY(), stored.Mov != nil)
	}
	if isTerrain(stored) {
		tile := stored.Pos.Tile()
		w.terrain[tile] = h
		w.patchWalkability(tile, walkPatchRadius)
	}
	return h
}

// Remove queues the entity for removal at the end of the current tick.
// Queuing makes removal safe from within plan-consumption logic: the
// primary store is never mutated mid-iteration.
func (w *World) Remove(h Handle) {
	if w == nil {
		return
	}
	if _, ok := w.store.Get(h); !ok {
		return
	}
	w.removals = append(w.removals, h)
}

func (w *World) applyRemovals() {
	for _, h := range w.removals {
		w.removeNow(h)
	}
	w.removals = w.removals[:0]
}

func (w *World) removeNow(h Handle) {
	ent, ok := w.store.Get(h)
	if !ok {
		return
	}
	var terrainTile *nav.Point
	if isTerrain(ent) {
		tile := ent.Pos.Tile()
		if w.terrain[tile] == h {
			delete(w.terrain, tile)
		}
		terrainTile = &tile
	}
	w.spatial.Remove(h)
	w.store.Remove(h)
	if terrainTile != nil {
		w.patchWalkability(*terrainTile, walkPatchRadius)
	}
}

func isTerrain(ent *Entity) bool {
	return ent.Pos != nil && ent.Col != nil && ent.Col.Group == GroupTerrain
}

// EditTerrain toggles a tile between solid and absent. Removing a solid
// block leaves climbable terrain behind (a burrow wall groblins can
// scale); editing an open or climbable tile fills it with a block.
// Every in-flight agent plan is cleared so stale paths are never
// followed through changed terrain.
func (w *World) EditTerrain(x, y int) {
	if w == nil {
		return
	}
	p := nav.Point{X: x, Y: y}
	if !w.grid.InBounds(p) {
		return
	}

	if h, ok := w.terrain[p]; ok {
		ent, live := w.store.Get(h)
		solid := live && ent.Col.Passability == PassSolid
		w.removeNow(h)
		if solid {
			w.SpawnVine(p)
		} else {
			w.SpawnBlock(p)
		}
	} else {
		w.SpawnBlock(p)
	}

	w.clearAgentPlans()
	w.logger.Debug("terrain edited", zap.Int("x", x), zap.Int("y", y))
}

// clearAgentPlans discards every agent's plan and cached infeasibility
// data. Terrain changes invalidate both.
func (w *World) clearAgentPlans() {
	for _, h := range w.store.Query(MaskAgent, 0) {
		ent, _ := w.store.Get(h)
		for _, name := range sortedNeedNames(ent.Agent) {
			ent.Agent.Needs[name].Clear()
		}
		ent.Agent.Plan = Plan{}
	}
}

// PointerDown stages a terrain edit at the tile under the given world
// coordinates; the edit applies at the start of the next tick. Input
// never touches physics or planning directly.
func (w *World) PointerDown(x, y float64) {
	if w == nil {
		return
	}
	w.stagedEdits = append(w.stagedEdits, nav.Point{X: int(x), Y: int(y)})
}

func (w *World) applyStagedEdits() {
	for _, p := range w.stagedEdits {
		w.EditTerrain(p.X, p.Y)
	}
	w.stagedEdits = w.stagedEdits[:0]
}

// KeyDown records a held key for camera pan state.
func (w *World) KeyDown(key string) {
	if w == nil {
		return
	}
	w.keys[key] = true
}

// KeyUp releases a held key.
func (w *World) KeyUp(key string) {
	if w == nil {
		return
	}
	delete(w.keys, key)
}

// PanState reports the camera pan direction implied by held arrow keys.
func (w *World) PanState() (int, int) {
	if w == nil {
		return 0, 0
	}
	dx, dy := 0, 0
	if w.keys["left"] {
		dx--
	}
	if w.keys["right"] {
		dx++
	}
	if w.keys["up"] {
		dy--
	}
	if w.keys["down"] {
		dy++
	}
	return dx, dy
}
