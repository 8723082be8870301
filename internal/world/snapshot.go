package world

import (
	"sort"

	"github.com/ryholmdahl/groblins/internal/nav"
)

// Entity kinds as they appear in snapshots.
const (
	KindBlock   = "block"
	KindVine    = "vine"
	KindEdible  = "edible"
	KindGroblin = "groblin"
)

// Snapshot is an immutable copy of observable world state, shaped for
// the wire and for persistence. It is produced between ticks and never
// aliases live simulation data.
type Snapshot struct {
	Tick     uint64           `json:"tick"`
	Seed     string           `json:"seed"`
	Width    int              `json:"width"`
	Height   int              `json:"height"`
	Entities []EntitySnapshot `json:"entities"`
	Metrics  Metrics          `json:"metrics"`
}

// EntitySnapshot describes a single entity. Optional fields apply only
// to some kinds: Food to edibles, Agent to groblins.
type EntitySnapshot struct {
	ID     uint64         `json:"id"`
	Kind   string         `json:"kind"`
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	W      float64        `json:"w"`
	H      float64        `json:"h"`
	VX     float64        `json:"vx,omitempty"`
	VY     float64        `json:"vy,omitempty"`
	Landed bool           `json:"landed,omitempty"`
	Food   float64        `json:"food,omitempty"`
	Agent  *AgentSnapshot `json:"agent,omitempty"`
}

// AgentSnapshot carries the planning state of a groblin.
type AgentSnapshot struct {
	Name       string         `json:"name"`
	Priority   string         `json:"priority,omitempty"`
	Crawling   bool           `json:"crawling,omitempty"`
	ExploreDir int            `json:"exploreDir"`
	Needs      []NeedSnapshot `json:"needs"`
	Plan       PlanSnapshot   `json:"plan"`
}

// NeedSnapshot is one tracker's externally visible state.
type NeedSnapshot struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	State   string  `json:"state"`
	Urgency int     `json:"urgency"`
}

// PlanSnapshot mirrors the committed plan of an agent.
type PlanSnapshot struct {
	Kind   string      `json:"kind"`
	Target uint64      `json:"target,omitempty"`
	Path   []nav.Point `json:"path,omitempty"`
}

// Snapshot captures the current world state. Entities come out sorted
// by handle, so identical worlds produce identical snapshots.
func (w *World) Snapshot() Snapshot {
	if w == nil {
		return Snapshot{}
	}
	handles := w.store.Query(MaskPositioned, 0)
	entities := make([]EntitySnapshot, 0, len(handles))
	for _, h := range handles {
		ent, _ := w.store.Get(h)
		es := EntitySnapshot{
			ID:   h.ID(),
			Kind: snapshotKind(ent),
			X:    ent.Pos.X,
			Y:    ent.Pos.Y,
			W:    ent.Pos.W,
			H:    ent.Pos.H,
		}
		if ent.Mov != nil {
			es.VX = ent.Mov.VX
			es.VY = ent.Mov.VY
			es.Landed = !ent.Mov.Landed.Zero()
		}
		if ent.Food != nil {
			es.Food = ent.Food.Food
		}
		if ent.Agent != nil {
			es.Agent = snapshotAgent(ent.Agent)
		}
		entities = append(entities, es)
	}
	return Snapshot{
		Tick:     w.tick,
		Seed:     w.config.Seed,
		Width:    w.config.Width,
		Height:   w.config.Height,
		Entities: entities,
		Metrics:  w.metrics,
	}
}

func snapshotKind(ent *Entity) string {
	switch {
	case ent.Agent != nil:
		return KindGroblin
	case ent.Food != nil:
		return KindEdible
	case ent.Col != nil && ent.Col.Passability == PassClimbable:
		return KindVine
	default:
		return KindBlock
	}
}

func snapshotAgent(ag *Agent) *AgentSnapshot {
	needs := make([]NeedSnapshot, 0, len(ag.Needs))
	for _, name := range sortedNeedNames(ag) {
		t := ag.Needs[name]
		needs = append(needs, NeedSnapshot{
			Name:    t.Name(),
			Value:   t.Value(),
			State:   t.State(),
			Urgency: t.Urgency(),
		})
	}
	var path []nav.Point
	if len(ag.Plan.Path) > 0 {
		path = append(path, ag.Plan.Path...)
	}
	return &AgentSnapshot{
		Name:       ag.Name,
		Priority:   ag.Priority,
		Crawling:   !ag.Crawling.Zero(),
		ExploreDir: ag.ExploreDir,
		Needs:      needs,
		Plan: PlanSnapshot{
			Kind:   ag.Plan.Kind.String(),
			Target: ag.Plan.Target.ID(),
			Path:   path,
		},
	}
}

// Restore rebuilds world population from a snapshot. Terrain is placed
// exactly; creatures and items are respawned at their saved positions
// with saved need values. Plans are not restored, the next tick
// replans from restored need state.
func (w *World) Restore(s Snapshot) {
	if w == nil {
		return
	}
	w.tick = s.Tick

	sorted := append([]EntitySnapshot(nil), s.Entities...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	groblinOrdinal := 0
	for _, es := range sorted {
		tile := nav.Point{X: int(es.X + es.W/2), Y: int(es.Y + es.H/2)}
		switch es.Kind {
		case KindBlock:
			w.SpawnBlock(tile)
		case KindVine:
			w.SpawnVine(tile)
		case KindEdible:
			h := w.SpawnEdible(tile, es.Food)
			w.restorePlacement(h, es)
		case KindGroblin:
			name := ""
			if es.Agent != nil {
				name = es.Agent.Name
			}
			if name == "" {
				name = groblinName(w.rng, groblinOrdinal)
			}
			groblinOrdinal++
			h := w.SpawnGroblin(tile, name)
			w.restorePlacement(h, es)
			w.restoreAgent(h, es.Agent)
		}
	}
	w.RebuildWalkability()
}

func (w *World) restorePlacement(h Handle, es EntitySnapshot) {
	ent, ok := w.store.Get(h)
	if !ok || ent.Pos == nil {
		return
	}
	ent.Pos.X = es.X
	ent.Pos.Y = es.Y
	if ent.Mov != nil {
		ent.Mov.VX = es.VX
		ent.Mov.VY = es.VY
	}
	w.spatial.Move(h, ent.Pos.CenterX(), ent.Pos.CenterY())
}

func (w *World) restoreAgent(h Handle, as *AgentSnapshot) {
	if as == nil {
		return
	}
	ent, ok := w.store.Get(h)
	if !ok || ent.Agent == nil {
		return
	}
	ent.Agent.ExploreDir = as.ExploreDir
	for _, ns := range as.Needs {
		if tracker, ok := ent.Agent.Needs[ns.Name]; ok {
			tracker.SetValue(ns.Value)
		}
	}
}
