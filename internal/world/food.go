package world

// Food need states.
const (
	FoodStateFull     = "full"
	FoodStateHungry   = "hungry"
	FoodStateStarving = "starving"
)

// FoodTracker drives an agent toward edible entities. The value decays
// every tick; the discrete state moves through full/hungry/starving with
// hysteresis. Targets that failed a route search while the agent was
// grounded are cached as inaccessible until terrain changes or the need
// loses priority.
type FoodTracker struct {
	value float64
	max   float64
	decay float64

	hungryBelow   float64
	fullAbove     float64
	starvingBelow float64
	hungryAbove   float64

	state        string
	plan         Plan
	inaccessible map[Handle]struct{}
}

// NewFoodTracker builds a tracker from world tuning, starting full.
func NewFoodTracker(cfg Config) *FoodTracker {
	return &FoodTracker{
		value:         cfg.MaxFood,
		max:           cfg.MaxFood,
		decay:         cfg.FoodDecayRate,
		hungryBelow:   cfg.HungryBelow,
		fullAbove:     cfg.FullAbove,
		starvingBelow: cfg.StarvingBelow,
		hungryAbove:   cfg.HungryAbove,
		state:         FoodStateFull,
		inaccessible:  make(map[Handle]struct{}),
	}
}

func (t *FoodTracker) Name() string { return NeedFood }

func (t *FoodTracker) Tick(dt float64) {
	t.value -= t.decay * dt
	if t.value < 0 {
		t.value = 0
	}
	t.transition()
}

func (t *FoodTracker) Value() float64 { return t.value }

func (t *FoodTracker) SetValue(v float64) {
	t.value = clamp(v, 0, t.max)
	t.transition()
}

// Add credits consumed food, clamped to the tracker's maximum.
func (t *FoodTracker) Add(amount float64) {
	t.SetValue(t.value + amount)
}

func (t *FoodTracker) State() string { return t.state }

func (t *FoodTracker) Urgency() int {
	switch t.state {
	case FoodStateStarving:
		return 4
	case FoodStateHungry:
		return 2
	default:
		return 0
	}
}

// transition applies the hysteresis state machine: each state only exits
// through its own thresholds, so a value hovering at one boundary cannot
// chatter between states.
func (t *FoodTracker) transition() {
	switch t.state {
	case FoodStateFull:
		if t.value < t.hungryBelow {
			t.state = FoodStateHungry
		}
	case FoodStateHungry:
		if t.value < t.starvingBelow {
			t.state = FoodStateStarving
		} else if t.value > t.fullAbove {
			t.state = FoodStateFull
		}
	case FoodStateStarving:
		if t.value > t.hungryAbove {
			t.state = FoodStateHungry
		}
	default:
		t.state = FoodStateFull
	}
}

func (t *FoodTracker) Clear() {
	t.plan = Plan{}
	t.inaccessible = make(map[Handle]struct{})
}

// BuildPlan ranks visible landed edibles by distance and commits to the
// first workable one: contact yields Consume, a still-valid committed
// path is advanced without re-searching, and only then is the router
// invoked. Route failures poison the inaccessibility cache solely while
// the agent is grounded or crawling — an airborne agent's unreachability
// is transient. With no candidate left the tracker explores toward the
// agent's preferred direction, flipping it when even exploration fails.
func (t *FoodTracker) BuildPlan(w *World, self Handle, dt float64) Plan {
	ent, ok := w.store.Get(self)
	if !ok || ent.Pos == nil || ent.Mov == nil || ent.Agent == nil {
		t.plan = Plan{Kind: PlanIdle}
		return t.plan
	}
	pos, ag := ent.Pos, ent.Agent
	grounded := !ent.Mov.Landed.Zero() || !ag.Crawling.Zero()

	for _, cand := range w.edibleCandidates(self, pos, ag.Vision, t.inaccessible) {
		target, ok := w.store.Get(cand)
		if !ok || target.Pos == nil {
			continue
		}
		if overlaps(pos, target.Pos) {
			t.plan = Plan{Kind: PlanConsume, Target: cand}
			return t.plan
		}
		if t.plan.Kind == PlanMove && t.plan.Target == cand {
			advanced := t.plan.advanced(pos.CenterX(), pos.CenterY(), w.config.WaypointEpsilon)
			if len(advanced.Path) > 0 {
				t.plan = advanced
				return t.plan
			}
		}
		if path := w.route(pos.Tile(), target.Pos.Tile()); path != nil {
			t.plan = Plan{Kind: PlanMove, Target: cand, Path: path}
			return t.plan
		}
		if grounded {
			t.inaccessible[cand] = struct{}{}
		}
	}

	if grounded {
		if path := w.explore(pos.Tile(), ag.Vision, ag.ExploreDir); len(path) > 0 {
			t.plan = Plan{Kind: PlanMove, Path: path}
			return t.plan
		}
		ag.ExploreDir = -ag.ExploreDir
	}

	if t.plan.Kind == PlanMove {
		advanced := t.plan.advanced(pos.CenterX(), pos.CenterY(), w.config.WaypointEpsilon)
		if len(advanced.Path) > 0 {
			t.plan = advanced
			return t.plan
		}
	}
	t.plan = Plan{Kind: PlanIdle}
	return t.plan
}
