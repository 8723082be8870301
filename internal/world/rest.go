package world

// Rest need states.
const (
	RestStateRested = "rested"
	RestStateTired  = "tired"
)

// RestTracker is the simplest tracker: energy drains over time and only
// recovers while the tracker holds priority and the agent idles. Its
// urgency sits below hunger so a starving groblin never naps.
type RestTracker struct {
	value    float64
	drain    float64
	recovery float64

	tiredBelow  float64
	restedAbove float64

	state   string
	resting bool
}

// NewRestTracker builds a tracker from world tuning, starting rested.
func NewRestTracker(cfg Config) *RestTracker {
	return &RestTracker{
		value:       1,
		drain:       cfg.RestDrainRate,
		recovery:    cfg.RestRecoveryRate,
		tiredBelow:  cfg.TiredBelow,
		restedAbove: cfg.RestedAbove,
		state:       RestStateRested,
	}
}

func (t *RestTracker) Name() string { return NeedRest }

func (t *RestTracker) Tick(dt float64) {
	if t.resting {
		t.value += t.recovery * dt
	} else {
		t.value -= t.drain * dt
	}
	t.value = clamp(t.value, 0, 1)
	t.transition()
}

func (t *RestTracker) Value() float64 { return t.value }

func (t *RestTracker) SetValue(v float64) {
	t.value = clamp(v, 0, 1)
	t.transition()
}

func (t *RestTracker) State() string { return t.state }

func (t *RestTracker) Urgency() int {
	if t.state == RestStateTired {
		return 1
	}
	return 0
}

func (t *RestTracker) transition() {
	switch t.state {
	case RestStateRested:
		if t.value < t.tiredBelow {
			t.state = RestStateTired
		}
	case RestStateTired:
		if t.value > t.restedAbove {
			t.state = RestStateRested
		}
	default:
		t.state = RestStateRested
	}
}

func (t *RestTracker) Clear() {
	t.resting = false
}

// BuildPlan always idles; holding priority flips the tracker into its
// recovery phase until another need takes over.
func (t *RestTracker) BuildPlan(w *World, self Handle, dt float64) Plan {
	t.resting = true
	return Plan{Kind: PlanIdle}
}
