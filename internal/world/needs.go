package world

import "sort"

// Need names used as keys in an agent's tracker map.
const (
	NeedFood = "food"
	NeedRest = "rest"
)

// NeedTracker is a bounded drive with a hysteresis state machine. Each
// state pair has distinct rising and falling thresholds so a value
// oscillating at a boundary cannot flip the discrete state every tick.
// A tracker owns the active plan and any cached infeasibility data for
// its need; Clear discards both.
type NeedTracker interface {
	Name() string
	// Tick advances the decay/growth function by dt seconds.
	Tick(dt float64)
	Value() float64
	// SetValue overwrites the stored value, clamped to the tracker's
	// bounds, and recomputes the discrete state. Used by restore paths.
	SetValue(v float64)
	State() string
	// Urgency orders competing needs; higher wins priority arbitration.
	Urgency() int
	// BuildPlan produces the next plan for the agent identified by self.
	// It may advance a cached plan, invoke pathfinding, or fall back to
	// exploration; it never returns an error — an Idle plan is the
	// universal fallback.
	BuildPlan(w *World, self Handle, dt float64) Plan
	// Clear discards the in-flight plan and cached infeasibility data.
	// Called when terrain edits invalidate assumptions and when another
	// need takes over priority.
	Clear()
}

// tickNeeds advances every tracker in deterministic name order.
func tickNeeds(ag *Agent, dt float64) {
	for _, name := range sortedNeedNames(ag) {
		ag.Needs[name].Tick(dt)
	}
}

// arbitratePriority switches the agent's priority to the need with
// strictly greater urgency than the current one, clearing the winner's
// plan cache on a switch so it plans from scratch.
func arbitratePriority(ag *Agent) NeedTracker {
	names := sortedNeedNames(ag)
	if len(names) == 0 {
		return nil
	}

	current, ok := ag.Needs[ag.Priority]
	if !ok {
		ag.Priority = names[0]
		current = ag.Needs[ag.Priority]
	}

	best, bestName := current, ag.Priority
	for _, name := range names {
		if t := ag.Needs[name]; t.Urgency() > best.Urgency() {
			best, bestName = t, name
		}
	}
	if bestName != ag.Priority {
		ag.Priority = bestName
		best.Clear()
	}
	return best
}

func sortedNeedNames(ag *Agent) []string {
	names := make([]string, 0, len(ag.Needs))
	for name := range ag.Needs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
