package world

import "testing"

func TestFoodHysteresis(t *testing.T) {
	cfg := DefaultConfig()
	tr := NewFoodTracker(cfg)
	if tr.State() != FoodStateFull {
		t.Fatalf("expected to start full, got %s", tr.State())
	}

	// Hover just under the hungry entry threshold: state flips once and
	// must not flip back until the value crosses the full exit threshold.
	tr.SetValue(cfg.HungryBelow - 0.1)
	if tr.State() != FoodStateHungry {
		t.Fatalf("expected hungry below %v, got %s", cfg.HungryBelow, tr.State())
	}
	tr.SetValue(cfg.HungryBelow + 0.1)
	if tr.State() != FoodStateHungry {
		t.Fatalf("re-crossing the entry threshold must not exit hungry")
	}
	tr.SetValue(cfg.FullAbove + 0.1)
	if tr.State() != FoodStateFull {
		t.Fatalf("expected full above %v, got %s", cfg.FullAbove, tr.State())
	}

	tr.SetValue(cfg.StarvingBelow - 0.1)
	if tr.State() != FoodStateStarving {
		t.Fatalf("expected starving below %v, got %s", cfg.StarvingBelow, tr.State())
	}
	tr.SetValue(cfg.StarvingBelow + 0.1)
	if tr.State() != FoodStateStarving {
		t.Fatalf("re-crossing the entry threshold must not exit starving")
	}
	tr.SetValue(cfg.HungryAbove + 0.1)
	if tr.State() != FoodStateHungry {
		t.Fatalf("expected hungry above %v, got %s", cfg.HungryAbove, tr.State())
	}
}

func TestFoodUrgencyOrdering(t *testing.T) {
	cfg := DefaultConfig()
	tr := NewFoodTracker(cfg)
	full := tr.Urgency()
	tr.SetValue(cfg.HungryBelow - 0.1)
	hungry := tr.Urgency()
	tr.SetValue(cfg.StarvingBelow - 0.1)
	starving := tr.Urgency()
	if !(starving > hungry && hungry > full) {
		t.Fatalf("expected starving > hungry > full, got %d/%d/%d", starving, hungry, full)
	}
}

func TestFoodAddClampsToMax(t *testing.T) {
	cfg := DefaultConfig()
	tr := NewFoodTracker(cfg)
	tr.Add(100)
	if tr.Value() != cfg.MaxFood {
		t.Fatalf("expected clamp at %v, got %v", cfg.MaxFood, tr.Value())
	}
}

func TestRestRecoversOnlyWhileResting(t *testing.T) {
	cfg := DefaultConfig()
	tr := NewRestTracker(cfg)
	tr.SetValue(0.2)
	if tr.State() != RestStateTired {
		t.Fatalf("expected tired at 0.2, got %s", tr.State())
	}

	tr.Tick(1)
	if tr.Value() >= 0.2 {
		t.Fatalf("expected drain while not resting, got %v", tr.Value())
	}

	tr.resting = true
	before := tr.Value()
	tr.Tick(1)
	if tr.Value() <= before {
		t.Fatalf("expected recovery while resting, got %v", tr.Value())
	}
	tr.Clear()
	if tr.resting {
		t.Fatalf("Clear must stop resting")
	}
}

func TestArbitrationSwitchesOnStrictlyGreaterUrgency(t *testing.T) {
	cfg := DefaultConfig()
	food := NewFoodTracker(cfg)
	rest := NewRestTracker(cfg)
	ag := &Agent{Needs: map[string]NeedTracker{NeedFood: food, NeedRest: rest}}

	// Both at urgency 0: priority defaults to the first sorted name and
	// stays there.
	winner := arbitratePriority(ag)
	if ag.Priority != NeedFood || winner != food {
		t.Fatalf("expected default priority food, got %s", ag.Priority)
	}

	// Tired rest (urgency 1) beats full food (urgency 0).
	rest.SetValue(cfg.TiredBelow - 0.1)
	if winner := arbitratePriority(ag); winner != rest || ag.Priority != NeedRest {
		t.Fatalf("expected rest to take priority, got %s", ag.Priority)
	}

	// Hungry food (urgency 2) beats tired rest (urgency 1).
	food.SetValue(cfg.HungryBelow - 0.1)
	if winner := arbitratePriority(ag); winner != food || ag.Priority != NeedFood {
		t.Fatalf("expected food to take priority, got %s", ag.Priority)
	}

	// Equal urgency never steals priority back.
	if winner := arbitratePriority(ag); winner != food {
		t.Fatalf("priority must be sticky at equal urgency")
	}
}

func TestArbitrationClearsWinnerOnSwitch(t *testing.T) {
	cfg := DefaultConfig()
	food := NewFoodTracker(cfg)
	rest := NewRestTracker(cfg)
	ag := &Agent{Needs: map[string]NeedTracker{NeedFood: food, NeedRest: rest}}
	arbitratePriority(ag)

	food.plan = Plan{Kind: PlanMove}
	food.inaccessible[handleFor(7, 1)] = struct{}{}
	rest.SetValue(cfg.TiredBelow - 0.1)
	arbitratePriority(ag) // rest wins
	food.SetValue(cfg.HungryBelow - 0.1)
	arbitratePriority(ag) // food wins again, cleared on the switch

	if food.plan.Kind != PlanIdle || len(food.inaccessible) != 0 {
		t.Fatalf("switching priority must clear the winner's cached plan")
	}
}

func TestPlanAdvancedPopsReachedWaypoints(t *testing.T) {
	p := Plan{Kind: PlanMove, Path: pathOf(3, 5, 4, 5, 5, 5)}
	got := p.advanced(3.5, 5.5, 0.25)
	if len(got.Path) != 2 {
		t.Fatalf("expected first waypoint popped, got %v", got.Path)
	}
	if got.Path[0].X != 4 {
		t.Fatalf("expected next waypoint (4,5), got %v", got.Path[0])
	}

	// Far from the head waypoint: nothing pops.
	unchanged := p.advanced(9, 9, 0.25)
	if len(unchanged.Path) != 3 {
		t.Fatalf("expected no waypoints popped, got %v", unchanged.Path)
	}
}
