package world

import "testing"

func TestConfigNormalizedFillsDefaults(t *testing.T) {
	n := Config{}.Normalized()
	defaults := DefaultConfig()
	if n != defaults {
		t.Fatalf("zero config must normalize to defaults:\n got %+v\nwant %+v", n, defaults)
	}
}

func TestConfigNormalizedKeepsValidValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 200
	cfg.Gravity = 12
	cfg.Seed = "  custom  "
	n := cfg.Normalized()
	if n.Width != 200 || n.Gravity != 12 {
		t.Fatalf("valid overrides must survive normalization, got %+v", n)
	}
	if n.Seed != "custom" {
		t.Fatalf("seed must be trimmed, got %q", n.Seed)
	}
}

func TestConfigNormalizedRepairsBrokenThresholds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HungryBelow = cfg.MaxFood + 5 // above max, nonsensical
	cfg.Bounce = 2
	n := cfg.Normalized()
	defaults := DefaultConfig()
	if n.HungryBelow != defaults.HungryBelow {
		t.Fatalf("broken threshold must fall back, got %v", n.HungryBelow)
	}
	if n.Bounce != defaults.Bounce {
		t.Fatalf("bounce outside [0,1] must fall back, got %v", n.Bounce)
	}
}

func TestDeterministicSeedValueStable(t *testing.T) {
	a := DeterministicSeedValue("seed", "terrain")
	b := DeterministicSeedValue("seed", "terrain")
	if a != b {
		t.Fatalf("same seed and label must produce the same value")
	}
	if DeterministicSeedValue("seed", "world") == a {
		t.Fatalf("different labels must produce different values")
	}
	if DeterministicSeedValue("other", "terrain") == a {
		t.Fatalf("different seeds must produce different values")
	}
}
