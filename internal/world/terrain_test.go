package world

import (
	"testing"

	"github.com/ryholmdahl/groblins/internal/nav"
)

func TestGeneratePopulatesWorld(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 48
	cfg.Height = 32
	w, err := New(cfg, Deps{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	opts := DefaultGenOptions()
	w.Generate(opts)

	snap := w.Snapshot()
	counts := map[string]int{}
	for _, es := range snap.Entities {
		counts[es.Kind]++
	}
	if counts[KindBlock] == 0 {
		t.Fatalf("generation produced no terrain")
	}
	if counts[KindGroblin] != opts.Groblins {
		t.Fatalf("expected %d groblins, got %d", opts.Groblins, counts[KindGroblin])
	}
	if counts[KindEdible] == 0 {
		t.Fatalf("generation produced no edibles")
	}

	// The grid must have a walkable surface somewhere, or nothing can
	// ever move.
	cols, rows := w.grid.Size()
	walkable := 0
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if w.Walkable(nav.Point{X: x, Y: y}) {
				walkable++
			}
		}
	}
	if walkable == 0 {
		t.Fatalf("generated world has no walkable tiles")
	}
}

func TestGenerateDeterministicTerrain(t *testing.T) {
	build := func() Snapshot {
		cfg := DefaultConfig()
		cfg.Width = 40
		cfg.Height = 30
		w, err := New(cfg, Deps{})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		w.Generate(DefaultGenOptions())
		return w.Snapshot()
	}

	first := build()
	second := build()
	if len(first.Entities) != len(second.Entities) {
		t.Fatalf("entity counts differ across identical generations: %d vs %d",
			len(first.Entities), len(second.Entities))
	}
	for i := range first.Entities {
		a, b := first.Entities[i], second.Entities[i]
		if a.Kind != b.Kind || a.X != b.X || a.Y != b.Y {
			t.Fatalf("entity %d differs: %+v vs %+v", i, a, b)
		}
	}
}

func TestGenOptionsNormalized(t *testing.T) {
	n := GenOptions{}.normalized()
	defaults := DefaultGenOptions()
	if n.Groblins != defaults.Groblins || n.CaveThreshold != defaults.CaveThreshold {
		t.Fatalf("zero options must normalize to defaults, got %+v", n)
	}
	custom := GenOptions{Groblins: 2, Edibles: 5, CaveThreshold: 0.5, VineChance: 0.2, EdibleFood: 1}
	if got := custom.normalized(); got != custom {
		t.Fatalf("valid options must survive normalization, got %+v", got)
	}
}
