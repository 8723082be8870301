package nav

import "testing"

func TestExploreMakesProgress(t *testing.T) {
	g := openGrid(20, 5)
	start := Point{X: 10, Y: 2}

	path := g.Explore(start, 4, 1)
	if len(path) == 0 {
		t.Fatalf("expected exploration path on an open grid")
	}
	end := path[len(path)-1]
	if end.X <= start.X {
		t.Fatalf("exploring right must end right of start, got %v", end)
	}
	if len(path) > 4 {
		t.Fatalf("path length %d exceeds radius 4", len(path))
	}

	left := g.Explore(start, 4, -1)
	if len(left) == 0 {
		t.Fatalf("expected exploration path to the left")
	}
	if leftEnd := left[len(left)-1]; leftEnd.X >= start.X {
		t.Fatalf("exploring left must end left of start, got %v", leftEnd)
	}
}

func TestExploreMaximizesProgressWithinRadius(t *testing.T) {
	g := openGrid(20, 5)
	start := Point{X: 3, Y: 2}
	path := g.Explore(start, 5, 1)
	if len(path) != 5 {
		t.Fatalf("expected to walk the full radius, got %d waypoints", len(path))
	}
	if end := path[len(path)-1]; end.X != start.X+5 {
		t.Fatalf("expected maximum horizontal progress, ended at %v", end)
	}
}

func TestExploreNilWhenNoProgress(t *testing.T) {
	g := NewGrid(10, 5)
	// Only a vertical shaft is walkable: no tile makes horizontal progress.
	for y := 0; y < 5; y++ {
		g.SetWalkable(Point{X: 4, Y: y}, true)
	}
	if path := g.Explore(Point{X: 4, Y: 2}, 3, 1); path != nil {
		t.Fatalf("expected nil when no tile makes progress, got %v", path)
	}
}

func TestExploreRoutesOverObstacle(t *testing.T) {
	g := openGrid(10, 6)
	// Wall at x=5 with an opening at the top row.
	for y := 1; y < 6; y++ {
		g.SetWalkable(Point{X: 5, Y: y}, false)
	}
	start := Point{X: 4, Y: 4}
	path := g.Explore(start, 12, 1)
	if len(path) == 0 {
		t.Fatalf("expected path over the wall")
	}
	if end := path[len(path)-1]; end.X <= 5 {
		t.Fatalf("expected to clear the wall, ended at %v", end)
	}
	for i, wp := range path {
		if !g.Walkable(wp) {
			t.Fatalf("waypoint %d (%v) is not walkable", i, wp)
		}
	}
}

func TestExploreUnwalkableStart(t *testing.T) {
	g := NewGrid(5, 5)
	if path := g.Explore(Point{X: 2, Y: 2}, 3, 1); path != nil {
		t.Fatalf("expected nil from unwalkable start, got %v", path)
	}
}
