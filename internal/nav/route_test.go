package nav

import "testing"

// openGrid returns a grid with every tile walkable.
func openGrid(cols, rows int) *Grid {
	g := NewGrid(cols, rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			g.SetWalkable(Point{X: x, Y: y}, true)
		}
	}
	return g
}

func TestRouteStraightLine(t *testing.T) {
	g := openGrid(10, 10)
	path := g.Route(Point{X: 1, Y: 5}, Point{X: 6, Y: 5})
	if path == nil {
		t.Fatalf("expected a route")
	}
	if len(path) != 5 {
		t.Fatalf("expected 5 waypoints, got %d: %v", len(path), path)
	}
	if path[0] == (Point{X: 1, Y: 5}) {
		t.Fatalf("path must not include the start tile")
	}
	if got := path[len(path)-1]; got != (Point{X: 6, Y: 5}) {
		t.Fatalf("path must end at the goal, got %v", got)
	}
}

func TestRouteAroundWall(t *testing.T) {
	g := openGrid(10, 10)
	// Vertical wall at x=5 with a gap at y=0.
	for y := 1; y < 10; y++ {
		g.SetWalkable(Point{X: 5, Y: y}, false)
	}

	start := Point{X: 2, Y: 5}
	goal := Point{X: 8, Y: 5}
	path := g.Route(start, goal)
	if path == nil {
		t.Fatalf("expected a route through the gap")
	}
	// Through the gap: up 5, right 6, down 5.
	if len(path) != 16 {
		t.Fatalf("expected detour of length 16, got %d", len(path))
	}
	prev := start
	for i, wp := range path {
		if !g.Walkable(wp) {
			t.Fatalf("waypoint %d (%v) is not walkable", i, wp)
		}
		dx := wp.X - prev.X
		dy := wp.Y - prev.Y
		if dx*dx+dy*dy != 1 {
			t.Fatalf("waypoint %d (%v) is not adjacent to %v", i, wp, prev)
		}
		prev = wp
	}
}

func TestRouteUnreachable(t *testing.T) {
	g := openGrid(10, 10)
	for y := 0; y < 10; y++ {
		g.SetWalkable(Point{X: 5, Y: y}, false)
	}
	if path := g.Route(Point{X: 2, Y: 5}, Point{X: 8, Y: 5}); path != nil {
		t.Fatalf("expected nil for unreachable goal, got %v", path)
	}
}

func TestRouteStartEqualsGoal(t *testing.T) {
	g := openGrid(4, 4)
	path := g.Route(Point{X: 2, Y: 2}, Point{X: 2, Y: 2})
	if path == nil {
		t.Fatalf("expected non-nil empty path when already at the goal")
	}
	if len(path) != 0 {
		t.Fatalf("expected empty path, got %v", path)
	}
}

func TestRouteRejectsBlockedEndpoints(t *testing.T) {
	g := openGrid(4, 4)
	g.SetWalkable(Point{X: 3, Y: 3}, false)
	if path := g.Route(Point{X: 0, Y: 0}, Point{X: 3, Y: 3}); path != nil {
		t.Fatalf("expected nil route to blocked goal, got %v", path)
	}
	if path := g.Route(Point{X: 3, Y: 3}, Point{X: 0, Y: 0}); path != nil {
		t.Fatalf("expected nil route from blocked start, got %v", path)
	}
}

func TestRouteDeterministic(t *testing.T) {
	g := openGrid(12, 12)
	first := g.Route(Point{X: 1, Y: 1}, Point{X: 9, Y: 8})
	for i := 0; i < 5; i++ {
		again := g.Route(Point{X: 1, Y: 1}, Point{X: 9, Y: 8})
		if len(again) != len(first) {
			t.Fatalf("route length changed between runs: %d vs %d", len(again), len(first))
		}
		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("waypoint %d changed between runs: %v vs %v", j, again[j], first[j])
			}
		}
	}
}
