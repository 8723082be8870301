package nav

type exploreNode struct {
	point  Point
	depth  int
	parent *exploreNode
}

// Explore searches outward from start, bounded by radius (in path
// steps), for the reachable tile making the most horizontal progress in
// the given direction (+1 right, -1 left). It returns the shortest path
// to that tile, or nil when no reachable tile makes any progress. The
// breadth-first frontier visits each tile once via its shortest path,
// so cost is bounded by the vision disc.
func (g *Grid) Explore(start Point, radius int, dir int) []Point {
	if g == nil || !g.Walkable(start) || radius <= 0 {
		return nil
	}
	if dir >= 0 {
		dir = 1
	} else {
		dir = -1
	}

	visited := map[int]struct{}{g.index(start): {}}
	frontier := []*exploreNode{{point: start}}
	var best *exploreNode
	bestProgress := 0

	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]

		progress := dir * (current.point.X - start.X)
		if progress > bestProgress {
			bestProgress = progress
			best = current
		}

		if current.depth >= radius {
			continue
		}
		for _, delta := range neighborOffsets {
			next := Point{X: current.point.X + delta.X, Y: current.point.Y + delta.Y}
			if !g.Walkable(next) {
				continue
			}
			idx := g.index(next)
			if _, seen := visited[idx]; seen {
				continue
			}
			visited[idx] = struct{}{}
			frontier = append(frontier, &exploreNode{point: next, depth: current.depth + 1, parent: current})
		}
	}

	if best == nil {
		return nil
	}
	path := make([]Point, best.depth)
	for node := best; node.parent != nil; node = node.parent {
		path[node.depth-1] = node.point
	}
	return path
}
