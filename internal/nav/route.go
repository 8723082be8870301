package nav

import "container/heap"

type routeNode struct {
	point  Point
	g      int
	f      int
	index  int
	parent *routeNode
}

type routeQueue []*routeNode

func (pq routeQueue) Len() int { return len(pq) }

func (pq routeQueue) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	// Stable ordering among equal-cost nodes keeps searches deterministic.
	if pq[i].point.Y != pq[j].point.Y {
		return pq[i].point.Y < pq[j].point.Y
	}
	return pq[i].point.X < pq[j].point.X
}

func (pq routeQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *routeQueue) Push(x any) {
	n := len(*pq)
	item := x.(*routeNode)
	item.index = n
	*pq = append(*pq, item)
}

func (pq *routeQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

func manhattan(a, b Point) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Route returns the shortest 4-directional path from start to goal,
// excluding the start tile and ending at the goal tile. A nil path means
// no route exists; that is the only failure signal.
func (g *Grid) Route(start, goal Point) []Point {
	if g == nil || !g.Walkable(start) || !g.Walkable(goal) {
		return nil
	}
	if start == goal {
		return []Point{}
	}

	open := &routeQueue{}
	heap.Init(open)
	heap.Push(open, &routeNode{point: start, g: 0, f: manhattan(start, goal)})
	gScore := map[int]int{g.index(start): 0}
	closed := make(map[int]struct{})

	for open.Len() > 0 {
		current := heap.Pop(open).(*routeNode)
		currIdx := g.index(current.point)
		if _, seen := closed[currIdx]; seen {
			continue
		}
		closed[currIdx] = struct{}{}
		if current.point == goal {
			return reconstructRoute(current)
		}

		for _, delta := range neighborOffsets {
			next := Point{X: current.point.X + delta.X, Y: current.point.Y + delta.Y}
			if !g.Walkable(next) {
				continue
			}
			idx := g.index(next)
			if _, seen := closed[idx]; seen {
				continue
			}
			tentative := current.g + 1
			if prev, ok := gScore[idx]; ok && tentative >= prev {
				continue
			}
			gScore[idx] = tentative
			heap.Push(open, &routeNode{
				point:  next,
				g:      tentative,
				f:      tentative + manhattan(next, goal),
				parent: current,
			})
		}
	}
	return nil
}

func reconstructRoute(end *routeNode) []Point {
	if end == nil {
		return nil
	}
	length := 0
	for node := end; node.parent != nil; node = node.parent {
		length++
	}
	path := make([]Point, length)
	for node := end; node.parent != nil; node = node.parent {
		length--
		path[length] = node.point
	}
	return path
}
