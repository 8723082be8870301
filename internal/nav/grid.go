// Package nav provides the walkability grid and the two grid searches
// (shortest-path routing and frontier exploration) used by agent planners.
package nav

// Point identifies a tile by integer column and row.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

var neighborOffsets = [...]Point{
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
}

// Grid is a boolean walkability map over tile coordinates. It is rebuilt
// in full at world construction and patched incrementally on terrain
// edits; searches never mutate it.
type Grid struct {
	cols, rows int
	walkable   []bool
}

// NewGrid allocates a grid of the given dimensions with every tile
// marked unwalkable.
func NewGrid(cols, rows int) *Grid {
	if cols <= 0 {
		cols = 1
	}
	if rows <= 0 {
		rows = 1
	}
	return &Grid{
		cols:     cols,
		rows:     rows,
		walkable: make([]bool, cols*rows),
	}
}

// Size reports the grid dimensions in tiles.
func (g *Grid) Size() (int, int) {
	if g == nil {
		return 0, 0
	}
	return g.cols, g.rows
}

// InBounds reports whether the tile lies inside the grid.
func (g *Grid) InBounds(p Point) bool {
	return g != nil && p.X >= 0 && p.Y >= 0 && p.X < g.cols && p.Y < g.rows
}

// Walkable reports whether an agent may occupy the tile.
func (g *Grid) Walkable(p Point) bool {
	if !g.InBounds(p) {
		return false
	}
	return g.walkable[g.index(p)]
}

// SetWalkable overwrites the walkability of a single tile. Out-of-bounds
// writes are ignored.
func (g *Grid) SetWalkable(p Point, walkable bool) {
	if !g.InBounds(p) {
		return
	}
	g.walkable[g.index(p)] = walkable
}

func (g *Grid) index(p Point) int {
	return p.Y*g.cols + p.X
}
