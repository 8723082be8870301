package world

import (
	"math"
	"sort"
)

// CellKey addresses one cell of the spatial partition.
type CellKey struct {
	X int
	Y int
}

type spatialEntry struct {
	cell    CellKey
	x, y    float64
	movable bool
}

// Partition hashes collidable entities into fixed-size cells so collision
// and visibility queries only touch a local neighborhood. Cells that had
// a moving occupant since the last drain are flagged dirty; the collision
// pass re-examines only those. This locality is what keeps narrow-phase
// cost flat as the entity count grows.
type Partition struct {
	cellSize    float64
	invCellSize float64
	cells       map[CellKey][]Handle
	entries     map[Handle]*spatialEntry
	dirty       map[CellKey]struct{}
	movedPrev   map[Handle]struct{}
	movedCur    map[Handle]struct{}
}

// NewPartition creates a partition with the given cell size in world units.
func NewPartition(cellSize float64) *Partition {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Partition{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cells:       make(map[CellKey][]Handle),
		entries:     make(map[Handle]*spatialEntry),
		dirty:       make(map[CellKey]struct{}),
		movedPrev:   make(map[Handle]struct{}),
		movedCur:    make(map[Handle]struct{}),
	}
}

// CellSize reports the partition's cell edge length.
func (p *Partition) CellSize() float64 {
	if p == nil {
		return 0
	}
	return p.cellSize
}

func (p *Partition) keyFor(x, y float64) CellKey {
	return CellKey{
		X: int(math.Floor(x * p.invCellSize)),
		Y: int(math.Floor(y * p.invCellSize)),
	}
}

// Add registers an entity at the given center position. Movable entries
// dirty their cell immediately so freshly spawned entities are collision
// checked on the next pass.
func (p *Partition) Add(h Handle, x, y float64, movable bool) {
	if p == nil || h.Zero() {
		return
	}
	if _, exists := p.entries[h]; exists {
		p.Move(h, x, y)
		return
	}
	key := p.keyFor(x, y)
	p.entries[h] = &spatialEntry{cell: key, x: x, y: y, movable: movable}
	p.cells[key] = append(p.cells[key], h)
	if movable {
		p.dirty[key] = struct{}{}
	}
}

// Remove drops an entity from the partition. Unknown handles are ignored.
func (p *Partition) Remove(h Handle) {
	if p == nil {
		return
	}
	entry, ok := p.entries[h]
	if !ok {
		return
	}
	p.removeFromCell(h, entry.cell)
	delete(p.entries, h)
	delete(p.movedCur, h)
	if entry.movable {
		p.dirty[entry.cell] = struct{}{}
	}
}

func (p *Partition) removeFromCell(h Handle, key CellKey) {
	bucket := p.cells[key]
	for i := range bucket {
		if bucket[i] != h {
			continue
		}
		bucket[i] = bucket[len(bucket)-1]
		bucket = bucket[:len(bucket)-1]
		break
	}
	if len(bucket) == 0 {
		delete(p.cells, key)
	} else {
		p.cells[key] = bucket
	}
}

// Move reconciles the entity's cell membership with its new center
// position. Membership only relocates when the recomputed key differs
// from the stored one; any positional change marks the occupied cells
// dirty (for movables) and records the handle as moved this tick.
func (p *Partition) Move(h Handle, x, y float64) {
	if p == nil {
		return
	}
	entry, ok := p.entries[h]
	if !ok {
		return
	}
	if entry.x == x && entry.y == y {
		return
	}
	p.movedCur[h] = struct{}{}

	newKey := p.keyFor(x, y)
	if entry.movable {
		p.dirty[entry.cell] = struct{}{}
		p.dirty[newKey] = struct{}{}
	}
	if newKey != entry.cell {
		p.removeFromCell(h, entry.cell)
		p.cells[newKey] = append(p.cells[newKey], h)
		entry.cell = newKey
	}
	entry.x = x
	entry.y = y
}

// Neighborhood returns every entity whose center lies within Euclidean
// radius of (x, y), sorted by handle. The covering cells give a
// superset; the distance filter makes the result exact.
func (p *Partition) Neighborhood(x, y, radius float64) []Handle {
	if p == nil || radius <= 0 {
		return nil
	}
	minKey := p.keyFor(x-radius, y-radius)
	maxKey := p.keyFor(x+radius, y+radius)
	radiusSq := radius * radius

	var result []Handle
	for cy := minKey.Y; cy <= maxKey.Y; cy++ {
		for cx := minKey.X; cx <= maxKey.X; cx++ {
			for _, h := range p.cells[CellKey{X: cx, Y: cy}] {
				entry := p.entries[h]
				dx := entry.x - x
				dy := entry.y - y
				if dx*dx+dy*dy <= radiusSq {
					result = append(result, h)
				}
			}
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].idx != result[j].idx {
			return result[i].idx < result[j].idx
		}
		return result[i].gen < result[j].gen
	})
	return result
}

// MovedCells drains the dirty set, returning the cells that had a moving
// occupant since the previous drain, sorted for deterministic iteration.
func (p *Partition) MovedCells() []CellKey {
	if p == nil || len(p.dirty) == 0 {
		return nil
	}
	cells := make([]CellKey, 0, len(p.dirty))
	for key := range p.dirty {
		cells = append(cells, key)
	}
	p.dirty = make(map[CellKey]struct{})
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}

// CellCenter returns the world-space center of a cell, the anchor point
// for dirty-neighborhood collision scans.
func (p *Partition) CellCenter(key CellKey) (float64, float64) {
	if p == nil {
		return 0, 0
	}
	return (float64(key.X) + 0.5) * p.cellSize, (float64(key.Y) + 0.5) * p.cellSize
}

// BeginTick rotates the move-tracking window: everything recorded since
// the last rotation becomes "moved last tick", which drives landed-state
// clearing without flapping on idle frames.
func (p *Partition) BeginTick() {
	if p == nil {
		return
	}
	p.movedPrev = p.movedCur
	p.movedCur = make(map[Handle]struct{})
}

// MovedLastTick reports whether the entity changed position during the
// previous tick's integration.
func (p *Partition) MovedLastTick(h Handle) bool {
	if p == nil {
		return false
	}
	_, ok := p.movedPrev[h]
	return ok
}
