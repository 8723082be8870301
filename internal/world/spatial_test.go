package world

import "testing"

func handleFor(idx, gen uint32) Handle {
	return Handle{idx: idx, gen: gen}
}

func TestPartitionNeighborhoodExactRadius(t *testing.T) {
	p := NewPartition(4)
	near := handleFor(1, 1)
	edge := handleFor(2, 1)
	far := handleFor(3, 1)
	p.Add(near, 1, 1, false)
	p.Add(edge, 4, 1, false)
	p.Add(far, 9, 9, false)

	got := p.Neighborhood(1, 1, 3)
	if len(got) != 2 {
		t.Fatalf("expected 2 entities within radius, got %v", got)
	}
	if got[0] != near || got[1] != edge {
		t.Fatalf("expected sorted [near edge], got %v", got)
	}
	// The far entity shares a covering cell range but fails the exact
	// distance filter.
	if p.Neighborhood(1, 1, 5)[0] != near {
		t.Fatalf("expected near entity first")
	}
}

func TestPartitionMoveDirtiesBothCells(t *testing.T) {
	p := NewPartition(4)
	h := handleFor(1, 1)
	p.Add(h, 1, 1, true)
	p.MovedCells() // drain the spawn dirt

	p.Move(h, 9, 1) // crosses from cell (0,0) to cell (2,0)
	cells := p.MovedCells()
	if len(cells) != 2 {
		t.Fatalf("expected old and new cells dirty, got %v", cells)
	}
	if cells[0] != (CellKey{X: 0, Y: 0}) || cells[1] != (CellKey{X: 2, Y: 0}) {
		t.Fatalf("expected sorted cells (0,0) and (2,0), got %v", cells)
	}
}

func TestPartitionMoveWithinCellStillDirties(t *testing.T) {
	p := NewPartition(4)
	h := handleFor(1, 1)
	p.Add(h, 1, 1, true)
	p.MovedCells()

	p.Move(h, 1.5, 1)
	cells := p.MovedCells()
	if len(cells) != 1 || cells[0] != (CellKey{X: 0, Y: 0}) {
		t.Fatalf("intra-cell movement must dirty the cell, got %v", cells)
	}
}

func TestPartitionStationaryMoveIsNoop(t *testing.T) {
	p := NewPartition(4)
	h := handleFor(1, 1)
	p.Add(h, 1, 1, true)
	p.MovedCells()
	p.BeginTick()

	p.Move(h, 1, 1)
	if cells := p.MovedCells(); len(cells) != 0 {
		t.Fatalf("no-op move must not dirty cells, got %v", cells)
	}
	p.BeginTick()
	if p.MovedLastTick(h) {
		t.Fatalf("no-op move must not count as movement")
	}
}

func TestPartitionImmovableNeverDirties(t *testing.T) {
	p := NewPartition(4)
	h := handleFor(1, 1)
	p.Add(h, 1, 1, false)
	if cells := p.MovedCells(); len(cells) != 0 {
		t.Fatalf("immovable add must not dirty cells, got %v", cells)
	}
}

func TestPartitionMovedLastTickWindow(t *testing.T) {
	p := NewPartition(4)
	h := handleFor(1, 1)
	p.Add(h, 1, 1, true)

	p.Move(h, 2, 1)
	if p.MovedLastTick(h) {
		t.Fatalf("movement is not visible until the tick rotates")
	}
	p.BeginTick()
	if !p.MovedLastTick(h) {
		t.Fatalf("movement must be visible after rotation")
	}
	p.BeginTick()
	if p.MovedLastTick(h) {
		t.Fatalf("movement must age out after a still tick")
	}
}

func TestPartitionRemoveDropsEntity(t *testing.T) {
	p := NewPartition(4)
	h := handleFor(1, 1)
	p.Add(h, 1, 1, true)
	p.Remove(h)
	if got := p.Neighborhood(1, 1, 3); len(got) != 0 {
		t.Fatalf("removed entity must not appear in neighborhoods, got %v", got)
	}
	p.Remove(h) // unknown handle is a no-op
}
