package world

import "sort"

// Handle identifies an entity in the store. Handles are stable across
// ticks and safe to retain: a removed entity's slot is recycled with a
// bumped generation, so stale handles fail validity checks instead of
// resolving to the wrong entity. The zero Handle is never valid.
type Handle struct {
	idx uint32
	gen uint32
}

// ID packs the handle into a stable numeric identifier for snapshots.
func (h Handle) ID() uint64 {
	return uint64(h.idx)<<32 | uint64(h.gen)
}

// Zero reports whether the handle is the invalid zero value.
func (h Handle) Zero() bool {
	return h.gen == 0
}

// ComponentMask selects component kinds for store queries.
type ComponentMask uint8

const (
	MaskPositioned ComponentMask = 1 << iota
	MaskCollidable
	MaskMovable
	MaskEdible
	MaskAgent
)

var allMasks = [...]ComponentMask{MaskPositioned, MaskCollidable, MaskMovable, MaskEdible, MaskAgent}

// Entity is a bundle of optional component slots. Exactly one instance
// of each kind may be attached; presence is fixed once added to a store.
type Entity struct {
	mask ComponentMask

	Pos   *Positioned
	Col   *Collidable
	Mov   *Movable
	Food  *Edible
	Agent *Agent
}

// Mask reports which component kinds the entity holds.
func (e *Entity) Mask() ComponentMask {
	if e == nil {
		return 0
	}
	return e.mask
}

func (e *Entity) computeMask() ComponentMask {
	var m ComponentMask
	if e.Pos != nil {
		m |= MaskPositioned
	}
	if e.Col != nil {
		m |= MaskCollidable
	}
	if e.Mov != nil {
		m |= MaskMovable
	}
	if e.Food != nil {
		m |= MaskEdible
	}
	if e.Agent != nil {
		m |= MaskAgent
	}
	return m
}

type slot struct {
	gen  uint32
	live bool
	ent  Entity
}

// Store is the arena owning every entity in a world. Add and Remove are
// O(1); Query cost is proportional to the population of the smallest
// required component kind.
type Store struct {
	slots  []slot
	free   []uint32
	byKind map[ComponentMask]map[Handle]struct{}
	count  int
}

// NewStore returns an empty entity store.
func NewStore() *Store {
	byKind := make(map[ComponentMask]map[Handle]struct{}, len(allMasks))
	for _, m := range allMasks {
		byKind[m] = make(map[Handle]struct{})
	}
	// Slot 0 is reserved so the zero Handle never resolves.
	return &Store{
		slots:  make([]slot, 1),
		byKind: byKind,
	}
}

// Len reports the number of live entities.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return s.count
}

// Add takes ownership of the entity and returns its handle.
func (s *Store) Add(ent Entity) Handle {
	ent.mask = ent.computeMask()

	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.slots = append(s.slots, slot{})
		idx = uint32(len(s.slots) - 1)
	}

	sl := &s.slots[idx]
	sl.gen++
	sl.live = true
	sl.ent = ent

	h := Handle{idx: idx, gen: sl.gen}
	for _, m := range allMasks {
		if ent.mask&m != 0 {
			s.byKind[m][h] = struct{}{}
		}
	}
	s.count++
	return h
}

// Remove releases the entity. Stale or zero handles are ignored.
func (s *Store) Remove(h Handle) bool {
	if s == nil || !s.valid(h) {
		return false
	}
	sl := &s.slots[h.idx]
	for _, m := range allMasks {
		if sl.ent.mask&m != 0 {
			delete(s.byKind[m], h)
		}
	}
	sl.live = false
	sl.ent = Entity{}
	s.free = append(s.free, h.idx)
	s.count--
	return true
}

// Get resolves a handle, reporting false for removed or stale handles.
// Callers holding handles across ticks must re-check before acting.
func (s *Store) Get(h Handle) (*Entity, bool) {
	if s == nil || !s.valid(h) {
		return nil, false
	}
	return &s.slots[h.idx].ent, true
}

func (s *Store) valid(h Handle) bool {
	if h.Zero() || h.idx == 0 || int(h.idx) >= len(s.slots) {
		return false
	}
	sl := &s.slots[h.idx]
	return sl.live && sl.gen == h.gen
}

// Query returns every live entity holding all required component kinds
// and none of the excluded ones, sorted by handle for deterministic
// iteration. The smallest required kind's index is scanned and the rest
// are checked against each entity's mask.
func (s *Store) Query(required, excluded ComponentMask) []Handle {
	if s == nil || required == 0 {
		return nil
	}

	var seed map[Handle]struct{}
	for _, m := range allMasks {
		if required&m == 0 {
			continue
		}
		kind := s.byKind[m]
		if seed == nil || len(kind) < len(seed) {
			seed = kind
		}
	}
	if len(seed) == 0 {
		return nil
	}

	result := make([]Handle, 0, len(seed))
	for h := range seed {
		mask := s.slots[h.idx].ent.mask
		if mask&required == required && mask&excluded == 0 {
			result = append(result, h)
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
