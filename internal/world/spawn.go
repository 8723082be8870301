package world

import "github.com/ryholmdahl/groblins/internal/nav"

// Entity dimensions in tiles. Groblins and edibles are slightly
// narrower than a tile so they slide through one-tile gaps.
const (
	groblinWidth   = 0.8
	groblinHeight  = 0.8
	edibleSize     = 0.5
	edibleDensity  = 0.5
	groblinDensity = 1.0
)

// SpawnBlock places solid terrain filling a tile. Any previous terrain
// entity on that tile is evicted first.
func (w *World) SpawnBlock(p nav.Point) Handle {
	return w.spawnTerrain(p, PassSolid)
}

// SpawnVine places climbable terrain filling a tile.
func (w *World) SpawnVine(p nav.Point) Handle {
	return w.spawnTerrain(p, PassClimbable)
}

func (w *World) spawnTerrain(p nav.Point, pass Passability) Handle {
	if w == nil || !w.grid.InBounds(p) {
		return Handle{}
	}
	if prev, ok := w.terrain[p]; ok {
		w.removeNow(prev)
	}
	return w.Add(Entity{
		Pos: &Positioned{X: float64(p.X), Y: float64(p.Y), W: 1, H: 1},
		Col: &Collidable{Group: GroupTerrain, Passability: pass},
	})
}

// SpawnEdible drops a food item centered in a tile. It is movable, so
// it falls until it lands; only landed edibles are eligible targets.
func (w *World) SpawnEdible(p nav.Point, food float64) Handle {
	if w == nil || !w.grid.InBounds(p) {
		return Handle{}
	}
	return w.Add(Entity{
		Pos: &Positioned{
			X: float64(p.X) + (1-edibleSize)/2,
			Y: float64(p.Y) + (1-edibleSize)/2,
			W: edibleSize,
			H: edibleSize,
		},
		Col: &Collidable{
			Group:        GroupItem,
			CollidesWith: []int{GroupTerrain},
		},
		Mov:  &Movable{Density: edibleDensity},
		Food: &Edible{Food: food},
	})
}

// SpawnGroblin creates a creature with a full set of need trackers.
// Groblins collide with terrain only; they pass through each other and
// through items, so consumption is the contact check that matters.
func (w *World) SpawnGroblin(p nav.Point, name string) Handle {
	if w == nil || !w.grid.InBounds(p) {
		return Handle{}
	}
	dir := 1
	if w.rng.Intn(2) == 0 {
		dir = -1
	}
	return w.Add(Entity{
		Pos: &Positioned{
			X: float64(p.X) + (1-groblinWidth)/2,
			Y: float64(p.Y) + (1 - groblinHeight),
			W: groblinWidth,
			H: groblinHeight,
		},
		Col: &Collidable{
			Group:        GroupCreature,
			CollidesWith: []int{GroupTerrain},
		},
		Mov: &Movable{Density: groblinDensity},
		Agent: &Agent{
			Name: name,
			Needs: map[string]NeedTracker{
				NeedFood: NewFoodTracker(w.config),
				NeedRest: NewRestTracker(w.config),
			},
			Vision:     w.config.AgentVision,
			Speed:      w.config.AgentSpeed,
			ExploreDir: dir,
		},
	})
}
