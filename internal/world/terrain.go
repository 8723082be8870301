package world

import (
	"fmt"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
	"go.uber.org/zap"

	"github.com/ryholmdahl/groblins/internal/nav"
)

// GenOptions tunes procedural terrain generation.
type GenOptions struct {
	Groblins      int     `toml:"groblins" json:"groblins"`
	Edibles       int     `toml:"edibles" json:"edibles"`
	CaveThreshold float64 `toml:"cave_threshold" json:"caveThreshold"`
	VineChance    float64 `toml:"vine_chance" json:"vineChance"`
	EdibleFood    float64 `toml:"edible_food" json:"edibleFood"`
}

// DefaultGenOptions returns the generation tuning the simulation ships
// with.
func DefaultGenOptions() GenOptions {
	return GenOptions{
		Groblins:      6,
		Edibles:       40,
		CaveThreshold: 0.62,
		VineChance:    0.08,
		EdibleFood:    3,
	}
}

func (o GenOptions) normalized() GenOptions {
	defaults := DefaultGenOptions()
	n := o
	if n.Groblins <= 0 {
		n.Groblins = defaults.Groblins
	}
	if n.Edibles < 0 {
		n.Edibles = defaults.Edibles
	}
	if n.CaveThreshold <= 0 || n.CaveThreshold >= 1 {
		n.CaveThreshold = defaults.CaveThreshold
	}
	if n.VineChance < 0 || n.VineChance >= 1 {
		n.VineChance = defaults.VineChance
	}
	if n.EdibleFood <= 0 {
		n.EdibleFood = defaults.EdibleFood
	}
	return n
}

// Generate fills an empty world with layered-noise terrain and an
// initial population. A surface heightmap separates sky from ground, a
// second noise layer carves cave pockets below the surface, and cave
// ceilings sprout climbable vines. The same seed always produces the
// same world.
func (w *World) Generate(opts GenOptions) {
	if w == nil {
		return
	}
	opts = opts.normalized()

	seed := DeterministicSeedValue(w.config.Seed, "terrain")
	surfaceNoise := opensimplex.NewNormalized(seed)
	caveNoise := opensimplex.NewNormalized(seed + 1)
	rng := w.rng

	cols, rows := w.grid.Size()
	surface := make([]int, cols)
	for x := 0; x < cols; x++ {
		n := octaveNoise(surfaceNoise, float64(x), 0, 4, 0.04, 0.5)
		surface[x] = clampInt(rows/4+int(n*float64(rows)/2), 2, rows-3)
	}

	for x := 0; x < cols; x++ {
		for y := surface[x]; y < rows; y++ {
			if y < rows-1 {
				carve := octaveNoise(caveNoise, float64(x), float64(y), 3, 0.09, 0.5)
				if carve > opts.CaveThreshold {
					continue
				}
			}
			w.SpawnBlock(nav.Point{X: x, Y: y})
		}
	}

	// Vines hang where a cave pocket sits directly under solid rock.
	for x := 0; x < cols; x++ {
		for y := surface[x] + 1; y < rows-1; y++ {
			p := nav.Point{X: x, Y: y}
			if w.tileSolid(p) {
				continue
			}
			above := nav.Point{X: x, Y: y - 1}
			if w.tileSolid(above) && rng.Float64() < opts.VineChance {
				w.SpawnVine(p)
			}
		}
	}

	w.RebuildWalkability()

	for i := 0; i < opts.Edibles; i++ {
		if p, ok := w.randomOpenTile(rng, 200); ok {
			w.SpawnEdible(p, opts.EdibleFood)
		}
	}
	for i := 0; i < opts.Groblins; i++ {
		if p, ok := w.randomOpenTile(rng, 200); ok {
			w.SpawnGroblin(p, groblinName(rng, i))
		}
	}

	w.logger.Info("world generated",
		zap.Int("width", cols),
		zap.Int("height", rows),
		zap.Int("groblins", opts.Groblins),
		zap.Int("edibles", opts.Edibles))
}

// randomOpenTile picks a non-solid tile above the local surface or
// inside a cave; spawned entities fall from there until they land.
func (w *World) randomOpenTile(rng *rand.Rand, attempts int) (nav.Point, bool) {
	cols, rows := w.grid.Size()
	for i := 0; i < attempts; i++ {
		p := nav.Point{X: rng.Intn(cols), Y: rng.Intn(rows - 1)}
		below := nav.Point{X: p.X, Y: p.Y + 1}
		if !w.tileSolid(p) && !w.tileClimbable(p) && w.tileSolid(below) {
			return p, true
		}
	}
	return nav.Point{}, false
}

var (
	nameHeads = []string{"gro", "mur", "zib", "kra", "bol", "fen", "dug", "ska"}
	nameTails = []string{"blin", "tok", "nash", "gur", "mek", "rip", "zod", "fum"}
)

func groblinName(rng *rand.Rand, ordinal int) string {
	head := nameHeads[rng.Intn(len(nameHeads))]
	tail := nameTails[rng.Intn(len(nameTails))]
	return fmt.Sprintf("%s%s-%d", head, tail, ordinal+1)
}

// octaveNoise layers multiple noise frequencies for natural terrain.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxVal
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
