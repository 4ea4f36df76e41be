// Package mapgen produces the terrain and building grid consumed by a
// session at the Drafting->Active transition.
package mapgen

import (
	"fmt"
	"math/rand/v2"

	"gridlords/internal/engine"
)

const (
	villageRatio = 40 // one neutral village per N tiles
	mineRatio    = 80 // one neutral mine per N tiles
)

// Random generates maps with scattered terrain features and neutral
// buildings, and castle positions spread along the map edges.
type Random struct {
	rng *rand.Rand
}

// New creates a generator. A zero seed selects a nondeterministic one.
func New(seed uint64) *Random {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Random{rng: rand.New(rand.NewPCG(seed, seed))}
}

// Generate builds a width x height grid for the given player count and
// returns it together with one castle position per player.
func (r *Random) Generate(width, height, players int) (*engine.Grid, []engine.Coord, error) {
	if width < 4 || height < 4 {
		return nil, nil, fmt.Errorf("map %dx%d too small", width, height)
	}
	if players < 2 || players > 4 {
		return nil, nil, fmt.Errorf("unsupported player count %d", players)
	}

	g := engine.NewGrid(width, height)
	starts := startPositions(width, height, players)

	for i := range g.Tiles {
		tile := &g.Tiles[i]
		if nearAny(tile.Pos, starts, 2) {
			continue // keep start areas passable plains
		}
		switch roll := r.rng.IntN(100); {
		case roll < 10:
			tile.Terrain = engine.TerrainForest
		case roll < 16:
			tile.Terrain = engine.TerrainHill
		case roll < 21:
			tile.Terrain = engine.TerrainMountain
		case roll < 25:
			tile.Terrain = engine.TerrainWater
		}
	}

	r.placeNeutral(g, engine.BuildingVillage, len(g.Tiles)/villageRatio, starts)
	r.placeNeutral(g, engine.BuildingMine, len(g.Tiles)/mineRatio, starts)

	return g, starts, nil
}

// placeNeutral scatters n unowned buildings on free plains tiles.
func (r *Random) placeNeutral(g *engine.Grid, kind engine.BuildingType, n int, starts []engine.Coord) {
	for placed, tries := 0, 0; placed < n && tries < n*20; tries++ {
		c := engine.Coord{X: r.rng.IntN(g.Width), Y: r.rng.IntN(g.Height)}
		tile := g.At(c)
		if tile.Building != nil || tile.Terrain != engine.TerrainPlains || nearAny(c, starts, 1) {
			continue
		}
		tile.Building = &engine.Building{Type: kind, Income: kind.Income()}
		placed++
	}
}

// startPositions spreads castle positions across the map corners.
func startPositions(width, height, players int) []engine.Coord {
	corners := []engine.Coord{
		{X: 1, Y: 1},
		{X: width - 2, Y: height - 2},
		{X: width - 2, Y: 1},
		{X: 1, Y: height - 2},
	}
	return corners[:players]
}

func nearAny(c engine.Coord, anchors []engine.Coord, dist int) bool {
	for _, a := range anchors {
		if c.Manhattan(a) <= dist {
			return true
		}
	}
	return false
}
