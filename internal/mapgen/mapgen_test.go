package mapgen_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gridlords/internal/engine"
	"gridlords/internal/mapgen"
)

func TestGenerateDeterministicForSeed(t *testing.T) {
	a, startsA, err := mapgen.New(7).Generate(16, 16, 3)
	require.NoError(t, err)
	b, startsB, err := mapgen.New(7).Generate(16, 16, 3)
	require.NoError(t, err)

	require.Equal(t, startsA, startsB)
	require.Equal(t, len(a.Tiles), len(b.Tiles))
	for i := range a.Tiles {
		require.Equal(t, a.Tiles[i].Terrain, b.Tiles[i].Terrain, "tile %d", i)
	}
}

func TestGenerateStartAreasArePassable(t *testing.T) {
	g, starts, err := mapgen.New(11).Generate(20, 20, 4)
	require.NoError(t, err)
	require.Len(t, starts, 4)

	for _, start := range starts {
		require.True(t, g.InBounds(start))
		for i := range g.Tiles {
			tile := &g.Tiles[i]
			if tile.Pos.Manhattan(start) <= 2 {
				require.Equal(t, engine.TerrainPlains, tile.Terrain, "tile %s near start %s", tile.Pos, start)
			}
			if tile.Pos.Manhattan(start) <= 1 {
				require.Nil(t, tile.Building, "building crowding start %s", start)
			}
		}
	}
}

func TestGenerateNeutralBuildingsUnowned(t *testing.T) {
	g, _, err := mapgen.New(3).Generate(20, 20, 2)
	require.NoError(t, err)

	found := 0
	for i := range g.Tiles {
		b := g.Tiles[i].Building
		if b == nil {
			continue
		}
		found++
		require.Empty(t, b.OwnerID)
		require.Equal(t, engine.TerrainPlains, g.Tiles[i].Terrain)
		require.Equal(t, b.Type.Income(), b.Income)
	}
	require.Positive(t, found)
}

func TestGenerateRejectsBadDimensions(t *testing.T) {
	_, _, err := mapgen.New(1).Generate(3, 20, 2)
	require.Error(t, err)
	_, _, err = mapgen.New(1).Generate(20, 3, 2)
	require.Error(t, err)
	_, _, err = mapgen.New(1).Generate(20, 20, 1)
	require.Error(t, err)
	_, _, err = mapgen.New(1).Generate(20, 20, 5)
	require.Error(t, err)
}
