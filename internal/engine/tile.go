package engine

import "fmt"

// Coord is a tile position on the grid.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(o Coord) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y)
}

// Adjacent reports whether the other coordinate is orthogonally adjacent.
func (c Coord) Adjacent(o Coord) bool {
	return c.Manhattan(o) == 1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Building occupies a tile and yields gold to its owner each turn.
// OwnerID is empty while the building is neutral.
type Building struct {
	Type    BuildingType `json:"type"`
	Income  int          `json:"income"`
	OwnerID string       `json:"owner_id,omitempty"`
}

// MapTile is one cell of the session grid.
type MapTile struct {
	Pos      Coord       `json:"pos"`
	Terrain  TerrainType `json:"terrain"`
	Building *Building   `json:"building,omitempty"`
}

// Grid is the session map, stored row-major.
type Grid struct {
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Tiles  []MapTile `json:"tiles"`
}

// NewGrid creates a grid of the given size filled with plains.
func NewGrid(width, height int) *Grid {
	g := &Grid{Width: width, Height: height, Tiles: make([]MapTile, width*height)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.Tiles[y*width+x] = MapTile{Pos: Coord{X: x, Y: y}}
		}
	}
	return g
}

// InBounds reports whether the coordinate lies on the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// At returns the tile at the coordinate, or nil if out of bounds.
func (g *Grid) At(c Coord) *MapTile {
	if !g.InBounds(c) {
		return nil
	}
	return &g.Tiles[c.Y*g.Width+c.X]
}

// BuildingsOwnedBy counts buildings owned by the given player.
func (g *Grid) BuildingsOwnedBy(playerID string) int {
	n := 0
	for i := range g.Tiles {
		if b := g.Tiles[i].Building; b != nil && b.OwnerID == playerID {
			n++
		}
	}
	return n
}
