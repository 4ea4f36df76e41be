package engine

// PathCost sums the movement cost of entering every tile on the path,
// which starts one step after from and must be orthogonally contiguous.
// Flight is a unit property, not a terrain one: a flying unit pays a flat
// 1 on flight-exempt terrain that is expensive for ground units.
func PathCost(g *Grid, from Coord, path []Coord, flying bool) (int, error) {
	if len(path) == 0 {
		return 0, ErrBadPath
	}
	prev := from
	total := 0
	for _, step := range path {
		tile := g.At(step)
		if tile == nil {
			return 0, notFound("tile", step.String())
		}
		if !prev.Adjacent(step) {
			return 0, ErrBadPath
		}
		cost := tile.Terrain.MoveCost()
		if flying && tile.Terrain.FlightExempt() {
			cost = 1
		}
		total += cost
		prev = step
	}
	return total, nil
}
