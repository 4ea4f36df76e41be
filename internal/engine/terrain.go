package engine

// TerrainType classifies a map tile for movement and combat purposes.
type TerrainType int

const (
	TerrainPlains TerrainType = iota
	TerrainForest
	TerrainHill
	TerrainMountain
	TerrainWater
)

var terrainNames = map[TerrainType]string{
	TerrainPlains:   "Plains",
	TerrainForest:   "Forest",
	TerrainHill:     "Hill",
	TerrainMountain: "Mountain",
	TerrainWater:    "Water",
}

func (t TerrainType) String() string {
	if s, ok := terrainNames[t]; ok {
		return s
	}
	return "Unknown"
}

// MoveCost is the movement points a ground unit pays to enter the tile.
func (t TerrainType) MoveCost() int {
	switch t {
	case TerrainForest, TerrainHill:
		return 2
	case TerrainMountain:
		return 3
	case TerrainWater:
		return 4
	default:
		return 1
	}
}

// FlightExempt terrain costs a flying unit a flat 1 regardless of MoveCost.
func (t TerrainType) FlightExempt() bool {
	return t == TerrainMountain || t == TerrainWater
}

// Elevated terrain grants ranged units +1 effective attack range.
func (t TerrainType) Elevated() bool {
	return t == TerrainHill || t == TerrainMountain
}

// BuildingType classifies a building placed on a tile.
type BuildingType int

const (
	BuildingCastle BuildingType = iota
	BuildingVillage
	BuildingMine
)

var buildingNames = map[BuildingType]string{
	BuildingCastle:  "Castle",
	BuildingVillage: "Village",
	BuildingMine:    "Mine",
}

func (b BuildingType) String() string {
	if s, ok := buildingNames[b]; ok {
		return s
	}
	return "Unknown"
}

// Income is the gold the building yields its owner at turn start.
func (b BuildingType) Income() int {
	switch b {
	case BuildingCastle:
		return 50
	case BuildingMine:
		return 30
	default:
		return 15
	}
}
