package engine

// UnitType describes a purchasable unit's base statistics.
type UnitType struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Cost      int    `json:"cost"`
	MaxHealth int    `json:"max_health"`
	Attack    int    `json:"attack"`
	Range     int    `json:"range"`
	Movement  int    `json:"movement"`
	Flying    bool   `json:"flying"`
}

// Unit is a single unit on the grid.
type Unit struct {
	ID            string `json:"id"`
	OwnerID       string `json:"owner_id"`
	TypeID        string `json:"type_id"`
	Pos           Coord  `json:"pos"`
	CurrentHealth int    `json:"current_health"`
	MaxHealth     int    `json:"max_health"`
	MovementLeft  int    `json:"movement_left"`
	HasAttacked   bool   `json:"has_attacked"`
}

// BaseUnitTypes returns the full unit-type pool factions draw their
// rosters from.
func BaseUnitTypes() []UnitType {
	return []UnitType{
		{ID: "infantry", Name: "Infantry", Cost: 50, MaxHealth: 100, Attack: 25, Range: 1, Movement: 3},
		{ID: "archer", Name: "Archer", Cost: 60, MaxHealth: 80, Attack: 20, Range: 3, Movement: 3},
		{ID: "cavalry", Name: "Cavalry", Cost: 80, MaxHealth: 120, Attack: 30, Range: 1, Movement: 5},
		{ID: "mage", Name: "Mage", Cost: 90, MaxHealth: 70, Attack: 30, Range: 2, Movement: 3},
		{ID: "golem", Name: "Golem", Cost: 120, MaxHealth: 160, Attack: 35, Range: 1, Movement: 2},
		{ID: "scout", Name: "Scout", Cost: 40, MaxHealth: 60, Attack: 10, Range: 1, Movement: 6},
		{ID: "griffin", Name: "Griffin", Cost: 100, MaxHealth: 90, Attack: 25, Range: 1, Movement: 4, Flying: true},
		{ID: "wyvern", Name: "Wyvern", Cost: 110, MaxHealth: 100, Attack: 30, Range: 1, Movement: 5, Flying: true},
	}
}
