package engine

// Faction is a playable side with a unit roster. During the draft a
// faction is exclusive: at most one player per session may confirm it.
type Faction struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Roster []string `json:"roster"` // unit type IDs
}

// HasUnitType reports whether the faction's roster includes the type.
func (f *Faction) HasUnitType(typeID string) bool {
	for _, id := range f.Roster {
		if id == typeID {
			return true
		}
	}
	return false
}

// Catalog holds the factions and unit types available to a session.
type Catalog struct {
	factions  map[string]*Faction
	unitTypes map[string]*UnitType
	order     []string // faction IDs in presentation order
}

// NewCatalog builds a catalog from the given factions and unit types.
func NewCatalog(factions []Faction, types []UnitType) *Catalog {
	c := &Catalog{
		factions:  make(map[string]*Faction, len(factions)),
		unitTypes: make(map[string]*UnitType, len(types)),
	}
	for i := range factions {
		f := factions[i]
		c.factions[f.ID] = &f
		c.order = append(c.order, f.ID)
	}
	for i := range types {
		t := types[i]
		c.unitTypes[t.ID] = &t
	}
	return c
}

// Faction returns a faction by ID, or nil.
func (c *Catalog) Faction(id string) *Faction {
	return c.factions[id]
}

// UnitType returns a unit type by ID, or nil.
func (c *Catalog) UnitType(id string) *UnitType {
	return c.unitTypes[id]
}

// Factions returns all factions in presentation order.
func (c *Catalog) Factions() []*Faction {
	out := make([]*Faction, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.factions[id])
	}
	return out
}

// BaseFactions returns the built-in faction set.
func BaseFactions() []Faction {
	return []Faction{
		{ID: "crimson", Name: "Crimson Host", Roster: []string{"infantry", "archer", "cavalry", "golem"}},
		{ID: "azure", Name: "Azure Pact", Roster: []string{"infantry", "archer", "mage", "griffin"}},
		{ID: "verdant", Name: "Verdant Circle", Roster: []string{"scout", "archer", "cavalry", "wyvern"}},
		{ID: "obsidian", Name: "Obsidian Order", Roster: []string{"infantry", "mage", "golem", "wyvern"}},
	}
}

// DefaultCatalog returns a catalog of the built-in factions and unit types.
func DefaultCatalog() *Catalog {
	return NewCatalog(BaseFactions(), BaseUnitTypes())
}
