package engine

// Level multipliers are discrete and non-compounding, expressed in percent
// so that damage and health stay in exact integer arithmetic:
// level 1 = 100%, level 2 = 120%, level 3 = 130%.
const MaxLevel = 3

// LevelPercent returns the stat multiplier for a player level, in percent.
func LevelPercent(level int) int {
	switch level {
	case 2:
		return 120
	case 3:
		return 130
	default:
		return 100
	}
}

// scaleByLevel applies the level multiplier to a base stat, flooring.
func scaleByLevel(base, level int) int {
	return base * LevelPercent(level) / 100
}

// Economy computes per-turn income and upgrade pricing.
type Economy struct {
	cfg Config
}

// NewEconomy creates an economy calculator for the given ruleset.
func NewEconomy(cfg Config) Economy {
	return Economy{cfg: cfg}
}

// Income is the gold credited to a player at turn start: the base stipend
// plus the income of every building the player owns.
func (e Economy) Income(g *Grid, playerID string) int {
	total := e.cfg.BaseIncome
	for i := range g.Tiles {
		if b := g.Tiles[i].Building; b != nil && b.OwnerID == playerID {
			total += b.Income
		}
	}
	return total
}

// UpgradeCost returns the cost of upgrading from the given level, or -1 if
// the level cannot be upgraded.
func (e Economy) UpgradeCost(level int) int {
	if level < 1 || level >= MaxLevel {
		return -1
	}
	return e.cfg.UpgradeCosts[level-1]
}
