package engine

// Config holds the tunable rules for creating a new session.
type Config struct {
	MapWidth     int
	MapHeight    int
	StartingGold int
	BaseIncome   int // per-turn stipend independent of buildings

	// Upgrade costs are tier-specific: index 0 is 1->2, index 1 is 2->3.
	UpgradeCosts [2]int

	Combat CombatPolicy
}

// DefaultConfig returns the standard ruleset.
func DefaultConfig() Config {
	return Config{
		MapWidth:     20,
		MapHeight:    20,
		StartingGold: 100,
		BaseIncome:   10,
		UpgradeCosts: [2]int{150, 300},
	}
}
