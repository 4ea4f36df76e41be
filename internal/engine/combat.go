package engine

import "math/rand/v2"

// CombatPolicy selects the damage formula. The deterministic formula is
// canonical; the ±20% variance variant must be enabled explicitly.
type CombatPolicy struct {
	Variance bool
	Seed     uint64 // 0 selects a nondeterministic seed
}

// CombatResolver computes damage and destruction outcomes.
type CombatResolver struct {
	policy CombatPolicy
	rng    *rand.Rand
}

// NewCombatResolver creates a resolver for the given policy.
func NewCombatResolver(policy CombatPolicy) *CombatResolver {
	r := &CombatResolver{policy: policy}
	if policy.Variance {
		seed := policy.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		r.rng = rand.New(rand.NewPCG(seed, seed))
	}
	return r
}

// Damage computes the damage an attack deals: floor of base attack times
// the attacker owner's level multiplier, then ±20% when variance is on.
func (r *CombatResolver) Damage(baseAttack, ownerLevel int) int {
	dmg := scaleByLevel(baseAttack, ownerLevel)
	if r.policy.Variance {
		dmg = dmg * (80 + r.rng.IntN(41)) / 100
	}
	return dmg
}

// EffectiveRange returns a unit's attack range from the given tile.
// Elevated terrain grants +1 only to units with base range above 1.
func EffectiveRange(baseRange int, terrain TerrainType) int {
	if baseRange > 1 && terrain.Elevated() {
		return baseRange + 1
	}
	return baseRange
}

// BattleLogEntry is an append-only record of one attack. Entries are
// never mutated after being written.
type BattleLogEntry struct {
	AttackerID    string `json:"attacker_id"`
	AttackerOwner string `json:"attacker_owner"`
	DefenderID    string `json:"defender_id"`
	DefenderOwner string `json:"defender_owner"`
	Damage        int    `json:"damage"`
	Destroyed     bool   `json:"destroyed"`
	TurnNumber    int    `json:"turn_number"`
}
