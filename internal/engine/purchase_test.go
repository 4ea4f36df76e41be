package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gridlords/internal/engine"
)

// castleOf returns the position of the player's castle on a flat map.
func castleOf(t *testing.T, s *engine.Session, playerID string) engine.Coord {
	t.Helper()
	for i := range s.Grid.Tiles {
		tile := &s.Grid.Tiles[i]
		if tile.Building != nil && tile.Building.OwnerID == playerID {
			return tile.Pos
		}
	}
	t.Fatalf("no building for %s", playerID)
	return engine.Coord{}
}

func TestPurchaseExactGold(t *testing.T) {
	s, players := newActiveSession(t, 2)
	p := players[0]
	castle := castleOf(t, s, p.ID)

	p.Gold = 50 // infantry cost
	_, err := s.Purchase(p.ID, castle, "infantry")
	require.NoError(t, err)
	require.Equal(t, 0, p.Gold)

	bought := findUnitAt(s, castle)
	require.NotNil(t, bought)
	require.Equal(t, "infantry", bought.TypeID)
	require.Equal(t, p.ID, bought.OwnerID)
}

func TestPurchaseOneGoldShort(t *testing.T) {
	s, players := newActiveSession(t, 2)
	p := players[0]
	castle := castleOf(t, s, p.ID)
	before := len(s.Units)

	p.Gold = 49
	_, err := s.Purchase(p.ID, castle, "infantry")
	require.ErrorIs(t, err, engine.ErrInsufficientGold)
	require.Equal(t, 49, p.Gold)
	require.Len(t, s.Units, before)
}

func TestPurchaseRequiresRosterMembership(t *testing.T) {
	s, players := newActiveSession(t, 2)
	p := players[0] // crimson: no mage
	castle := castleOf(t, s, p.ID)
	p.Gold = 500

	_, err := s.Purchase(p.ID, castle, "mage")
	require.ErrorIs(t, err, engine.ErrNotInRoster)
}

func TestPurchaseRequiresOwnedBuilding(t *testing.T) {
	s, players := newActiveSession(t, 2)
	p := players[0]
	p.Gold = 500
	enemyCastle := castleOf(t, s, players[1].ID)

	_, err := s.Purchase(p.ID, enemyCastle, "infantry")
	require.ErrorIs(t, err, engine.ErrNotYourBuilding)

	empty := engine.Coord{X: 10, Y: 10}
	_, err = s.Purchase(p.ID, empty, "infantry")
	require.ErrorIs(t, err, engine.ErrNoBuilding)
}

func TestPurchaseRejectsOccupiedTile(t *testing.T) {
	s, players := newActiveSession(t, 2)
	p := players[0]
	castle := castleOf(t, s, p.ID)
	p.Gold = 500
	placeUnit(s, "squatter", p.ID, "infantry", castle, 100)

	_, err := s.Purchase(p.ID, castle, "infantry")
	require.ErrorIs(t, err, engine.ErrTileOccupied)
}

func TestPurchaseScalesHealthByLevel(t *testing.T) {
	s, players := newActiveSession(t, 2)
	p := players[0]
	castle := castleOf(t, s, p.ID)
	p.Gold = 500
	p.Level = 3

	_, err := s.Purchase(p.ID, castle, "infantry")
	require.NoError(t, err)

	bought := findUnitAt(s, castle)
	require.Equal(t, 130, bought.MaxHealth) // 100 at 1.3x
	require.Equal(t, 130, bought.CurrentHealth)
}

func TestPurchasedUnitActsNextTurn(t *testing.T) {
	s, players := newActiveSession(t, 2)
	p := players[0]
	castle := castleOf(t, s, p.ID)
	p.Gold = 500

	_, err := s.Purchase(p.ID, castle, "infantry")
	require.NoError(t, err)

	bought := findUnitAt(s, castle)
	require.Equal(t, 0, bought.MovementLeft)
	require.True(t, bought.HasAttacked)

	// After a full cycle the unit is refreshed.
	_, err = s.EndTurn(p.ID)
	require.NoError(t, err)
	_, err = s.EndTurn(players[1].ID)
	require.NoError(t, err)
	require.Equal(t, 3, bought.MovementLeft)
	require.False(t, bought.HasAttacked)
}

func TestUpgradeLevelTiers(t *testing.T) {
	s, players := newActiveSession(t, 2)
	p := players[0]
	cfg := engine.DefaultConfig()

	p.Gold = cfg.UpgradeCosts[0] - 1
	_, err := s.UpgradeLevel(p.ID)
	require.ErrorIs(t, err, engine.ErrInsufficientGold)
	require.Equal(t, 1, p.Level)

	p.Gold = cfg.UpgradeCosts[0]
	_, err = s.UpgradeLevel(p.ID)
	require.NoError(t, err)
	require.Equal(t, 2, p.Level)
	require.Equal(t, 0, p.Gold)

	// Tier costs are independent.
	p.Gold = cfg.UpgradeCosts[1]
	_, err = s.UpgradeLevel(p.ID)
	require.NoError(t, err)
	require.Equal(t, 3, p.Level)

	p.Gold = 10000
	_, err = s.UpgradeLevel(p.ID)
	require.ErrorIs(t, err, engine.ErrMaxLevel)
	require.Equal(t, 3, p.Level)
}

func findUnitAt(s *engine.Session, pos engine.Coord) *engine.Unit {
	for _, u := range s.Units {
		if u.Pos == pos {
			return u
		}
	}
	return nil
}
