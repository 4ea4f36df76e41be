package engine_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"gridlords/internal/engine"
)

// flatGen generates an all-plains grid with corner starts, keeping
// engine tests independent of map randomness.
type flatGen struct{}

func (flatGen) Generate(w, h, players int) (*engine.Grid, []engine.Coord, error) {
	starts := []engine.Coord{
		{X: 1, Y: 1},
		{X: w - 2, Y: h - 2},
		{X: w - 2, Y: 1},
		{X: 1, Y: h - 2},
	}
	return engine.NewGrid(w, h), starts[:players], nil
}

// failGen simulates the map generation collaborator failing.
type failGen struct{}

func (failGen) Generate(w, h, players int) (*engine.Grid, []engine.Coord, error) {
	return nil, nil, fmt.Errorf("generator unavailable")
}

var draftFactions = []string{"crimson", "azure", "verdant", "obsidian"}

func newDraftingSession(t *testing.T, n int) (*engine.Session, []*engine.Player) {
	t.Helper()
	players := make([]*engine.Player, n)
	for i := range players {
		players[i] = engine.NewPlayer(fmt.Sprintf("p%d", i+1), fmt.Sprintf("Player %d", i+1))
	}
	s := engine.NewSession(players, engine.DefaultConfig(), engine.DefaultCatalog(), flatGen{})
	_, err := s.StartDraft()
	require.NoError(t, err)
	return s, players
}

// newActiveSession drafts every player into a distinct faction, which
// activates the session with player 1 holding the first turn.
func newActiveSession(t *testing.T, n int) (*engine.Session, []*engine.Player) {
	t.Helper()
	s, players := newDraftingSession(t, n)
	for i, p := range players {
		_, err := s.ConfirmFaction(p.ID, draftFactions[i])
		require.NoError(t, err)
	}
	require.Equal(t, engine.StatusActive, s.Status)
	return s, players
}

func TestNewSessionStartsForming(t *testing.T) {
	players := []*engine.Player{engine.NewPlayer("a", "A"), engine.NewPlayer("b", "B")}
	s := engine.NewSession(players, engine.DefaultConfig(), engine.DefaultCatalog(), flatGen{})

	require.Equal(t, engine.StatusForming, s.Status)
	require.NotEmpty(t, s.ID)
	require.Len(t, s.Players, 2)
}

func TestStartDraftGrantsStartingGold(t *testing.T) {
	s, players := newDraftingSession(t, 2)

	require.Equal(t, engine.StatusDrafting, s.Status)
	for _, p := range players {
		require.Equal(t, engine.DefaultConfig().StartingGold, p.Gold)
	}
}

func TestStartDraftTwiceRejected(t *testing.T) {
	s, _ := newDraftingSession(t, 2)

	_, err := s.StartDraft()
	require.ErrorIs(t, err, engine.ErrWrongStatus)
}

func TestActivationSetsUpBoard(t *testing.T) {
	s, players := newActiveSession(t, 2)

	require.Equal(t, 1, s.TurnNumber)
	require.Equal(t, players[0].ID, s.CurrentPlayerID)
	require.NotNil(t, s.Grid)

	// Each player owns a castle and one starting unit.
	for _, p := range players {
		require.Equal(t, 1, s.Grid.BuildingsOwnedBy(p.ID), "castle for %s", p.ID)
	}
	owners := map[string]int{}
	for _, u := range s.Units {
		owners[u.OwnerID]++
	}
	require.Equal(t, map[string]int{"p1": 1, "p2": 1}, owners)

	// The first player is credited turn income on activation: stipend
	// plus castle income on top of the starting gold.
	cfg := engine.DefaultConfig()
	require.Equal(t, cfg.StartingGold+cfg.BaseIncome+engine.BuildingCastle.Income(), players[0].Gold)
	require.Equal(t, cfg.StartingGold, players[1].Gold)
}

func TestApplyDispatch(t *testing.T) {
	s, players := newActiveSession(t, 2)

	_, err := s.Apply(players[0].ID, engine.Action{Type: engine.ActionEndTurn})
	require.NoError(t, err)
	require.Equal(t, players[1].ID, s.CurrentPlayerID)

	_, err = s.Apply(players[0].ID, engine.Action{Type: "bogus"})
	var verr *engine.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestTurnExclusivity(t *testing.T) {
	s, players := newActiveSession(t, 3)

	// Exactly one player holds the turn at any instant.
	holders := 0
	for _, p := range players {
		if p.ID == s.CurrentPlayerID {
			holders++
		}
	}
	require.Equal(t, 1, holders)

	_, err := s.EndTurn(players[1].ID)
	require.ErrorIs(t, err, engine.ErrNotYourTurn)
	_, err = s.UpgradeLevel(players[2].ID)
	require.ErrorIs(t, err, engine.ErrNotYourTurn)
}
