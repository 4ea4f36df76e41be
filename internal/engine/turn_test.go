package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridlords/internal/engine"
)

// unitOf returns the single starting unit owned by the player.
func unitOf(t *testing.T, s *engine.Session, playerID string) *engine.Unit {
	t.Helper()
	for _, u := range s.Units {
		if u.OwnerID == playerID {
			return u
		}
	}
	t.Fatalf("no unit for %s", playerID)
	return nil
}

func TestStartTurnIsIdempotent(t *testing.T) {
	s, players := newActiveSession(t, 2)
	p := players[0]
	credited := p.Gold

	// A repeated StartTurn for the same handover never double-credits.
	events, err := s.StartTurn(p.ID)
	require.NoError(t, err)
	require.Empty(t, events)
	require.Equal(t, credited, p.Gold)
}

func TestEndTurnCyclesActivePlayers(t *testing.T) {
	s, players := newActiveSession(t, 3)

	require.Equal(t, players[0].ID, s.CurrentPlayerID)
	require.Equal(t, 1, s.TurnNumber)

	_, err := s.EndTurn(players[0].ID)
	require.NoError(t, err)
	require.Equal(t, players[1].ID, s.CurrentPlayerID)
	require.Equal(t, 1, s.TurnNumber)

	_, err = s.EndTurn(players[1].ID)
	require.NoError(t, err)
	require.Equal(t, players[2].ID, s.CurrentPlayerID)
	require.Equal(t, 1, s.TurnNumber)

	// Wrapping back to the first player increments the turn number
	// exactly once per full cycle.
	_, err = s.EndTurn(players[2].ID)
	require.NoError(t, err)
	require.Equal(t, players[0].ID, s.CurrentPlayerID)
	require.Equal(t, 2, s.TurnNumber)
}

func TestEndTurnSkipsEliminatedPlayers(t *testing.T) {
	s, players := newActiveSession(t, 3)
	players[1].Active = false

	_, err := s.EndTurn(players[0].ID)
	require.NoError(t, err)
	require.Equal(t, players[2].ID, s.CurrentPlayerID)
}

func TestEndTurnCreditsIncome(t *testing.T) {
	s, players := newActiveSession(t, 2)
	before := players[1].Gold

	_, err := s.EndTurn(players[0].ID)
	require.NoError(t, err)

	cfg := engine.DefaultConfig()
	require.Equal(t, before+cfg.BaseIncome+engine.BuildingCastle.Income(), players[1].Gold)
}

func TestEndTurnRefreshesUnits(t *testing.T) {
	s, players := newActiveSession(t, 2)
	u := unitOf(t, s, players[1].ID)
	u.MovementLeft = 0
	u.HasAttacked = true

	_, err := s.EndTurn(players[0].ID)
	require.NoError(t, err)

	require.Equal(t, 3, u.MovementLeft) // infantry movement
	require.False(t, u.HasAttacked)
}

func TestMoveDeductsExactPathCost(t *testing.T) {
	s, players := newActiveSession(t, 2)
	u := unitOf(t, s, players[0].ID)
	start := u.Pos

	near := engine.Coord{X: start.X + 1, Y: start.Y}
	_, err := s.Move(players[0].ID, u.ID, near, []engine.Coord{near})
	require.NoError(t, err)
	require.Equal(t, near, u.Pos)
	require.Equal(t, 2, u.MovementLeft)

	// Moving back costs the return leg too: A->B->A is never free.
	_, err = s.Move(players[0].ID, u.ID, start, []engine.Coord{start})
	require.NoError(t, err)
	require.Equal(t, start, u.Pos)
	require.Equal(t, 1, u.MovementLeft)
}

func TestMoveRejectedWhenPathTooExpensive(t *testing.T) {
	s, players := newActiveSession(t, 2)
	u := unitOf(t, s, players[0].ID)
	start := u.Pos
	require.Equal(t, 3, u.MovementLeft)

	path := []engine.Coord{
		{X: start.X + 1, Y: start.Y},
		{X: start.X + 2, Y: start.Y},
		{X: start.X + 3, Y: start.Y},
		{X: start.X + 4, Y: start.Y},
	}
	_, err := s.Move(players[0].ID, u.ID, path[3], path)
	require.ErrorIs(t, err, engine.ErrInsufficientMovement)
	require.Equal(t, start, u.Pos)
	require.Equal(t, 3, u.MovementLeft)
}

func TestMoveRejectsOccupiedTile(t *testing.T) {
	s, players := newActiveSession(t, 2)
	u := unitOf(t, s, players[0].ID)

	blocker := &engine.Unit{
		ID: "blocker", OwnerID: players[1].ID, TypeID: "infantry",
		Pos:           engine.Coord{X: u.Pos.X + 1, Y: u.Pos.Y},
		MaxHealth:     100, CurrentHealth: 100,
	}
	s.Units = append(s.Units, blocker)

	_, err := s.Move(players[0].ID, u.ID, blocker.Pos, []engine.Coord{blocker.Pos})
	require.ErrorIs(t, err, engine.ErrTileOccupied)
}

func TestMoveRejectsForeignUnit(t *testing.T) {
	s, players := newActiveSession(t, 2)
	u := unitOf(t, s, players[1].ID)

	target := engine.Coord{X: u.Pos.X - 1, Y: u.Pos.Y}
	_, err := s.Move(players[0].ID, u.ID, target, []engine.Coord{target})
	require.ErrorIs(t, err, engine.ErrNotYourUnit)
}

func TestMoveRejectsBrokenPath(t *testing.T) {
	s, players := newActiveSession(t, 2)
	u := unitOf(t, s, players[0].ID)

	// Path does not end on the target.
	target := engine.Coord{X: u.Pos.X + 2, Y: u.Pos.Y}
	_, err := s.Move(players[0].ID, u.ID, target, []engine.Coord{{X: u.Pos.X + 1, Y: u.Pos.Y}})
	require.ErrorIs(t, err, engine.ErrBadPath)

	// Path teleports.
	_, err = s.Move(players[0].ID, u.ID, target, []engine.Coord{target})
	require.ErrorIs(t, err, engine.ErrBadPath)
}

func TestMoveUnknownUnitForcesResync(t *testing.T) {
	s, players := newActiveSession(t, 2)

	_, err := s.Move(players[0].ID, "ghost", engine.Coord{X: 2, Y: 2}, []engine.Coord{{X: 2, Y: 2}})
	var cerr *engine.ConsistencyError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "unit", cerr.Kind)
}

func TestMoveCapturesBuilding(t *testing.T) {
	s, players := newActiveSession(t, 2)
	u := unitOf(t, s, players[0].ID)

	target := engine.Coord{X: u.Pos.X + 1, Y: u.Pos.Y}
	s.Grid.At(target).Building = &engine.Building{Type: engine.BuildingVillage, Income: engine.BuildingVillage.Income()}

	events, err := s.Move(players[0].ID, u.ID, target, []engine.Coord{target})
	require.NoError(t, err)
	require.Equal(t, players[0].ID, s.Grid.At(target).Building.OwnerID)

	types := make([]engine.EventType, 0, len(events))
	for _, ev := range events {
		types = append(types, ev.Type)
	}
	assert.Contains(t, types, engine.EventBuildingCaptured)
}

func TestMarkInactiveAdvancesTurn(t *testing.T) {
	s, players := newActiveSession(t, 3)
	require.Equal(t, players[0].ID, s.CurrentPlayerID)

	events, err := s.MarkInactive(players[0].ID)
	require.NoError(t, err)
	require.False(t, players[0].Active)
	require.Equal(t, players[1].ID, s.CurrentPlayerID)
	require.NotEmpty(t, events)

	// A second leave for the same player is a no-op.
	events, err = s.MarkInactive(players[0].ID)
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestMarkInactiveEndsTwoPlayerGame(t *testing.T) {
	s, players := newActiveSession(t, 2)

	_, err := s.MarkInactive(players[1].ID)
	require.NoError(t, err)
	require.Equal(t, engine.StatusFinished, s.Status)
	require.Equal(t, players[0].ID, s.WinnerID)
}
