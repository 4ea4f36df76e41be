package engine

import (
	"sync"

	"github.com/google/uuid"
)

// MapGenerator produces the terrain+building grid consumed at the
// Drafting->Active transition. It is invoked exactly once per session.
// The returned coords are castle positions, one per player slot.
type MapGenerator interface {
	Generate(width, height, players int) (*Grid, []Coord, error)
}

// Session holds the entire canonical state of one game. Every mutating
// method takes the session lock, so sessions are independently lockable
// units of work and all mutations within one session are serialized.
type Session struct {
	mu sync.Mutex

	ID              string
	Status          Status
	TurnNumber      int
	CurrentPlayerID string
	Players         []*Player // slice order is turn order
	Units           []*Unit
	Grid            *Grid
	Catalog         *Catalog
	BattleLog       []BattleLogEntry
	WinnerID        string

	cfg     Config
	economy Economy
	combat  *CombatResolver
	gen     MapGenerator

	// StartTurn idempotence guard: a (turn, player) pair is credited once.
	creditedTurn   int
	creditedPlayer string
}

// NewSession creates a session in the Forming status with the given
// players already joined, in turn order.
func NewSession(players []*Player, cfg Config, catalog *Catalog, gen MapGenerator) *Session {
	return &Session{
		ID:      uuid.NewString(),
		Status:  StatusForming,
		Players: players,
		Catalog: catalog,
		cfg:     cfg,
		economy: NewEconomy(cfg),
		combat:  NewCombatResolver(cfg.Combat),
		gen:     gen,
	}
}

// StartDraft moves the session from Forming to Drafting and grants each
// player their starting gold.
func (s *Session) StartDraft() ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Status != StatusForming {
		return nil, ErrWrongStatus
	}
	s.Status = StatusDrafting
	for _, p := range s.Players {
		p.Gold = s.cfg.StartingGold
	}
	return []Event{
		{Type: EventDraftStarted, Data: map[string]any{"factions": len(s.Catalog.Factions())}},
		{Type: EventStatusChanged, Data: map[string]any{"status": StatusDrafting.String()}},
	}, nil
}

// Apply is the single entry point for player actions.
func (s *Session) Apply(playerID string, action Action) ([]Event, error) {
	switch action.Type {
	case ActionSelectFaction:
		return s.SelectFaction(playerID, action.FactionID)
	case ActionConfirmFaction:
		return s.ConfirmFaction(playerID, action.FactionID)
	case ActionDeselectFaction:
		return s.DeselectFaction(playerID)
	case ActionMove:
		return s.Move(playerID, action.UnitID, action.Target, action.Path)
	case ActionAttack:
		return s.Attack(playerID, action.UnitID, action.Target)
	case ActionPurchase:
		return s.Purchase(playerID, action.Target, action.UnitTypeID)
	case ActionUpgradeLevel:
		return s.UpgradeLevel(playerID)
	case ActionEndTurn:
		return s.EndTurn(playerID)
	default:
		return nil, &ValidationError{Code: "unknown_action", msg: "unknown action type"}
	}
}

// player returns a player by ID. Caller holds the lock.
func (s *Session) player(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// unit returns a unit by ID. Caller holds the lock.
func (s *Session) unit(id string) *Unit {
	for _, u := range s.Units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// unitAt returns the unit occupying a tile, or nil. Caller holds the lock.
func (s *Session) unitAt(c Coord) *Unit {
	for _, u := range s.Units {
		if u.Pos == c {
			return u
		}
	}
	return nil
}

// unitsOwnedBy counts units owned by a player. Caller holds the lock.
func (s *Session) unitsOwnedBy(playerID string) int {
	n := 0
	for _, u := range s.Units {
		if u.OwnerID == playerID {
			n++
		}
	}
	return n
}

// removeUnit deletes a unit by ID. Caller holds the lock.
func (s *Session) removeUnit(id string) {
	for i, u := range s.Units {
		if u.ID == id {
			s.Units = append(s.Units[:i], s.Units[i+1:]...)
			return
		}
	}
}

// spawnUnit creates a unit of the given type for a player, with health
// scaled by the player's current level.
func (s *Session) spawnUnit(p *Player, t *UnitType, pos Coord) *Unit {
	u := &Unit{
		ID:            uuid.NewString(),
		OwnerID:       p.ID,
		TypeID:        t.ID,
		Pos:           pos,
		MaxHealth:     scaleByLevel(t.MaxHealth, p.Level),
		MovementLeft:  0,
		HasAttacked:   true, // acts from its owner's next turn start
	}
	u.CurrentHealth = u.MaxHealth
	s.Units = append(s.Units, u)
	return u
}
