package engine

// requireTurn validates that the session is active and the caller holds
// the turn. Caller holds the lock.
func (s *Session) requireTurn(playerID string) (*Player, error) {
	if s.Status != StatusActive {
		return nil, ErrWrongStatus
	}
	p := s.player(playerID)
	if p == nil {
		return nil, notFound("player", playerID)
	}
	if !p.Active {
		return nil, ErrPlayerInactive
	}
	if s.CurrentPlayerID != playerID {
		return nil, ErrNotYourTurn
	}
	return p, nil
}

// StartTurn credits the player's turn income and refreshes their units.
// It is idempotent per (session, turn number, player): a repeated call
// for the same handover is a no-op and never double-credits.
func (s *Session) StartTurn(playerID string) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.requireTurn(playerID)
	if err != nil {
		return nil, err
	}
	return s.startTurn(p), nil
}

func (s *Session) startTurn(p *Player) []Event {
	if s.creditedTurn == s.TurnNumber && s.creditedPlayer == p.ID {
		return nil
	}
	s.creditedTurn = s.TurnNumber
	s.creditedPlayer = p.ID

	income := s.economy.Income(s.Grid, p.ID)
	p.Gold += income

	for _, u := range s.Units {
		if u.OwnerID != p.ID {
			continue
		}
		if t := s.Catalog.UnitType(u.TypeID); t != nil {
			u.MovementLeft = t.Movement
		}
		u.HasAttacked = false
	}

	return []Event{
		{Type: EventTurnStarted, Player: p.ID, Data: map[string]any{
			"turn":   s.TurnNumber,
			"income": income,
		}},
	}
}

// Move walks a unit along a path to the target tile, deducting the path
// cost from its movement. Entering a tile with a building the mover's
// player does not own captures the building.
func (s *Session) Move(playerID, unitID string, target Coord, path []Coord) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.requireTurn(playerID); err != nil {
		return nil, err
	}
	u := s.unit(unitID)
	if u == nil {
		return nil, notFound("unit", unitID)
	}
	if u.OwnerID != playerID {
		return nil, ErrNotYourUnit
	}
	tile := s.Grid.At(target)
	if tile == nil {
		return nil, notFound("tile", target.String())
	}
	if s.unitAt(target) != nil {
		return nil, ErrTileOccupied
	}
	if len(path) == 0 || path[len(path)-1] != target {
		return nil, ErrBadPath
	}

	flying := false
	if t := s.Catalog.UnitType(u.TypeID); t != nil {
		flying = t.Flying
	}
	cost, err := PathCost(s.Grid, u.Pos, path, flying)
	if err != nil {
		return nil, err
	}
	if cost > u.MovementLeft {
		return nil, ErrInsufficientMovement
	}

	from := u.Pos
	u.Pos = target
	u.MovementLeft -= cost

	events := []Event{
		{Type: EventUnitMoved, Player: playerID, Data: map[string]any{
			"unit": u.ID,
			"from": from,
			"to":   target,
			"cost": cost,
		}},
	}

	if b := tile.Building; b != nil && b.OwnerID != playerID {
		previous := b.OwnerID
		b.OwnerID = playerID
		events = append(events, Event{
			Type:   EventBuildingCaptured,
			Player: playerID,
			Data: map[string]any{
				"pos":            target,
				"building":       b.Type.String(),
				"previous_owner": previous,
			},
		})
		events = append(events, s.evaluateGameEnd()...)
	}
	return events, nil
}

// Attack resolves one unit attacking the unit on the target tile.
func (s *Session) Attack(playerID, unitID string, target Coord) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.requireTurn(playerID)
	if err != nil {
		return nil, err
	}
	attacker := s.unit(unitID)
	if attacker == nil {
		return nil, notFound("unit", unitID)
	}
	if attacker.OwnerID != playerID {
		return nil, ErrNotYourUnit
	}
	if attacker.HasAttacked {
		return nil, ErrAlreadyAttacked
	}
	defender := s.unitAt(target)
	if defender == nil {
		return nil, notFound("unit", "at "+target.String())
	}
	if defender.OwnerID == playerID {
		return nil, ErrFriendlyTarget
	}
	atkType := s.Catalog.UnitType(attacker.TypeID)
	if atkType == nil {
		return nil, notFound("unit_type", attacker.TypeID)
	}

	reach := EffectiveRange(atkType.Range, s.Grid.At(attacker.Pos).Terrain)
	if attacker.Pos.Manhattan(target) > reach {
		return nil, ErrOutOfRange
	}

	damage := s.combat.Damage(atkType.Attack, p.Level)
	defender.CurrentHealth -= damage
	destroyed := defender.CurrentHealth <= 0
	if destroyed {
		s.removeUnit(defender.ID)
	}
	attacker.HasAttacked = true

	s.BattleLog = append(s.BattleLog, BattleLogEntry{
		AttackerID:    attacker.ID,
		AttackerOwner: attacker.OwnerID,
		DefenderID:    defender.ID,
		DefenderOwner: defender.OwnerID,
		Damage:        damage,
		Destroyed:     destroyed,
		TurnNumber:    s.TurnNumber,
	})

	events := []Event{
		{Type: EventUnitAttacked, Player: playerID, Data: map[string]any{
			"attacker":  attacker.ID,
			"defender":  defender.ID,
			"damage":    damage,
			"destroyed": destroyed,
		}},
	}
	if destroyed {
		events = append(events, s.evaluateGameEnd()...)
	}
	return events, nil
}

// Purchase buys a unit at a building the caller owns. The new unit is
// spawned on the building's tile with level-adjusted health and cannot
// act until its owner's next turn start.
func (s *Session) Purchase(playerID string, buildingPos Coord, unitTypeID string) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.requireTurn(playerID)
	if err != nil {
		return nil, err
	}
	tile := s.Grid.At(buildingPos)
	if tile == nil {
		return nil, notFound("tile", buildingPos.String())
	}
	if tile.Building == nil {
		return nil, ErrNoBuilding
	}
	if tile.Building.OwnerID != playerID {
		return nil, ErrNotYourBuilding
	}
	if s.unitAt(buildingPos) != nil {
		return nil, ErrTileOccupied
	}
	t := s.Catalog.UnitType(unitTypeID)
	if t == nil {
		return nil, notFound("unit_type", unitTypeID)
	}
	faction := s.Catalog.Faction(p.FactionID)
	if faction == nil {
		return nil, ErrNotConfirmed
	}
	if !faction.HasUnitType(unitTypeID) {
		return nil, ErrNotInRoster
	}
	if p.Gold < t.Cost {
		return nil, ErrInsufficientGold
	}

	p.Gold -= t.Cost
	u := s.spawnUnit(p, t, buildingPos)

	return []Event{
		{Type: EventUnitPurchased, Player: playerID, Data: map[string]any{
			"unit":      u.ID,
			"unit_type": t.ID,
			"pos":       buildingPos,
			"cost":      t.Cost,
		}},
	}, nil
}

// UpgradeLevel raises the caller's level by one tier. Tier costs are
// independent; the multiplier is discrete and non-compounding.
func (s *Session) UpgradeLevel(playerID string) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.requireTurn(playerID)
	if err != nil {
		return nil, err
	}
	if p.Level >= MaxLevel {
		return nil, ErrMaxLevel
	}
	cost := s.economy.UpgradeCost(p.Level)
	if p.Gold < cost {
		return nil, ErrInsufficientGold
	}

	p.Gold -= cost
	p.Level++

	return []Event{
		{Type: EventLevelUpgraded, Player: playerID, Data: map[string]any{
			"level": p.Level,
			"cost":  cost,
		}},
	}, nil
}

// EndTurn hands the turn to the next active player in turn order,
// incrementing the turn number exactly once per full cycle.
func (s *Session) EndTurn(playerID string) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.requireTurn(playerID)
	if err != nil {
		return nil, err
	}

	events := []Event{
		{Type: EventTurnEnded, Player: p.ID, Data: map[string]any{"turn": s.TurnNumber}},
	}
	events = append(events, s.advanceTurn()...)
	events = append(events, s.evaluateGameEnd()...)
	return events, nil
}

// advanceTurn moves CurrentPlayerID to the next active player, skipping
// eliminated players, and starts their turn. Caller holds the lock.
func (s *Session) advanceTurn() []Event {
	cur := 0
	for i, p := range s.Players {
		if p.ID == s.CurrentPlayerID {
			cur = i
			break
		}
	}

	n := len(s.Players)
	next := cur
	for i := 1; i <= n; i++ {
		cand := (cur + i) % n
		if s.Players[cand].Active {
			next = cand
			break
		}
	}

	if next <= cur {
		s.TurnNumber++
	}
	s.CurrentPlayerID = s.Players[next].ID
	return s.startTurn(s.Players[next])
}

// MarkInactive deactivates a player who left the session. It re-enters
// the same serialized path as every other mutation; transports call it
// for an explicit leave, never for a bare disconnect.
func (s *Session) MarkInactive(playerID string) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.player(playerID)
	if p == nil {
		return nil, notFound("player", playerID)
	}
	if !p.Active {
		return nil, nil
	}
	p.Active = false

	events := []Event{
		{Type: EventPlayerEliminated, Player: playerID, Data: map[string]any{"reason": "left"}},
	}

	// A mid-draft leave can complete the draft: the departed player no
	// longer counts toward the confirmation condition.
	if s.Status == StatusDrafting {
		return s.draftAfterLeave(events)
	}

	events = append(events, s.evaluateGameEnd()...)

	if s.Status == StatusActive && s.CurrentPlayerID == playerID {
		events = append(events, s.advanceTurn()...)
	}
	return events, nil
}

// BattleLogEntries returns a copy of the append-only battle log.
func (s *Session) BattleLogEntries() []BattleLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]BattleLogEntry, len(s.BattleLog))
	copy(out, s.BattleLog)
	return out
}
