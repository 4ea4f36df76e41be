package engine

// Draft coordination. Each player picks, then confirms, exactly one
// faction. A confirmed faction is exclusive within the session, and a
// confirmed selection is immutable: there is no deselect after confirm.

// SelectFaction records a tentative pick. It overwrites any prior
// tentative pick and performs no exclusivity check.
func (s *Session) SelectFaction(playerID, factionID string) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Status != StatusDrafting {
		return nil, ErrWrongStatus
	}
	p := s.player(playerID)
	if p == nil {
		return nil, notFound("player", playerID)
	}
	if s.Catalog.Faction(factionID) == nil {
		return nil, notFound("faction", factionID)
	}
	if p.FactionConfirmed {
		return nil, ErrAlreadyConfirmed
	}

	p.FactionID = factionID
	return []Event{
		{Type: EventDraftSelected, Player: playerID, Data: map[string]any{"faction": factionID}},
	}, nil
}

// ConfirmFaction makes a pick exclusive. The conflict check and the set
// happen in one atomic step under the session lock, so concurrent
// confirms for the same faction yield exactly one success.
func (s *Session) ConfirmFaction(playerID, factionID string) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Status != StatusDrafting {
		return nil, ErrWrongStatus
	}
	p := s.player(playerID)
	if p == nil {
		return nil, notFound("player", playerID)
	}
	if s.Catalog.Faction(factionID) == nil {
		return nil, notFound("faction", factionID)
	}
	if p.FactionConfirmed {
		return nil, ErrAlreadyConfirmed
	}
	for _, other := range s.Players {
		if other.ID != playerID && other.FactionConfirmed && other.FactionID == factionID {
			return nil, ErrFactionConflict
		}
	}

	p.FactionID = factionID
	p.FactionConfirmed = true

	events := []Event{
		{Type: EventDraftConfirmed, Player: playerID, Data: map[string]any{"faction": factionID}},
	}

	if s.allConfirmed() {
		activation, err := s.activate()
		if err != nil {
			// Map generation failed: the confirm itself stands and the
			// session stays in Drafting.
			return events, err
		}
		events = append(events, activation...)
	}
	return events, nil
}

// DeselectFaction clears a tentative pick. Confirmed selections are
// immutable and cannot be deselected.
func (s *Session) DeselectFaction(playerID string) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Status != StatusDrafting {
		return nil, ErrWrongStatus
	}
	p := s.player(playerID)
	if p == nil {
		return nil, notFound("player", playerID)
	}
	if p.FactionConfirmed {
		return nil, ErrAlreadyConfirmed
	}

	p.FactionID = ""
	return []Event{
		{Type: EventDraftDeselected, Player: playerID},
	}, nil
}

// AllConfirmed reports whether every active player has confirmed.
func (s *Session) AllConfirmed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allConfirmed()
}

func (s *Session) allConfirmed() bool {
	for _, p := range s.Players {
		if p.Active && !p.FactionConfirmed {
			return false
		}
	}
	return true
}

// draftAfterLeave re-checks the draft completion condition after a
// player leaves mid-draft: the departed player no longer blocks
// activation, and a last remaining player wins by forfeit. Caller holds
// the lock.
func (s *Session) draftAfterLeave(events []Event) ([]Event, error) {
	active := 0
	for _, p := range s.Players {
		if p.Active {
			active++
		}
	}

	if active <= 1 {
		s.Status = StatusFinished
		if active == 1 {
			s.WinnerID = s.firstActive().ID
		}
		events = append(events,
			Event{Type: EventGameEnded, Data: map[string]any{"winner": s.WinnerID}},
			Event{Type: EventStatusChanged, Data: map[string]any{"status": StatusFinished.String()}},
		)
		return events, nil
	}

	if !s.allConfirmed() {
		return events, nil
	}
	activation, err := s.activate()
	if err != nil {
		return events, err
	}
	return append(events, activation...), nil
}

// activate performs the Drafting->Active transition: generate the map,
// grant each remaining active player a castle and a starting unit, and
// start the first player's turn. Caller holds the lock.
func (s *Session) activate() ([]Event, error) {
	active := make([]*Player, 0, len(s.Players))
	for _, p := range s.Players {
		if p.Active {
			active = append(active, p)
		}
	}

	grid, starts, err := s.gen.Generate(s.cfg.MapWidth, s.cfg.MapHeight, len(active))
	if err != nil {
		return nil, err
	}
	s.Grid = grid

	for i, p := range active {
		start := starts[i]
		tile := grid.At(start)
		if tile.Building == nil {
			tile.Building = &Building{Type: BuildingCastle, Income: BuildingCastle.Income()}
		}
		tile.Building.OwnerID = p.ID

		faction := s.Catalog.Faction(p.FactionID)
		first := s.Catalog.UnitType(faction.Roster[0])
		s.spawnUnit(p, first, s.freeTileNear(start))
	}

	s.Status = StatusActive
	s.TurnNumber = 1
	s.CurrentPlayerID = active[0].ID

	events := []Event{
		{Type: EventDraftComplete},
		{Type: EventStatusChanged, Data: map[string]any{"status": StatusActive.String()}},
	}
	events = append(events, s.startTurn(active[0])...)
	return events, nil
}

// freeTileNear returns an unoccupied tile at or orthogonally next to the
// coordinate, preferring the neighbors. Caller holds the lock.
func (s *Session) freeTileNear(c Coord) Coord {
	neighbors := []Coord{
		{X: c.X + 1, Y: c.Y}, {X: c.X - 1, Y: c.Y},
		{X: c.X, Y: c.Y + 1}, {X: c.X, Y: c.Y - 1},
	}
	for _, n := range neighbors {
		if s.Grid.InBounds(n) && s.unitAt(n) == nil {
			return n
		}
	}
	return c
}

// firstActive returns the first active player in turn order.
// Caller holds the lock.
func (s *Session) firstActive() *Player {
	for _, p := range s.Players {
		if p.Active {
			return p
		}
	}
	return s.Players[0]
}
