package engine

// Game end evaluation. A player stays active while owning at least one
// unit or one building. Runs after every event that can remove a unit or
// change building ownership.

// evaluateGameEnd recomputes the active set, deactivates zero-asset
// players, and finishes the session once at most one active player
// remains. Caller holds the lock.
func (s *Session) evaluateGameEnd() []Event {
	if s.Status != StatusActive {
		return nil
	}

	var events []Event
	for _, p := range s.Players {
		if !p.Active {
			continue
		}
		if s.unitsOwnedBy(p.ID) == 0 && s.Grid.BuildingsOwnedBy(p.ID) == 0 {
			p.Active = false
			events = append(events, Event{
				Type:   EventPlayerEliminated,
				Player: p.ID,
				Data:   map[string]any{"reason": "eliminated"},
			})
		}
	}

	var survivors []*Player
	for _, p := range s.Players {
		if p.Active {
			survivors = append(survivors, p)
		}
	}
	if len(survivors) > 1 {
		return events
	}

	s.Status = StatusFinished
	winner := ""
	if len(survivors) == 1 {
		winner = survivors[0].ID
		s.WinnerID = winner
	}
	events = append(events,
		Event{Type: EventGameEnded, Data: map[string]any{"winner": winner}},
		Event{Type: EventStatusChanged, Data: map[string]any{"status": StatusFinished.String()}},
	)
	return events
}
