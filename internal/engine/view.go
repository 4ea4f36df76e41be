package engine

// PublicViewData is the session state visible to every subscriber. It is
// built under the session lock, strictly after any mutation completes.
type PublicViewData struct {
	SessionID       string           `json:"session_id"`
	Status          string           `json:"status"`
	TurnNumber      int              `json:"turn_number"`
	CurrentPlayerID string           `json:"current_player_id,omitempty"`
	Width           int              `json:"width"`
	Height          int              `json:"height"`
	Players         []PublicPlayer   `json:"players"`
	Units           []Unit           `json:"units,omitempty"`
	Tiles           []MapTile        `json:"tiles,omitempty"`
	Factions        []FactionStatus  `json:"factions,omitempty"`
	WinnerID        string           `json:"winner_id,omitempty"`
	BattleLog       []BattleLogEntry `json:"battle_log,omitempty"`
}

type PublicPlayer struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Gold             int    `json:"gold"`
	Level            int    `json:"level"`
	FactionID        string `json:"faction_id,omitempty"`
	FactionConfirmed bool   `json:"faction_confirmed"`
	Active           bool   `json:"active"`
}

// FactionStatus shows draft availability for one faction.
type FactionStatus struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ConfirmedBy string `json:"confirmed_by,omitempty"`
}

// PublicView snapshots the session for spectators and state syncs.
func (s *Session) PublicView() PublicViewData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.publicView()
}

func (s *Session) publicView() PublicViewData {
	pv := PublicViewData{
		SessionID:       s.ID,
		Status:          s.Status.String(),
		TurnNumber:      s.TurnNumber,
		CurrentPlayerID: s.CurrentPlayerID,
		Width:           s.cfg.MapWidth,
		Height:          s.cfg.MapHeight,
		WinnerID:        s.WinnerID,
	}

	for _, p := range s.Players {
		pv.Players = append(pv.Players, PublicPlayer{
			ID:               p.ID,
			Name:             p.Name,
			Gold:             p.Gold,
			Level:            p.Level,
			FactionID:        p.FactionID,
			FactionConfirmed: p.FactionConfirmed,
			Active:           p.Active,
		})
	}

	for _, u := range s.Units {
		pv.Units = append(pv.Units, *u)
	}
	if s.Grid != nil {
		pv.Tiles = make([]MapTile, len(s.Grid.Tiles))
		copy(pv.Tiles, s.Grid.Tiles)
	}

	for _, f := range s.Catalog.Factions() {
		fs := FactionStatus{ID: f.ID, Name: f.Name}
		for _, p := range s.Players {
			if p.FactionConfirmed && p.FactionID == f.ID {
				fs.ConfirmedBy = p.ID
			}
		}
		pv.Factions = append(pv.Factions, fs)
	}

	if n := len(s.BattleLog); n > 0 {
		pv.BattleLog = make([]BattleLogEntry, n)
		copy(pv.BattleLog, s.BattleLog)
	}
	return pv
}

// PlayerViewData is the session state visible to a specific player.
type PlayerViewData struct {
	PublicViewData
	IsMyTurn   bool     `json:"is_my_turn"`
	Roster     []string `json:"roster,omitempty"`
	CanUpgrade bool     `json:"can_upgrade"`
}

// ViewFor snapshots the session scoped to one player.
func (s *Session) ViewFor(playerID string) PlayerViewData {
	s.mu.Lock()
	defer s.mu.Unlock()

	pv := PlayerViewData{PublicViewData: s.publicView()}
	p := s.player(playerID)
	if p == nil {
		return pv
	}

	pv.IsMyTurn = s.Status == StatusActive && s.CurrentPlayerID == playerID
	if f := s.Catalog.Faction(p.FactionID); f != nil {
		pv.Roster = f.Roster
	}
	if pv.IsMyTurn && p.Level < MaxLevel {
		pv.CanUpgrade = p.Gold >= s.economy.UpgradeCost(p.Level)
	}
	return pv
}
