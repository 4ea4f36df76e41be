package engine

// Player holds one player's session state. Players are never removed
// mid-session; elimination and leaving only clear the Active flag.
type Player struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Gold             int    `json:"gold"`
	FactionID        string `json:"faction_id,omitempty"`
	FactionConfirmed bool   `json:"faction_confirmed"`
	Level            int    `json:"level"`
	Active           bool   `json:"active"`
}

// NewPlayer creates a player at join time.
func NewPlayer(id, name string) *Player {
	return &Player{
		ID:     id,
		Name:   name,
		Level:  1,
		Active: true,
	}
}
