package lobby

import (
	"fmt"
	"sync"
)

// PlayerInfo holds forming-phase player information.
type PlayerInfo struct {
	ID    string
	Name  string
	Ready bool
}

// Lobby is the Forming stage of a session: players join and ready up
// before the draft begins.
type Lobby struct {
	mu         sync.Mutex
	ID         string
	Players    []*PlayerInfo
	MaxPlayers int
	MinPlayers int
	Started    bool
}

// NewLobby creates a lobby for up to four players.
func NewLobby(id string) *Lobby {
	return &Lobby{
		ID:         id,
		MaxPlayers: 4,
		MinPlayers: 2,
	}
}

// Join adds a player to the lobby.
func (l *Lobby) Join(id, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return fmt.Errorf("session already started")
	}
	if len(l.Players) >= l.MaxPlayers {
		return fmt.Errorf("lobby is full")
	}
	for _, p := range l.Players {
		if p.ID == id {
			p.Name = name // reconnect with a new name
			return nil
		}
	}
	l.Players = append(l.Players, &PlayerInfo{ID: id, Name: name})
	return nil
}

// Leave removes a player from the lobby.
func (l *Lobby) Leave(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, p := range l.Players {
		if p.ID == id {
			l.Players = append(l.Players[:i], l.Players[i+1:]...)
			return
		}
	}
}

// SetReady toggles a player's ready state.
func (l *Lobby) SetReady(id string, ready bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.Players {
		if p.ID == id {
			p.Ready = ready
			return
		}
	}
}

// CanStart returns true if enough players are ready.
func (l *Lobby) CanStart() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.Players) < l.MinPlayers {
		return false
	}
	for _, p := range l.Players {
		if !p.Ready {
			return false
		}
	}
	return true
}

// Start marks the lobby as started.
func (l *Lobby) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return fmt.Errorf("already started")
	}
	if len(l.Players) < l.MinPlayers {
		return fmt.Errorf("not enough players")
	}
	l.Started = true
	return nil
}

// IsStarted reports whether the lobby has handed off to a session.
func (l *Lobby) IsStarted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.Started
}

// GetPlayers returns a copy of the player list.
func (l *Lobby) GetPlayers() []PlayerInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]PlayerInfo, len(l.Players))
	for i, p := range l.Players {
		out[i] = *p
	}
	return out
}
