package protocol

// Message types: Server -> Client
const (
	MsgLobbyUpdate = "lobby_update"
	MsgGameState   = "game_state"
	MsgPlayerState = "player_state"
	MsgResync      = "resync"
	MsgError       = "error"
	MsgEvent       = "event"
)

// Message types: Client -> Server
const (
	MsgJoin      = "join"
	MsgReady     = "ready"
	MsgStartGame = "start_game"
	MsgLeave     = "leave"
	// In-game actions use the same names as engine ActionType
	MsgSelectFaction   = "select_faction"
	MsgConfirmFaction  = "confirm_faction"
	MsgDeselectFaction = "deselect_faction"
	MsgMove            = "move"
	MsgAttack          = "attack"
	MsgPurchase        = "purchase"
	MsgUpgradeLevel    = "upgrade_level"
	MsgEndTurn         = "end_turn"
)

// LobbyUpdate is sent to all clients when lobby state changes.
type LobbyUpdate struct {
	SessionID string        `json:"session_id"`
	Players   []LobbyPlayer `json:"players"`
	Started   bool          `json:"started"`
}

type LobbyPlayer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
}

// JoinMsg is sent by a player to join the session.
type JoinMsg struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

// ReadyMsg is sent by a player to toggle ready state.
type ReadyMsg struct {
	Ready bool `json:"ready"`
}

// ErrorMsg is sent to a client when an action is rejected. Code carries
// the validation code when one exists.
type ErrorMsg struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}
