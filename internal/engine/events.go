package engine

// ActionType identifies player actions sent to Session.Apply.
type ActionType string

const (
	ActionSelectFaction   ActionType = "select_faction"
	ActionConfirmFaction  ActionType = "confirm_faction"
	ActionDeselectFaction ActionType = "deselect_faction"
	ActionMove            ActionType = "move"
	ActionAttack          ActionType = "attack"
	ActionPurchase        ActionType = "purchase"
	ActionUpgradeLevel    ActionType = "upgrade_level"
	ActionEndTurn         ActionType = "end_turn"
)

// Action is a player's action input.
type Action struct {
	Type ActionType `json:"type"`
	// Params depend on Type:
	// select/confirm: FactionID
	// move: UnitID, Target, Path
	// attack: UnitID, Target
	// purchase: Target (building tile), UnitTypeID
	FactionID  string  `json:"faction_id,omitempty"`
	UnitID     string  `json:"unit_id,omitempty"`
	UnitTypeID string  `json:"unit_type_id,omitempty"`
	Target     Coord   `json:"target,omitempty"`
	Path       []Coord `json:"path,omitempty"`
}

// EventType identifies events emitted after successful mutations.
type EventType string

const (
	EventDraftStarted     EventType = "draft_started"
	EventDraftSelected    EventType = "draft_selected"
	EventDraftConfirmed   EventType = "draft_confirmed"
	EventDraftDeselected  EventType = "draft_deselected"
	EventDraftComplete    EventType = "draft_complete"
	EventTurnStarted      EventType = "turn_started"
	EventTurnEnded        EventType = "turn_ended"
	EventUnitMoved        EventType = "unit_moved"
	EventUnitAttacked     EventType = "unit_attacked"
	EventUnitPurchased    EventType = "unit_purchased"
	EventLevelUpgraded    EventType = "level_upgraded"
	EventBuildingCaptured EventType = "building_captured"
	EventPlayerEliminated EventType = "player_eliminated"
	EventGameEnded        EventType = "game_ended"
	EventStatusChanged    EventType = "status_changed"
)

// Event is emitted by the engine after state changes. Transports fan
// events out to the session's room strictly after the mutation completes.
type Event struct {
	Type   EventType      `json:"type"`
	Player string         `json:"player,omitempty"`
	Data   map[string]any `json:"data,omitempty"`
}

// Broadcaster fans engine events out to subscribed clients. The hub
// implements it; the engine never reaches past this interface.
type Broadcaster interface {
	Emit(sessionID string, ev Event)
}
