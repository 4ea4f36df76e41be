package engine

import "fmt"

// ValidationError rejects an illegal action. The session is unchanged and
// the error is returned to the caller only.
type ValidationError struct {
	Code string
	msg  string
}

func (e *ValidationError) Error() string { return e.msg }

var (
	ErrWrongStatus          = &ValidationError{Code: "wrong_status", msg: "action not allowed in current session status"}
	ErrNotYourTurn          = &ValidationError{Code: "not_your_turn", msg: "not your turn"}
	ErrNotYourUnit          = &ValidationError{Code: "not_your_unit", msg: "unit belongs to another player"}
	ErrNotYourBuilding      = &ValidationError{Code: "not_your_building", msg: "building belongs to another player"}
	ErrNoBuilding           = &ValidationError{Code: "no_building", msg: "no building on that tile"}
	ErrTileOccupied         = &ValidationError{Code: "tile_occupied", msg: "tile is occupied by a unit"}
	ErrInsufficientGold     = &ValidationError{Code: "insufficient_gold", msg: "not enough gold"}
	ErrInsufficientMovement = &ValidationError{Code: "insufficient_movement", msg: "not enough movement left"}
	ErrOutOfRange           = &ValidationError{Code: "out_of_range", msg: "target out of attack range"}
	ErrAlreadyAttacked      = &ValidationError{Code: "already_attacked", msg: "unit has already attacked this turn"}
	ErrFriendlyTarget       = &ValidationError{Code: "friendly_target", msg: "cannot attack your own unit"}
	ErrBadPath              = &ValidationError{Code: "bad_path", msg: "path is empty or not contiguous"}
	ErrNotInRoster          = &ValidationError{Code: "not_in_roster", msg: "unit type not in your faction's roster"}
	ErrMaxLevel             = &ValidationError{Code: "max_level", msg: "already at maximum level"}
	ErrFactionConflict      = &ValidationError{Code: "faction_conflict", msg: "faction already confirmed by another player"}
	ErrAlreadyConfirmed     = &ValidationError{Code: "already_confirmed", msg: "faction already confirmed"}
	ErrNotConfirmed         = &ValidationError{Code: "not_confirmed", msg: "no faction confirmed"}
	ErrPlayerInactive       = &ValidationError{Code: "player_inactive", msg: "player is no longer active"}
)

// ConsistencyError signals a stale client view: the action referenced a
// unit, tile, player or faction the server does not know. Transports
// respond with a full-state resync rather than a retry.
type ConsistencyError struct {
	Kind string // "unit", "tile", "player", "faction", "unit_type", "session"
	Ref  string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.Ref)
}

func notFound(kind, ref string) error {
	return &ConsistencyError{Kind: kind, Ref: ref}
}
