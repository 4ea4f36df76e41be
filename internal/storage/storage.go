// Package storage is the persistence query interface the core consumes.
// The engine treats it as transactional but opaque: a failure is fatal
// to the request, never to the session.
package storage

import (
	"context"
	"fmt"
	"time"
)

// SessionRecord is the persisted summary of a finished session.
type SessionRecord struct {
	ID        string `gorm:"primaryKey"`
	Status    string
	Turns     int
	WinnerID  string
	CreatedAt time.Time
}

// PlayerRecord is one player's final standing in a session.
type PlayerRecord struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	SessionID string `gorm:"index"`
	PlayerID  string
	Name      string
	FactionID string
	Gold      int
	Level     int
	Active    bool
}

// BattleRecord is one persisted battle log entry.
type BattleRecord struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	SessionID     string `gorm:"index"`
	AttackerID    string
	AttackerOwner string
	DefenderID    string
	DefenderOwner string
	Damage        int
	Destroyed     bool
	TurnNumber    int
}

// Store is the synchronous request/response query interface.
type Store interface {
	SaveSession(ctx context.Context, rec SessionRecord, players []PlayerRecord, battles []BattleRecord) error
	LoadSession(ctx context.Context, id string) (SessionRecord, error)
	LoadBattleLog(ctx context.Context, sessionID string) ([]BattleRecord, error)
}

// StoreError wraps a persistence failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

const (
	retryAttempts = 3
	retryBase     = 100 * time.Millisecond
)

// withRetry retries an idempotent operation with bounded backoff. Writes
// never go through here; they fail the request on first error.
func withRetry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 0; attempt < retryAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return &StoreError{Op: op, Err: ctx.Err()}
		case <-time.After(retryBase << attempt):
		}
	}
	return &StoreError{Op: op, Err: err}
}
