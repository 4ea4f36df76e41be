package storage

import (
	"context"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"gridlords/internal/engine"
)

// GormStore binds the Store interface to Postgres through GORM.
type GormStore struct {
	db *gorm.DB
}

// Open connects to the database and migrates the record tables.
func Open(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, &StoreError{Op: "open", Err: err}
	}
	if err := db.AutoMigrate(&SessionRecord{}, &PlayerRecord{}, &BattleRecord{}); err != nil {
		return nil, &StoreError{Op: "migrate", Err: err}
	}
	return &GormStore{db: db}, nil
}

// SaveSession persists the session summary, players and battle log in
// one transaction.
func (s *GormStore) SaveSession(ctx context.Context, rec SessionRecord, players []PlayerRecord, battles []BattleRecord) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&rec).Error; err != nil {
			return err
		}
		if len(players) > 0 {
			if err := tx.Create(&players).Error; err != nil {
				return err
			}
		}
		if len(battles) > 0 {
			if err := tx.Create(&battles).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &StoreError{Op: "save session", Err: err}
	}
	return nil
}

// LoadSession fetches a session summary, retrying with bounded backoff
// since reads are idempotent.
func (s *GormStore) LoadSession(ctx context.Context, id string) (SessionRecord, error) {
	var rec SessionRecord
	err := withRetry(ctx, "load session", func() error {
		return s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	})
	return rec, err
}

// LoadBattleLog fetches a session's battle log in turn order.
func (s *GormStore) LoadBattleLog(ctx context.Context, sessionID string) ([]BattleRecord, error) {
	var recs []BattleRecord
	err := withRetry(ctx, "load battle log", func() error {
		return s.db.WithContext(ctx).
			Where("session_id = ?", sessionID).
			Order("turn_number, id").
			Find(&recs).Error
	})
	return recs, err
}

// ArchiveSession adapts a finished session snapshot into records,
// satisfying the registry's Archiver.
func (s *GormStore) ArchiveSession(view engine.PublicViewData, log []engine.BattleLogEntry) error {
	rec := SessionRecord{
		ID:       view.SessionID,
		Status:   view.Status,
		Turns:    view.TurnNumber,
		WinnerID: view.WinnerID,
	}
	players := make([]PlayerRecord, 0, len(view.Players))
	for _, p := range view.Players {
		players = append(players, PlayerRecord{
			SessionID: view.SessionID,
			PlayerID:  p.ID,
			Name:      p.Name,
			FactionID: p.FactionID,
			Gold:      p.Gold,
			Level:     p.Level,
			Active:    p.Active,
		})
	}
	battles := make([]BattleRecord, 0, len(log))
	for _, b := range log {
		battles = append(battles, BattleRecord{
			SessionID:     view.SessionID,
			AttackerID:    b.AttackerID,
			AttackerOwner: b.AttackerOwner,
			DefenderID:    b.DefenderID,
			DefenderOwner: b.DefenderOwner,
			Damage:        b.Damage,
			Destroyed:     b.Destroyed,
			TurnNumber:    b.TurnNumber,
		})
	}
	return s.SaveSession(context.Background(), rec, players, battles)
}
