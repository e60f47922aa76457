package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fintrack/internal/models"
)

// namespaceKey is the fixed key the store's persisted subset lives under.
const namespaceKey = "finance-store"

// stateEntry is a row of the local key-value state table.
type stateEntry struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}

func (stateEntry) TableName() string { return "state_entries" }

// persistedState is the subset of store state that survives restarts.
// The entry list is deliberately absent.
type persistedState struct {
	User       *Session               `json:"user"`
	LastKind   models.TransactionType `json:"last_kind"`
	Categories []Category             `json:"categories"`
}

// StateStore persists the client store's state subset in a local SQLite file.
type StateStore struct {
	db *gorm.DB
}

// NewStateStore opens (or creates) the SQLite file at path.
func NewStateStore(path string) (*StateStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}
	return NewStateStoreDB(db)
}

// NewStateStoreDB wraps an existing GORM connection. Used by tests to run
// against an in-memory database.
func NewStateStoreDB(db *gorm.DB) (*StateStore, error) {
	if err := db.AutoMigrate(&stateEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate state store: %w", err)
	}
	return &StateStore{db: db}, nil
}

// Save writes the state subset under the fixed namespace key.
func (ss *StateStore) Save(state persistedState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	entry := stateEntry{Key: namespaceKey, Value: string(data)}
	if err := ss.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Load reads the persisted state subset. The second return value reports
// whether a saved state existed.
func (ss *StateStore) Load() (persistedState, bool, error) {
	var entry stateEntry
	if err := ss.db.First(&entry, "key = ?", namespaceKey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return persistedState{}, false, nil
		}
		return persistedState{}, false, fmt.Errorf("failed to load state: %w", err)
	}

	var state persistedState
	if err := json.Unmarshal([]byte(entry.Value), &state); err != nil {
		return persistedState{}, false, fmt.Errorf("failed to decode state: %w", err)
	}
	return state, true, nil
}

// Clear removes the persisted namespace entirely.
func (ss *StateStore) Clear() error {
	if err := ss.db.Delete(&stateEntry{}, "key = ?", namespaceKey).Error; err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}
