package db

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/hpungsan/habits/internal/habit"
)

// HabitsKey is the key the habit list blob is stored under.
const HabitsKey = "habits"

// ErrKeyNotFound is returned by Get when the key has never been written.
var ErrKeyNotFound = stderrors.New("key not found")

// Get returns the value stored under key.
func Get(ctx context.Context, db *sql.DB, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

// Put stores value under key, replacing any previous value.
func Put(ctx context.Context, db *sql.DB, key, value string) error {
	query := `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := db.ExecContext(ctx, query, key, value, time.Now().Unix()); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// KVStore persists the habit list as one JSON blob in the kv table.
type KVStore struct {
	DB *sql.DB
}

// NewKVStore wraps an initialized database.
func NewKVStore(db *sql.DB) *KVStore {
	return &KVStore{DB: db}
}

// LoadHabits returns the stored habit list, or an empty list if nothing
// has been saved yet.
func (s *KVStore) LoadHabits(ctx context.Context) ([]habit.Habit, error) {
	blob, err := Get(ctx, s.DB, HabitsKey)
	if stderrors.Is(err, ErrKeyNotFound) {
		return []habit.Habit{}, nil
	}
	if err != nil {
		return nil, err
	}

	habits := []habit.Habit{}
	if err := json.Unmarshal([]byte(blob), &habits); err != nil {
		return nil, fmt.Errorf("decode habits: %w", err)
	}
	if habits == nil {
		// a stored "null"
		habits = []habit.Habit{}
	}
	return habits, nil
}

// SaveHabits replaces the stored habit list.
func (s *KVStore) SaveHabits(ctx context.Context, habits []habit.Habit) error {
	if habits == nil {
		habits = []habit.Habit{}
	}
	data, err := json.Marshal(habits)
	if err != nil {
		return fmt.Errorf("encode habits: %w", err)
	}
	return Put(ctx, s.DB, HabitsKey, string(data))
}
