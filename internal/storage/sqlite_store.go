package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/zzspin/tally/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS log_entries (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	points INTEGER NOT NULL,
	timestamp INTEGER NOT NULL,
	is_paid INTEGER NOT NULL DEFAULT 0,
	is_custom_add INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS app_state (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS alarms (
	id TEXT PRIMARY KEY,
	trigger_at INTEGER NOT NULL
);
`

const (
	stateKeyLastAction = "lastActionDate"
	stateKeyLastOpen   = "lastAppOpen"
	stateKeyExitShown  = "exitNotificationShown"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'tally init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema creation is idempotent; running it on load picks up tables
	// added after the database was first initialized.
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to verify schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) AppendEntry(points int64, isPaid, isCustomAdd bool) (models.LogEntry, error) {
	entry := models.LogEntry{
		ID:          uuid.New().String(),
		Points:      points,
		Timestamp:   time.Now().UnixMilli(),
		IsPaid:      isPaid,
		IsCustomAdd: isCustomAdd,
	}

	_, err := s.db.Exec(
		"INSERT INTO log_entries (id, points, timestamp, is_paid, is_custom_add) VALUES (?, ?, ?, ?, ?)",
		entry.ID, entry.Points, entry.Timestamp, entry.IsPaid, entry.IsCustomAdd,
	)
	if err != nil {
		return models.LogEntry{}, fmt.Errorf("failed to insert log entry: %w", err)
	}
	return entry, nil
}

func (s *SQLiteStore) GetEntries() ([]models.LogEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, points, timestamp, is_paid, is_custom_add
		FROM log_entries ORDER BY seq DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LogEntry
	for rows.Next() {
		var e models.LogEntry
		if err := rows.Scan(&e.ID, &e.Points, &e.Timestamp, &e.IsPaid, &e.IsCustomAdd); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) MarkPaid(ids []string) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		UPDATE log_entries SET is_paid = 1
		WHERE id = ? AND points > 0 AND is_paid = 0 AND is_custom_add = 0`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	marked := 0
	for _, id := range ids {
		res, err := stmt.Exec(id)
		if err != nil {
			return 0, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		marked += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return marked, nil
}

func (s *SQLiteStore) ReplaceAll(entries []models.LogEntry, lastAction *int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM log_entries"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		"INSERT INTO log_entries (id, points, timestamp, is_paid, is_custom_add) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	// The caller hands entries newest-first; insert oldest-first so the
	// sequence column reproduces the same order on read.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if _, err := stmt.Exec(e.ID, e.Points, e.Timestamp, e.IsPaid, e.IsCustomAdd); err != nil {
			return err
		}
	}

	if lastAction != nil {
		if _, err := tx.Exec(
			"INSERT OR REPLACE INTO app_state (key, value) VALUES (?, ?)",
			stateKeyLastAction, strconv.FormatInt(*lastAction, 10),
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetAppState() (models.AppState, error) {
	rows, err := s.db.Query("SELECT key, value FROM app_state")
	if err != nil {
		return models.AppState{}, err
	}
	defer rows.Close()

	var state models.AppState
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.AppState{}, err
		}
		switch key {
		case stateKeyLastAction:
			state.LastAction, _ = strconv.ParseInt(value, 10, 64)
		case stateKeyLastOpen:
			state.LastAppOpen, _ = strconv.ParseInt(value, 10, 64)
		case stateKeyExitShown:
			state.ExitNotificationShown = value == "true"
		}
	}
	return state, rows.Err()
}

func (s *SQLiteStore) setStateValue(key, value string) error {
	_, err := s.db.Exec("INSERT OR REPLACE INTO app_state (key, value) VALUES (?, ?)", key, value)
	return err
}

func (s *SQLiteStore) SetLastAction(ms int64) error {
	return s.setStateValue(stateKeyLastAction, strconv.FormatInt(ms, 10))
}

func (s *SQLiteStore) SetLastAppOpen(ms int64) error {
	return s.setStateValue(stateKeyLastOpen, strconv.FormatInt(ms, 10))
}

func (s *SQLiteStore) SetExitNotificationShown(shown bool) error {
	return s.setStateValue(stateKeyExitShown, strconv.FormatBool(shown))
}

func (s *SQLiteStore) GetAlarm(id string) (int64, bool, error) {
	var at int64
	err := s.db.QueryRow("SELECT trigger_at FROM alarms WHERE id = ?", id).Scan(&at)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return at, true, nil
}

func (s *SQLiteStore) SetAlarm(id string, triggerAt int64) error {
	_, err := s.db.Exec("INSERT OR REPLACE INTO alarms (id, trigger_at) VALUES (?, ?)", id, triggerAt)
	return err
}

func (s *SQLiteStore) ClearAlarm(id string) error {
	_, err := s.db.Exec("DELETE FROM alarms WHERE id = ?", id)
	return err
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
