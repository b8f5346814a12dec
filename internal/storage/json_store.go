package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/zzspin/tally/internal/models"
)

// Store is the single JSON blob the JSONStore persists. Entries are kept
// newest-first, matching the display order.
type Store struct {
	Version int               `json:"version"`
	Entries []models.LogEntry `json:"logEntries"`
	State   models.AppState   `json:"state"`
	Alarms  map[string]int64  `json:"alarms"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		Entries: []models.LogEntry{},
		Alarms:  make(map[string]int64),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'tally init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Entries == nil {
		s.store.Entries = []models.LogEntry{}
	}
	if s.store.Alarms == nil {
		s.store.Alarms = make(map[string]int64)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) AppendEntry(points int64, isPaid, isCustomAdd bool) (models.LogEntry, error) {
	if s.store == nil {
		return models.LogEntry{}, fmt.Errorf("storage not loaded")
	}

	entry := models.LogEntry{
		ID:          uuid.New().String(),
		Points:      points,
		Timestamp:   time.Now().UnixMilli(),
		IsPaid:      isPaid,
		IsCustomAdd: isCustomAdd,
	}

	// Newest entries go to the head of the list.
	prev := s.store.Entries
	s.store.Entries = append([]models.LogEntry{entry}, s.store.Entries...)
	if err := s.save(); err != nil {
		s.store.Entries = prev
		return models.LogEntry{}, err
	}
	return entry, nil
}

func (s *JSONStore) GetEntries() ([]models.LogEntry, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	entries := make([]models.LogEntry, len(s.store.Entries))
	copy(entries, s.store.Entries)
	return entries, nil
}

func (s *JSONStore) MarkPaid(ids []string) (int, error) {
	if s.store == nil {
		return 0, fmt.Errorf("storage not loaded")
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	marked := 0
	var touched []int
	for i, e := range s.store.Entries {
		if wanted[e.ID] && markPaidEligible(e) {
			s.store.Entries[i].IsPaid = true
			touched = append(touched, i)
			marked++
		}
	}

	if marked == 0 {
		return 0, nil
	}
	if err := s.save(); err != nil {
		for _, i := range touched {
			s.store.Entries[i].IsPaid = false
		}
		return 0, err
	}
	return marked, nil
}

func (s *JSONStore) ReplaceAll(entries []models.LogEntry, lastAction *int64) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	prevEntries, prevState := s.store.Entries, s.store.State

	replacement := make([]models.LogEntry, len(entries))
	copy(replacement, entries)
	s.store.Entries = replacement
	if lastAction != nil {
		s.store.State.LastAction = *lastAction
	}
	if err := s.save(); err != nil {
		s.store.Entries, s.store.State = prevEntries, prevState
		return err
	}
	return nil
}

func (s *JSONStore) GetAppState() (models.AppState, error) {
	if s.store == nil {
		return models.AppState{}, fmt.Errorf("storage not loaded")
	}
	return s.store.State, nil
}

// saveState persists a flag mutation, restoring the previous state when the
// write fails.
func (s *JSONStore) saveState(prev models.AppState) error {
	if err := s.save(); err != nil {
		s.store.State = prev
		return err
	}
	return nil
}

func (s *JSONStore) SetLastAction(ms int64) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	prev := s.store.State
	s.store.State.LastAction = ms
	return s.saveState(prev)
}

func (s *JSONStore) SetLastAppOpen(ms int64) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	prev := s.store.State
	s.store.State.LastAppOpen = ms
	return s.saveState(prev)
}

func (s *JSONStore) SetExitNotificationShown(shown bool) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	prev := s.store.State
	s.store.State.ExitNotificationShown = shown
	return s.saveState(prev)
}

func (s *JSONStore) GetAlarm(id string) (int64, bool, error) {
	if s.store == nil {
		return 0, false, fmt.Errorf("storage not loaded")
	}
	at, ok := s.store.Alarms[id]
	return at, ok, nil
}

func (s *JSONStore) SetAlarm(id string, triggerAt int64) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Alarms[id] = triggerAt
	return s.save()
}

func (s *JSONStore) ClearAlarm(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.store.Alarms[id]; !ok {
		return nil
	}
	delete(s.store.Alarms, id)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
