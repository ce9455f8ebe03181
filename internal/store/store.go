package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/BobTheBuilderB/Eaglerserver-list/internal/domain"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/logger"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/storage"
)

// Theme preference values accepted by SetTheme.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ErrInvalidTheme is returned when SetTheme receives anything other
// than "dark" or "light".
var ErrInvalidTheme = errors.New("theme must be dark or light")

// Store owns the authoritative, deduplicated entry collection and
// bridges it to slot persistence. All mutations are serialized behind
// the lock and followed by a best-effort persist: a failing write is
// logged and swallowed, never surfaced as a hard error.
type Store struct {
	mu      sync.RWMutex
	entries []*domain.Entry
	slots   storage.Slots
	logger  logger.Logger
}

// New creates an empty store. Call Initialize before serving reads.
func New(slots storage.Slots, log logger.Logger) *Store {
	return &Store{
		slots:  slots,
		logger: log,
	}
}

// Initialize loads the persisted snapshot and unions it with the seed
// set. Persisted entries win on id collision; seed entries not present
// are appended, so the baseline set is always covered. Any read or
// parse failure degrades to seed-only.
func (s *Store) Initialize(ctx context.Context, seedEntries []*domain.Entry) {
	persisted := s.readPersisted(ctx)

	merged := make([]*domain.Entry, 0, len(persisted)+len(seedEntries))
	byID := make(map[string]bool, len(persisted))
	for _, e := range persisted {
		merged = append(merged, e)
		byID[e.ID] = true
	}
	for _, e := range seedEntries {
		if byID[e.ID] {
			continue
		}
		merged = append(merged, e.Clone())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = merged
	s.persistLocked(ctx)

	s.logger.Info("store initialized",
		logger.Int("persisted", len(persisted)),
		logger.Int("total", len(merged)))
}

func (s *Store) readPersisted(ctx context.Context) []*domain.Entry {
	data, err := s.slots.Read(ctx, storage.SlotServers)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("failed to read persisted servers, falling back to seed",
				logger.Error(err))
		}
		return nil
	}

	var persisted []*domain.Entry
	if err := json.Unmarshal(data, &persisted); err != nil {
		s.logger.Warn("persisted servers slot is malformed, falling back to seed",
			logger.Error(err))
		return nil
	}
	return persisted
}

// Add prepends a fully-formed entry. Validation is the caller's job;
// the store trusts its input.
func (s *Store) Add(ctx context.Context, e *domain.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]*domain.Entry{e}, s.entries...)
	s.persistLocked(ctx)
}

// Merge upserts each imported entry, keyed by id when present and by
// address otherwise. Later entries in the input overwrite earlier ones
// sharing a key, and any match replaces the stored entry wholesale
// (no field-level merging). Returns the resulting full collection.
func (s *Store) Merge(ctx context.Context, imported []*domain.Entry) []*domain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	byKey := make(map[string]int, len(s.entries))
	for i, e := range s.entries {
		byKey[e.Key()] = i
	}

	for _, e := range imported {
		if i, ok := byKey[e.Key()]; ok {
			s.entries[i] = e
			continue
		}
		byKey[e.Key()] = len(s.entries)
		s.entries = append(s.entries, e)
	}

	s.persistLocked(ctx)
	return s.snapshotLocked()
}

// Snapshot returns a copy of the current collection. The slice is
// fresh on every call; the entries themselves are shared and must be
// treated as read-only by callers.
func (s *Store) Snapshot() []*domain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() []*domain.Entry {
	out := make([]*domain.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get retrieves an entry by id.
func (s *Store) Get(id string) (*domain.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// Count returns the number of stored entries.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// persistLocked serializes the full collection into the servers slot.
// Failures are logged and swallowed; the data simply stays unsaved.
func (s *Store) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.entries)
	if err != nil {
		s.logger.Warn("failed to marshal servers for persistence",
			logger.Error(err))
		return
	}
	if err := s.slots.Write(ctx, storage.SlotServers, data); err != nil {
		s.logger.Warn("failed to persist servers",
			logger.Int("count", len(s.entries)),
			logger.Error(err))
	}
}

// Theme returns the persisted theme preference. A missing or
// malformed value counts as absent and yields the dark default.
func (s *Store) Theme(ctx context.Context) string {
	data, err := s.slots.Read(ctx, storage.SlotTheme)
	if err != nil {
		return ThemeDark
	}
	switch string(data) {
	case ThemeLight:
		return ThemeLight
	case ThemeDark:
		return ThemeDark
	default:
		return ThemeDark
	}
}

// SetTheme persists the theme preference, best-effort.
func (s *Store) SetTheme(ctx context.Context, v string) error {
	if v != ThemeDark && v != ThemeLight {
		return ErrInvalidTheme
	}
	if err := s.slots.Write(ctx, storage.SlotTheme, []byte(v)); err != nil {
		s.logger.Warn("failed to persist theme", logger.Error(err))
	}
	return nil
}
