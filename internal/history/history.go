// Package history keeps the append-only log of past generations. New records
// are inserted at the head (most recent first), persisted immediately on every
// change with no batching. Persistence is best-effort: a failed write is
// logged and the in-memory sequence stays authoritative.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/andrei/cv-tailor/internal/store"
	"github.com/andrei/cv-tailor/internal/types"
)

// Store holds the in-memory history sequence backed by durable storage.
type Store struct {
	mu    sync.Mutex
	items []types.HistoryItem
	kv    store.Store
}

// New creates a history store over the given key-value storage.
func New(kv store.Store) *Store {
	return &Store{kv: kv}
}

// Load reads the persisted history once at startup. A missing key yields an
// empty history; an unparsable payload falls back to empty with a logged
// warning, never an error.
func (s *Store) Load(ctx context.Context) {
	data, err := s.kv.Load(ctx, store.KeyHistory)
	if errors.Is(err, store.ErrNotFound) {
		return
	}
	if err != nil {
		log.Printf("[history] failed to load saved history: %v", err)
		return
	}

	var items []types.HistoryItem
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("[history] saved history is unreadable, starting empty: %v", err)
		return
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// Record creates a history item for a successful generation and prepends it.
// Exactly one item is created per successful generation.
func (s *Store) Record(ctx context.Context, vacancyText string, profile types.CandidateProfile, output types.GenerationOutput) types.HistoryItem {
	item := types.NewHistoryItem(vacancyText, profile, output)

	s.mu.Lock()
	s.items = append([]types.HistoryItem{item}, s.items...)
	s.mu.Unlock()

	s.persist(ctx)
	return item
}

// Items returns a copy of the history sequence, most recent first.
func (s *Store) Items() []types.HistoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.HistoryItem, len(s.items))
	copy(out, s.items)
	return out
}

// Get looks up an item by id.
func (s *Store) Get(id string) (types.HistoryItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return types.HistoryItem{}, false
}

// Delete removes the item with the given id. An absent id is not an error;
// the relative order of remaining items is preserved.
func (s *Store) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.persist(ctx)
}

// Clear empties the history when confirmed. Declining the confirmation leaves
// state unchanged and reports false.
func (s *Store) Clear(ctx context.Context, confirmed bool) bool {
	if !confirmed {
		return false
	}

	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	s.persist(ctx)
	return true
}

// Len returns the number of stored items.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// persist writes the current sequence immediately. Failures are logged and
// otherwise ignored.
func (s *Store) persist(ctx context.Context) {
	s.mu.Lock()
	items := s.items
	if items == nil {
		items = []types.HistoryItem{}
	}
	data, err := json.Marshal(items)
	s.mu.Unlock()
	if err != nil {
		log.Printf("[history] failed to serialize history: %v", err)
		return
	}
	if err := s.kv.Save(ctx, store.KeyHistory, data); err != nil {
		log.Printf("[history] failed to persist history: %v", err)
	}
}
