package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/leofalp/recall/core/studyapi"
	"github.com/leofalp/recall/providers/deckstore"
	"github.com/leofalp/recall/providers/observability"
)

type key struct {
	kind studyapi.Kind
	id   string
}

type entry struct {
	deck *studyapi.Deck
	seq  uint64
}

// Store is an in-process deck cache guarded by an RWMutex.
type Store struct {
	mu    sync.RWMutex
	decks map[key]entry
	seq   uint64
}

// New returns an empty Store.
func New() *Store {
	return &Store{decks: map[key]entry{}}
}

// Ensure Store implements deckstore.Store at compile time.
var _ deckstore.Store = (*Store)(nil)

// Save stores a copy of deck. When a span is present in ctx, a save event is
// recorded and the number of stored decks of that kind is set on the span.
func (s *Store) Save(ctx context.Context, deck *studyapi.Deck) error {
	if err := deckstore.Validate(deck); err != nil {
		return err
	}

	span := observability.SpanFromContext(ctx)
	if span != nil {
		span.AddEvent(observability.EventDeckSave,
			observability.String(observability.AttrDeckKind, string(deck.Kind)),
			observability.String(observability.AttrDeckID, deck.ID),
			observability.Int(observability.AttrDeckSize, deck.Size()),
		)
	}

	s.mu.Lock()
	s.seq++
	s.decks[key{deck.Kind, deck.ID}] = entry{deck: deck.Clone(), seq: s.seq}
	total := s.countLocked(deck.Kind)
	s.mu.Unlock()

	if span != nil {
		span.SetAttributes(observability.Int(observability.AttrDeckTotal, total))
	}
	return nil
}

// Get returns a copy of the stored deck.
func (s *Store) Get(_ context.Context, kind studyapi.Kind, id string) (*studyapi.Deck, error) {
	s.mu.RLock()
	e, ok := s.decks[key{kind, id}]
	s.mu.RUnlock()
	if !ok {
		return nil, deckstore.ErrNotFound
	}
	return e.deck.Clone(), nil
}

// List returns copies of the decks of kind, newest first.
func (s *Store) List(_ context.Context, kind studyapi.Kind) ([]studyapi.Deck, error) {
	s.mu.RLock()
	entries := make([]entry, 0, len(s.decks))
	for k, e := range s.decks {
		if kind == "" || k.kind == kind {
			entries = append(entries, e)
		}
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq > entries[j].seq })

	out := make([]studyapi.Deck, len(entries))
	for i, e := range entries {
		out[i] = *e.deck.Clone()
	}
	return out, nil
}

// Delete removes a deck. When a span is present in ctx, a delete event is
// recorded.
func (s *Store) Delete(ctx context.Context, kind studyapi.Kind, id string) error {
	s.mu.Lock()
	_, ok := s.decks[key{kind, id}]
	delete(s.decks, key{kind, id})
	s.mu.Unlock()

	if !ok {
		return deckstore.ErrNotFound
	}

	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent(observability.EventDeckDelete,
			observability.String(observability.AttrDeckKind, string(kind)),
			observability.String(observability.AttrDeckID, id),
		)
	}
	return nil
}

// Count returns the number of stored decks of kind, or of every kind when
// kind is empty.
func (s *Store) Count(kind studyapi.Kind) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countLocked(kind)
}

func (s *Store) countLocked(kind studyapi.Kind) int {
	if kind == "" {
		return len(s.decks)
	}
	n := 0
	for k := range s.decks {
		if k.kind == kind {
			n++
		}
	}
	return n
}
