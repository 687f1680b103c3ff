package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/leofalp/recall/core/studyapi"
	"github.com/leofalp/recall/providers/deckstore"
	"github.com/leofalp/recall/providers/observability"
)

// defaultTableName is the table used when no custom name is provided.
const defaultTableName = "recall_decks"

// Querier is the subset of database/sql used by Store. Both *sql.DB and
// *sql.Tx satisfy it.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements [deckstore.Store] on SQLite.
type Store struct {
	db           Querier
	closer       func() error
	tableName    string
	rawTableName string
}

// Compile-time check: Store must implement deckstore.Store.
var _ deckstore.Store = (*Store)(nil)

// Option configures optional Store behavior.
type Option func(*Store)

// WithTableName overrides the default table name ("recall_decks"). The name
// is quoted before it is interpolated into queries.
func WithTableName(name string) Option {
	return func(s *Store) {
		s.rawTableName = name
		s.tableName = quoteIdentifier(name)
	}
}

// New wraps an existing database handle. The schema is not created.
func New(db Querier, opts ...Option) *Store {
	s := &Store{
		db:           db,
		tableName:    quoteIdentifier(defaultTableName),
		rawTableName: defaultTableName,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open opens the SQLite database at path, creating it if needed, and ensures
// the schema. Use ":memory:" for a throwaway store.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: open database: %w", err)
	}
	// One connection: SQLite serializes writers anyway, and ":memory:" is
	// private to its connection.
	sqlDB.SetMaxOpenConns(1)

	if _, err := sqlDB.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlitestore: set busy timeout: %w", err)
	}

	s := New(sqlDB, opts...)
	s.closer = sqlDB.Close

	if err := s.EnsureSchema(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database opened by Open. It is a no-op for stores
// created with New.
func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// Save upserts deck. When a span is present in ctx, a save event is recorded.
func (s *Store) Save(ctx context.Context, deck *studyapi.Deck) error {
	if err := deckstore.Validate(deck); err != nil {
		return err
	}

	body, err := json.Marshal(deck)
	if err != nil {
		return fmt.Errorf("sqlitestore: encode deck: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %[1]s (kind, id, user_id, title, strategy, size, body, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM %[1]s))
		ON CONFLICT (kind, id) DO UPDATE SET
			user_id = excluded.user_id,
			title = excluded.title,
			strategy = excluded.strategy,
			size = excluded.size,
			body = excluded.body,
			seq = excluded.seq,
			saved_at = CURRENT_TIMESTAMP`, s.tableName)

	if _, err := s.db.ExecContext(ctx, query,
		string(deck.Kind), deck.ID, deck.UserID, deck.Title, deck.Strategy, deck.Size(), string(body),
	); err != nil {
		return fmt.Errorf("sqlitestore: save deck: %w", err)
	}

	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent(observability.EventDeckSave,
			observability.String(observability.AttrDeckKind, string(deck.Kind)),
			observability.String(observability.AttrDeckID, deck.ID),
			observability.Int(observability.AttrDeckSize, deck.Size()),
		)
	}
	return nil
}

// Get returns the deck with the given kind and id.
func (s *Store) Get(ctx context.Context, kind studyapi.Kind, id string) (*studyapi.Deck, error) {
	query := fmt.Sprintf(`SELECT body FROM %s WHERE kind = ? AND id = ?`, s.tableName)

	var body string
	err := s.db.QueryRowContext(ctx, query, string(kind), id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, deckstore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: get deck: %w", err)
	}

	return decodeDeck(body)
}

// List returns the decks of kind, most recently saved first.
func (s *Store) List(ctx context.Context, kind studyapi.Kind) ([]studyapi.Deck, error) {
	query := fmt.Sprintf(`SELECT body FROM %s WHERE (? = '' OR kind = ?) ORDER BY seq DESC`, s.tableName)

	rows, err := s.db.QueryContext(ctx, query, string(kind), string(kind))
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: list decks: %w", err)
	}
	defer rows.Close()

	decks := []studyapi.Deck{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("sqlitestore: scan row: %w", err)
		}
		deck, err := decodeDeck(body)
		if err != nil {
			return nil, err
		}
		decks = append(decks, *deck)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlitestore: iterate rows: %w", err)
	}
	return decks, nil
}

// Delete removes a deck. When a span is present in ctx, a delete event is
// recorded.
func (s *Store) Delete(ctx context.Context, kind studyapi.Kind, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE kind = ? AND id = ?`, s.tableName)

	result, err := s.db.ExecContext(ctx, query, string(kind), id)
	if err != nil {
		return fmt.Errorf("sqlitestore: delete deck: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlitestore: delete deck: %w", err)
	}
	if affected == 0 {
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

func decodeDeck(body string) (*studyapi.Deck, error) {
	var deck studyapi.Deck
	if err := json.Unmarshal([]byte(body), &deck); err != nil {
		return nil, fmt.Errorf("sqlitestore: decode deck: %w", err)
	}
	return &deck, nil
}

// quoteIdentifier quotes a SQLite identifier, doubling embedded quotes.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
