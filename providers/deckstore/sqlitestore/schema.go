package sqlitestore

import (
	"context"
	"fmt"
)

// createTableSQL creates the deck table. The whole deck is kept as JSON in
// body; the other columns exist for listing and ordering. seq grows on every
// save so a replaced deck moves to the front of List.
const createTableSQL = `CREATE TABLE IF NOT EXISTS %s (
    kind       TEXT NOT NULL,
    id         TEXT NOT NULL,
    user_id    TEXT NOT NULL DEFAULT '',
    title      TEXT NOT NULL DEFAULT '',
    strategy   TEXT NOT NULL DEFAULT '',
    size       INTEGER NOT NULL DEFAULT 0,
    body       TEXT NOT NULL,
    seq        INTEGER NOT NULL,
    saved_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (kind, id)
)`

const createSeqIndexSQL = `CREATE INDEX IF NOT EXISTS %s ON %s (kind, seq)`

// EnsureSchema creates the deck table and its index if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf(createTableSQL, s.tableName)); err != nil {
		return fmt.Errorf("sqlitestore: create table: %w", err)
	}

	indexName := quoteIdentifier("idx_" + s.rawTableName + "_kind_seq")
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf(createSeqIndexSQL, indexName, s.tableName)); err != nil {
		return fmt.Errorf("sqlitestore: create kind_seq index: %w", err)
	}
	return nil
}
