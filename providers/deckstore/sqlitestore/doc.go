// Package sqlitestore provides a SQLite-backed implementation of
// [deckstore.Store] using the pure Go modernc.org/sqlite driver, so the deck
// cache survives restarts without cgo.
//
// [Open] opens (or creates) a database file and ensures the schema. [New]
// wraps an existing handle, such as a transaction, for callers that manage the
// database themselves; call [Store.EnsureSchema] before first use in that case.
package sqlitestore
