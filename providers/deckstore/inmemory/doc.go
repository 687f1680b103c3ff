// Package inmemory provides a concurrency-safe, map-backed implementation of
// [deckstore.Store]. Decks are deep-copied on the way in and out, so callers
// can keep mutating their values. Nothing survives a restart.
package inmemory
