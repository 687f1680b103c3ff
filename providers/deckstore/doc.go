// Package deckstore defines the [Store] interface for the local deck cache.
// Decks recovered from the study backend are saved by kind and id so they can
// be reopened without another network call.
//
// Two implementations ship with recall: the process-local
// [github.com/leofalp/recall/providers/deckstore/inmemory] and the persistent
// [github.com/leofalp/recall/providers/deckstore/sqlitestore].
package deckstore
