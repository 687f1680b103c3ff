package deckstore

import (
	"context"
	"errors"

	"github.com/leofalp/recall/core/studyapi"
)

var (
	// ErrNotFound is returned by Get and Delete when no deck matches.
	ErrNotFound = errors.New("deckstore: deck not found")

	// ErrInvalidDeck is returned by Save for a nil deck or one without id or kind.
	ErrInvalidDeck = errors.New("deckstore: deck needs an id and a kind")
)

// Store persists decks keyed by kind and id.
type Store interface {
	// Save inserts or replaces a deck. A replaced deck becomes the most
	// recently saved one.
	Save(ctx context.Context, deck *studyapi.Deck) error

	// Get returns the deck with the given kind and id, or ErrNotFound.
	Get(ctx context.Context, kind studyapi.Kind, id string) (*studyapi.Deck, error)

	// List returns the decks of one kind, most recently saved first. An empty
	// kind lists every deck. The result is never nil.
	List(ctx context.Context, kind studyapi.Kind) ([]studyapi.Deck, error)

	// Delete removes a deck, or returns ErrNotFound.
	Delete(ctx context.Context, kind studyapi.Kind, id string) error
}

// Validate reports whether deck can be saved.
func Validate(deck *studyapi.Deck) error {
	if deck == nil || deck.ID == "" || deck.Kind == "" {
		return ErrInvalidDeck
	}
	return nil
}
