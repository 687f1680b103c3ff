package studyapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/leofalp/recall/core/parse"
)

// SetSummary is one entry of a user's saved sets on the backend.
type SetSummary struct {
	ID        string `json:"id"`
	Kind      Kind   `json:"kind,omitempty"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`

	// Quiz progress; zero for flashcard sets.
	Completed      bool `json:"isCompleted,omitempty"`
	Score          int  `json:"score,omitempty"`
	TotalQuestions int  `json:"totalQuestions,omitempty"`
}

// Submission is the body posted to /submitQuiz.
type Submission struct {
	UserID      string `json:"userId"`
	QuizID      string `json:"quizId"`
	UserAnswers []int  `json:"userAnswers"`
	Score       int    `json:"score"`
}

type savedEnvelope struct {
	Flashcards []SetSummary `json:"flashcards"`
	Quizzes    []SetSummary `json:"quizzes"`
}

// ListFlashcardSets returns the flashcard sets saved for userID.
func (c *Client) ListFlashcardSets(ctx context.Context, userID string) ([]SetSummary, error) {
	envelope, err := c.listSaved(ctx, EndpointGetSavedFlashcards, userID)
	if err != nil {
		return nil, err
	}
	return withKind(envelope.Flashcards, KindFlashcards), nil
}

// ListQuizzes returns the quizzes saved for userID, with their progress.
func (c *Client) ListQuizzes(ctx context.Context, userID string) ([]SetSummary, error) {
	envelope, err := c.listSaved(ctx, EndpointGetSavedQuizzes, userID)
	if err != nil {
		return nil, err
	}
	return withKind(envelope.Quizzes, KindQuiz), nil
}

// DeleteFlashcardSet removes a saved flashcard set.
func (c *Client) DeleteFlashcardSet(ctx context.Context, userID, flashcardID string) error {
	_, err := c.fetch(ctx, http.MethodDelete, EndpointDeleteFlashcard, userID, "flashcardId", flashcardID)
	return err
}

// DeleteQuiz removes a saved quiz.
func (c *Client) DeleteQuiz(ctx context.Context, userID, quizID string) error {
	_, err := c.fetch(ctx, http.MethodDelete, EndpointDeleteQuiz, userID, "quizId", quizID)
	return err
}

// SubmitQuiz records the user's answers and score for a quiz. Use
// [extract.Score] to compute the score from the quiz questions.
func (c *Client) SubmitQuiz(ctx context.Context, userID, quizID string, answers []int, score int) error {
	if userID == "" {
		return ErrMissingUserID
	}
	if quizID == "" {
		return ErrMissingID
	}
	if answers == nil {
		answers = []int{}
	}

	_, err := c.call(ctx, Call{
		Method:   http.MethodPost,
		Endpoint: EndpointSubmitQuiz,
		JSON: Submission{
			UserID:      userID,
			QuizID:      quizID,
			UserAnswers: answers,
			Score:       score,
		},
	})
	return err
}

func (c *Client) listSaved(ctx context.Context, endpoint, userID string) (savedEnvelope, error) {
	if userID == "" {
		return savedEnvelope{}, ErrMissingUserID
	}

	reply, err := c.call(ctx, Call{
		Method:   http.MethodGet,
		Endpoint: endpoint,
		Query:    url.Values{"userId": {userID}},
	})
	if err != nil {
		return savedEnvelope{}, err
	}

	envelope, err := parse.DecodeAs[savedEnvelope](string(reply.Body))
	if err != nil {
		return savedEnvelope{}, fmt.Errorf("failed to decode saved sets: %w", err)
	}
	return envelope, nil
}

func withKind(sets []SetSummary, kind Kind) []SetSummary {
	out := make([]SetSummary, 0, len(sets))
	for _, s := range sets {
		s.Kind = kind
		out = append(out, s)
	}
	return out
}
