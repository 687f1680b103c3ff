package studyapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/leofalp/recall/core/extract"
)

// Kind is the kind of a study set.
type Kind string

const (
	KindFlashcards Kind = "flashcards"
	KindQuiz       Kind = "quiz"
)

// ParseKind accepts the kind names used on the command line.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "flashcards", "flashcard", "cards":
		return KindFlashcards, nil
	case "quiz", "quizzes":
		return KindQuiz, nil
	}
	return "", fmt.Errorf("unknown kind %q (expected flashcards or quiz)", s)
}

// Deck is a study set recovered from the backend.
type Deck struct {
	// ID is the backend's set id, or a generated UUID when a fresh generation
	// response carried none.
	ID       string `json:"id"`
	Kind     Kind   `json:"kind"`
	UserID   string `json:"user_id,omitempty"`
	Title    string `json:"title,omitempty"`
	ImageURL string `json:"image_url,omitempty"`

	Flashcards []extract.Flashcard    `json:"flashcards,omitempty"`
	Questions  []extract.QuizQuestion `json:"questions,omitempty"`

	// Strategy names the extraction strategy that recovered the records.
	Strategy string `json:"strategy"`

	Completed   bool            `json:"completed,omitempty"`
	Score       int             `json:"score,omitempty"`
	UserAnswers json.RawMessage `json:"user_answers,omitempty"`

	FetchedAt time.Time `json:"fetched_at"`
}

// Size returns the number of cards or questions.
func (d *Deck) Size() int {
	if d.Kind == KindQuiz {
		return len(d.Questions)
	}
	return len(d.Flashcards)
}

// Failed reports whether extraction fell back to the sentinel record.
func (d *Deck) Failed() bool {
	return d.Strategy == extract.StrategySentinel
}

// Clone returns a deep copy of d. A nil deck clones to nil.
func (d *Deck) Clone() *Deck {
	if d == nil {
		return nil
	}
	out := *d
	if d.Flashcards != nil {
		out.Flashcards = append([]extract.Flashcard(nil), d.Flashcards...)
	}
	if d.Questions != nil {
		out.Questions = make([]extract.QuizQuestion, len(d.Questions))
		for i, q := range d.Questions {
			q.Options = append([]string(nil), q.Options...)
			out.Questions[i] = q
		}
	}
	if d.UserAnswers != nil {
		out.UserAnswers = append(json.RawMessage(nil), d.UserAnswers...)
	}
	return &out
}

// Upload is the image sent to a generation endpoint.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// UploadFromFile reads an image file, sniffing its content type.
func UploadFromFile(path string) (*Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return &Upload{
		FileName:    filepath.Base(path),
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}
