package studyapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"testing"
)

func TestListFlashcardSets(t *testing.T) {
	body := `{"flashcards":[{"id":"set-1","title":"Biology","createdAt":"2025-01-02T10:00:00Z"},{"id":"set-2","title":"Chemistry","createdAt":"2025-01-01T09:00:00Z"}]}`
	server, last := newBackend(t, http.StatusOK, body)

	sets, err := New(WithBaseURL(server.URL+"/api")).ListFlashcardSets(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := last()
	if req.Method != http.MethodGet || req.Path != "/api/getSavedFlashcards" {
		t.Errorf("unexpected request %s %s", req.Method, req.Path)
	}
	if req.Query["userId"] != "user-1" {
		t.Errorf("unexpected query %v", req.Query)
	}

	want := []SetSummary{
		{ID: "set-1", Kind: KindFlashcards, Title: "Biology", CreatedAt: "2025-01-02T10:00:00Z"},
		{ID: "set-2", Kind: KindFlashcards, Title: "Chemistry", CreatedAt: "2025-01-01T09:00:00Z"},
	}
	if !reflect.DeepEqual(sets, want) {
		t.Errorf("expected %+v, got %+v", want, sets)
	}
}

func TestListQuizzes(t *testing.T) {
	body := `{"quizzes":[{"id":"quiz-1","title":"Math","createdAt":"2025-01-02","isCompleted":true,"score":3,"totalQuestions":4},{"id":"quiz-2","title":"History","createdAt":"2025-01-03","isCompleted":false}]}`
	server, last := newBackend(t, http.StatusOK, body)

	quizzes, err := New(WithBaseURL(server.URL)).ListQuizzes(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req := last(); req.Path != "/getSavedQuizzes" {
		t.Errorf("unexpected path %s", req.Path)
	}

	want := []SetSummary{
		{ID: "quiz-1", Kind: KindQuiz, Title: "Math", CreatedAt: "2025-01-02", Completed: true, Score: 3, TotalQuestions: 4},
		{ID: "quiz-2", Kind: KindQuiz, Title: "History", CreatedAt: "2025-01-03"},
	}
	if !reflect.DeepEqual(quizzes, want) {
		t.Errorf("expected %+v, got %+v", want, quizzes)
	}
}

func TestListSaved_Empty(t *testing.T) {
	server, _ := newBackend(t, http.StatusOK, `{}`)

	sets, err := New(WithBaseURL(server.URL)).ListFlashcardSets(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sets == nil || len(sets) != 0 {
		t.Errorf("expected an empty non-nil list, got %#v", sets)
	}
}

func TestDeleteSets(t *testing.T) {
	tests := []struct {
		name      string
		delete    func(*Client) error
		wantPath  string
		wantParam string
	}{
		{
			name:      "flashcard set",
			delete:    func(c *Client) error { return c.DeleteFlashcardSet(context.Background(), "user-1", "set-1") },
			wantPath:  "/deleteFlashcard",
			wantParam: "flashcardId",
		},
		{
			name:      "quiz",
			delete:    func(c *Client) error { return c.DeleteQuiz(context.Background(), "user-1", "set-1") },
			wantPath:  "/deleteQuiz",
			wantParam: "quizId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, last := newBackend(t, http.StatusOK, `{"message":"deleted"}`)

			if err := tt.delete(New(WithBaseURL(server.URL))); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			req := last()
			if req.Method != http.MethodDelete || req.Path != tt.wantPath {
				t.Errorf("unexpected request %s %s", req.Method, req.Path)
			}
			if req.Query["userId"] != "user-1" || req.Query[tt.wantParam] != "set-1" {
				t.Errorf("unexpected query %v", req.Query)
			}
		})
	}
}

func TestDeleteQuiz_NotFound(t *testing.T) {
	server, _ := newBackend(t, http.StatusNotFound, `{"error":"Quiz not found"}`)

	err := New(WithBaseURL(server.URL)).DeleteQuiz(context.Background(), "user-1", "missing")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusNotFound || statusErr.Message != "Quiz not found" {
		t.Errorf("unexpected status error %+v", statusErr)
	}
}

func TestSubmitQuiz(t *testing.T) {
	server, last := newBackend(t, http.StatusOK, `{"message":"saved"}`)

	err := New(WithBaseURL(server.URL)).SubmitQuiz(context.Background(), "user-1", "quiz-1", []int{1, 0, 2}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := last()
	if req.Method != http.MethodPost || req.Path != "/submitQuiz" {
		t.Errorf("unexpected request %s %s", req.Method, req.Path)
	}
	if req.ContentType != "application/json" {
		t.Errorf("expected JSON content type, got %q", req.ContentType)
	}

	var got Submission
	if err := json.Unmarshal(req.Body, &got); err != nil {
		t.Fatalf("failed to decode submitted body %q: %v", req.Body, err)
	}
	want := Submission{UserID: "user-1", QuizID: "quiz-1", UserAnswers: []int{1, 0, 2}, Score: 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestSubmitQuiz_NoAnswers(t *testing.T) {
	server, last := newBackend(t, http.StatusOK, `{}`)

	if err := New(WithBaseURL(server.URL)).SubmitQuiz(context.Background(), "user-1", "quiz-1", nil, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body := string(last().Body); body != `{"userId":"user-1","quizId":"quiz-1","userAnswers":[],"score":0}` {
		t.Errorf("unexpected body %s", body)
	}
}

func TestSaved_ArgumentErrors(t *testing.T) {
	client := New(WithBaseURL("http://unused.invalid"))
	ctx := context.Background()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"list flashcards without user", func() error { _, err := client.ListFlashcardSets(ctx, ""); return err }(), ErrMissingUserID},
		{"list quizzes without user", func() error { _, err := client.ListQuizzes(ctx, ""); return err }(), ErrMissingUserID},
		{"delete without id", client.DeleteFlashcardSet(ctx, "user-1", ""), ErrMissingID},
		{"delete quiz without user", client.DeleteQuiz(ctx, "", "quiz-1"), ErrMissingUserID},
		{"submit without user", client.SubmitQuiz(ctx, "", "quiz-1", nil, 0), ErrMissingUserID},
		{"submit without quiz", client.SubmitQuiz(ctx, "user-1", "", nil, 0), ErrMissingID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, tt.err)
			}
		})
	}
}
