package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/leofalp/recall/core/studyapi"
)

// savedBackend serves saved-set listings, deletions and quiz submissions, and
// records the calls it received.
type savedBackend struct {
	mu        sync.Mutex
	deleted   []string
	submitted *studyapi.Submission
}

func newSavedBackend(t *testing.T) (*httptest.Server, *savedBackend) {
	t.Helper()

	backend := &savedBackend{}
	quiz := `[{"question":"2+2?","options":["3","4"],"correct_answer":1},{"question":"Red planet?","options":["Mars","Venus"],"correct_answer":0}]`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/getSavedFlashcards":
			_, _ = w.Write([]byte(`{"flashcards":[{"id":"set-1","title":"Biology","createdAt":"2025-01-02"}]}`))
		case "/getSavedQuizzes":
			_, _ = w.Write([]byte(`{"quizzes":[{"id":"quiz-1","title":"Math","createdAt":"2025-01-03","isCompleted":true,"score":1,"totalQuestions":2}]}`))
		case "/deleteFlashcard", "/deleteQuiz":
			if r.Method != http.MethodDelete {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			backend.mu.Lock()
			backend.deleted = append(backend.deleted, r.URL.Path+"?"+r.URL.RawQuery)
			backend.mu.Unlock()
			_, _ = w.Write([]byte(`{"message":"deleted"}`))
		case "/getQuiz":
			_ = json.NewEncoder(w).Encode(map[string]any{"title": "Math", "questions": quiz, "totalQuestions": 2})
		case "/submitQuiz":
			var submission studyapi.Submission
			if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			backend.mu.Lock()
			backend.submitted = &submission
			backend.mu.Unlock()
			_, _ = w.Write([]byte(`{"message":"saved"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not found"}`))
		}
	}))
	t.Cleanup(server.Close)
	return server, backend
}

func TestSavedList(t *testing.T) {
	server, _ := newSavedBackend(t)
	global := []string{"--api-url", server.URL, "--retries", "0"}

	out, _, err := runApp(t, "", append(global, "saved", "list", "flashcards", "--user", "u1")...)
	if err != nil {
		t.Fatalf("saved list failed: %v", err)
	}
	if !strings.Contains(out, "set-1") || !strings.Contains(out, "Biology") || !strings.Contains(out, "Total: 1 flashcards") {
		t.Errorf("unexpected flashcard listing:\n%s", out)
	}

	out, _, err = runApp(t, "", append(global, "saved", "list", "quiz", "--user", "u1")...)
	if err != nil {
		t.Fatalf("saved list failed: %v", err)
	}
	if !strings.Contains(out, "quiz-1") || !strings.Contains(out, "1/2") {
		t.Errorf("unexpected quiz listing:\n%s", out)
	}
}

func TestSavedDelete(t *testing.T) {
	server, backend := newSavedBackend(t)
	global := []string{"--api-url", server.URL, "--retries", "0", "--db", filepath.Join(t.TempDir(), "recall.db")}

	out, _, err := runApp(t, "", append(global, "saved", "delete", "quiz", "--id", "quiz-1", "--user", "u1", "--uncache")...)
	if err != nil {
		t.Fatalf("saved delete failed: %v", err)
	}
	if !strings.Contains(out, "Deleted quiz quiz-1") {
		t.Errorf("unexpected output:\n%s", out)
	}

	want := []string{"/deleteQuiz?quizId=quiz-1&userId=u1"}
	if !reflect.DeepEqual(backend.deleted, want) {
		t.Errorf("expected deletions %v, got %v", want, backend.deleted)
	}
}

func TestSubmit(t *testing.T) {
	server, backend := newSavedBackend(t)
	db := filepath.Join(t.TempDir(), "recall.db")
	global := []string{"--api-url", server.URL, "--retries", "0", "--db", db}

	out, _, err := runApp(t, "", append(global, "submit", "--id", "quiz-1", "--user", "u1", "--answers", "B, B", "--save")...)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !strings.Contains(out, "Score: 1/2") {
		t.Errorf("unexpected output:\n%s", out)
	}

	want := &studyapi.Submission{UserID: "u1", QuizID: "quiz-1", UserAnswers: []int{1, 1}, Score: 1}
	if !reflect.DeepEqual(backend.submitted, want) {
		t.Errorf("expected submission %+v, got %+v", want, backend.submitted)
	}

	out, _, err = runApp(t, "", append(global, "cache", "show", "quiz", "quiz-1")...)
	if err != nil {
		t.Fatalf("cache show failed: %v", err)
	}
	if !strings.Contains(out, `"completed": true`) || !strings.Contains(out, `"score": 1`) {
		t.Errorf("expected graded quiz in cache, got:\n%s", out)
	}
}

func TestSubmit_TooManyAnswers(t *testing.T) {
	server, backend := newSavedBackend(t)

	_, _, err := runApp(t, "", "--api-url", server.URL, "--retries", "0", "submit", "--id", "quiz-1", "--user", "u1", "--answers", "0,1,2")
	if err == nil || !strings.Contains(err.Error(), "3 answers for 2 questions") {
		t.Errorf("expected answer count error, got %v", err)
	}
	if backend.submitted != nil {
		t.Error("expected nothing to be submitted")
	}
}

func TestParseAnswers(t *testing.T) {
	tests := []struct {
		input   string
		want    []int
		wantErr bool
	}{
		{"1,0,2", []int{1, 0, 2}, false},
		{"B, a ,C", []int{1, 0, 2}, false},
		{"1,,2,", []int{1, 2}, false},
		{"-1", nil, true},
		{"maybe", nil, true},
		{"", nil, true},
	}
	for _, tt := range tests {
		got, err := parseAnswers(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseAnswers(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseAnswers(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
