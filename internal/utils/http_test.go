package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/leofalp/recall/providers/observability"
)

type recordingSpan struct {
	mu     sync.Mutex
	events []string
}

func (s *recordingSpan) End()                                       {}
func (s *recordingSpan) SetAttributes(...observability.Attribute)   {}
func (s *recordingSpan) SetStatus(observability.StatusCode, string) {}
func (s *recordingSpan) RecordError(error)                          {}
func (s *recordingSpan) AddEvent(name string, _ ...observability.Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, name)
}

// TestDoRequest_Success verifies that a 200 response is returned in full with
// headers forwarded and span events recorded.
func TestDoRequest_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("X-Request-ID"); got != "abc" {
			t.Errorf("expected X-Request-ID abc, got %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "text/plain" {
			t.Errorf("expected Content-Type text/plain, got %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "payload" {
			t.Errorf("unexpected body %q", body)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"value":42}`)
	}))
	defer server.Close()

	span := &recordingSpan{}
	ctx := observability.ContextWithSpan(context.Background(), span)

	res, err := DoRequest(ctx, server.Client(), Request{
		Method:      http.MethodPost,
		URL:         server.URL,
		Header:      http.Header{"X-Request-ID": []string{"abc"}},
		Body:        []byte("payload"),
		ContentType: "text/plain",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.StatusCode != http.StatusOK || string(res.Body) != `{"value":42}` {
		t.Errorf("unexpected response: %d %s", res.StatusCode, res.Body)
	}

	want := []string{observability.EventHTTPRequestPrepared, observability.EventHTTPResponseReceived}
	if strings.Join(span.events, ",") != strings.Join(want, ",") {
		t.Errorf("expected events %v, got %v", want, span.events)
	}
}

// TestDoRequest_DefaultsToGET verifies that an empty method performs a GET
// with a nil client falling back to http.DefaultClient.
func TestDoRequest_DefaultsToGET(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Query().Get("id") != "7" {
			t.Errorf("expected id query, got %q", r.URL.RawQuery)
		}
		fmt.Fprint(w, "{}")
	}))
	defer server.Close()

	if _, err := DoRequest(context.Background(), nil, Request{URL: server.URL + "?id=7"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

// TestDoRequest_Non2xxStatus verifies that a non-2xx status returns both the
// response and an *HTTPError carrying the status and body.
func TestDoRequest_Non2xxStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"No file provided"}`)
	}))
	defer server.Close()

	res, err := DoRequest(context.Background(), server.Client(), Request{URL: server.URL})
	if err == nil {
		t.Fatal("expected error for non-2xx status, got nil")
	}

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %T", err)
	}
	if httpErr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", httpErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "non-2xx status 400") {
		t.Errorf("unexpected error message %q", err.Error())
	}
	if res == nil || string(res.Body) != `{"error":"No file provided"}` {
		t.Errorf("expected the response to be returned with the error, got %+v", res)
	}
}

// TestDoRequest_ContextCancelled verifies that a cancelled context aborts the
// request and records the error event.
func TestDoRequest_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	span := &recordingSpan{}
	ctx, cancel := context.WithTimeout(observability.ContextWithSpan(context.Background(), span), 20*time.Millisecond)
	defer cancel()

	_, err := DoRequest(ctx, server.Client(), Request{URL: server.URL})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if len(span.events) != 2 || span.events[1] != observability.EventHTTPRequestError {
		t.Errorf("expected request error event, got %v", span.events)
	}
}

// TestDoRequest_InvalidURL verifies that request construction errors are
// returned before any network activity.
func TestDoRequest_InvalidURL(t *testing.T) {
	if _, err := DoRequest(context.Background(), nil, Request{URL: "://bad"}); err == nil {
		t.Fatal("expected error for invalid URL, got nil")
	}
}

// TestMultipartBody verifies that fields and the file part round-trip through
// a multipart reader.
func TestMultipartBody(t *testing.T) {
	body, contentType, err := MultipartBody(
		map[string]string{"userId": "u1", "note": "n"},
		&FilePart{FieldName: "file", FileName: "upload.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "multipart/form-data" {
		t.Fatalf("unexpected content type %q: %v", contentType, err)
	}

	reader := multipart.NewReader(strings.NewReader(string(body)), params["boundary"])
	var names []string
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("failed to read part: %v", err)
		}
		data, _ := io.ReadAll(part)
		names = append(names, part.FormName())

		if part.FormName() == "file" {
			if part.FileName() != "upload.jpg" || part.Header.Get("Content-Type") != "image/jpeg" || len(data) != 2 {
				t.Errorf("unexpected file part: %s %s %v", part.FileName(), part.Header.Get("Content-Type"), data)
			}
		}
		if part.FormName() == "userId" && string(data) != "u1" {
			t.Errorf("unexpected userId %q", data)
		}
	}

	if strings.Join(names, ",") != "note,userId,file" {
		t.Errorf("unexpected part order %v", names)
	}
}

// TestMultipartBody_NoFile verifies that a body without a file only carries
// the fields.
func TestMultipartBody_NoFile(t *testing.T) {
	body, _, err := MultipartBody(map[string]string{"userId": "u1"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(body), "filename=") {
		t.Error("expected no file part")
	}
}
