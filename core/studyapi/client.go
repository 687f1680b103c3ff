package studyapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leofalp/recall/core/extract"
	"github.com/leofalp/recall/core/parse"
	"github.com/leofalp/recall/internal/utils"
	"github.com/leofalp/recall/providers/observability"
)

const (
	// EnvBaseURL overrides the default base URL.
	EnvBaseURL = "RECALL_API_URL"

	defaultBaseURL = "http://localhost:8000/api"
)

// ClientOptions holds the client configuration assembled from Option values.
type ClientOptions struct {
	// BaseURL is the backend root including the /api prefix. Defaults to
	// $RECALL_API_URL, then http://localhost:8000/api.
	BaseURL string

	// HTTPClient defaults to a client without timeout; use the timeout
	// middleware to bound calls.
	HTTPClient *http.Client

	// Observer receives spans, metrics and logs for calls and extractions.
	Observer observability.Provider

	// Middlewares wrap every call, outermost first.
	Middlewares []Middleware
}

// Option configures a Client.
type Option func(*ClientOptions)

// WithBaseURL sets the backend base URL.
func WithBaseURL(baseURL string) Option {
	return func(o *ClientOptions) {
		o.BaseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *ClientOptions) {
		o.HTTPClient = httpClient
	}
}

// WithObserver sets the observability provider.
func WithObserver(observer observability.Provider) Option {
	return func(o *ClientOptions) {
		o.Observer = observer
	}
}

// WithMiddleware appends middlewares to the chain. The first middleware is
// the outermost wrapper.
func WithMiddleware(middlewares ...Middleware) Option {
	return func(o *ClientOptions) {
		o.Middlewares = append(o.Middlewares, middlewares...)
	}
}

// Client calls the study backend. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	observer   observability.Provider
	send       SendFunc

	flashcards *extract.Extractor
	quiz       *extract.Extractor
}

// New creates a Client.
func New(opts ...Option) *Client {
	options := ClientOptions{
		BaseURL: os.Getenv(EnvBaseURL),
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.BaseURL == "" {
		options.BaseURL = defaultBaseURL
	}
	if options.HTTPClient == nil {
		options.HTTPClient = &http.Client{}
	}

	c := &Client{
		baseURL:    strings.TrimRight(options.BaseURL, "/"),
		httpClient: options.HTTPClient,
		observer:   options.Observer,
		flashcards: extract.New(extract.FlashcardSchema(), extract.WithObserver(options.Observer)),
		quiz:       extract.New(extract.QuizSchema(), extract.WithObserver(options.Observer)),
	}
	c.send = buildSendChain(c.transport, options.Middlewares)
	return c
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type generateEnvelope struct {
	ID             string          `json:"id"`
	Type           string          `json:"type"`
	Title          string          `json:"title"`
	Flashcards     json.RawMessage `json:"flashcards"`
	QuizQuestions  json.RawMessage `json:"quiz_questions"`
	ImageURL       string          `json:"image_url"`
	TotalQuestions int             `json:"total_questions"`
}

type flashcardEnvelope struct {
	Title      string          `json:"title"`
	Flashcards json.RawMessage `json:"flashcards"`
}

type quizEnvelope struct {
	Title          string          `json:"title"`
	Questions      json.RawMessage `json:"questions"`
	IsCompleted    bool            `json:"isCompleted"`
	Score          int             `json:"score"`
	TotalQuestions int             `json:"totalQuestions"`
	UserAnswers    json.RawMessage `json:"userAnswers"`
}

// GenerateFlashcards uploads an image to /generateFlashcards and extracts the
// generated cards.
func (c *Client) GenerateFlashcards(ctx context.Context, upload *Upload, userID string) (*Deck, error) {
	reply, err := c.generate(ctx, EndpointGenerateFlashcards, upload, userID)
	if err != nil {
		return nil, err
	}

	envelope, payload := decodeGenerate(reply.Body, func(e generateEnvelope) json.RawMessage { return e.Flashcards })
	result := c.flashcards.Extract(ctx, payload)

	return &Deck{
		ID:         idOrNew(envelope.ID),
		Kind:       KindFlashcards,
		UserID:     userID,
		Title:      envelope.Title,
		ImageURL:   envelope.ImageURL,
		Flashcards: extract.Flashcards(result.Records),
		Strategy:   result.Strategy,
		FetchedAt:  time.Now().UTC(),
	}, nil
}

// GenerateQuiz uploads an image to /generateQuiz and extracts the generated
// questions.
func (c *Client) GenerateQuiz(ctx context.Context, upload *Upload, userID string) (*Deck, error) {
	reply, err := c.generate(ctx, EndpointGenerateQuiz, upload, userID)
	if err != nil {
		return nil, err
	}

	envelope, payload := decodeGenerate(reply.Body, func(e generateEnvelope) json.RawMessage { return e.QuizQuestions })
	result := c.quiz.Extract(ctx, payload)

	return &Deck{
		ID:        idOrNew(envelope.ID),
		Kind:      KindQuiz,
		UserID:    userID,
		Title:     envelope.Title,
		ImageURL:  envelope.ImageURL,
		Questions: extract.QuizQuestions(result.Records),
		Strategy:  result.Strategy,
		FetchedAt: time.Now().UTC(),
	}, nil
}

// GetFlashcardSet fetches a stored flashcard set from /getFlashcard.
func (c *Client) GetFlashcardSet(ctx context.Context, userID, flashcardID string) (*Deck, error) {
	reply, err := c.fetch(ctx, http.MethodGet, EndpointGetFlashcard, userID, "flashcardId", flashcardID)
	if err != nil {
		return nil, err
	}

	envelope, err := parse.DecodeAs[flashcardEnvelope](string(reply.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to decode flashcard set: %w", err)
	}
	result := c.flashcards.Extract(ctx, payloadText(envelope.Flashcards))

	return &Deck{
		ID:         flashcardID,
		Kind:       KindFlashcards,
		UserID:     userID,
		Title:      envelope.Title,
		Flashcards: extract.Flashcards(result.Records),
		Strategy:   result.Strategy,
		FetchedAt:  time.Now().UTC(),
	}, nil
}

// GetQuiz fetches a stored quiz from /getQuiz, including the user's progress.
func (c *Client) GetQuiz(ctx context.Context, userID, quizID string) (*Deck, error) {
	reply, err := c.fetch(ctx, http.MethodGet, EndpointGetQuiz, userID, "quizId", quizID)
	if err != nil {
		return nil, err
	}

	envelope, err := parse.DecodeAs[quizEnvelope](string(reply.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to decode quiz: %w", err)
	}
	result := c.quiz.Extract(ctx, payloadText(envelope.Questions))

	var answers json.RawMessage
	if len(envelope.UserAnswers) > 0 && string(envelope.UserAnswers) != "null" {
		answers = envelope.UserAnswers
	}

	return &Deck{
		ID:          quizID,
		Kind:        KindQuiz,
		UserID:      userID,
		Title:       envelope.Title,
		Questions:   extract.QuizQuestions(result.Records),
		Strategy:    result.Strategy,
		Completed:   envelope.IsCompleted,
		Score:       envelope.Score,
		UserAnswers: answers,
		FetchedAt:   time.Now().UTC(),
	}, nil
}

func (c *Client) generate(ctx context.Context, endpoint string, upload *Upload, userID string) (*Reply, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if upload == nil || len(upload.Data) == 0 {
		return nil, ErrEmptyUpload
	}

	return c.call(ctx, Call{
		Method:   http.MethodPost,
		Endpoint: endpoint,
		Form:     map[string]string{"userId": userID},
		File:     upload,
	})
}

func (c *Client) fetch(ctx context.Context, method, endpoint, userID, idParam, id string) (*Reply, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if id == "" {
		return nil, ErrMissingID
	}

	return c.call(ctx, Call{
		Method:   method,
		Endpoint: endpoint,
		Query:    url.Values{"userId": {userID}, idParam: {id}},
	})
}

// call assigns a request id and runs the middleware chain inside a span.
func (c *Client) call(ctx context.Context, call Call) (*Reply, error) {
	if call.RequestID == "" {
		call.RequestID = uuid.NewString()
	}

	var span observability.Span
	if c.observer != nil {
		ctx, span = c.observer.StartSpan(ctx, observability.SpanStudyAPICall,
			observability.String(observability.AttrStudyAPIEndpoint, call.Endpoint),
			observability.String(observability.AttrStudyAPIRequestID, call.RequestID),
			observability.String(observability.AttrHTTPMethod, call.Method),
		)
		defer span.End()
	}

	start := time.Now()
	reply, err := c.send(ctx, call)
	elapsed := time.Since(start)

	if c.observer != nil {
		endpointAttr := observability.String(observability.AttrStudyAPIEndpoint, call.Endpoint)
		c.observer.Counter(observability.MetricStudyAPIRequestCount).Add(ctx, 1, endpointAttr)
		c.observer.Histogram(observability.MetricStudyAPIRequestDuration).Record(ctx, elapsed.Seconds(), endpointAttr)

		if err != nil {
			span.RecordError(err)
			span.SetStatus(observability.StatusError, "study API call failed")
		} else {
			span.SetAttributes(observability.Int(observability.AttrHTTPStatusCode, reply.StatusCode))
			span.SetStatus(observability.StatusOK, "")
		}
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", call.Endpoint, err)
	}
	return reply, nil
}

// transport is the innermost SendFunc: one HTTP exchange.
func (c *Client) transport(ctx context.Context, call Call) (*Reply, error) {
	target := c.baseURL + call.Endpoint
	if len(call.Query) > 0 {
		target += "?" + call.Query.Encode()
	}

	request := utils.Request{
		Method: call.Method,
		URL:    target,
		Header: http.Header{"X-Request-ID": []string{call.RequestID}},
	}

	if call.Form != nil || call.File != nil {
		var file *utils.FilePart
		if call.File != nil {
			file = &utils.FilePart{
				FieldName:   "file",
				FileName:    call.File.FileName,
				ContentType: call.File.ContentType,
				Data:        call.File.Data,
			}
			if file.FileName == "" {
				file.FileName = "upload.jpg"
			}
			if file.ContentType == "" {
				file.ContentType = "image/jpeg"
			}
		}

		body, contentType, err := utils.MultipartBody(call.Form, file)
		if err != nil {
			return nil, err
		}
		request.Body = body
		request.ContentType = contentType
	} else if call.JSON != nil {
		body, err := json.Marshal(call.JSON)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		request.Body = body
		request.ContentType = "application/json"
	}

	response, err := utils.DoRequest(ctx, c.httpClient, request)
	var httpErr *utils.HTTPError
	if errors.As(err, &httpErr) {
		return nil, newStatusError(httpErr.StatusCode, httpErr.Body)
	}
	if err != nil {
		return nil, err
	}
	return &Reply{StatusCode: response.StatusCode, Body: response.Body}, nil
}

// decodeGenerate reads a generation response. A body that is not an envelope
// object is treated as the payload itself.
func decodeGenerate(body []byte, field func(generateEnvelope) json.RawMessage) (generateEnvelope, string) {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "{") {
		if envelope, err := parse.DecodeAs[generateEnvelope](trimmed); err == nil {
			return envelope, payloadText(field(envelope))
		}
	}
	return generateEnvelope{}, trimmed
}

// payloadText turns a response field back into text for the extractor: a JSON
// string is unquoted, any other value is kept as raw JSON.
func payloadText(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}
	if strings.HasPrefix(trimmed, `"`) {
		var text string
		if err := json.Unmarshal([]byte(trimmed), &text); err == nil {
			return text
		}
	}
	return trimmed
}

func idOrNew(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
