package studyapi

import (
	"context"
	"net/url"
)

// Backend endpoints, relative to the base URL.
const (
	EndpointGenerateFlashcards = "/generateFlashcards"
	EndpointGenerateQuiz       = "/generateQuiz"
	EndpointGetFlashcard       = "/getFlashcard"
	EndpointGetQuiz            = "/getQuiz"
	EndpointGetSavedFlashcards = "/getSavedFlashcards"
	EndpointGetSavedQuizzes    = "/getSavedQuizzes"
	EndpointDeleteFlashcard    = "/deleteFlashcard"
	EndpointDeleteQuiz         = "/deleteQuiz"
	EndpointSubmitQuiz         = "/submitQuiz"
)

// Call is one backend request as seen by the middleware chain.
type Call struct {
	Method   string
	Endpoint string
	Query    url.Values

	// Form and File make the call a multipart/form-data POST.
	Form map[string]string
	File *Upload

	// JSON is marshaled as an application/json body when Form and File are
	// unset.
	JSON any

	// RequestID is sent as X-Request-ID. The client fills it in before the
	// chain runs, so retries of one call share it.
	RequestID string
}

// Reply is a successful (2xx) backend response.
type Reply struct {
	StatusCode int
	Body       []byte
}

// SendFunc performs a backend call. It is the unit threaded through the
// middleware chain.
type SendFunc func(ctx context.Context, call Call) (*Reply, error)

// Middleware intercepts backend calls. Each Middleware receives the next
// SendFunc in the chain and returns a SendFunc that wraps it. Middlewares are
// applied outermost-first: the first middleware in the slice is the outermost
// wrapper.
type Middleware func(next SendFunc) SendFunc

// buildSendChain wraps base with middlewares so that middlewares[0] is the
// first to execute on an incoming call.
func buildSendChain(base SendFunc, middlewares []Middleware) SendFunc {
	chain := base
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i] != nil {
			chain = middlewares[i](chain)
		}
	}
	return chain
}
