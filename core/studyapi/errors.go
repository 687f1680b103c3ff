package studyapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leofalp/recall/core/parse"
)

var (
	// ErrMissingUserID is returned when an operation is called without a user id.
	ErrMissingUserID = errors.New("studyapi: user id is required")

	// ErrMissingID is returned when a fetch is called without a set id.
	ErrMissingID = errors.New("studyapi: set id is required")

	// ErrEmptyUpload is returned when a generation is called without image data.
	ErrEmptyUpload = errors.New("studyapi: upload is empty")
)

// StatusError is returned for non-2xx backend responses. Message is the
// backend's "error" field when the body carries one, otherwise the body text.
//
// Example:
//
//	var statusErr *studyapi.StatusError
//	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
//	    // set does not exist
//	}
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("study API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("study API returned status %d: %s", e.StatusCode, e.Message)
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func newStatusError(statusCode int, body []byte) *StatusError {
	message := strings.TrimSpace(string(body))
	if decoded, err := parse.DecodeAs[errorBody](message); err == nil {
		for _, candidate := range []string{decoded.Error, decoded.Message, decoded.Detail} {
			if candidate != "" {
				message = candidate
				break
			}
		}
	}
	return &StatusError{StatusCode: statusCode, Message: message}
}
