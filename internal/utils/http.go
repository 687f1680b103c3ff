package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/leofalp/recall/providers/observability"
)

// Request describes one HTTP exchange performed by [DoRequest].
type Request struct {
	Method      string
	URL         string
	Header      http.Header
	Body        []byte
	ContentType string
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// HTTPError is returned by [DoRequest] for non-2xx responses. Body holds the
// raw response body.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("non-2xx status %d: %s", e.StatusCode, TruncateString(string(e.Body), DefaultMaxStringLength))
}

// DoRequest performs a synchronous HTTP request and reads the whole response.
// Request and response events are added to the span carried by ctx, if any.
//
// Error Handling Strategy:
//   - Context errors (timeout, cancellation) are propagated wrapped
//   - Connection failures return the transport error
//   - Non-2xx responses return the read response together with an *HTTPError
//   - Response body close errors are logged but don't override primary errors
func DoRequest(ctx context.Context, client *http.Client, request Request) (*Response, error) {
	span := observability.SpanFromContext(ctx)

	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	method := request.Method
	if method == "" {
		method = http.MethodGet
	}

	if span != nil {
		span.AddEvent(observability.EventHTTPRequestPrepared,
			observability.String(observability.AttrHTTPMethod, method),
			observability.String(observability.AttrHTTPURL, request.URL),
			observability.Int(observability.AttrHTTPRequestBodySize, len(request.Body)),
		)
	}

	var body io.Reader
	if request.Body != nil {
		body = bytes.NewReader(request.Body)
	}
	req, err := http.NewRequestWithContext(ctx, method, request.URL, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	for key, values := range request.Header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if request.ContentType != "" {
		req.Header.Set("Content-Type", request.ContentType)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	res, err := httpClient.Do(req)
	requestDuration := time.Since(requestStart)

	if err != nil {
		if span != nil {
			span.AddEvent(observability.EventHTTPRequestError,
				observability.Error(err),
				observability.Duration(observability.AttrHTTPRequestDuration, requestDuration),
			)
		}
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if closeErr := Body.Close(); closeErr != nil {
			slog.Warn("failed to close response body", "error", closeErr.Error(), "url", request.URL)
		}
	}(res.Body)

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if span != nil {
		span.AddEvent(observability.EventHTTPResponseReceived,
			observability.Int(observability.AttrHTTPStatusCode, res.StatusCode),
			observability.Int(observability.AttrHTTPResponseBodySize, len(respBody)),
			observability.Duration(observability.AttrHTTPRequestDuration, requestDuration),
		)
	}

	response := &Response{
		StatusCode: res.StatusCode,
		Header:     res.Header,
		Body:       respBody,
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return response, &HTTPError{StatusCode: res.StatusCode, Body: respBody}
	}
	return response, nil
}
