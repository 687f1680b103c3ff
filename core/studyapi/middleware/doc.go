// Package middleware provides built-in middleware for the studyapi client.
// Each middleware is constructed via a New* function that returns a
// [studyapi.Middleware] ready to be passed to [studyapi.WithMiddleware].
//
// # Available Middleware
//
//   - [NewRetryMiddleware]: Retries failed backend calls with exponential
//     backoff and jitter. Useful for transient HTTP 429 / 5xx errors, which
//     are common while the backend waits on the generative model.
//
//   - [NewTimeoutMiddleware]: Adds a per-call deadline via context.WithTimeout.
//
//   - [NewLoggingMiddleware]: Emits structured slog entries before and after
//     every backend call, with three verbosity levels (Minimal, Standard,
//     Verbose).
//
// # Usage
//
//	c := studyapi.New(
//	    studyapi.WithMiddleware(
//	        middleware.NewTimeoutMiddleware(60*time.Second),
//	        middleware.NewRetryMiddleware(middleware.RetryConfig{MaxRetries: 3}),
//	        middleware.NewLoggingMiddleware(slog.Default(), middleware.LogLevelStandard),
//	    ),
//	)
//
// Middlewares execute outermost-first. In the example above a call travels
//
//	Timeout -> Retry -> Logging -> HTTP
//
// so the timeout bounds all attempts together and every attempt is logged.
package middleware
