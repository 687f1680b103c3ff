// Package studyapi is the HTTP client for the study backend: the service that
// turns an uploaded page photo into flashcards or a quiz with a generative
// model, and stores the generated sets per user.
//
// The backend returns the generated records as model text that is only
// nominally JSON. Every operation runs that text through the extract package,
// so a [Deck] always holds usable cards or questions (or the single sentinel
// record when nothing could be recovered) and records which strategy was
// needed.
//
// Calls travel through a middleware chain of [SendFunc] values, built the same
// way for every endpoint. Retry, timeout and logging middlewares live in the
// middleware sub-package:
//
//	c := studyapi.New(
//	    studyapi.WithBaseURL("http://10.0.0.5:8000/api"),
//	    studyapi.WithMiddleware(
//	        middleware.NewTimeoutMiddleware(60*time.Second),
//	        middleware.NewRetryMiddleware(middleware.RetryConfig{MaxRetries: 2}),
//	    ),
//	)
//	deck, err := c.GenerateQuiz(ctx, upload, "user-1")
package studyapi
