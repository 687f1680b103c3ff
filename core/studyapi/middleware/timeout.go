package middleware

import (
	"context"
	"time"

	"github.com/leofalp/recall/core/studyapi"
)

// NewTimeoutMiddleware creates a middleware that enforces a per-call deadline.
// The context is wrapped with context.WithTimeout and canceled once the call
// returns. If the caller supplies a context that already has a shorter
// deadline, that shorter deadline wins. A non-positive timeout disables the
// middleware.
func NewTimeoutMiddleware(timeout time.Duration) studyapi.Middleware {
	return func(next studyapi.SendFunc) studyapi.SendFunc {
		if timeout <= 0 {
			return next
		}
		return func(ctx context.Context, call studyapi.Call) (*studyapi.Reply, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			return next(ctx, call)
		}
	}
}
