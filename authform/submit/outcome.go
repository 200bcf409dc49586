package submit

import (
	"context"
	"net/http"
)

// Outcome of a single submission.  Either a success or a failure carrying a
// human readable message.
type Outcome struct {
	// StatusCode of the response.  Zero when no response was received.
	StatusCode int
	// Cookies set by the response.  Only populated for credential-bearing
	// submissions.
	Cookies []*http.Cookie
	// Message describing the failure.  Empty on success.
	Message string
	failed  bool
}

// Success returns a successful Outcome.
func Success(status int, cookies []*http.Cookie) Outcome {
	return Outcome{StatusCode: status, Cookies: cookies}
}

// Failure returns a failed Outcome with the given message.
func Failure(message string) Outcome {
	return Outcome{Message: message, failed: true}
}

// OK reports whether the submission succeeded.
func (o Outcome) OK() bool {
	return !o.failed
}

// Future is the pending Outcome of a submission.  It is resolved exactly once.
type Future struct {
	done    chan struct{}
	outcome Outcome
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolved returns a Future that already holds the given Outcome.
func Resolved(o Outcome) *Future {
	f := newFuture()
	f.resolve(o)
	return f
}

func (f *Future) resolve(o Outcome) {
	f.outcome = o
	close(f.done)
}

// Done returns a channel that is closed once the Outcome is available.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the Outcome is available or the context is done.
// Abandoning the wait does not cancel the request.
func (f *Future) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-f.done:
		return f.outcome, nil
	default:
	}
	select {
	case <-f.done:
		return f.outcome, nil
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}
