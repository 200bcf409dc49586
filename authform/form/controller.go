package form

import (
	"context"
	"log/slog"
	"sync"

	"github.com/G-Node/authform/authform/schema"
	"github.com/G-Node/authform/authform/submit"
)

// HomePath is where the user is sent after a successful submission.
const HomePath = "/"

// Status describes how a call to Submit ended.
type Status int

const (
	// StatusIgnored: a submission was already in flight or the controller was
	// closed.  Nothing happened.
	StatusIgnored Status = iota
	// StatusRejected: validation failed and field errors were stored.
	StatusRejected
	// StatusSucceeded: the remote API accepted the submission and navigation
	// was triggered.
	StatusSucceeded
	// StatusFailed: the remote API (or the network) rejected the submission
	// and the form error was stored.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusRejected:
		return "rejected"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "ignored"
	}
}

// Result of a call to Submit.
type Result struct {
	Status Status
	// Outcome of the network submission.  Zero unless Status is
	// StatusSucceeded or StatusFailed.
	Outcome submit.Outcome
}

// Submitter sends a validated payload to the remote API.  *submit.Client
// implements it.
type Submitter interface {
	Submit(ctx context.Context, suffix string, payload map[string]string, withCredentials bool) *submit.Future
}

// Navigator moves the user to another page.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string)

// Navigate calls f(path).
func (f NavigatorFunc) Navigate(path string) {
	f(path)
}

// Endpoint describes where a form is submitted to.
type Endpoint struct {
	Suffix          string
	WithCredentials bool
}

// LoginEndpoint creates a session.  The request carries credentials so the
// session cookie is kept.
var LoginEndpoint = Endpoint{Suffix: submit.SessionsEndpoint, WithCredentials: true}

// RegisterEndpoint creates a user.
var RegisterEndpoint = Endpoint{Suffix: submit.UsersEndpoint}

// Controller backs one rendered form.  It owns the form's State for as long
// as the form is shown: create it with NewController when the form is
// mounted and Close it when the user leaves.
type Controller struct {
	schema    *schema.Schema
	endpoint  Endpoint
	submitter Submitter
	navigator Navigator
	log       *slog.Logger

	mu     sync.Mutex
	state  State
	closed bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger of the Controller.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// WithValues prefills the form values.
func WithValues(values map[string]string) Option {
	return func(c *Controller) {
		for k, v := range values {
			c.state.Values[k] = v
		}
	}
}

// NewController mounts a form for the given schema.
func NewController(s *schema.Schema, endpoint Endpoint, submitter Submitter, navigator Navigator, opts ...Option) *Controller {
	c := &Controller{
		schema:    s,
		endpoint:  endpoint,
		submitter: submitter,
		navigator: navigator,
		log:       slog.Default(),
		state:     newState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("form", s.Name)
	return c
}

// Schema returns the schema the form validates against.
func (c *Controller) Schema() *schema.Schema {
	return c.schema
}

// State returns a copy of the current form state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// SetValue updates the value of a field.  The field's error from the last
// submission is cleared; validation runs again on the next Submit.
func (c *Controller) SetValue(field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.state.Values[field] = value
	delete(c.state.FieldErrors, field)
}

// Submit validates the current values and, when they pass, sends them to the
// remote API and waits for the outcome.  Calling Submit while a submission
// is in flight does nothing and returns StatusIgnored.
//
// If ctx is done before the outcome arrives, Submit returns ctx.Err().  The
// request is not cancelled: its outcome is still applied to the State when it
// arrives, unless the Controller was closed in the meantime.
func (c *Controller) Submit(ctx context.Context) (Result, error) {
	c.mu.Lock()
	if c.closed || c.state.Submitting {
		c.mu.Unlock()
		return Result{Status: StatusIgnored}, nil
	}
	c.state.Submitting = true
	c.state.FormError = ""

	res := schema.Validate(c.schema, c.state.Values)
	if !res.Valid() {
		c.state.FieldErrors = res.Errors
		c.state.FormError = ""
		c.state.Submitting = false
		c.mu.Unlock()
		c.log.Debug("Validation failed", "fields", len(res.Errors))
		return Result{Status: StatusRejected}, nil
	}
	c.state.FieldErrors = make(map[string]string)
	c.mu.Unlock()

	future := c.submitter.Submit(ctx, c.endpoint.Suffix, res.Payload, c.endpoint.WithCredentials)
	outcome, err := future.Wait(ctx)
	if err != nil {
		// the outcome still lands in the state once it arrives
		go c.apply(future)
		return Result{}, err
	}
	return c.resolve(outcome), nil
}

func (c *Controller) apply(future *submit.Future) {
	<-future.Done()
	outcome, _ := future.Wait(context.Background())
	c.resolve(outcome)
}

func (c *Controller) resolve(outcome submit.Outcome) Result {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.log.Debug("Discarding outcome of closed form")
		return Result{Status: StatusIgnored, Outcome: outcome}
	}
	c.state.Submitting = false
	if !outcome.OK() {
		c.state.FormError = outcome.Message
		c.mu.Unlock()
		c.log.Info("Submission failed", "status", outcome.StatusCode)
		return Result{Status: StatusFailed, Outcome: outcome}
	}
	c.mu.Unlock()

	c.log.Info("Submission succeeded", "status", outcome.StatusCode)
	c.navigator.Navigate(HomePath)
	return Result{Status: StatusSucceeded, Outcome: outcome}
}

// Close destroys the form.  Further calls to SetValue and Submit do nothing
// and a pending outcome is discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}
