package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"unicode/utf8"
	"time"

	"github.com/G-Node/authform/authform/db"
	"github.com/G-Node/authform/authform/worker"
	"github.com/samber/oops"
	"golang.org/x/net/publicsuffix"
)

// Endpoint suffixes of the remote authentication API.
const (
	SessionsEndpoint = "/api/sessions"
	UsersEndpoint    = "/api/users"
)

// NetworkErrorMessage is surfaced when no response was received.
const NetworkErrorMessage = "Network Error"

// maximum number of response body bytes read when looking for an error message
const maxErrorBody = 64 << 10

// maximum length of an upstream error message shown to the user
const maxMessageRunes = 200

// Runner schedules submission tasks.  *worker.Worker implements it.
type Runner interface {
	Enqueue(t worker.Task) error
}

// Recorder stores the log of submission attempts.  *db.Connection implements
// it.
type Recorder interface {
	InsertAttempt(a *db.Attempt) error
	UpdateAttempt(a *db.Attempt) error
}

// Client submits validated form payloads to the remote authentication API.
// A Client is shared by all forms of a host; it holds no per-user state.
type Client struct {
	base     string
	timeout  time.Duration
	runner   Runner
	recorder Recorder
	log      *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout limits the duration of each request.  Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRunner runs submissions on the given Runner instead of a new goroutine
// per submission.
func WithRunner(r Runner) Option {
	return func(c *Client) {
		c.runner = r
	}
}

// WithRecorder records every submission attempt.
func WithRecorder(r Recorder) Option {
	return func(c *Client) {
		c.recorder = r
	}
}

// WithLogger sets the logger of the Client.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// New returns a Client for the API at the given base endpoint.  The base must
// be an absolute http or https URL.
func New(base string, opts ...Option) (*Client, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, oops.Code("ENDPOINT_INVALID").With("endpoint", base).Wrap(err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, oops.Code("ENDPOINT_INVALID").With("endpoint", base).Errorf("endpoint must be an absolute http(s) URL")
	}
	c := &Client{
		base: strings.TrimRight(base, "/"),
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "submit")
	return c, nil
}

// Base returns the configured base endpoint.
func (c *Client) Base() string {
	return c.base
}

// httpClient returns the client for a single submission.  Credential-bearing
// submissions get a cookie jar of their own so cookies never cross from one
// user's submission into another's.
func (c *Client) httpClient(withCredentials bool) (*http.Client, error) {
	hc := &http.Client{Timeout: c.timeout}
	if !withCredentials {
		return hc, nil
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, oops.Code("COOKIEJAR_FAILED").Wrap(err)
	}
	hc.Jar = jar
	return hc, nil
}

// Submit posts the payload as JSON to the base endpoint joined with suffix
// and returns immediately.  When withCredentials is set the request goes
// through a cookie jar owned by this submission and the Outcome carries the
// cookies set by the response.  Cancelling ctx does not cancel the request.
func (c *Client) Submit(ctx context.Context, suffix string, payload map[string]string, withCredentials bool) *Future {
	f := newFuture()
	ctx = context.WithoutCancel(ctx)
	task := func() {
		defer func() {
			if r := recover(); r != nil {
				c.log.Error("Submission panicked", "endpoint", suffix, "panic", r)
				f.resolve(Failure(NetworkErrorMessage))
			}
		}()
		f.resolve(c.post(ctx, suffix, payload, withCredentials))
	}
	if c.runner == nil {
		go task()
		return f
	}
	if err := c.runner.Enqueue(task); err != nil {
		c.log.Error("Failed to schedule submission", "endpoint", suffix, "error", err)
		f.resolve(Failure(NetworkErrorMessage))
	}
	return f
}

func (c *Client) post(ctx context.Context, suffix string, payload map[string]string, withCredentials bool) Outcome {
	attempt := db.NewAttempt(suffix, payload["email"], withCredentials)
	c.record(attempt, true)

	outcome := c.do(ctx, suffix, payload, withCredentials)

	attempt.EndTime = time.Now()
	attempt.StatusCode = outcome.StatusCode
	attempt.Success = outcome.OK()
	attempt.Message = outcome.Message
	c.record(attempt, false)

	c.log.Info("Submission finished", "endpoint", suffix, "attempt", attempt.ID,
		"status", outcome.StatusCode, "success", outcome.OK(),
		"duration", attempt.EndTime.Sub(attempt.SubmitTime))
	return outcome
}

func (c *Client) do(ctx context.Context, suffix string, payload map[string]string, withCredentials bool) Outcome {
	target := c.base + suffix
	body, err := json.Marshal(payload)
	if err != nil {
		c.log.Error("Failed to encode payload", "endpoint", suffix, "error", err)
		return Failure(NetworkErrorMessage)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		c.log.Error("Failed to create request", "url", target, "error", err)
		return Failure(NetworkErrorMessage)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	hc, err := c.httpClient(withCredentials)
	if err != nil {
		c.log.Error("Failed to create HTTP client", "endpoint", suffix, "error", err)
		return Failure(NetworkErrorMessage)
	}
	resp, err := hc.Do(req)
	if err != nil {
		err = oops.Code("SUBMISSION_TRANSPORT").With("url", target).Wrap(err)
		c.log.Warn("Submission failed", "endpoint", suffix, "error", err)
		return Failure(NetworkErrorMessage)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var cookies []*http.Cookie
		if withCredentials {
			cookies = resp.Cookies()
		}
		return Success(resp.StatusCode, cookies)
	}

	msg := upstreamMessage(data, resp.Header.Get("Content-Type"))
	if msg == "" {
		msg = fmt.Sprintf("Request failed with status code %d", resp.StatusCode)
	}
	o := Failure(msg)
	o.StatusCode = resp.StatusCode
	return o
}

func (c *Client) record(a *db.Attempt, insert bool) {
	if c.recorder == nil {
		return
	}
	var err error
	if insert {
		err = c.recorder.InsertAttempt(a)
	} else {
		err = c.recorder.UpdateAttempt(a)
	}
	if err != nil {
		c.log.Error("Failed to record submission attempt", "attempt", a.ID, "error", err)
	}
}

// upstreamMessage extracts a human readable error message from an error
// response body.  JSON bodies are searched for "message" or "error" (or the
// first "message" of an array of issues); a JSON string is unquoted; plain
// text bodies are used as is.  HTML bodies are ignored.  The result is cut
// to maxMessageRunes.
func upstreamMessage(body []byte, contentType string) string {
	return truncate(rawMessage(body, contentType), maxMessageRunes)
}

func rawMessage(body []byte, contentType string) string {
	text := strings.TrimSpace(string(body))
	if text == "" || strings.Contains(contentType, "html") {
		return ""
	}
	switch text[0] {
	case '{':
		var obj map[string]any
		if err := json.Unmarshal([]byte(text), &obj); err != nil {
			return ""
		}
		return messageOf(obj)
	case '[':
		var issues []map[string]any
		if err := json.Unmarshal([]byte(text), &issues); err != nil {
			return ""
		}
		for _, issue := range issues {
			if msg := messageOf(issue); msg != "" {
				return msg
			}
		}
		return ""
	case '"':
		var msg string
		if err := json.Unmarshal([]byte(text), &msg); err != nil {
			return text
		}
		return strings.TrimSpace(msg)
	case '<':
		return ""
	}
	return text
}

// truncate cuts s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n-1])) + "…"
}

func messageOf(obj map[string]any) string {
	for _, key := range []string{"message", "error"} {
		switch v := obj[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case map[string]any:
			if msg := messageOf(v); msg != "" {
				return msg
			}
		}
	}
	return ""
}
