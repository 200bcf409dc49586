package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/G-Node/authform/authform/form"
	"github.com/G-Node/authform/authform/logging"
	"github.com/G-Node/authform/authform/schema"
	"github.com/G-Node/authform/authform/submit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPrompter answers prompts from per-label queues and records every
// prompt message.
type scriptedPrompter struct {
	answers  map[string][]string
	confirms []bool
	asked    []string
}

func (p *scriptedPrompter) next(message string) string {
	p.asked = append(p.asked, message)
	label := message
	if idx := strings.Index(message, " ("); idx >= 0 {
		label = message[:idx]
	}
	queue := p.answers[label]
	if len(queue) == 0 {
		return ""
	}
	p.answers[label] = queue[1:]
	return queue[0]
}

func (p *scriptedPrompter) Input(_ context.Context, message, _, _ string) (string, error) {
	return p.next(message), nil
}

func (p *scriptedPrompter) Password(_ context.Context, message, _ string) (string, error) {
	return p.next(message), nil
}

func (p *scriptedPrompter) Confirm(_ context.Context, message string, _ bool) (bool, error) {
	p.asked = append(p.asked, message)
	if len(p.confirms) == 0 {
		return false, nil
	}
	c := p.confirms[0]
	p.confirms = p.confirms[1:]
	return c, nil
}

func newCLIController(t *testing.T, s *schema.Schema, endpoint form.Endpoint, handler http.HandlerFunc) (*form.Controller, *atomic.Int32) {
	t.Helper()
	requests := new(atomic.Int32)
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		handler(w, r)
	}))
	t.Cleanup(api.Close)
	client, err := submit.New(api.URL, submit.WithLogger(logging.Discard()))
	require.NoError(t, err)
	nav := form.NavigatorFunc(func(string) {})
	return form.NewController(s, endpoint, client, nav, form.WithLogger(logging.Discard())), requests
}

func TestFillRegisterRepromptsFailedFields(t *testing.T) {
	ctrl, requests := newCLIController(t, schema.Register(), form.RegisterEndpoint, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	p := &scriptedPrompter{answers: map[string][]string{
		"Email":            {"bob.smith@email.com"},
		"Name":             {"Bob Smith"},
		"Password":         {"secret1"},
		"Confirm Password": {"secret2", "secret1"},
	}}
	out := new(bytes.Buffer)

	require.NoError(t, fillForm(context.Background(), ctrl, p, out))
	assert.EqualValues(t, 1, requests.Load())
	assert.Contains(t, out.String(), "passwordConfirmation: Passwords must match")
	assert.Contains(t, out.String(), "Done.")
	assert.Equal(t, []string{"Email", "Name", "Password", "Confirm Password", "Confirm Password (Passwords must match)"}, p.asked)
}

func TestFillLoginRetryAfterFailure(t *testing.T) {
	ctrl, requests := newCLIController(t, schema.Login(), form.LoginEndpoint, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), "hunter2") {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "accessToken", Value: "tok"})
	})
	p := &scriptedPrompter{
		answers: map[string][]string{
			"Email":    {"bob@x.com", "bob@x.com"},
			"Password": {"hunter3", "hunter2"},
		},
		confirms: []bool{true},
	}
	out := new(bytes.Buffer)

	require.NoError(t, fillForm(context.Background(), ctrl, p, out))
	assert.EqualValues(t, 2, requests.Load())
	assert.Contains(t, out.String(), "Error: Invalid credentials")
	assert.Contains(t, out.String(), `Received session cookie "accessToken"`)
}

func TestFillLoginGiveUp(t *testing.T) {
	ctrl, _ := newCLIController(t, schema.Login(), form.LoginEndpoint, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
	})
	p := &scriptedPrompter{answers: map[string][]string{
		"Email":    {"bob@x.com"},
		"Password": {"nope"},
	}}

	err := fillForm(context.Background(), ctrl, p, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid credentials")
}

func TestRootCmdHasSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	for _, name := range []string{"serve", "login", "register"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}
