package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/G-Node/authform/templates"
	"github.com/gorilla/mux"
)

// ErrorResponse logs an error and renders an error page with the given message,
// returning the given status code to the user.
func (ws *Server) ErrorResponse(w http.ResponseWriter, status int, message string) {
	ws.log.Warn("Error response", "status", status, "message", message)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	tmpl, err := templates.Parse(templates.Fail)
	if err != nil {
		w.Write([]byte(message))
		return
	}
	errinfo := struct {
		Title      string
		StatusCode int
		StatusText string
		Message    string
	}{
		http.StatusText(status),
		status,
		http.StatusText(status),
		message,
	}
	if err := tmpl.Execute(w, &errinfo); err != nil {
		ws.log.Error("Error rendering fail page", "error", err)
	}
}

// Render executes the named page template (wrapped in the site layout) with
// the given data.
func (ws *Server) Render(w http.ResponseWriter, status int, page string, data interface{}) {
	tmpl, err := templates.Parse(page)
	if err != nil {
		ws.log.Error("Failed to parse template", "error", err)
		ws.ErrorResponse(w, http.StatusInternalServerError, "Error rendering page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		ws.log.Error("Failed to render page", "error", err)
	}
}

// Server implements the web server for the authform service.
type Server struct {
	*http.Server
	Router *mux.Router
	log    *slog.Logger
}

// New returns a web Server listening on the given port with an initialised
// mux.Router and http.Server.
func New(port uint16, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	srv := new(Server)
	srv.Router = mux.NewRouter()
	srv.log = logger.With("component", "web")
	httpsrv := new(http.Server)
	httpsrv.Handler = srv.Router

	httpsrv.Addr = fmt.Sprintf(":%d", port)
	// Good practice to set timeouts to avoid Slowloris attacks.
	httpsrv.WriteTimeout = time.Second * 15
	httpsrv.ReadTimeout = time.Second * 15
	httpsrv.IdleTimeout = time.Second * 60
	httpsrv.ErrorLog = slog.NewLogLogger(srv.log.Handler(), slog.LevelError)
	srv.Server = httpsrv
	return srv
}

// Start starts the embedded web server's ListenAndServe method in a goroutine
// and returns.  This method does not block. Use WaitForInterrupt() or
// implement your own blocking function to wait for any other stop condition.
func (ws *Server) Start() {
	go func() {
		if err := ws.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ws.log.Error("Web server failed", "error", err)
		}
	}()
}

// Stop gracefully stops the web service.
func (ws *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	// Gracefully shut down, waiting for the timeout deadline for connections to close.
	if err := ws.Shutdown(ctx); err != nil {
		ws.log.Error("Web server shutdown failed", "error", err)
	}
}
