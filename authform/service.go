package authform

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/G-Node/authform/authform/db"
	"github.com/G-Node/authform/authform/submit"
	"github.com/G-Node/authform/authform/web"
	"github.com/G-Node/authform/authform/worker"
	"github.com/samber/oops"
)

// Service represents the full web front end: a web server rendering the
// sign-in and sign-up forms, a submission client talking to the remote
// authentication API through a worker pool, and an optional database logging
// every submission attempt.
type Service struct {
	web    *web.Server
	db     *db.Connection
	worker *worker.Worker
	client *submit.Client
	log    *slog.Logger
	Config Config

	sessionCookies cookieNames
}

// NewService creates a new Service for the given configuration.  A nil logger
// falls back to slog.Default().
func NewService(cfg Config, logger *slog.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	srv := new(Service)
	srv.Config = cfg
	srv.log = logger

	clientOpts := []submit.Option{submit.WithLogger(logger), submit.WithTimeout(cfg.RequestTimeout)}

	// DB
	if cfg.DBPath != "" {
		srv.log.Info("Initialising database", "path", cfg.DBPath)
		conn, err := db.New(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		srv.db = conn
		clientOpts = append(clientOpts, submit.WithRecorder(conn))
	}

	// Worker
	srv.worker = worker.New(cfg.Workers, cfg.QueueLength, logger)
	clientOpts = append(clientOpts, submit.WithRunner(srv.worker))

	client, err := submit.New(cfg.ServerEndpoint, clientOpts...)
	if err != nil {
		srv.closeDB()
		return nil, err
	}
	srv.client = client

	// Web server
	srv.web = web.New(cfg.Port, logger)
	if err := srv.setupWebRoutes(); err != nil {
		srv.closeDB()
		return nil, oops.Code("ROUTES_FAILED").Wrap(err)
	}
	return srv, nil
}

// Handler returns the HTTP handler of the web interface.
func (srv *Service) Handler() http.Handler {
	return srv.web.Handler
}

// Start the service (worker and web server).
func (srv *Service) Start() error {
	if srv.client == nil || srv.web == nil {
		return oops.Code("SERVICE_INVALID").Errorf("service not initialised; use NewService")
	}
	srv.log.Info("Starting worker")
	srv.worker.Start()

	srv.log.Info("Starting web service", "addr", srv.web.Addr, "api", srv.client.Base())
	srv.web.Start()
	srv.log.Info("Web server started")
	return nil
}

// WaitForInterrupt blocks until the service receives an interrupt signal
// (SIGINT or SIGTERM).
func (srv *Service) WaitForInterrupt() {
	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, os.Interrupt, syscall.SIGTERM)
	<-sigchan
	signal.Stop(sigchan)
}

// Stop the service by gracefully shutting down the web service, stopping the
// worker pool, and closing the database connection, in that order.
func (srv *Service) Stop() {
	srv.log.Info("Stopping web service")
	srv.web.Stop()

	srv.log.Info("Stopping worker queue")
	srv.worker.Stop()

	srv.closeDB()
	srv.log.Info("Service stopped")
}

func (srv *Service) closeDB() {
	if srv.db == nil {
		return
	}
	srv.log.Info("Closing database connection")
	if err := srv.db.Close(); err != nil {
		srv.log.Error("Error closing database", "error", err)
	}
	srv.db = nil
}
