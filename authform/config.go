package authform

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/samber/oops"
)

// Config containing all the configuration values for a service.
type Config struct {
	// Base endpoint of the remote authentication API.
	ServerEndpoint string `env:"AUTHFORM_SERVER_ENDPOINT" envDefault:"http://localhost:1337"`
	// Port of the web interface.
	Port uint16 `env:"AUTHFORM_PORT" envDefault:"3000"`
	// Path of the sqlite file storing submission attempts.  Empty disables
	// the attempt log.
	DBPath string `env:"AUTHFORM_DB_PATH" envDefault:"./authform.db"`
	// Number of concurrent submissions and length of the waiting queue.
	Workers     int `env:"AUTHFORM_WORKERS" envDefault:"4"`
	QueueLength int `env:"AUTHFORM_QUEUE_LENGTH" envDefault:"100"`
	// Per-request timeout of submissions to the remote API.  It bounds how
	// long a hung upstream holds a web handler and a worker slot.  Zero
	// means no timeout.
	RequestTimeout time.Duration `env:"AUTHFORM_REQUEST_TIMEOUT" envDefault:"10s"`
	LogFormat      string        `env:"AUTHFORM_LOG_FORMAT" envDefault:"text"`
	LogLevel       string        `env:"AUTHFORM_LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads the configuration from the environment, applying defaults
// for unset variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, oops.Code("CONFIG_INVALID").Wrapf(err, "parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (cfg Config) Validate() error {
	if cfg.ServerEndpoint == "" {
		return oops.Code("CONFIG_INVALID").Errorf("server endpoint is required")
	}
	if cfg.Workers < 0 || cfg.QueueLength < 0 {
		return oops.Code("CONFIG_INVALID").With("workers", cfg.Workers).With("queue", cfg.QueueLength).
			Errorf("worker and queue sizes must not be negative")
	}
	if cfg.RequestTimeout < 0 {
		return oops.Code("CONFIG_INVALID").Errorf("request timeout must not be negative")
	}
	return nil
}
