package main

import (
	"log/slog"

	"github.com/G-Node/authform/authform"
	"github.com/G-Node/authform/authform/logging"
	"github.com/spf13/cobra"
)

// globalFlags are available to all subcommands and override the environment.
type globalFlags struct {
	server    string
	logFormat string
	logLevel  string
}

// NewRootCmd creates the root command for the authform CLI.
func NewRootCmd() *cobra.Command {
	flags := new(globalFlags)
	cmd := &cobra.Command{
		Use:   "authform",
		Short: "Sign-in and sign-up forms for a remote authentication API",
		Long: `authform validates sign-in and sign-up forms and submits them to a
remote authentication API.  The forms are served as web pages (serve) or
filled in on the terminal (login, register).`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flags.server, "server", "", "base endpoint of the authentication API (default $AUTHFORM_SERVER_ENDPOINT)")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "log format: text or json (default $AUTHFORM_LOG_FORMAT)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error (default $AUTHFORM_LOG_LEVEL)")

	cmd.AddCommand(NewServeCmd(flags))
	cmd.AddCommand(NewLoginCmd(flags))
	cmd.AddCommand(NewRegisterCmd(flags))

	return cmd
}

// loadConfig reads the configuration from the environment and applies the
// global flags on top.
func loadConfig(cmd *cobra.Command, flags *globalFlags) (authform.Config, *slog.Logger, error) {
	cfg, err := authform.LoadConfig()
	if err != nil {
		return authform.Config{}, nil, err
	}
	if flags.server != "" {
		cfg.ServerEndpoint = flags.server
	}
	if flags.logFormat != "" {
		cfg.LogFormat = flags.logFormat
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	logger := logging.Setup("authform", cfg.LogFormat, cfg.LogLevel, cmd.ErrOrStderr())
	slog.SetDefault(logger)
	return cfg, logger, nil
}
