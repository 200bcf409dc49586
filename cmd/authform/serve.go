package main

import (
	"github.com/G-Node/authform/authform"
	"github.com/spf13/cobra"
)

type serveConfig struct {
	port   uint16
	dbPath string
}

// NewServeCmd creates the serve subcommand.
func NewServeCmd(flags *globalFlags) *cobra.Command {
	cfg := new(serveConfig)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sign-in and sign-up forms as web pages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, flags, cfg)
		},
	}
	cmd.Flags().Uint16Var(&cfg.port, "port", 0, "port of the web interface (default $AUTHFORM_PORT)")
	cmd.Flags().StringVar(&cfg.dbPath, "db", "", "sqlite file logging submission attempts (default $AUTHFORM_DB_PATH)")
	return cmd
}

func runServe(cmd *cobra.Command, flags *globalFlags, sc *serveConfig) error {
	cfg, logger, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = sc.port
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath = sc.dbPath
	}

	srv, err := authform.NewService(cfg, logger)
	if err != nil {
		return err
	}
	if err := srv.Start(); err != nil {
		return err
	}
	defer srv.Stop()
	srv.WaitForInterrupt()
	return nil
}
