package main

import (
	"context"
	"fmt"
	"os"

	"github.com/osa911/contactrelay/internal/config"
	"github.com/osa911/contactrelay/internal/logging"
	"github.com/osa911/contactrelay/internal/version"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "contactrelay",
	Short: "Contact form API that relays submissions over SMTP",
	Long: `contactrelay accepts contact form submissions on POST /api/contact and
relays each one as a plain-text email through the configured SMTP server.

Configuration is read from the environment (and optional .env files) once at
start-up. Running without a subcommand starts the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Info())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, smtpCheckCmd, versionCmd)
}

// loadRuntime reads configuration and initializes the process-wide logger
func loadRuntime() (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logConfig := logging.DefaultConfig()
	logConfig.Level = cfg.LogLevel
	logConfig.File = cfg.LogFile
	if err := logging.Init(logConfig); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, logging.Get(), nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
