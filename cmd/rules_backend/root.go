package main

import (
	"log/slog"
	"os"

	"github.com/SscSPs/bank_rules_app/internal/platform/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rules_backend",
	Short: "Bank rule maintenance and manual posting backend",
	Long: `rules_backend serves the rule editor API and the manual posting flow
for imported bank transactions. Run "serve" to start the HTTP API and
"migrate" to manage the database schema.`,
	SilenceUsage: true,
}

// setup creates the JSON logger and loads configuration for a command.
func setup() (*slog.Logger, *config.Config, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		return nil, nil, err
	}
	return logger, cfg, nil
}
