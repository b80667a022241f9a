// Package cmd implements the aihub command line.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/example/aihub/internal/config"
	"github.com/example/aihub/internal/logging"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "1.0.0"

var (
	envFile     string
	dbType      string
	databaseURL string

	rootCmd = &cobra.Command{
		Use:           "aihub",
		Short:         "AI Mastery Hub learning tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().StringVar(&dbType, "db-type", "", "database driver, sqlite or postgres (overrides DB_TYPE)")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "db", "", "database DSN (overrides DATABASE_URL)")
	rootCmd.Version = Version
	rootCmd.AddCommand(serveCmd, importCmd, migrateCmd, digestCmd)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// loadConfig reads the configuration and applies flag overrides.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, err
	}
	if dbType != "" {
		cfg.DBType = dbType
	}
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	return cfg, logger, nil
}
