package cmd

import (
	"github.com/example/aihub/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		// Connect creates any missing tables.
		db, err := database.Connect(cfg.DBType, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		logger.Info("schema ready", "db_type", cfg.DBType)
		return nil
	},
}
