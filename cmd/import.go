package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import lesson items from an Excel or CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		a, err := newApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.importer.ImportFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		logger.Info("import finished", "file", args[0], "imported", result.Imported, "errors", len(result.Errors))

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}
