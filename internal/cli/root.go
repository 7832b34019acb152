// Package cli wires the admin command tree: schema migration, development
// reset and the JSON backup import/export flows.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"moneyflow/internal/config"
	"moneyflow/internal/log"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "moneyflow",
	Short: "Personal finance tracker maintenance tool",
	Long:  "Manages the moneyflow database: schema migrations, resets and JSON backups.",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// .env is optional, for local development only.
		_ = godotenv.Load()

		cfg = config.Load()
		if err := cfg.Validate(); err != nil {
			return err
		}

		logCfg := log.DefaultConfig()
		logCfg.Level = cfg.LogLevel
		log.SetDefault(log.New(logCfg))
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
