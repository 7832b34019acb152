package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"moneyflow/internal/storage"
)

var migrateRollback bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if migrateRollback {
			if err := storage.Rollback(cfg.DBPath); err != nil {
				return err
			}
			slog.Info("Rolled back one schema version", "path", cfg.DBPath)
			return nil
		}

		if err := storage.Migrate(cfg.DBPath); err != nil {
			return err
		}
		slog.Info("Schema up to date", "path", cfg.DBPath)
		return nil
	},
}

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop every table, index and trigger (development only)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !resetForce {
			return fmt.Errorf("reset destroys all data; re-run with --force")
		}

		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		return store.Reset(cmd.Context())
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the applied schema version and row counts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		version, dirty, err := storage.SchemaVersion(cfg.DBPath)
		if err != nil {
			return err
		}
		fmt.Printf("database:       %s\n", cfg.DBPath)
		fmt.Printf("schema version: %d (dirty: %v)\n", version, dirty)
		if version == 0 {
			return nil
		}

		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := cmd.Context()
		accounts, err := storage.NewAccounts(store).Count(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("accounts:       %d\n", accounts)

		all, err := storage.NewAccounts(store).GetAll(ctx)
		if err != nil {
			return err
		}
		for _, a := range all {
			txns, err := storage.NewTransactions(store).CountByAccountID(ctx, a.ID)
			if err != nil {
				return err
			}
			cats, err := storage.NewCategories(store).CountByAccountID(ctx, a.ID)
			if err != nil {
				return err
			}
			fmt.Printf("  %-20s transactions=%d categories=%d\n", a.Name, txns, cats)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "roll back the latest schema version")
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "confirm dropping all data")
}
