package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"moneyflow/internal/backup"
	"moneyflow/internal/storage"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a full JSON snapshot of the database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := storage.Migrate(cfg.DBPath); err != nil {
			return err
		}
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		raw, err := backup.NewCodec(store).ExportJSON(cmd.Context())
		if err != nil {
			return err
		}

		if exportOut == "" || exportOut == "-" {
			_, err = cmd.OutOrStdout().Write(append(raw, '\n'))
			return err
		}
		if err := os.WriteFile(exportOut, raw, 0644); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		fmt.Printf("snapshot written to %s\n", exportOut)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <snapshot.json>",
	Short: "Replace the database with a JSON snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read snapshot: %w", err)
		}

		if err := storage.Migrate(cfg.DBPath); err != nil {
			return err
		}
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		return backup.NewCodec(store).ImportJSON(cmd.Context(), raw)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default: stdout)")
}
