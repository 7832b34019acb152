// Package backup implements the versioned JSON snapshot: a full export of
// the database and the all-or-nothing replace import. This is a cold,
// exclusive whole-database swap, not a sync protocol.
package backup

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"moneyflow/internal/core"
	"moneyflow/internal/storage"
)

// Version is the snapshot format version. Imports with a different version
// proceed with a warning; compatibility is best effort.
const Version = "1.0.0"

var (
	// ErrInvalidFormat marks a snapshot missing its version or data fields.
	// Raised before any mutation begins.
	ErrInvalidFormat = errors.New("invalid backup format")

	// ErrImport marks a failure after the replace transaction began; the
	// rollback has already run and the database is unchanged.
	ErrImport = errors.New("import failed")
)

// Snapshot is the backup wire format.
type Snapshot struct {
	Version    string `json:"version"`
	ExportDate string `json:"exportDate"`
	Data       *Data  `json:"data"`
}

// Data holds every exported table. ActiveAccount is intentionally absent:
// it is derived state and the import's cascade clears it.
type Data struct {
	Accounts        []core.Account         `json:"accounts"`
	Transactions    []core.Transaction     `json:"transactions"`
	Categories      []core.Category        `json:"categories"`
	AccountSettings []core.AccountSettings `json:"accountSettings"`
	AppSettings     *core.AppSettings      `json:"appSettings"`
}

// Codec reads and writes snapshots through a Store.
type Codec struct {
	store *storage.Store
}

func NewCodec(store *storage.Store) *Codec {
	return &Codec{store: store}
}

// Export reads the full database state into a snapshot.
func (c *Codec) Export(ctx context.Context) (*Snapshot, error) {
	accounts, err := storage.NewAccounts(c.store).GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("export accounts: %w", err)
	}

	transactions, err := c.allTransactions(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := c.allCategories(ctx)
	if err != nil {
		return nil, err
	}
	accountSettings, err := c.allAccountSettings(ctx)
	if err != nil {
		return nil, err
	}

	appSettings, err := storage.NewAppSettings(c.store).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("export app settings: %w", err)
	}

	snap := &Snapshot{
		Version:    Version,
		ExportDate: time.Now().UTC().Format(time.RFC3339),
		Data: &Data{
			Accounts:        accounts,
			Transactions:    transactions,
			Categories:      categories,
			AccountSettings: accountSettings,
			AppSettings:     appSettings,
		},
	}

	slog.InfoContext(ctx, "Database exported",
		"accounts", len(accounts), "transactions", len(transactions), "categories", len(categories))
	return snap, nil
}

// ExportJSON serializes a snapshot as indented JSON.
func (c *Codec) ExportJSON(ctx context.Context) ([]byte, error) {
	snap, err := c.Export(ctx)
	if err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return out, nil
}

// ImportJSON parses and imports a snapshot.
func (c *Codec) ImportJSON(ctx context.Context, raw []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return fmt.Errorf("parse snapshot: %w: %w", ErrInvalidFormat, err)
	}
	return c.Import(ctx, &snap)
}

// Import replaces the whole database with the snapshot's contents inside one
// transaction: existing rows are deleted child-first, snapshot rows are
// re-inserted with their original primary keys, and the app_settings
// singleton is updated in place. Any failure rolls back, leaving the
// database exactly as it was.
func (c *Codec) Import(ctx context.Context, snap *Snapshot) error {
	if err := validate(snap); err != nil {
		return err
	}
	if snap.Version != Version {
		slog.WarnContext(ctx, "Backup version mismatch, importing anyway",
			"snapshot", snap.Version, "current", Version)
	}

	tx, err := c.store.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}

	if err := c.replace(ctx, tx, snap.Data); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.ErrorContext(ctx, "Rollback after failed import", "error", rbErr)
		}
		return fmt.Errorf("%w: %w", ErrImport, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w: %w", ErrImport, err)
	}

	slog.InfoContext(ctx, "Database imported",
		"accounts", len(snap.Data.Accounts),
		"transactions", len(snap.Data.Transactions),
		"categories", len(snap.Data.Categories))
	return nil
}

func validate(snap *Snapshot) error {
	if snap == nil || snap.Version == "" || snap.Data == nil {
		return fmt.Errorf("%w: missing version or data", ErrInvalidFormat)
	}
	return nil
}

func (c *Codec) replace(ctx context.Context, tx *sql.Tx, data *Data) error {
	// Children before parents, to keep the foreign keys satisfied at every
	// step. Deleting accounts also cascades any active_account row.
	clear := []string{
		"DELETE FROM transactions",
		"DELETE FROM categories",
		"DELETE FROM account_settings",
		"DELETE FROM accounts",
	}
	for _, stmt := range clear {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear existing data: %w", err)
		}
	}

	for _, a := range data.Accounts {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO accounts (id, name, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			a.ID, a.Name, a.Description, a.CreatedAt, a.UpdatedAt); err != nil {
			return fmt.Errorf("import account %d: %w", a.ID, err)
		}
	}

	for _, cat := range data.Categories {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO categories (id, account_id, name, type, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			cat.ID, cat.AccountID, cat.Name, cat.Type, cat.CreatedAt, cat.UpdatedAt); err != nil {
			return fmt.Errorf("import category %d: %w", cat.ID, err)
		}
	}

	for _, t := range data.Transactions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO transactions
			   (id, account_id, category_id, type, amount, description,
			    transaction_date, transaction_time, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.AccountID, t.CategoryID, t.Type, t.Amount, t.Description,
			t.TransactionDate, t.TransactionTime, t.CreatedAt, t.UpdatedAt); err != nil {
			return fmt.Errorf("import transaction %d: %w", t.ID, err)
		}
	}

	for _, s := range data.AccountSettings {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO account_settings (id, account_id, theme_mode, currency, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			s.ID, s.AccountID, s.ThemeMode, s.Currency, s.CreatedAt, s.UpdatedAt); err != nil {
			return fmt.Errorf("import account settings %d: %w", s.ID, err)
		}
	}

	if s := data.AppSettings; s != nil {
		if _, err := tx.ExecContext(ctx,
			"UPDATE app_settings SET language = ?, app_password = ?, is_password_enabled = ?, updated_at = ? WHERE id = 1",
			s.Language, s.AppPassword, s.IsPasswordEnabled, s.UpdatedAt); err != nil {
			return fmt.Errorf("import app settings: %w", err)
		}
	}

	return nil
}
