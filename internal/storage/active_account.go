package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"moneyflow/internal/core"
)

// ActiveAccountRepo tracks which account is currently selected. The table
// holds at most one row; Replace preserves that invariant.
type ActiveAccountRepo struct {
	store *Store
}

func NewActiveAccount(store *Store) *ActiveAccountRepo {
	return &ActiveAccountRepo{store: store}
}

// Replace points the singleton at accountID: updates the existing row in
// place if there is one, inserts the first row otherwise. The existence check
// and the write share one transaction so the invariant holds even if callers
// ever stop serializing.
func (r *ActiveAccountRepo) Replace(ctx context.Context, accountID int64) (*core.ActiveAccount, error) {
	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("replace active account: %w", err)
	}
	defer tx.Rollback()

	now := nowUnix()
	res, err := tx.ExecContext(ctx,
		"UPDATE active_account SET account_id = ?, updated_at = ?", accountID, now)
	if err != nil {
		return nil, wrap("replace active account", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("replace active account: %w", err)
	}
	if affected == 0 {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO active_account (account_id, updated_at) VALUES (?, ?)", accountID, now); err != nil {
			return nil, wrap("replace active account", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("replace active account: %w", err)
	}
	return r.Get(ctx)
}

// Get returns the active account pointer, or nil when none has been set.
func (r *ActiveAccountRepo) Get(ctx context.Context) (*core.ActiveAccount, error) {
	row := r.store.db.QueryRowContext(ctx,
		"SELECT account_id, updated_at FROM active_account LIMIT 1")

	var a core.ActiveAccount
	err := row.Scan(&a.AccountID, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("get active account", err)
	}
	return &a, nil
}

// Count exists for the singleton discipline tests.
func (r *ActiveAccountRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM active_account").Scan(&n); err != nil {
		return 0, wrap("count active account", err)
	}
	return n, nil
}
