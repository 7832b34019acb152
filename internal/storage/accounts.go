package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"moneyflow/internal/core"
)

// Accounts is the repository for the accounts table.
type Accounts struct {
	store *Store
}

func NewAccounts(store *Store) *Accounts {
	return &Accounts{store: store}
}

const accountColumns = "id, name, description, created_at, updated_at"

// Create inserts a new account and returns the persisted row, re-fetched by
// the generated id. A missing row after a successful insert is an internal
// error, not a nil return.
func (r *Accounts) Create(ctx context.Context, in core.NewAccount) (*core.Account, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := nowUnix()
	res, err := r.store.db.ExecContext(ctx,
		"INSERT INTO accounts (name, description, created_at, updated_at) VALUES (?, ?, ?, ?)",
		in.Name, in.Description, now, now)
	if err != nil {
		return nil, wrap("create account", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	account, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("create account %d: %w", id, ErrNotFound)
	}

	slog.InfoContext(ctx, "Account created", "id", account.ID, "name", account.Name)
	return account, nil
}

// GetByID returns the account or nil when the id has no row.
func (r *Accounts) GetByID(ctx context.Context, id int64) (*core.Account, error) {
	row := r.store.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE id = ?", id)

	account, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("get account", err)
	}
	return account, nil
}

// GetAll returns every account, oldest first.
func (r *Accounts) GetAll(ctx context.Context) ([]core.Account, error) {
	rows, err := r.store.db.QueryContext(ctx,
		"SELECT "+accountColumns+" FROM accounts ORDER BY created_at ASC, id ASC")
	if err != nil {
		return nil, wrap("list accounts", err)
	}
	defer rows.Close()

	var accounts []core.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, wrap("list accounts", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list accounts", err)
	}
	return accounts, nil
}

// GetFirst returns the oldest account, the stable "primary account" pick, or
// nil when no account exists yet.
func (r *Accounts) GetFirst(ctx context.Context) (*core.Account, error) {
	row := r.store.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts ORDER BY created_at ASC, id ASC LIMIT 1")

	account, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("get first account", err)
	}
	return account, nil
}

// Update writes only the fields set on the input, always refreshing
// updated_at. Returns the post-update row, or nil when the id has no row.
// With nothing to change it degrades to a plain fetch.
func (r *Accounts) Update(ctx context.Context, in core.AccountUpdate) (*core.Account, error) {
	var set setClause
	if in.Name.IsSet() {
		set.add("name", in.Name.Arg())
	}
	if in.Description.IsSet() {
		set.add("description", in.Description.Arg())
	}
	if set.empty() {
		return r.GetByID(ctx, in.ID)
	}
	set.add("updated_at", nowUnix())

	args := append(set.args, in.ID)
	if _, err := r.store.db.ExecContext(ctx,
		"UPDATE accounts SET "+set.sql()+" WHERE id = ?", args...); err != nil {
		return nil, wrap("update account", err)
	}
	return r.GetByID(ctx, in.ID)
}

// Delete removes the account and, through the schema's foreign keys, all of
// its categories, transactions and settings. Deleting an absent id succeeds.
func (r *Accounts) Delete(ctx context.Context, id int64) error {
	if _, err := r.store.db.ExecContext(ctx, "DELETE FROM accounts WHERE id = ?", id); err != nil {
		return wrap("delete account", err)
	}
	slog.InfoContext(ctx, "Account deleted", "id", id)
	return nil
}

// Count returns the number of accounts.
func (r *Accounts) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM accounts").Scan(&n); err != nil {
		return 0, wrap("count accounts", err)
	}
	return n, nil
}

func scanAccount(row interface{ Scan(...any) error }) (*core.Account, error) {
	var a core.Account
	if err := row.Scan(&a.ID, &a.Name, &a.Description, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
