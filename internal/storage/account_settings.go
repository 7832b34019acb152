package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"moneyflow/internal/core"
)

// AccountSettingsRepo is the repository for the account_settings table,
// exactly one row per account (unique account_id, cascades with the account).
type AccountSettingsRepo struct {
	store *Store
}

func NewAccountSettings(store *Store) *AccountSettingsRepo {
	return &AccountSettingsRepo{store: store}
}

const accountSettingsColumns = "id, account_id, theme_mode, currency, created_at, updated_at"

// Create inserts the settings row for an account, falling back to light
// theme and the default currency when the input leaves them empty. A second
// row for the same account violates the unique constraint.
func (r *AccountSettingsRepo) Create(ctx context.Context, in core.NewAccountSettings) (*core.AccountSettings, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	theme := in.ThemeMode
	if theme == "" {
		theme = core.ThemeLight
	}
	currency := in.Currency
	if currency == "" {
		currency = core.DefaultCurrency
	}

	now := nowUnix()
	_, err := r.store.db.ExecContext(ctx,
		"INSERT INTO account_settings (account_id, theme_mode, currency, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		in.AccountID, theme, currency, now, now)
	if err != nil {
		return nil, wrap("create account settings", err)
	}

	settings, err := r.GetByAccountID(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, fmt.Errorf("create account settings for account %d: %w", in.AccountID, ErrNotFound)
	}
	return settings, nil
}

func (r *AccountSettingsRepo) GetByAccountID(ctx context.Context, accountID int64) (*core.AccountSettings, error) {
	row := r.store.db.QueryRowContext(ctx,
		"SELECT "+accountSettingsColumns+" FROM account_settings WHERE account_id = ?", accountID)

	var s core.AccountSettings
	err := row.Scan(&s.ID, &s.AccountID, &s.ThemeMode, &s.Currency, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("get account settings", err)
	}
	return &s, nil
}

// Update is keyed by account id, matching how callers address settings.
func (r *AccountSettingsRepo) Update(ctx context.Context, in core.AccountSettingsUpdate) (*core.AccountSettings, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var set setClause
	if in.ThemeMode.IsSet() {
		set.add("theme_mode", in.ThemeMode.Arg())
	}
	if in.Currency.IsSet() {
		set.add("currency", in.Currency.Arg())
	}
	if set.empty() {
		return r.GetByAccountID(ctx, in.AccountID)
	}
	set.add("updated_at", nowUnix())

	args := append(set.args, in.AccountID)
	if _, err := r.store.db.ExecContext(ctx,
		"UPDATE account_settings SET "+set.sql()+" WHERE account_id = ?", args...); err != nil {
		return nil, wrap("update account settings", err)
	}
	return r.GetByAccountID(ctx, in.AccountID)
}

// Delete removes an account's settings row; normally the cascade on account
// deletion does this, the explicit form exists for manual cleanup.
func (r *AccountSettingsRepo) Delete(ctx context.Context, accountID int64) error {
	if _, err := r.store.db.ExecContext(ctx,
		"DELETE FROM account_settings WHERE account_id = ?", accountID); err != nil {
		return wrap("delete account settings", err)
	}
	return nil
}
