package backup

import (
	"context"
	"fmt"

	"moneyflow/internal/core"
)

// Whole-table reads for the export. The repositories list per account; the
// snapshot wants every row regardless of owner, ordered by id for a stable
// file diff between exports.

func (c *Codec) allTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := c.store.DB().QueryContext(ctx,
		`SELECT id, account_id, category_id, type, amount, description,
		        transaction_date, transaction_time, created_at, updated_at
		 FROM transactions ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("export transactions: %w", err)
	}
	defer rows.Close()

	var txns []core.Transaction
	for rows.Next() {
		var t core.Transaction
		if err := rows.Scan(&t.ID, &t.AccountID, &t.CategoryID, &t.Type, &t.Amount,
			&t.Description, &t.TransactionDate, &t.TransactionTime, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("export transactions: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("export transactions: %w", err)
	}
	return txns, nil
}

func (c *Codec) allCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := c.store.DB().QueryContext(ctx,
		"SELECT id, account_id, name, type, created_at, updated_at FROM categories ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("export categories: %w", err)
	}
	defer rows.Close()

	var categories []core.Category
	for rows.Next() {
		var cat core.Category
		if err := rows.Scan(&cat.ID, &cat.AccountID, &cat.Name, &cat.Type, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			return nil, fmt.Errorf("export categories: %w", err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("export categories: %w", err)
	}
	return categories, nil
}

func (c *Codec) allAccountSettings(ctx context.Context) ([]core.AccountSettings, error) {
	rows, err := c.store.DB().QueryContext(ctx,
		"SELECT id, account_id, theme_mode, currency, created_at, updated_at FROM account_settings ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("export account settings: %w", err)
	}
	defer rows.Close()

	var settings []core.AccountSettings
	for rows.Next() {
		var s core.AccountSettings
		if err := rows.Scan(&s.ID, &s.AccountID, &s.ThemeMode, &s.Currency, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("export account settings: %w", err)
		}
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("export account settings: %w", err)
	}
	return settings, nil
}
