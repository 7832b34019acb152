package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"moneyflow/internal/core"
)

// Categories is the repository for the categories table. Uniqueness of
// (account_id, name, type) is enforced by the schema; Exists is the cheap
// application-level probe in front of it.
type Categories struct {
	store *Store
}

func NewCategories(store *Store) *Categories {
	return &Categories{store: store}
}

const categoryColumns = "id, account_id, name, type, created_at, updated_at"

func (r *Categories) Create(ctx context.Context, in core.NewCategory) (*core.Category, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := nowUnix()
	res, err := r.store.db.ExecContext(ctx,
		"INSERT INTO categories (account_id, name, type, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		in.AccountID, in.Name, in.Type, now, now)
	if err != nil {
		return nil, wrap("create category", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	category, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("create category %d: %w", id, ErrNotFound)
	}

	slog.InfoContext(ctx, "Category created",
		"id", category.ID, "account_id", category.AccountID, "name", category.Name, "type", category.Type)
	return category, nil
}

func (r *Categories) GetByID(ctx context.Context, id int64) (*core.Category, error) {
	row := r.store.db.QueryRowContext(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE id = ?", id)

	category, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("get category", err)
	}
	return category, nil
}

// GetByAccountID returns the account's categories, oldest first.
func (r *Categories) GetByAccountID(ctx context.Context, accountID int64) ([]core.Category, error) {
	return r.query(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE account_id = ? ORDER BY created_at ASC, id ASC",
		accountID)
}

// GetByType returns the account's categories of one transaction type, oldest first.
func (r *Categories) GetByType(ctx context.Context, accountID int64, typ core.TransactionType) ([]core.Category, error) {
	return r.query(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE account_id = ? AND type = ? ORDER BY created_at ASC, id ASC",
		accountID, typ)
}

// Exists probes for a duplicate (account, name, type) triple before an
// insert is attempted. The unique constraint remains the final authority.
func (r *Categories) Exists(ctx context.Context, accountID int64, name string, typ core.TransactionType) (bool, error) {
	var n int64
	err := r.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM categories WHERE account_id = ? AND name = ? AND type = ?",
		accountID, name, typ).Scan(&n)
	if err != nil {
		return false, wrap("category exists", err)
	}
	return n > 0, nil
}

func (r *Categories) Update(ctx context.Context, in core.CategoryUpdate) (*core.Category, error) {
	var set setClause
	if in.Name.IsSet() {
		set.add("name", in.Name.Arg())
	}
	if set.empty() {
		return r.GetByID(ctx, in.ID)
	}
	set.add("updated_at", nowUnix())

	args := append(set.args, in.ID)
	if _, err := r.store.db.ExecContext(ctx,
		"UPDATE categories SET "+set.sql()+" WHERE id = ?", args...); err != nil {
		return nil, wrap("update category", err)
	}
	return r.GetByID(ctx, in.ID)
}

// Delete removes the category; transactions that referenced it keep running
// with their category_id set to NULL by the schema.
func (r *Categories) Delete(ctx context.Context, id int64) error {
	if _, err := r.store.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id); err != nil {
		return wrap("delete category", err)
	}
	return nil
}

func (r *Categories) CountByAccountID(ctx context.Context, accountID int64) (int64, error) {
	var n int64
	err := r.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM categories WHERE account_id = ?", accountID).Scan(&n)
	if err != nil {
		return 0, wrap("count categories", err)
	}
	return n, nil
}

func (r *Categories) query(ctx context.Context, q string, args ...any) ([]core.Category, error) {
	rows, err := r.store.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, wrap("list categories", err)
	}
	defer rows.Close()

	var categories []core.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, wrap("list categories", err)
		}
		categories = append(categories, *category)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list categories", err)
	}
	return categories, nil
}

func scanCategory(row interface{ Scan(...any) error }) (*core.Category, error) {
	var c core.Category
	if err := row.Scan(&c.ID, &c.AccountID, &c.Name, &c.Type, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
