package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"moneyflow/internal/core"
)

// Transactions is the repository for the transactions table. Lists come back
// most recent first: transaction_date DESC, then transaction_time DESC.
type Transactions struct {
	store *Store
}

func NewTransactions(store *Store) *Transactions {
	return &Transactions{store: store}
}

const transactionColumns = "id, account_id, category_id, type, amount, description, " +
	"transaction_date, transaction_time, created_at, updated_at"

func (r *Transactions) Create(ctx context.Context, in core.NewTransaction) (*core.Transaction, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := nowUnix()
	res, err := r.store.db.ExecContext(ctx,
		`INSERT INTO transactions
		   (account_id, category_id, type, amount, description,
		    transaction_date, transaction_time, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.AccountID, in.CategoryID, in.Type, in.Amount, in.Description,
		in.TransactionDate, in.TransactionTime, now, now)
	if err != nil {
		return nil, wrap("create transaction", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	txn, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, fmt.Errorf("create transaction %d: %w", id, ErrNotFound)
	}

	slog.InfoContext(ctx, "Transaction created",
		"id", txn.ID, "account_id", txn.AccountID, "type", txn.Type, "amount", txn.Amount)
	return txn, nil
}

func (r *Transactions) GetByID(ctx context.Context, id int64) (*core.Transaction, error) {
	row := r.store.db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ?", id)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("get transaction", err)
	}
	return txn, nil
}

func (r *Transactions) GetByAccountID(ctx context.Context, accountID int64) ([]core.Transaction, error) {
	return r.query(ctx,
		"SELECT "+transactionColumns+` FROM transactions
		 WHERE account_id = ?
		 ORDER BY transaction_date DESC, transaction_time DESC`,
		accountID)
}

// GetByDateRange returns the account's transactions with transaction_date in
// [start, end], most recent first.
func (r *Transactions) GetByDateRange(ctx context.Context, accountID, start, end int64) ([]core.Transaction, error) {
	return r.query(ctx,
		"SELECT "+transactionColumns+` FROM transactions
		 WHERE account_id = ? AND transaction_date >= ? AND transaction_date <= ?
		 ORDER BY transaction_date DESC, transaction_time DESC`,
		accountID, start, end)
}

func (r *Transactions) GetByType(ctx context.Context, accountID int64, typ core.TransactionType) ([]core.Transaction, error) {
	return r.query(ctx,
		"SELECT "+transactionColumns+` FROM transactions
		 WHERE account_id = ? AND type = ?
		 ORDER BY transaction_date DESC, transaction_time DESC`,
		accountID, typ)
}

func (r *Transactions) Update(ctx context.Context, in core.TransactionUpdate) (*core.Transaction, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var set setClause
	if in.CategoryID.IsSet() {
		set.add("category_id", in.CategoryID.Arg())
	}
	if in.Type.IsSet() {
		set.add("type", in.Type.Arg())
	}
	if in.Amount.IsSet() {
		set.add("amount", in.Amount.Arg())
	}
	if in.Description.IsSet() {
		set.add("description", in.Description.Arg())
	}
	if in.TransactionDate.IsSet() {
		set.add("transaction_date", in.TransactionDate.Arg())
	}
	if in.TransactionTime.IsSet() {
		set.add("transaction_time", in.TransactionTime.Arg())
	}
	if set.empty() {
		return r.GetByID(ctx, in.ID)
	}
	set.add("updated_at", nowUnix())

	args := append(set.args, in.ID)
	if _, err := r.store.db.ExecContext(ctx,
		"UPDATE transactions SET "+set.sql()+" WHERE id = ?", args...); err != nil {
		return nil, wrap("update transaction", err)
	}
	return r.GetByID(ctx, in.ID)
}

func (r *Transactions) Delete(ctx context.Context, id int64) error {
	if _, err := r.store.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id); err != nil {
		return wrap("delete transaction", err)
	}
	return nil
}

func (r *Transactions) CountByAccountID(ctx context.Context, accountID int64) (int64, error) {
	var n int64
	err := r.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM transactions WHERE account_id = ?", accountID).Scan(&n)
	if err != nil {
		return 0, wrap("count transactions", err)
	}
	return n, nil
}

func (r *Transactions) query(ctx context.Context, q string, args ...any) ([]core.Transaction, error) {
	rows, err := r.store.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, wrap("list transactions", err)
	}
	defer rows.Close()

	var txns []core.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, wrap("list transactions", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list transactions", err)
	}
	return txns, nil
}

func scanTransaction(row interface{ Scan(...any) error }) (*core.Transaction, error) {
	var t core.Transaction
	err := row.Scan(&t.ID, &t.AccountID, &t.CategoryID, &t.Type, &t.Amount,
		&t.Description, &t.TransactionDate, &t.TransactionTime, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
