package storage

import (
	"context"
	"errors"
	"testing"

	"moneyflow/internal/core"
)

func TestAccountCreateAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	desc := "daily spending"
	account, err := NewAccounts(store).Create(ctx, core.NewAccount{Name: "Cash", Description: &desc})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if account.ID <= 0 {
		t.Fatalf("expected generated id, got %d", account.ID)
	}
	if account.Name != "Cash" {
		t.Fatalf("expected name Cash, got %q", account.Name)
	}
	if account.Description == nil || *account.Description != desc {
		t.Fatalf("expected description %q, got %v", desc, account.Description)
	}
	if account.CreatedAt == 0 || account.UpdatedAt == 0 {
		t.Fatal("timestamps should be set")
	}

	got, err := NewAccounts(store).GetByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.ID != account.ID {
		t.Fatalf("expected row back, got %+v", got)
	}
}

func TestAccountCreateValidates(t *testing.T) {
	store := newTestStore(t)

	_, err := NewAccounts(store).Create(context.Background(), core.NewAccount{Name: "   "})
	if !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestAccountGetByIDMissingIsNil(t *testing.T) {
	store := newTestStore(t)

	got, err := NewAccounts(store).GetByID(context.Background(), 4242)
	if err != nil {
		t.Fatalf("missing id should not error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestAccountGetAllOldestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := seedAccount(t, store, "First")
	seedAccount(t, store, "Second")
	third := seedAccount(t, store, "Third")

	all, err := NewAccounts(store).GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 accounts, got %d", len(all))
	}
	if all[0].ID != first.ID || all[2].ID != third.ID {
		t.Fatalf("expected creation order, got %v, %v, %v", all[0].Name, all[1].Name, all[2].Name)
	}

	primary, err := NewAccounts(store).GetFirst(ctx)
	if err != nil {
		t.Fatalf("get first: %v", err)
	}
	if primary == nil || primary.ID != first.ID {
		t.Fatalf("expected oldest account as primary, got %+v", primary)
	}
}

func TestAccountGetFirstEmptyIsNil(t *testing.T) {
	store := newTestStore(t)

	got, err := NewAccounts(store).GetFirst(context.Background())
	if err != nil {
		t.Fatalf("get first: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil on empty table, got %+v", got)
	}
}

func TestAccountPartialUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	account := seedAccount(t, store, "Cash")

	updated, err := NewAccounts(store).Update(ctx, core.AccountUpdate{
		ID:          account.ID,
		Description: core.Set("only this changes"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Cash" {
		t.Fatalf("name should be untouched, got %q", updated.Name)
	}
	if updated.Description == nil || *updated.Description != "only this changes" {
		t.Fatalf("description not updated: %v", updated.Description)
	}
	if updated.UpdatedAt < account.UpdatedAt {
		t.Fatal("updated_at went backwards")
	}

	// Explicit NULL clears the column.
	updated, err = NewAccounts(store).Update(ctx, core.AccountUpdate{
		ID:          account.ID,
		Description: core.Null[string](),
	})
	if err != nil {
		t.Fatalf("null update: %v", err)
	}
	if updated.Description != nil {
		t.Fatalf("expected cleared description, got %q", *updated.Description)
	}
}

func TestAccountUpdateNoFieldsIsFetch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	account := seedAccount(t, store, "Cash")

	got, err := NewAccounts(store).Update(ctx, core.AccountUpdate{ID: account.ID})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got == nil || got.UpdatedAt != account.UpdatedAt {
		t.Fatalf("no-op update should just fetch, got %+v", got)
	}
}

func TestAccountUpdateMissingIsNil(t *testing.T) {
	store := newTestStore(t)

	got, err := NewAccounts(store).Update(context.Background(), core.AccountUpdate{
		ID:   999,
		Name: core.Set("Ghost"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing id, got %+v", got)
	}
}

func TestAccountDeleteAbsentSucceeds(t *testing.T) {
	store := newTestStore(t)

	if err := NewAccounts(store).Delete(context.Background(), 999); err != nil {
		t.Fatalf("deleting an absent id should succeed: %v", err)
	}
}

func TestAccountCascadeDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	account := seedAccount(t, store, "Cash")

	category, err := NewCategories(store).Create(ctx, core.NewCategory{
		AccountID: account.ID, Name: "Food", Type: core.Expense,
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := NewTransactions(store).Create(ctx, core.NewTransaction{
		AccountID:       account.ID,
		CategoryID:      &category.ID,
		Type:            core.Expense,
		Amount:          120000,
		TransactionDate: 1704067200,
		TransactionTime: "09:30",
	}); err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	if _, err := NewAccountSettings(store).Create(ctx, core.NewAccountSettings{AccountID: account.ID}); err != nil {
		t.Fatalf("create settings: %v", err)
	}
	if _, err := NewActiveAccount(store).Replace(ctx, account.ID); err != nil {
		t.Fatalf("set active: %v", err)
	}

	if err := NewAccounts(store).Delete(ctx, account.ID); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	// No orphans anywhere.
	for _, q := range []string{
		"SELECT COUNT(*) FROM categories",
		"SELECT COUNT(*) FROM transactions",
		"SELECT COUNT(*) FROM account_settings",
		"SELECT COUNT(*) FROM active_account",
	} {
		var n int64
		if err := store.DB().QueryRowContext(ctx, q).Scan(&n); err != nil {
			t.Fatalf("%s: %v", q, err)
		}
		if n != 0 {
			t.Fatalf("expected cascade to clear rows, %q returned %d", q, n)
		}
	}
}
