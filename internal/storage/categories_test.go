package storage

import (
	"context"
	"errors"
	"testing"

	"moneyflow/internal/core"
)

func seedCategory(t *testing.T, store *Store, accountID int64, name string, typ core.TransactionType) *core.Category {
	t.Helper()
	category, err := NewCategories(store).Create(context.Background(), core.NewCategory{
		AccountID: accountID, Name: name, Type: typ,
	})
	if err != nil {
		t.Fatalf("seed category %q: %v", name, err)
	}
	return category
}

func TestCategoryUniquePerAccountNameType(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	account := seedAccount(t, store, "Cash")
	repo := NewCategories(store)

	seedCategory(t, store, account.ID, "Food", core.Expense)

	exists, err := repo.Exists(ctx, account.ID, "Food", core.Expense)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Fatal("exists should report the duplicate before insert")
	}

	_, err = repo.Create(ctx, core.NewCategory{AccountID: account.ID, Name: "Food", Type: core.Expense})
	if !errors.Is(err, ErrConstraint) {
		t.Fatalf("duplicate triple should be a constraint violation, got %v", err)
	}

	// Same name under a different type or account is allowed.
	if _, err := repo.Create(ctx, core.NewCategory{AccountID: account.ID, Name: "Food", Type: core.Income}); err != nil {
		t.Fatalf("same name, different type: %v", err)
	}
	other := seedAccount(t, store, "Bank")
	if _, err := repo.Create(ctx, core.NewCategory{AccountID: other.ID, Name: "Food", Type: core.Expense}); err != nil {
		t.Fatalf("same name, different account: %v", err)
	}
}

func TestCategoryForeignKeyEnforced(t *testing.T) {
	store := newTestStore(t)

	_, err := NewCategories(store).Create(context.Background(), core.NewCategory{
		AccountID: 4242, Name: "Orphan", Type: core.Expense,
	})
	if !errors.Is(err, ErrConstraint) {
		t.Fatalf("unknown account should be a constraint violation, got %v", err)
	}
}

func TestCategoryGetByType(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	account := seedAccount(t, store, "Cash")

	food := seedCategory(t, store, account.ID, "Food", core.Expense)
	rent := seedCategory(t, store, account.ID, "Rent", core.Expense)
	seedCategory(t, store, account.ID, "Salary", core.Income)

	expenses, err := NewCategories(store).GetByType(ctx, account.ID, core.Expense)
	if err != nil {
		t.Fatalf("get by type: %v", err)
	}
	if len(expenses) != 2 {
		t.Fatalf("expected 2 expense categories, got %d", len(expenses))
	}
	if expenses[0].ID != food.ID || expenses[1].ID != rent.ID {
		t.Fatalf("expected creation order, got %q then %q", expenses[0].Name, expenses[1].Name)
	}

	all, err := NewCategories(store).GetByAccountID(ctx, account.ID)
	if err != nil {
		t.Fatalf("get by account: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(all))
	}

	n, err := NewCategories(store).CountByAccountID(ctx, account.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected count 3, got %d", n)
	}
}

func TestCategoryRename(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	account := seedAccount(t, store, "Cash")
	category := seedCategory(t, store, account.ID, "Food", core.Expense)

	updated, err := NewCategories(store).Update(ctx, core.CategoryUpdate{
		ID:   category.ID,
		Name: core.Set("Groceries"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Groceries" {
		t.Fatalf("expected rename, got %q", updated.Name)
	}
	if updated.Type != core.Expense || updated.AccountID != account.ID {
		t.Fatal("rename must not touch other columns")
	}
}
