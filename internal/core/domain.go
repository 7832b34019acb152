package core

import (
	"errors"
	"regexp"
	"strings"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

const (
	DefaultCurrency = "VND"
	DefaultLanguage = "vi"
)

type (
	TransactionType string
	ThemeMode       string

	// Account is the root ownership boundary: categories, transactions and
	// per-account settings all cascade with it. Timestamps are Unix seconds.
	Account struct {
		ID          int64   `json:"id"`
		Name        string  `json:"name"`
		Description *string `json:"description"`
		CreatedAt   int64   `json:"created_at"`
		UpdatedAt   int64   `json:"updated_at"`
	}

	// Category labels transactions; scoped to one account and one
	// transaction type, unique on (account_id, name, type).
	Category struct {
		ID        int64           `json:"id"`
		AccountID int64           `json:"account_id"`
		Name      string          `json:"name"`
		Type      TransactionType `json:"type"`
		CreatedAt int64           `json:"created_at"`
		UpdatedAt int64           `json:"updated_at"`
	}

	// Transaction records a single income or expense movement.
	// TransactionDate is a day-granularity Unix timestamp; the time of day
	// is kept separately as an HH:mm string.
	Transaction struct {
		ID              int64           `json:"id"`
		AccountID       int64           `json:"account_id"`
		CategoryID      *int64          `json:"category_id"`
		Type            TransactionType `json:"type"`
		Amount          float64         `json:"amount"`
		Description     *string         `json:"description"`
		TransactionDate int64           `json:"transaction_date"`
		TransactionTime string          `json:"transaction_time"`
		CreatedAt       int64           `json:"created_at"`
		UpdatedAt       int64           `json:"updated_at"`
	}

	// AccountSettings holds per-account preferences, exactly one row per account.
	AccountSettings struct {
		ID        int64     `json:"id"`
		AccountID int64     `json:"account_id"`
		ThemeMode ThemeMode `json:"theme_mode"`
		Currency  string    `json:"currency"`
		CreatedAt int64     `json:"created_at"`
		UpdatedAt int64     `json:"updated_at"`
	}

	// AppSettings is the process-wide singleton row, id pinned to 1.
	AppSettings struct {
		ID                int64   `json:"id"`
		Language          string  `json:"language"`
		AppPassword       *string `json:"app_password"`
		IsPasswordEnabled int64   `json:"is_password_enabled"`
		CreatedAt         int64   `json:"created_at"`
		UpdatedAt         int64   `json:"updated_at"`
	}

	// ActiveAccount points at the currently selected account; at most one row.
	ActiveAccount struct {
		AccountID int64 `json:"account_id"`
		UpdatedAt int64 `json:"updated_at"`
	}
)

// Input types for create operations. Optional columns are pointers; nil
// inserts SQL NULL (or the schema default where one exists).
type (
	NewAccount struct {
		Name        string
		Description *string
	}

	NewCategory struct {
		AccountID int64
		Name      string
		Type      TransactionType
	}

	NewTransaction struct {
		AccountID       int64
		CategoryID      *int64
		Type            TransactionType
		Amount          float64
		Description     *string
		TransactionDate int64
		TransactionTime string
	}

	NewAccountSettings struct {
		AccountID int64
		ThemeMode ThemeMode // defaults to ThemeLight when empty
		Currency  string    // defaults to DefaultCurrency when empty
	}
)

// Update types for partial updates: only columns that are set are written,
// everything else is left untouched.
type (
	AccountUpdate struct {
		ID          int64
		Name        Opt[string]
		Description Opt[string]
	}

	CategoryUpdate struct {
		ID   int64
		Name Opt[string]
	}

	TransactionUpdate struct {
		ID              int64
		CategoryID      Opt[int64]
		Type            Opt[TransactionType]
		Amount          Opt[float64]
		Description     Opt[string]
		TransactionDate Opt[int64]
		TransactionTime Opt[string]
	}

	AccountSettingsUpdate struct {
		AccountID int64
		ThemeMode Opt[ThemeMode]
		Currency  Opt[string]
	}

	AppSettingsUpdate struct {
		Language          Opt[string]
		AppPassword       Opt[string]
		IsPasswordEnabled Opt[int64]
	}
)

var (
	ErrEmptyName       = errors.New("empty name")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrInvalidTime     = errors.New("invalid time, expected HH:mm")
	ErrInvalidTheme    = errors.New("invalid theme mode")
	ErrInvalidAccount  = errors.New("invalid account id")
	ErrInvalidCategory = errors.New("invalid category id")
)

var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (m ThemeMode) Valid() bool {
	return m == ThemeLight || m == ThemeDark
}

func (a NewAccount) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (c NewCategory) Validate() error {
	if c.AccountID <= 0 {
		return ErrInvalidAccount
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if !c.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

func (t NewTransaction) Validate() error {
	if t.AccountID <= 0 {
		return ErrInvalidAccount
	}
	if t.CategoryID != nil && *t.CategoryID <= 0 {
		return ErrInvalidCategory
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !timeOfDayRe.MatchString(t.TransactionTime) {
		return ErrInvalidTime
	}
	return nil
}

func (s NewAccountSettings) Validate() error {
	if s.AccountID <= 0 {
		return ErrInvalidAccount
	}
	if s.ThemeMode != "" && !s.ThemeMode.Valid() {
		return ErrInvalidTheme
	}
	return nil
}

func (u TransactionUpdate) Validate() error {
	if v, ok := u.Type.Get(); ok && !v.Valid() {
		return ErrInvalidType
	}
	if v, ok := u.Amount.Get(); ok && v <= 0 {
		return ErrInvalidAmount
	}
	if v, ok := u.TransactionTime.Get(); ok && !timeOfDayRe.MatchString(v) {
		return ErrInvalidTime
	}
	return nil
}

func (u AccountSettingsUpdate) Validate() error {
	if v, ok := u.ThemeMode.Get(); ok && !v.Valid() {
		return ErrInvalidTheme
	}
	return nil
}
