package storage

import (
	"context"
	"database/sql"
	"errors"

	"moneyflow/internal/core"
)

// AppSettingsRepo is the repository for the app_settings singleton. The row
// is seeded by the first migration with id pinned to 1; there is no create.
type AppSettingsRepo struct {
	store *Store
}

func NewAppSettings(store *Store) *AppSettingsRepo {
	return &AppSettingsRepo{store: store}
}

const appSettingsColumns = "id, language, app_password, is_password_enabled, created_at, updated_at"

// Get returns the singleton row, or nil when the schema has not been
// initialized yet.
func (r *AppSettingsRepo) Get(ctx context.Context) (*core.AppSettings, error) {
	row := r.store.db.QueryRowContext(ctx,
		"SELECT "+appSettingsColumns+" FROM app_settings WHERE id = 1")

	var s core.AppSettings
	err := row.Scan(&s.ID, &s.Language, &s.AppPassword, &s.IsPasswordEnabled, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("get app settings", err)
	}
	return &s, nil
}

func (r *AppSettingsRepo) Update(ctx context.Context, in core.AppSettingsUpdate) (*core.AppSettings, error) {
	var set setClause
	if in.Language.IsSet() {
		set.add("language", in.Language.Arg())
	}
	if in.AppPassword.IsSet() {
		set.add("app_password", in.AppPassword.Arg())
	}
	if in.IsPasswordEnabled.IsSet() {
		set.add("is_password_enabled", in.IsPasswordEnabled.Arg())
	}
	if set.empty() {
		return r.Get(ctx)
	}
	set.add("updated_at", nowUnix())

	if _, err := r.store.db.ExecContext(ctx,
		"UPDATE app_settings SET "+set.sql()+" WHERE id = 1", set.args...); err != nil {
		return nil, wrap("update app settings", err)
	}
	return r.Get(ctx)
}
