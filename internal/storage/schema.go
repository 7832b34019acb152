package storage

// Schema object registry. Creation lives in the embedded migration files;
// the name lists here drive the development drop helpers and keep the two in
// sync by review. Tables are ordered children first so the drops never trip
// over foreign keys.
var (
	schemaTables = []string{
		"active_account",
		"account_settings",
		"transactions",
		"categories",
		"app_settings",
		"accounts",
	}

	schemaIndexes = []string{
		"idx_transactions_account_id",
		"idx_transactions_category_id",
		"idx_transactions_date",
		"idx_transactions_type",
		"idx_categories_account_id",
		"idx_categories_type",
		"idx_account_settings_account_id",
	}

	schemaTriggers = []string{
		"update_accounts_timestamp",
		"update_transactions_timestamp",
		"update_active_account_timestamp",
	}
)

// TableNames returns the managed table names, children first.
func TableNames() []string {
	return append([]string(nil), schemaTables...)
}
