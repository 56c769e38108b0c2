package models

// Account is the persisted form of a ledger account. Balances are stored as
// a JSON map of fixed-point decimal strings keyed by currency code.
type Account struct {
	AccountID   string            `db:"account_id"`
	TenantID    string            `db:"tenant_id"`
	Kind        string            `db:"kind"`
	DisplayName string            `db:"display_name"`
	Balances    map[string]string `db:"balances_json"`
	Munferit    bool              `db:"munferit"`
	Archived    bool              `db:"archived"`
	AuditFields
}
