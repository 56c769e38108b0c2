package models

import "time"

// RateSet is the persisted form of a currency rate set. Rates are stored as
// a JSON map of fixed-point decimal strings, never floats, to avoid rounding
// drift across repeated postings.
type RateSet struct {
	TenantID    string            `db:"tenant_id"`
	Scope       string            `db:"scope"`
	Rates       map[string]string `db:"rates_json"`
	Locked      bool              `db:"locked"`
	Source      string            `db:"source"`
	LastUpdated time.Time         `db:"last_updated"`
}
