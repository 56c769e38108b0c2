package domain

import (
	"github.com/shopspring/decimal"
)

// AccountKind distinguishes cari (corporate) running accounts from
// individual ("münferit") customers.
type AccountKind string

const (
	Corporate  AccountKind = "CORPORATE"
	Individual AccountKind = "INDIVIDUAL"
)

// IsValid reports whether the kind is a known account kind.
func (k AccountKind) IsValid() bool {
	return k == Corporate || k == Individual
}

// IndividualBillingMode names the policy applied when a payment is recorded
// against an individual customer.
type IndividualBillingMode string

// IndividualBillingAliasAccount is the only supported billing mode: payments
// recorded against an individual are posted to the tenant's shared münferit
// corporate account, with the individual's name carried in the transaction
// description. The individual account itself never holds a balance.
const IndividualBillingAliasAccount IndividualBillingMode = "ALIAS_ACCOUNT"

// LedgerAccount represents a running-balance entity holding one signed
// balance per currency. Positive conventionally means "customer owes us".
type LedgerAccount struct {
	AccountID   string                       `json:"accountID"`
	TenantID    string                       `json:"tenantID"`
	Kind        AccountKind                  `json:"kind"`
	DisplayName string                       `json:"displayName"`
	Balances    map[Currency]decimal.Decimal `json:"balances"`
	// Munferit marks the distinguished corporate account that absorbs
	// individual-customer payments. One per tenant.
	Munferit bool `json:"munferit"`
	// Archived is a logical delete; accounts with transaction history are
	// never hard-deleted so statements stay reconstructible.
	Archived bool `json:"archived"`
	AuditFields
}

// BalanceFor returns the signed balance in one currency, zero when absent.
func (a LedgerAccount) BalanceFor(c Currency) decimal.Decimal {
	if a.Balances == nil {
		return decimal.Zero
	}
	return a.Balances[c]
}

// ZeroBalances returns a balances map with every supported currency at zero.
func ZeroBalances() map[Currency]decimal.Decimal {
	balances := make(map[Currency]decimal.Decimal, len(SupportedCurrencies))
	for _, c := range SupportedCurrencies {
		balances[c] = decimal.Zero
	}
	return balances
}
