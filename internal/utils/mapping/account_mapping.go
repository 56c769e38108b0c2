package mapping

import (
	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	"github.com/aegeantours/tour_backoffice_app/internal/models"
)

// ToModelAccount converts a domain LedgerAccount to a model Account
func ToModelAccount(d domain.LedgerAccount) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		TenantID:    d.TenantID,
		Kind:        string(d.Kind),
		DisplayName: d.DisplayName,
		Balances:    ToStringAmountMap(d.Balances),
		Munferit:    d.Munferit,
		Archived:    d.Archived,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain LedgerAccount
func ToDomainAccount(m models.Account) (domain.LedgerAccount, error) {
	balances, err := ToDecimalAmountMap(m.Balances)
	if err != nil {
		return domain.LedgerAccount{}, err
	}
	return domain.LedgerAccount{
		AccountID:   m.AccountID,
		TenantID:    m.TenantID,
		Kind:        domain.AccountKind(m.Kind),
		DisplayName: m.DisplayName,
		Balances:    balances,
		Munferit:    m.Munferit,
		Archived:    m.Archived,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}, nil
}
