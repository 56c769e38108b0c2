package mapping

import (
	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	"github.com/aegeantours/tour_backoffice_app/internal/models"
)

// ToModelRateSet converts a domain CurrencyRateSet to a model RateSet
func ToModelRateSet(d domain.CurrencyRateSet) models.RateSet {
	return models.RateSet{
		TenantID:    d.TenantID,
		Scope:       string(d.Scope),
		Rates:       ToStringAmountMap(d.Rates),
		Locked:      d.Locked,
		Source:      string(d.Source),
		LastUpdated: d.LastUpdated,
	}
}

// ToDomainRateSet converts a model RateSet to a domain CurrencyRateSet
func ToDomainRateSet(m models.RateSet) (domain.CurrencyRateSet, error) {
	rates, err := ToDecimalAmountMap(m.Rates)
	if err != nil {
		return domain.CurrencyRateSet{}, err
	}
	set := domain.CurrencyRateSet{
		TenantID:    m.TenantID,
		Scope:       domain.RateScope(m.Scope),
		Rates:       rates,
		Locked:      m.Locked,
		Source:      domain.RateSource(m.Source),
		LastUpdated: m.LastUpdated,
	}
	set.Normalize()
	return set, nil
}
