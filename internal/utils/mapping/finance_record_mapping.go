package mapping

import (
	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	"github.com/aegeantours/tour_backoffice_app/internal/models"
)

// ToModelFinanceRecord converts a domain FinanceRecord to a model FinanceRecord
func ToModelFinanceRecord(d domain.FinanceRecord) models.FinanceRecord {
	return models.FinanceRecord{
		RecordID:      d.RecordID,
		TenantID:      d.TenantID,
		Kind:          string(d.Kind),
		CategoryID:    d.CategoryID,
		CariID:        d.CariID,
		Amount:        d.Amount,
		Currency:      string(d.Currency),
		ExchangeRate:  d.ExchangeRate,
		Date:          d.Date,
		Description:   d.Description,
		TransactionID: d.TransactionID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFinanceRecord converts a model FinanceRecord to a domain FinanceRecord
func ToDomainFinanceRecord(m models.FinanceRecord) domain.FinanceRecord {
	return domain.FinanceRecord{
		RecordID:      m.RecordID,
		TenantID:      m.TenantID,
		Kind:          domain.RecordKind(m.Kind),
		CategoryID:    m.CategoryID,
		CariID:        m.CariID,
		Amount:        m.Amount,
		Currency:      domain.Currency(m.Currency),
		ExchangeRate:  m.ExchangeRate,
		Date:          m.Date,
		Description:   m.Description,
		TransactionID: m.TransactionID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
