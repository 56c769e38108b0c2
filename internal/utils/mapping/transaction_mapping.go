package mapping

import (
	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	"github.com/aegeantours/tour_backoffice_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		TenantID:        d.TenantID,
		AccountID:       d.AccountID,
		TransactionType: string(d.TransactionType),
		Amount:          d.Amount,
		Currency:        string(d.Currency),
		ExchangeRate:    d.ExchangeRate,
		Date:            d.Date,
		Time:            d.Time,
		Description:     d.Description,
		ReferenceType:   string(d.ReferenceType),
		ReferenceID:     d.ReferenceID,
		PaymentTypeID:   d.PaymentTypeID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		TenantID:        m.TenantID,
		AccountID:       m.AccountID,
		TransactionType: domain.TransactionType(m.TransactionType),
		Amount:          m.Amount,
		Currency:        domain.Currency(m.Currency),
		ExchangeRate:    m.ExchangeRate,
		Date:            m.Date,
		Time:            m.Time,
		Description:     m.Description,
		ReferenceType:   domain.ReferenceType(m.ReferenceType),
		ReferenceID:     m.ReferenceID,
		PaymentTypeID:   m.PaymentTypeID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
