package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a monetary event posted against an account.
type TransactionType string

const (
	Debit   TransactionType = "DEBIT"
	Credit  TransactionType = "CREDIT"
	Payment TransactionType = "PAYMENT"
	Refund  TransactionType = "REFUND"
)

// IsValid reports whether the type is a known transaction type.
func (t TransactionType) IsValid() bool {
	switch t {
	case Debit, Credit, Payment, Refund:
		return true
	}
	return false
}

// IsInflow reports whether the type counts as cash coming in. Credit and
// payment reduce the account's outstanding balance; debit and refund raise it.
func (t TransactionType) IsInflow() bool {
	return t == Credit || t == Payment
}

// ReferenceType links a transaction to the external record it settles.
type ReferenceType string

const (
	ReferenceReservation ReferenceType = "RESERVATION"
	ReferenceIncome      ReferenceType = "INCOME"
	ReferenceExpense     ReferenceType = "EXPENSE"
)

// Transaction is an immutable, dated monetary event against exactly one
// account, denominated in one currency, carrying the system-rate snapshot in
// force at posting time. Corrections are offsetting transactions, never
// in-place edits.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	TenantID        string          `json:"tenantID"`
	AccountID       string          `json:"accountID"`
	TransactionType TransactionType `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`   // Positive value
	Currency        Currency        `json:"currency"` // EUR, USD or TRY
	// ExchangeRate is the system-scope TRY-per-unit rate snapshotted when
	// the transaction was posted.
	ExchangeRate  decimal.Decimal `json:"exchangeRate"`
	Date          time.Time       `json:"date"` // Calendar date of the event
	Time          string          `json:"time"` // HH:MM wall-clock time
	Description   string          `json:"description"`
	ReferenceType ReferenceType   `json:"referenceType,omitempty"` // Nullable
	ReferenceID   string          `json:"referenceID,omitempty"`   // Nullable
	PaymentTypeID string          `json:"paymentTypeID,omitempty"`
	AuditFields
}

// SignedAmount returns the amount with the balance-update sign applied:
// credit/payment decrease the outstanding balance, debit/refund increase it.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.TransactionType.IsInflow() {
		return t.Amount.Neg()
	}
	return t.Amount
}
