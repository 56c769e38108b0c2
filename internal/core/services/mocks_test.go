package services_test

import (
	"context"
	"time"

	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock RateSetRepository ---
type MockRateSetRepository struct {
	mock.Mock
}

func (m *MockRateSetRepository) FindRateSet(ctx context.Context, tenantID string, scope domain.RateScope) (*domain.CurrencyRateSet, error) {
	args := m.Called(ctx, tenantID, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyRateSet), args.Error(1)
}

func (m *MockRateSetRepository) SaveRateSet(ctx context.Context, set domain.CurrencyRateSet) error {
	args := m.Called(ctx, set)
	return args.Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByName(ctx context.Context, tenantID, displayName string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, tenantID, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockAccountRepository) FindMunferitAccount(ctx context.Context, tenantID string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, tenantID string, includeArchived bool) ([]domain.LedgerAccount, error) {
	args := m.Called(ctx, tenantID, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerAccount), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.LedgerAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) ArchiveAccount(ctx context.Context, tenantID, accountID, updaterUserID string) error {
	args := m.Called(ctx, tenantID, accountID, updaterUserID)
	return args.Error(0)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, tenantID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, tenantID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByAccount(ctx context.Context, tenantID, accountID string, from, to time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, tenantID, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByReference(ctx context.Context, tenantID string, refType domain.ReferenceType, refID string) (*domain.Transaction, error) {
	args := m.Called(ctx, tenantID, refType, refID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ApplyTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

// --- Mock FinanceRecordRepository ---
type MockFinanceRecordRepository struct {
	mock.Mock
}

func (m *MockFinanceRecordRepository) FindFinanceRecordByID(ctx context.Context, tenantID, recordID string) (*domain.FinanceRecord, error) {
	args := m.Called(ctx, tenantID, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinanceRecord), args.Error(1)
}

func (m *MockFinanceRecordRepository) SaveRecordWithTransactions(ctx context.Context, record domain.FinanceRecord, txns []domain.Transaction) error {
	args := m.Called(ctx, record, txns)
	return args.Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) FindTransactionsInRange(ctx context.Context, tenantID string, from, to time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockReportingRepository) NetFlowBefore(ctx context.Context, tenantID string, before time.Time) (domain.CurrencyAmounts, error) {
	args := m.Called(ctx, tenantID, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.CurrencyAmounts), args.Error(1)
}

func (m *MockReportingRepository) CountSalesBefore(ctx context.Context, tenantID string, before time.Time) (map[string]int, error) {
	args := m.Called(ctx, tenantID, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}
