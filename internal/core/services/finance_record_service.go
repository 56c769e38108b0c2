package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aegeantours/tour_backoffice_app/internal/apperrors"
	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	portsrepo "github.com/aegeantours/tour_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/aegeantours/tour_backoffice_app/internal/core/ports/services"
	"github.com/aegeantours/tour_backoffice_app/internal/dto"
	"github.com/aegeantours/tour_backoffice_app/internal/utils"
	"github.com/google/uuid"
)

// financeRecordService manages income/expense records. Every record carries a
// linked ledger transaction written in the same database transaction, so the
// record's rate snapshot and the ledger's snapshot can never drift at create
// time. Updates never touch posted rows: they offset at the old rate and
// repost at the current one.
type financeRecordService struct {
	BaseService
	recordRepo  portsrepo.FinanceRecordRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	rateStore   portssvc.RateStoreReaderSvc
	postLocks   *utils.KeyedMutex
}

// NewFinanceRecordService creates a new finance record service.
func NewFinanceRecordService(
	recordRepo portsrepo.FinanceRecordRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	rateStore portssvc.RateStoreReaderSvc,
	postLocks *utils.KeyedMutex,
) portssvc.FinanceRecordSvcFacade {
	return &financeRecordService{
		recordRepo:  recordRepo,
		accountRepo: accountRepo,
		rateStore:   rateStore,
		postLocks:   postLocks,
	}
}

// Ensure financeRecordService implements the FinanceRecordSvcFacade interface
var _ portssvc.FinanceRecordSvcFacade = (*financeRecordService)(nil)

// transactionTypeFor maps a record kind to the ledger transaction it posts.
// Income reduces what the cari owes, expense increases it.
func transactionTypeFor(kind domain.RecordKind) domain.TransactionType {
	if kind == domain.RecordIncome {
		return domain.Credit
	}
	return domain.Debit
}

func referenceTypeFor(kind domain.RecordKind) domain.ReferenceType {
	if kind == domain.RecordIncome {
		return domain.ReferenceIncome
	}
	return domain.ReferenceExpense
}

// resolveRecordAccount picks the ledger account a record's transaction lands
// on. An empty cariID and every individual cari both land on the münferit
// account, matching the posting alias policy.
func (s *financeRecordService) resolveRecordAccount(ctx context.Context, tenantID, cariID string) (*domain.LedgerAccount, error) {
	if cariID == "" {
		munferit, err := ensureMunferitAccount(ctx, s.accountRepo, tenantID)
		if err != nil {
			return nil, err
		}
		return munferit, nil
	}

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, cariID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, cariID)
		}
		return nil, fmt.Errorf("failed to resolve cari %s: %w", cariID, err)
	}
	if account.Kind == domain.Individual {
		munferit, err := ensureMunferitAccount(ctx, s.accountRepo, tenantID)
		if err != nil {
			return nil, err
		}
		return munferit, nil
	}
	return account, nil
}

func (s *financeRecordService) validateRequest(req dto.SaveFinanceRecordRequest) (time.Time, error) {
	if !req.Amount.IsPositive() {
		return time.Time{}, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, req.Amount.String())
	}
	if !req.Currency.IsSupported() {
		return time.Time{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidCurrency, req.Currency)
	}
	date, err := time.Parse(dto.DateLayout, req.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", apperrors.ErrValidation, req.Date)
	}
	return date, nil
}

// CreateFinanceRecord implements portssvc.FinanceRecordSvcFacade.
func (s *financeRecordService) CreateFinanceRecord(ctx context.Context, tenantID string, kind domain.RecordKind, req dto.SaveFinanceRecordRequest, creatorUserID string) (*domain.FinanceRecord, error) {
	date, err := s.validateRequest(req)
	if err != nil {
		return nil, err
	}

	account, err := s.resolveRecordAccount(ctx, tenantID, req.CariID)
	if err != nil {
		return nil, err
	}

	rates, err := s.rateStore.GetRates(ctx, tenantID, domain.RateScopeSystem)
	if err != nil {
		return nil, err
	}
	if !rates.IsConfigured(req.Currency) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrRateNotConfigured, req.Currency)
	}
	rate := rates.RateFor(req.Currency)

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	record := domain.FinanceRecord{
		RecordID:      uuid.NewString(),
		TenantID:      tenantID,
		Kind:          kind,
		CategoryID:    req.CategoryID,
		CariID:        req.CariID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		ExchangeRate:  rate,
		Date:          date,
		Description:   req.Description,
		TransactionID: uuid.NewString(),
		AuditFields:   audit,
	}

	txn := domain.Transaction{
		TransactionID:   record.TransactionID,
		TenantID:        tenantID,
		AccountID:       account.AccountID,
		TransactionType: transactionTypeFor(kind),
		Amount:          req.Amount,
		Currency:        req.Currency,
		ExchangeRate:    rate,
		Date:            date,
		Time:            now.Format("15:04"),
		Description:     req.Description,
		ReferenceType:   referenceTypeFor(kind),
		ReferenceID:     record.RecordID,
		PaymentTypeID:   req.PaymentTypeID,
		AuditFields:     audit,
	}

	unlock := s.postLocks.Lock(account.AccountID)
	defer unlock()

	if err := s.recordRepo.SaveRecordWithTransactions(ctx, record, []domain.Transaction{txn}); err != nil {
		return nil, fmt.Errorf("failed to save %s record: %w", kind, err)
	}

	s.LogInfo(ctx, "Finance record created",
		slog.String("tenant_id", tenantID),
		slog.String("record_id", record.RecordID),
		slog.String("kind", string(kind)),
		slog.String("currency", string(record.Currency)))
	return &record, nil
}

// UpdateFinanceRecord implements portssvc.FinanceRecordSvcFacade. The posted
// history stays immutable: the old amount is reversed with an offsetting
// transaction at the ORIGINAL snapshot rate, and the new amount is posted
// fresh at the current rate. Reports built on transaction history therefore
// always reconcile.
func (s *financeRecordService) UpdateFinanceRecord(ctx context.Context, tenantID string, kind domain.RecordKind, recordID string, req dto.SaveFinanceRecordRequest, updaterUserID string) (*domain.FinanceRecord, error) {
	date, err := s.validateRequest(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.recordRepo.FindFinanceRecordByID(ctx, tenantID, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to load record %s: %w", recordID, err)
	}
	if existing.Kind != kind {
		return nil, fmt.Errorf("%w: record %s is %s, not %s", apperrors.ErrValidation, recordID, existing.Kind, kind)
	}

	oldAccount, err := s.resolveRecordAccount(ctx, tenantID, existing.CariID)
	if err != nil {
		return nil, err
	}
	newAccount, err := s.resolveRecordAccount(ctx, tenantID, req.CariID)
	if err != nil {
		return nil, err
	}

	rates, err := s.rateStore.GetRates(ctx, tenantID, domain.RateScopeSystem)
	if err != nil {
		return nil, err
	}
	if !rates.IsConfigured(req.Currency) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrRateNotConfigured, req.Currency)
	}
	rate := rates.RateFor(req.Currency)

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     updaterUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: updaterUserID,
	}

	postedType := transactionTypeFor(kind)
	offset := domain.Transaction{
		TransactionID:   uuid.NewString(),
		TenantID:        tenantID,
		AccountID:       oldAccount.AccountID,
		TransactionType: oppositeOf(postedType),
		Amount:          existing.Amount,
		Currency:        existing.Currency,
		ExchangeRate:    existing.ExchangeRate,
		Date:            date,
		Time:            now.Format("15:04"),
		Description:     "Reversal: " + existing.Description,
		ReferenceType:   referenceTypeFor(kind),
		ReferenceID:     existing.RecordID,
		PaymentTypeID:   req.PaymentTypeID,
		AuditFields:     audit,
	}

	repost := domain.Transaction{
		TransactionID:   uuid.NewString(),
		TenantID:        tenantID,
		AccountID:       newAccount.AccountID,
		TransactionType: postedType,
		Amount:          req.Amount,
		Currency:        req.Currency,
		ExchangeRate:    rate,
		Date:            date,
		Time:            now.Format("15:04"),
		Description:     req.Description,
		ReferenceType:   referenceTypeFor(kind),
		ReferenceID:     existing.RecordID,
		PaymentTypeID:   req.PaymentTypeID,
		AuditFields:     audit,
	}

	updated := *existing
	updated.CategoryID = req.CategoryID
	updated.CariID = req.CariID
	updated.Amount = req.Amount
	updated.Currency = req.Currency
	updated.ExchangeRate = rate
	updated.Date = date
	updated.Description = req.Description
	updated.TransactionID = repost.TransactionID
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = updaterUserID

	for _, unlock := range s.lockAccounts(oldAccount.AccountID, newAccount.AccountID) {
		defer unlock()
	}

	if err := s.recordRepo.SaveRecordWithTransactions(ctx, updated, []domain.Transaction{offset, repost}); err != nil {
		return nil, fmt.Errorf("failed to update %s record: %w", kind, err)
	}

	s.LogInfo(ctx, "Finance record updated",
		slog.String("tenant_id", tenantID),
		slog.String("record_id", recordID),
		slog.String("kind", string(kind)),
		slog.String("offset_rate", utils.FormatRate(existing.ExchangeRate)),
		slog.String("repost_rate", utils.FormatRate(rate)))
	return &updated, nil
}

func oppositeOf(t domain.TransactionType) domain.TransactionType {
	if t == domain.Credit {
		return domain.Debit
	}
	return domain.Credit
}

// lockAccounts acquires the post locks for the given accounts in sorted key
// order so concurrent updates touching the same pair cannot deadlock.
func (s *financeRecordService) lockAccounts(accountIDs ...string) []func() {
	keys := make([]string, 0, len(accountIDs))
	seen := make(map[string]bool, len(accountIDs))
	for _, id := range accountIDs {
		if !seen[id] {
			seen[id] = true
			keys = append(keys, id)
		}
	}
	sort.Strings(keys)

	unlocks := make([]func(), 0, len(keys))
	for _, key := range keys {
		unlocks = append(unlocks, s.postLocks.Lock(key))
	}
	return unlocks
}
