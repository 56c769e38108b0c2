package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aegeantours/tour_backoffice_app/internal/apperrors"
	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	portsrepo "github.com/aegeantours/tour_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/aegeantours/tour_backoffice_app/internal/core/ports/services"
	"github.com/aegeantours/tour_backoffice_app/internal/dto"
	"github.com/aegeantours/tour_backoffice_app/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ledgerService applies transactions to ledger accounts. Posts against the
// same account are serialized with a per-account mutex on top of the
// repository's row lock, so concurrent posts can never lose a balance update.
type ledgerService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
	recordRepo  portsrepo.FinanceRecordReader
	rateStore   portssvc.RateStoreReaderSvc
	postLocks   *utils.KeyedMutex
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(
	accountRepo portsrepo.AccountRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	recordRepo portsrepo.FinanceRecordReader,
	rateStore portssvc.RateStoreReaderSvc,
	postLocks *utils.KeyedMutex,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		recordRepo:  recordRepo,
		rateStore:   rateStore,
		postLocks:   postLocks,
	}
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// resolvePostingTarget picks the account a post lands on and the final
// description. Individual customers are informational groupings over the
// münferit account (IndividualBillingAliasAccount): a post aimed at an
// individual lands on the münferit account with the individual's name in
// the description, and the individual account's balance never moves.
func (s *ledgerService) resolvePostingTarget(ctx context.Context, tenantID string, req dto.PostTransactionRequest) (*domain.LedgerAccount, string, error) {
	description := req.Description

	if req.AccountID != "" {
		account, err := s.accountRepo.FindAccountByID(ctx, tenantID, req.AccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, "", fmt.Errorf("%w: %s", apperrors.ErrUnknownAccount, req.AccountID)
			}
			return nil, "", fmt.Errorf("failed to resolve account %s: %w", req.AccountID, err)
		}
		if account.Kind != domain.Individual {
			return account, description, nil
		}
		// Alias path: reroute to münferit, keep the name in the description.
		munferit, err := ensureMunferitAccount(ctx, s.accountRepo, tenantID)
		if err != nil {
			return nil, "", err
		}
		return munferit, aliasDescription(account.DisplayName, description), nil
	}

	if req.CustomerName != "" {
		// Auto-vivify the individual grouping if this is a first reference.
		if _, err := s.accountRepo.FindAccountByName(ctx, tenantID, req.CustomerName); err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				return nil, "", fmt.Errorf("failed to look up customer %q: %w", req.CustomerName, err)
			}
			now := time.Now().UTC()
			individual := domain.LedgerAccount{
				AccountID:   uuid.NewString(),
				TenantID:    tenantID,
				Kind:        domain.Individual,
				DisplayName: req.CustomerName,
				Balances:    domain.ZeroBalances(),
				AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
			}
			if err := s.accountRepo.SaveAccount(ctx, individual); err != nil {
				return nil, "", fmt.Errorf("failed to auto-create individual %q: %w", req.CustomerName, err)
			}
			s.LogInfo(ctx, "Individual customer auto-created",
				slog.String("tenant_id", tenantID),
				slog.String("customer_name", req.CustomerName))
		}
		munferit, err := ensureMunferitAccount(ctx, s.accountRepo, tenantID)
		if err != nil {
			return nil, "", err
		}
		return munferit, aliasDescription(req.CustomerName, description), nil
	}

	return nil, "", fmt.Errorf("%w: accountID or customerName is required", apperrors.ErrValidation)
}

func aliasDescription(customerName, description string) string {
	if description == "" {
		return customerName
	}
	return customerName + " - " + description
}

// PostTransaction implements portssvc.LedgerSvcFacade.
func (s *ledgerService) PostTransaction(ctx context.Context, tenantID string, req dto.PostTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	// Validation order is part of the contract: amount, currency, account,
	// then the rate snapshot. A rejected post writes nothing.
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, req.Amount.String())
	}
	if !req.Currency.IsSupported() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidCurrency, req.Currency)
	}
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, req.Type)
	}

	date, err := time.Parse(dto.DateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date %q", apperrors.ErrValidation, req.Date)
	}

	account, description, err := s.resolvePostingTarget(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	rates, err := s.rateStore.GetRates(ctx, tenantID, domain.RateScopeSystem)
	if err != nil {
		return nil, err
	}
	if !rates.IsConfigured(req.Currency) {
		// Hard stop: defaulting an unset rate would misstate every
		// downstream report.
		return nil, fmt.Errorf("%w: %s", apperrors.ErrRateNotConfigured, req.Currency)
	}

	now := time.Now().UTC()
	timeOfDay := req.Time
	if timeOfDay == "" {
		timeOfDay = now.Format("15:04")
	}

	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		TenantID:        tenantID,
		AccountID:       account.AccountID,
		TransactionType: req.Type,
		Amount:          req.Amount,
		Currency:        req.Currency,
		ExchangeRate:    rates.RateFor(req.Currency),
		Date:            date,
		Time:            timeOfDay,
		Description:     description,
		ReferenceType:   req.ReferenceType,
		ReferenceID:     req.ReferenceID,
		PaymentTypeID:   req.PaymentTypeID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	unlock := s.postLocks.Lock(account.AccountID)
	defer unlock()

	if err := s.txnRepo.ApplyTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to post transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction posted",
		slog.String("tenant_id", tenantID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", account.AccountID),
		slog.String("type", string(txn.TransactionType)),
		slog.String("amount", utils.FormatAmount(txn.Amount)),
		slog.String("currency", string(txn.Currency)))
	return &txn, nil
}

// GetBalance implements portssvc.LedgerSvcFacade.
func (s *ledgerService) GetBalance(ctx context.Context, tenantID, accountID string) (map[domain.Currency]decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance for %s: %w", accountID, err)
	}

	balances := domain.ZeroBalances()
	for c, amt := range account.Balances {
		balances[c] = amt
	}
	return balances, nil
}

// GetStatement implements portssvc.LedgerSvcFacade.
func (s *ledgerService) GetStatement(ctx context.Context, tenantID, accountID string, from, to time.Time) ([]domain.Transaction, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: %s is before %s", apperrors.ErrInvalidRange, to.Format(dto.DateLayout), from.Format(dto.DateLayout))
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID); err != nil {
		return nil, fmt.Errorf("failed to resolve account %s: %w", accountID, err)
	}

	txns, err := s.txnRepo.FindTransactionsByAccount(ctx, tenantID, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load statement for %s: %w", accountID, err)
	}
	return txns, nil
}

// VerifyRateConsistency implements portssvc.LedgerSvcFacade. A finance
// record and its linked transaction snapshot the system rate independently;
// when the two disagree that is a latent posting defect. This check flags
// the discrepancy and deliberately does not fix it.
func (s *ledgerService) VerifyRateConsistency(ctx context.Context, tenantID string, refType domain.ReferenceType, refID string) (*domain.RateDiscrepancy, error) {
	if refType != domain.ReferenceIncome && refType != domain.ReferenceExpense {
		return nil, fmt.Errorf("%w: rate consistency applies to income/expense references, got %q", apperrors.ErrValidation, refType)
	}

	record, err := s.recordRepo.FindFinanceRecordByID(ctx, tenantID, refID)
	if err != nil {
		return nil, fmt.Errorf("failed to load record %s: %w", refID, err)
	}

	txn, err := s.txnRepo.FindTransactionByID(ctx, tenantID, record.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load linked transaction for record %s: %w", refID, err)
	}

	discrepancy := &domain.RateDiscrepancy{
		ReferenceType:   refType,
		ReferenceID:     refID,
		RecordRate:      record.ExchangeRate,
		TransactionRate: txn.ExchangeRate,
		Consistent:      record.ExchangeRate.Equal(txn.ExchangeRate),
	}
	if !discrepancy.Consistent {
		s.LogError(ctx, apperrors.ErrValidation, "Rate snapshot mismatch between record and transaction",
			slog.String("tenant_id", tenantID),
			slog.String("reference_id", refID),
			slog.String("record_rate", utils.FormatRate(record.ExchangeRate)),
			slog.String("transaction_rate", utils.FormatRate(txn.ExchangeRate)))
	}
	return discrepancy, nil
}
