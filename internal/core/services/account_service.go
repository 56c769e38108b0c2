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
	"github.com/google/uuid"
)

// accountService manages the cari/individual account book.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount implements portssvc.AccountSvcFacade.
func (s *accountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.LedgerAccount, error) {
	now := time.Now().UTC()
	account := domain.LedgerAccount{
		AccountID:   uuid.NewString(),
		TenantID:    tenantID,
		Kind:        req.Kind,
		DisplayName: req.DisplayName,
		Balances:    domain.ZeroBalances(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.LogInfo(ctx, "Account created",
		slog.String("tenant_id", tenantID),
		slog.String("account_id", account.AccountID),
		slog.String("kind", string(account.Kind)))
	return &account, nil
}

// ensureMunferitAccount returns the tenant's münferit account, creating it
// on first use. Every tenant has exactly one; it absorbs all individual
// customer postings.
func ensureMunferitAccount(ctx context.Context, repo portsrepo.AccountRepositoryFacade, tenantID string) (*domain.LedgerAccount, error) {
	munferit, err := repo.FindMunferitAccount(ctx, tenantID)
	if err == nil {
		return munferit, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to resolve münferit account: %w", err)
	}

	now := time.Now().UTC()
	account := domain.LedgerAccount{
		AccountID:   uuid.NewString(),
		TenantID:    tenantID,
		Kind:        domain.Corporate,
		DisplayName: "Münferit",
		Balances:    domain.ZeroBalances(),
		Munferit:    true,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := repo.SaveAccount(ctx, account); err != nil {
		// Another request may have created it concurrently.
		if existing, findErr := repo.FindMunferitAccount(ctx, tenantID); findErr == nil {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to create münferit account: %w", err)
	}
	return &account, nil
}

// GetAccount implements portssvc.AccountSvcFacade.
func (s *accountService) GetAccount(ctx context.Context, tenantID, accountID string) (*domain.LedgerAccount, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", accountID, err)
	}
	return account, nil
}

// ListAccounts implements portssvc.AccountSvcFacade.
func (s *accountService) ListAccounts(ctx context.Context, tenantID string, includeArchived bool) ([]domain.LedgerAccount, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// ArchiveAccount implements portssvc.AccountSvcFacade. Archival is logical;
// the account and its transactions stay readable for statements.
func (s *accountService) ArchiveAccount(ctx context.Context, tenantID, accountID, updaterUserID string) error {
	if err := s.accountRepo.ArchiveAccount(ctx, tenantID, accountID, updaterUserID); err != nil {
		return fmt.Errorf("failed to archive account %s: %w", accountID, err)
	}
	s.LogInfo(ctx, "Account archived",
		slog.String("tenant_id", tenantID),
		slog.String("account_id", accountID))
	return nil
}
