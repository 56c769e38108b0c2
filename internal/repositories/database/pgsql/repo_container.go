package pgsql

import (
	portsrepo "github.com/aegeantours/tour_backoffice_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider creates a RepositoryProvider with all pgsql-backed
// repositories sharing the given pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RateSetRepo:       NewPgxRateSetRepository(pool),
		AccountRepo:       NewPgxAccountRepository(pool),
		TransactionRepo:   NewPgxTransactionRepository(pool),
		FinanceRecordRepo: NewPgxFinanceRecordRepository(pool),
		ReportingRepo:     NewPgxReportingRepository(pool),
	}
}

// Compile-time checks that each repository satisfies its port.
var (
	_ portsrepo.RateSetRepositoryFacade       = (*PgxRateSetRepository)(nil)
	_ portsrepo.AccountRepositoryFacade       = (*PgxAccountRepository)(nil)
	_ portsrepo.TransactionRepositoryFacade   = (*PgxTransactionRepository)(nil)
	_ portsrepo.FinanceRecordRepositoryFacade = (*PgxFinanceRecordRepository)(nil)
	_ portsrepo.ReportingRepository           = (*PgxReportingRepository)(nil)
)
