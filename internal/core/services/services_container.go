package services

import (
	portsrepo "github.com/aegeantours/tour_backoffice_app/internal/core/ports/repositories"
	portssvc "github.com/aegeantours/tour_backoffice_app/internal/core/ports/services"
	"github.com/aegeantours/tour_backoffice_app/internal/platform/config"
	"github.com/aegeantours/tour_backoffice_app/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, notifier *RateChangeNotifier) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The rate store comes first since posting and conversion both read it.
	container.RateStore = NewRateStoreService(repos.RateSetRepo, notifier)
	container.RateQuote = NewTCMBService(cfg.TCMBEndpoint, cfg.TCMBTimeout, cfg.TCMBCacheTTL)
	container.Converter = NewConverterService(container.RateStore)

	// Ledger and finance records share one keyed mutex so a record's linked
	// transaction and a direct post against the same account serialize.
	postLocks := &utils.KeyedMutex{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Ledger = NewLedgerService(
		repos.AccountRepo,
		repos.TransactionRepo,
		repos.FinanceRecordRepo,
		container.RateStore,
		postLocks,
	)
	container.FinanceRecord = NewFinanceRecordService(
		repos.FinanceRecordRepo,
		repos.AccountRepo,
		container.RateStore,
		postLocks,
	)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.AccountRepo)

	return container
}
