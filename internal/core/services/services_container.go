package services

import (
	"github.com/SscSPs/ecompta_backend/internal/core/ledger"
	portsrepo "github.com/SscSPs/ecompta_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ecompta_backend/internal/core/ports/services"
	"github.com/SscSPs/ecompta_backend/internal/core/statements"
	"github.com/SscSPs/ecompta_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, registry *statements.Registry) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{Standards: registry}

	// Companies first since every other service resolves the company standard through it
	container.Company = NewCompanyService(repos.CompanyRepo, registry)
	container.Sequence = NewSequenceService(repos.SequenceRepo)

	container.Account = NewAccountService(
		repos.AccountRepo,
		container.Company,
		registry,
		WithAccountSequences(container.Sequence),
	)

	container.Reporting = NewReportingService(
		repos.ReportingRepo,
		container.Company,
		statements.NewComposer(registry),
		WithTrialBalanceTTL(cfg.TrialBalanceCacheTTL),
	)

	validator := ledger.NewValidator(registry, ledger.WithTolerance(cfg.BalanceTolerance))
	container.Journal = NewJournalService(
		repos.JournalRepo,
		repos.AccountRepo,
		container.Company,
		container.Sequence,
		validator,
		WithChartEnforcement(cfg.RequireChartAccounts),
		WithPostingListener(container.Reporting),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade = (*accountService)(nil)
	_ portssvc.CompanySvcFacade = (*companyService)(nil)
	_ portssvc.JournalSvcFacade = (*journalService)(nil)
	_ portssvc.ReportingService = (*reportingService)(nil)
	_ portssvc.SequenceSvc      = (*sequenceService)(nil)
)
