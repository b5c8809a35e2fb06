package pgsql

import (
	portsrepo "github.com/SscSPs/ecompta_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CompanyRepo:   newPgxCompanyRepository(dbPool),
		AccountRepo:   newPgxAccountRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool),
		SequenceRepo:  newPgxSequenceRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
	}
}
