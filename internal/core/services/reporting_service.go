package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/ecompta_backend/internal/apperrors"
	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/ecompta_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ecompta_backend/internal/core/ports/services"
	"github.com/SscSPs/ecompta_backend/internal/core/statements"
	"github.com/patrickmn/go-cache"
)

const (
	defaultTrialBalanceTTL = 5 * time.Minute
	dateLayout             = "2006-01-02"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	companies     portssvc.CompanyReaderSvc
	composer      *statements.Composer
	ttl           time.Duration
	cache         *cache.Cache

	// generations counts invalidations per company. A read that started before an
	// invalidation does not store its snapshot.
	mu          sync.Mutex
	generations map[string]uint64
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithTrialBalanceTTL sets how long trial balances stay cached. Zero or negative disables caching.
func WithTrialBalanceTTL(ttl time.Duration) ReportingServiceOption {
	return func(s *reportingService) {
		s.ttl = ttl
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, companies portssvc.CompanyReaderSvc, composer *statements.Composer, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		BaseService:   newBaseService("reporting"),
		reportingRepo: repo,
		companies:     companies,
		composer:      composer,
		ttl:           defaultTrialBalanceTTL,
		generations:   make(map[string]uint64),
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	if svc.ttl > 0 {
		svc.cache = cache.New(svc.ttl, 2*svc.ttl)
	}
	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

func trialBalanceKey(companyID string, asOf time.Time, from *time.Time) string {
	key := companyID + "|" + asOf.Format(dateLayout)
	if from != nil {
		key += "|" + from.Format(dateLayout)
	}
	return key
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// InvalidateCompany drops cached trial balances of a company.
func (s *reportingService) InvalidateCompany(companyID string) {
	if s.cache == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[companyID]++

	prefix := companyID + "|"
	for key := range s.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			s.cache.Delete(key)
		}
	}
}

// TrialBalance aggregates posted entries. The cached value is never handed out directly.
func (s *reportingService) TrialBalance(ctx context.Context, companyID string, asOf time.Time, from *time.Time) (*domain.TrialBalance, error) {
	company, err := s.companies.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return s.trialBalance(ctx, company, asOf, from)
}

func (s *reportingService) trialBalance(ctx context.Context, company *domain.Company, asOf time.Time, from *time.Time) (*domain.TrialBalance, error) {
	asOf = truncateDay(asOf)
	if from != nil {
		f := truncateDay(*from)
		if f.After(asOf) {
			return nil, fmt.Errorf("period start %s is after %s: %w", f.Format(dateLayout), asOf.Format(dateLayout), apperrors.ErrValidation)
		}
		from = &f
	}

	key := trialBalanceKey(company.CompanyID, asOf, from)
	generation := s.generation(company.CompanyID)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			s.LogDebug(ctx, "Trial balance served from cache", slog.String("key", key))
			return copyTrialBalance(cached.(domain.TrialBalance)), nil
		}
	}

	lines, err := s.reportingRepo.GetTrialBalance(ctx, company.CompanyID, asOf, from)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data",
			slog.String("company_id", company.CompanyID),
			slog.String("asOf", asOf.Format(dateLayout)))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	tb := domain.TrialBalance{
		CompanyID:   company.CompanyID,
		AsOf:        asOf,
		PeriodStart: from,
		Currency:    company.CurrencyCode,
		Lines:       lines,
	}
	tb.SortLines()
	s.store(key, company.CompanyID, generation, tb)

	s.LogInfo(ctx, "Trial balance generated",
		slog.String("company_id", company.CompanyID),
		slog.String("asOf", asOf.Format(dateLayout)),
		slog.Int("row_count", len(lines)))
	return copyTrialBalance(tb), nil
}

func (s *reportingService) generation(companyID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[companyID]
}

// store caches tb unless the company was invalidated since generation was read.
func (s *reportingService) store(key, companyID string, generation uint64, tb domain.TrialBalance) {
	if s.cache == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[companyID] != generation {
		return
	}
	s.cache.Set(key, tb, cache.DefaultExpiration)
}

func copyTrialBalance(tb domain.TrialBalance) *domain.TrialBalance {
	out := tb
	out.Lines = append([]domain.TrialBalanceLine(nil), tb.Lines...)
	return &out
}

// resolve returns the company and the standard to compose with.
func (s *reportingService) resolve(ctx context.Context, companyID, standard string) (*domain.Company, domain.AccountingStandard, error) {
	company, err := s.companies.GetCompany(ctx, companyID)
	if err != nil {
		return nil, "", err
	}
	std := company.Standard
	if standard != "" {
		std = domain.NormalizeStandard(standard)
	}
	if !s.composer.Registry().Has(std) {
		return nil, "", &statements.UnknownStandardError{Standard: std}
	}
	return company, std, nil
}

func checkPeriod(from, to time.Time) error {
	if truncateDay(from).After(truncateDay(to)) {
		return fmt.Errorf("period start %s is after end %s: %w", from.Format(dateLayout), to.Format(dateLayout), apperrors.ErrValidation)
	}
	return nil
}

// BalanceSheet composes the balance sheet as of a date.
func (s *reportingService) BalanceSheet(ctx context.Context, companyID string, asOf time.Time, standard string) (*domain.FinancialStatement, error) {
	company, std, err := s.resolve(ctx, companyID, standard)
	if err != nil {
		return nil, err
	}
	return s.balanceSheet(ctx, company, asOf, std)
}

func (s *reportingService) balanceSheet(ctx context.Context, company *domain.Company, asOf time.Time, std domain.AccountingStandard) (*domain.FinancialStatement, error) {
	tb, err := s.trialBalance(ctx, company, asOf, nil)
	if err != nil {
		return nil, err
	}
	stmt, err := s.composer.ComposeBalanceSheet(*tb, std)
	if err != nil {
		return nil, err
	}
	if stmt.Balanced != nil && !*stmt.Balanced {
		s.GetLogger(ctx).Warn("Balance sheet does not balance",
			slog.String("company_id", company.CompanyID),
			slog.String("standard", string(std)))
	}
	return stmt, nil
}

// IncomeStatement composes the income statement from the activity of [from, to].
func (s *reportingService) IncomeStatement(ctx context.Context, companyID string, from, to time.Time, standard string) (*domain.FinancialStatement, error) {
	if err := checkPeriod(from, to); err != nil {
		return nil, err
	}
	company, std, err := s.resolve(ctx, companyID, standard)
	if err != nil {
		return nil, err
	}
	return s.incomeStatement(ctx, company, from, to, std)
}

func (s *reportingService) incomeStatement(ctx context.Context, company *domain.Company, from, to time.Time, std domain.AccountingStandard) (*domain.FinancialStatement, error) {
	tb, err := s.trialBalance(ctx, company, to, &from)
	if err != nil {
		return nil, err
	}
	return s.composer.ComposeIncomeStatement(*tb, std, truncateDay(from), truncateDay(to))
}

// CashFlow composes the cash-flow statement from the balances the day before from and at to.
func (s *reportingService) CashFlow(ctx context.Context, companyID string, from, to time.Time, standard string) (*domain.FinancialStatement, error) {
	if err := checkPeriod(from, to); err != nil {
		return nil, err
	}
	company, std, err := s.resolve(ctx, companyID, standard)
	if err != nil {
		return nil, err
	}
	return s.cashFlow(ctx, company, from, to, std)
}

func (s *reportingService) cashFlow(ctx context.Context, company *domain.Company, from, to time.Time, std domain.AccountingStandard) (*domain.FinancialStatement, error) {
	current, err := s.trialBalance(ctx, company, to, nil)
	if err != nil {
		return nil, err
	}
	previous, err := s.trialBalance(ctx, company, truncateDay(from).AddDate(0, 0, -1), nil)
	if err != nil {
		return nil, err
	}
	return s.composer.ComposeCashFlow(*current, *previous, std, truncateDay(from), truncateDay(to))
}

// AllStatements composes the balance sheet at to, plus the income and cash-flow statements of the period.
func (s *reportingService) AllStatements(ctx context.Context, companyID string, from, to time.Time, standard string) (*portssvc.AllStatements, error) {
	if err := checkPeriod(from, to); err != nil {
		return nil, err
	}
	company, std, err := s.resolve(ctx, companyID, standard)
	if err != nil {
		return nil, err
	}

	bs, err := s.balanceSheet(ctx, company, to, std)
	if err != nil {
		return nil, err
	}
	is, err := s.incomeStatement(ctx, company, from, to, std)
	if err != nil {
		return nil, err
	}
	cf, err := s.cashFlow(ctx, company, from, to, std)
	if err != nil {
		return nil, err
	}
	return &portssvc.AllStatements{BalanceSheet: bs, IncomeStatement: is, CashFlow: cf}, nil
}
