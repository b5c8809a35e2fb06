package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ecompta_backend/internal/apperrors"
	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	portssvc "github.com/SscSPs/ecompta_backend/internal/core/ports/services"
	"github.com/SscSPs/ecompta_backend/internal/core/services"
	"github.com/SscSPs/ecompta_backend/internal/core/statements"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, dd int) time.Time {
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

func newReportingFixture(t *testing.T, ttl time.Duration) (*MockReportingRepository, *MockCompanyRepository, portssvc.ReportingService) {
	t.Helper()
	registry, err := statements.LoadDefault()
	require.NoError(t, err)

	repo := new(MockReportingRepository)
	companies := new(MockCompanyRepository)
	companies.On("FindCompanyByID", mock.Anything, "c-1").Return(testCompany(), nil)

	svc := services.NewReportingService(repo, services.NewCompanyService(companies, registry), statements.NewComposer(registry),
		services.WithTrialBalanceTTL(ttl))
	return repo, companies, svc
}

func sampleLines() []domain.TrialBalanceLine {
	return []domain.TrialBalanceLine{
		domain.NewTrialBalanceLine("521", "Bank", d("1000"), d("0")),
		domain.NewTrialBalanceLine("101", "Capital", d("0"), d("800")),
		domain.NewTrialBalanceLine("701", "Sales", d("0"), d("500")),
		domain.NewTrialBalanceLine("601", "Purchases", d("300"), d("0")),
	}
}

func TestReportingService_TrialBalanceIsCachedUntilInvalidated(t *testing.T) {
	repo, _, svc := newReportingFixture(t, time.Minute)
	ctx := context.Background()
	asOf := day(2024, 12, 31)

	repo.On("GetTrialBalance", mock.Anything, "c-1", asOf, (*time.Time)(nil)).Return(sampleLines(), nil).Twice()

	first, err := svc.TrialBalance(ctx, "c-1", asOf, nil)
	require.NoError(t, err)
	assert.Equal(t, "101", first.Lines[0].AccountCode, "lines are sorted by code")
	assert.Equal(t, "XOF", first.Currency)
	assert.True(t, first.IsBalanced())

	// Mutating a returned value must not leak into the cache.
	first.Lines[0].AccountName = "changed"

	second, err := svc.TrialBalance(ctx, "c-1", asOf.Add(15*time.Hour), nil)
	require.NoError(t, err)
	assert.Equal(t, "Capital", second.Lines[0].AccountName)
	repo.AssertNumberOfCalls(t, "GetTrialBalance", 1)

	svc.InvalidateCompany("c-1")
	_, err = svc.TrialBalance(ctx, "c-1", asOf, nil)
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "GetTrialBalance", 2)
}

func TestReportingService_ReadRacingAPostIsNotCached(t *testing.T) {
	repo, _, svc := newReportingFixture(t, time.Minute)
	ctx := context.Background()
	asOf := day(2024, 12, 31)

	// The entry is posted while the first aggregation is still running.
	repo.On("GetTrialBalance", mock.Anything, "c-1", asOf, (*time.Time)(nil)).
		Run(func(mock.Arguments) { svc.InvalidateCompany("c-1") }).
		Return([]domain.TrialBalanceLine{}, nil).Once()
	repo.On("GetTrialBalance", mock.Anything, "c-1", asOf, (*time.Time)(nil)).Return(sampleLines(), nil).Once()

	stale, err := svc.TrialBalance(ctx, "c-1", asOf, nil)
	require.NoError(t, err)
	assert.Empty(t, stale.Lines)

	fresh, err := svc.TrialBalance(ctx, "c-1", asOf, nil)
	require.NoError(t, err)
	assert.Len(t, fresh.Lines, 4)
	repo.AssertNumberOfCalls(t, "GetTrialBalance", 2)
}

func TestReportingService_NoCacheWhenTTLDisabled(t *testing.T) {
	repo, _, svc := newReportingFixture(t, 0)
	asOf := day(2024, 6, 30)
	repo.On("GetTrialBalance", mock.Anything, "c-1", asOf, (*time.Time)(nil)).Return(sampleLines(), nil)

	for i := 0; i < 3; i++ {
		_, err := svc.TrialBalance(context.Background(), "c-1", asOf, nil)
		require.NoError(t, err)
	}
	repo.AssertNumberOfCalls(t, "GetTrialBalance", 3)
}

func TestReportingService_BalanceSheetDefaultsToCompanyStandard(t *testing.T) {
	repo, _, svc := newReportingFixture(t, time.Minute)
	asOf := day(2024, 12, 31)
	repo.On("GetTrialBalance", mock.Anything, "c-1", asOf, (*time.Time)(nil)).Return(sampleLines(), nil).Once()

	bs, err := svc.BalanceSheet(context.Background(), "c-1", asOf, "")

	require.NoError(t, err)
	assert.Equal(t, domain.StandardSYSCOHADA, bs.Standard)
	assert.Equal(t, domain.BalanceSheet, bs.Type)
	require.NotNil(t, bs.Balanced)
	assert.True(t, *bs.Balanced)
	ch, ok := bs.Line("CH")
	require.True(t, ok)
	assert.True(t, ch.Amount.Equal(d("200")), "net result of the year flows into equity, got %s", ch.Amount)
}

func TestReportingService_UnknownStandard(t *testing.T) {
	_, _, svc := newReportingFixture(t, time.Minute)

	_, err := svc.BalanceSheet(context.Background(), "c-1", day(2024, 12, 31), "US-GAAP")

	assert.True(t, errors.Is(err, statements.ErrUnknownStandard))
}

func TestReportingService_IncomeStatementUsesPeriodActivity(t *testing.T) {
	repo, _, svc := newReportingFixture(t, time.Minute)
	from, to := day(2024, 1, 1), day(2024, 12, 31)
	repo.On("GetTrialBalance", mock.Anything, "c-1", to, &from).Return(sampleLines(), nil).Once()

	is, err := svc.IncomeStatement(context.Background(), "c-1", from, to, "syscohada")

	require.NoError(t, err)
	net, ok := is.Total("NET")
	require.True(t, ok)
	assert.True(t, net.Equal(d("200")))
	require.NotNil(t, is.Period.Start)
	assert.Equal(t, from, *is.Period.Start)
}

func TestReportingService_InvertedPeriodRejected(t *testing.T) {
	_, _, svc := newReportingFixture(t, time.Minute)

	_, err := svc.IncomeStatement(context.Background(), "c-1", day(2024, 12, 31), day(2024, 1, 1), "")

	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestReportingService_CashFlowComparesOpeningAndClosing(t *testing.T) {
	repo, _, svc := newReportingFixture(t, time.Minute)
	from, to := day(2024, 1, 1), day(2024, 12, 31)
	opening := []domain.TrialBalanceLine{
		domain.NewTrialBalanceLine("521", "Bank", d("800"), d("0")),
		domain.NewTrialBalanceLine("101", "Capital", d("0"), d("800")),
	}
	repo.On("GetTrialBalance", mock.Anything, "c-1", day(2023, 12, 31), (*time.Time)(nil)).Return(opening, nil).Once()
	repo.On("GetTrialBalance", mock.Anything, "c-1", to, (*time.Time)(nil)).Return(sampleLines(), nil).Once()

	cf, err := svc.CashFlow(context.Background(), "c-1", from, to, "")

	require.NoError(t, err)
	require.NotNil(t, cf.Balanced)
	assert.True(t, *cf.Balanced)
	for code, want := range map[string]string{"TREASURY_OPENING": "800", "TREASURY_CLOSING": "1000", "NET_CHANGE": "200"} {
		got, ok := cf.Total(code)
		require.True(t, ok, code)
		assert.True(t, got.Equal(d(want)), "%s = %s", code, got)
	}
}

func TestReportingService_RepositoryFailure(t *testing.T) {
	repo, _, svc := newReportingFixture(t, time.Minute)
	asOf := day(2024, 12, 31)
	repo.On("GetTrialBalance", mock.Anything, "c-1", asOf, (*time.Time)(nil)).Return(nil, apperrors.NewAppError(500, "db down", nil)).Once()

	_, err := svc.BalanceSheet(context.Background(), "c-1", asOf, "")

	assert.True(t, errors.Is(err, apperrors.ErrInternal))
}
