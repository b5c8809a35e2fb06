package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	"github.com/SscSPs/ecompta_backend/internal/core/ledger"
	portssvc "github.com/SscSPs/ecompta_backend/internal/core/ports/services"
	"github.com/SscSPs/ecompta_backend/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) result(args mock.Arguments, i int) ledger.ValidationResult {
	if r, ok := args.Get(i).(ledger.ValidationResult); ok {
		return r
	}
	return ledger.ValidationResult{}
}

func (m *MockJournalService) CheckEntry(ctx context.Context, companyID string, req dto.EntryRequest) (ledger.ValidationResult, error) {
	args := m.Called(ctx, companyID, req)
	return m.result(args, 0), args.Error(1)
}
func (m *MockJournalService) CreateEntry(ctx context.Context, companyID string, req dto.EntryRequest, actor string) (*domain.JournalEntry, ledger.ValidationResult, error) {
	args := m.Called(ctx, companyID, req, actor)
	if args.Get(0) == nil {
		return nil, m.result(args, 1), args.Error(2)
	}
	return args.Get(0).(*domain.JournalEntry), m.result(args, 1), args.Error(2)
}
func (m *MockJournalService) UpdateDraft(ctx context.Context, companyID, entryID string, req dto.EntryRequest, actor string) (*domain.JournalEntry, ledger.ValidationResult, error) {
	args := m.Called(ctx, companyID, entryID, req, actor)
	if args.Get(0) == nil {
		return nil, m.result(args, 1), args.Error(2)
	}
	return args.Get(0).(*domain.JournalEntry), m.result(args, 1), args.Error(2)
}
func (m *MockJournalService) ValidateEntry(ctx context.Context, companyID, entryID, actor string) (*domain.JournalEntry, ledger.ValidationResult, error) {
	args := m.Called(ctx, companyID, entryID, actor)
	if args.Get(0) == nil {
		return nil, m.result(args, 1), args.Error(2)
	}
	return args.Get(0).(*domain.JournalEntry), m.result(args, 1), args.Error(2)
}
func (m *MockJournalService) PostEntry(ctx context.Context, companyID, entryID, actor string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, entryID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) CancelEntry(ctx context.Context, companyID, entryID, actor string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, entryID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) GetEntry(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, companyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}
func (m *MockJournalService) Statistics(ctx context.Context, companyID string) (*domain.EntryStatistics, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntryStatistics), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccount(ctx context.Context, companyID, code string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, companyID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, actor string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) CreateThirdPartyAccount(ctx context.Context, companyID string, req dto.CreateThirdPartyAccountRequest, actor string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeactivateAccount(ctx context.Context, companyID, code, actor string) error {
	args := m.Called(ctx, companyID, code, actor)
	return args.Error(0)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) TrialBalance(ctx context.Context, companyID string, asOf time.Time, from *time.Time) (*domain.TrialBalance, error) {
	args := m.Called(ctx, companyID, asOf, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}
func (m *MockReportingService) BalanceSheet(ctx context.Context, companyID string, asOf time.Time, standard string) (*domain.FinancialStatement, error) {
	args := m.Called(ctx, companyID, asOf, standard)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialStatement), args.Error(1)
}
func (m *MockReportingService) IncomeStatement(ctx context.Context, companyID string, from, to time.Time, standard string) (*domain.FinancialStatement, error) {
	args := m.Called(ctx, companyID, from, to, standard)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialStatement), args.Error(1)
}
func (m *MockReportingService) CashFlow(ctx context.Context, companyID string, from, to time.Time, standard string) (*domain.FinancialStatement, error) {
	args := m.Called(ctx, companyID, from, to, standard)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialStatement), args.Error(1)
}
func (m *MockReportingService) AllStatements(ctx context.Context, companyID string, from, to time.Time, standard string) (*portssvc.AllStatements, error) {
	args := m.Called(ctx, companyID, from, to, standard)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.AllStatements), args.Error(1)
}
func (m *MockReportingService) InvalidateCompany(companyID string) {
	m.Called(companyID)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)
