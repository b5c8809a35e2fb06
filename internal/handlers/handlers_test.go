package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/ecompta_backend/internal/apperrors"
	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	"github.com/SscSPs/ecompta_backend/internal/core/ledger"
	"github.com/SscSPs/ecompta_backend/internal/core/statements"
	"github.com/SscSPs/ecompta_backend/internal/dto"
	"github.com/SscSPs/ecompta_backend/internal/handlers"
	"github.com/SscSPs/ecompta_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const companyID = "c-1"

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockJournalService   *MockJournalService
	mockAccountService   *MockAccountService
	mockReportingService *MockReportingService
}

func (suite *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(dto.RegisterValidators())
}

func (suite *HandlerTestSuite) SetupTest() {
	suite.router = gin.New()
	suite.mockJournalService = new(MockJournalService)
	suite.mockAccountService = new(MockAccountService)
	suite.mockReportingService = new(MockReportingService)

	// Mimic the grouping of setupAPIV1Routes
	company := suite.router.Group("/api/v1/companies/:company_id", middleware.ActorMiddleware())
	handlers.RegisterJournalRoutes(company, suite.mockJournalService)
	handlers.RegisterAccountRoutes(company, suite.mockAccountService)
	handlers.RegisterReportingRoutes(company, suite.mockReportingService)
}

func (suite *HandlerTestSuite) do(method, path string, body any, header ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, "/api/v1/companies/"+companyID+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func entryBody() map[string]any {
	return map[string]any{
		"entryDate":   "2024-03-15T00:00:00Z",
		"description": "Sale",
		"postings": []map[string]any{
			{"accountCode": "411000", "direction": "DEBIT", "amount": "100"},
			{"accountCode": "701000", "direction": "CREDIT", "amount": "100"},
		},
	}
}

func sampleEntry(status domain.JournalStatus) *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:      "e-1",
		EntryNumber:  "JE-20240315-0001",
		CompanyID:    companyID,
		EntryDate:    time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		CurrencyCode: "XOF",
		Standard:     domain.StandardSYSCOHADA,
		Status:       status,
		Postings: []domain.Posting{
			{LineNumber: 1, AccountCode: "411000", Direction: domain.Debit, Amount: decimal.NewFromInt(100)},
			{LineNumber: 2, AccountCode: "701000", Direction: domain.Credit, Amount: decimal.NewFromInt(100)},
		},
	}
}

func (suite *HandlerTestSuite) TestCreateEntry_Success() {
	result := ledger.ValidationResult{Status: ledger.StatusOK, TotalDebit: decimal.NewFromInt(100), TotalCredit: decimal.NewFromInt(100)}
	twoPostings := mock.MatchedBy(func(r dto.EntryRequest) bool {
		return len(r.Postings) == 2 && r.Postings[0].Amount.Equal(decimal.NewFromInt(100))
	})
	suite.mockJournalService.On("CreateEntry", mock.Anything, companyID, twoPostings, "alice").
		Return(sampleEntry(domain.Draft), result, nil).Once()

	w := suite.do(http.MethodPost, "/journal-entries", entryBody(), middleware.ActorHeader, "alice")

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ValidationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(ledger.StatusOK, resp.Result.Status)
	suite.Require().NotNil(resp.Entry)
	suite.Equal("JE-20240315-0001", resp.Entry.EntryNumber)
	suite.True(resp.Entry.TotalDebit.Equal(decimal.NewFromInt(100)))
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateEntry_RejectedIsUnprocessable() {
	result := ledger.ValidationResult{
		Status:      ledger.StatusRejected,
		Reason:      ledger.ReasonImbalance,
		TotalDebit:  decimal.NewFromInt(100),
		TotalCredit: decimal.RequireFromString("99.99"),
		Difference:  decimal.RequireFromString("0.01"),
	}
	suite.mockJournalService.On("CreateEntry", mock.Anything, companyID, mock.Anything, middleware.DefaultActor).
		Return(nil, result, result.Err()).Once()

	w := suite.do(http.MethodPost, "/journal-entries", entryBody())

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	var resp dto.ValidationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(ledger.ReasonImbalance, resp.Result.Reason)
	suite.True(resp.Result.Difference.Equal(decimal.RequireFromString("0.01")))
	suite.Nil(resp.Entry)
}

func (suite *HandlerTestSuite) TestCreateEntry_BadJSON() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/companies/"+companyID+"/journal-entries", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "CreateEntry")
}

func (suite *HandlerTestSuite) TestCheckEntry_RejectionIsReportedWithOK() {
	result := ledger.ValidationResult{
		Status: ledger.StatusRejected,
		Reason: ledger.ReasonStructural,
		Issues: []ledger.Issue{{PostingIndex: 0, Code: ledger.IssueNonPositiveAmount, Message: "amount must be positive"}},
	}
	suite.mockJournalService.On("CheckEntry", mock.Anything, companyID, mock.Anything).Return(result, result.Err()).Once()

	w := suite.do(http.MethodPost, "/journal-entries/check", entryBody())

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ValidationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(ledger.StatusRejected, resp.Result.Status)
	suite.Require().Len(resp.Result.Issues, 1)
	suite.Equal(ledger.IssueNonPositiveAmount, resp.Result.Issues[0].Code)
}

func (suite *HandlerTestSuite) TestCheckEntry_UnknownStandard() {
	err := &statements.UnknownStandardError{Standard: "US-GAAP"}
	suite.mockJournalService.On("CheckEntry", mock.Anything, companyID, mock.Anything).Return(ledger.ValidationResult{}, err).Once()

	w := suite.do(http.MethodPost, "/journal-entries/check", entryBody())

	suite.Equal(http.StatusBadRequest, w.Code)
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(handlers.CodeUnknownStandard, body["code"])
}

func (suite *HandlerTestSuite) TestLifecycleErrors() {
	testCases := []struct {
		name       string
		path       string
		method     string
		err        error
		wantStatus int
	}{
		{"post conflict", "/journal-entries/e-1/post", "PostEntry", fmt.Errorf("%w: %w", apperrors.ErrConflict, &domain.ErrInvalidTransition{From: domain.Draft, To: domain.Posted}), http.StatusConflict},
		{"cancel missing", "/journal-entries/e-1/cancel", "CancelEntry", apperrors.ErrNotFound, http.StatusNotFound},
		{"post internal", "/journal-entries/e-1/post", "PostEntry", apperrors.NewAppError(500, "db down", nil), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			suite.mockJournalService.On(tc.method, mock.Anything, companyID, "e-1", middleware.DefaultActor).Return(nil, tc.err).Once()

			w := suite.do(http.MethodPost, tc.path, nil)

			suite.Equal(tc.wantStatus, w.Code)
			suite.mockJournalService.AssertExpectations(suite.T())
		})
	}
}

func (suite *HandlerTestSuite) TestValidateEntry_Success() {
	entry := sampleEntry(domain.Validated)
	suite.mockJournalService.On("ValidateEntry", mock.Anything, companyID, "e-1", "bob").
		Return(entry, ledger.ValidationResult{Status: ledger.StatusOK}, nil).Once()

	w := suite.do(http.MethodPost, "/journal-entries/e-1/validate", nil, middleware.ActorHeader, "  bob ")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ValidationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(string(domain.Validated), resp.Entry.Status)
}

func (suite *HandlerTestSuite) TestGetEntry_NotFound() {
	suite.mockJournalService.On("GetEntry", mock.Anything, companyID, "missing").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/journal-entries/missing", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListEntries() {
	token := "next"
	suite.mockJournalService.On("ListEntries", mock.Anything, companyID,
		mock.MatchedBy(func(p dto.ListEntriesParams) bool {
			return p.Status == "POSTED" && p.Limit == 5 && p.From != nil && p.From.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		}),
	).Return(&dto.ListEntriesResponse{Entries: []dto.EntryResponse{dto.ToEntryResponse(sampleEntry(domain.Posted))}, NextToken: &token}, nil).Once()

	w := suite.do(http.MethodGet, "/journal-entries?status=POSTED&limit=5&from=2024-01-01", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListEntriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Entries, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("next", *resp.NextToken)
}

func (suite *HandlerTestSuite) TestListEntries_InvalidStatus() {
	w := suite.do(http.MethodGet, "/journal-entries?status=PENDING", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "ListEntries")
}

func (suite *HandlerTestSuite) TestStatistics() {
	suite.mockJournalService.On("Statistics", mock.Anything, companyID).Return(&domain.EntryStatistics{
		CountByStatus:    map[domain.JournalStatus]int{domain.Posted: 2, domain.Draft: 1},
		TotalEntries:     3,
		PostedDebitTotal: decimal.NewFromInt(300),
	}, nil).Once()

	w := suite.do(http.MethodGet, "/journal-entries/statistics", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.StatisticsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(3, resp.TotalEntries)
	suite.Equal(2, resp.CountByStatus["POSTED"])
}

func (suite *HandlerTestSuite) TestCreateAccount_Duplicate() {
	suite.mockAccountService.On("CreateAccount", mock.Anything, companyID, mock.AnythingOfType("dto.CreateAccountRequest"), middleware.DefaultActor).
		Return(nil, fmt.Errorf("%w: account 521000 already exists", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/accounts", map[string]any{"code": "521000", "name": "Bank"})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestCreateAccount_InvalidCode() {
	w := suite.do(http.MethodPost, "/accounts", map[string]any{"code": "52A", "name": "Bank"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *HandlerTestSuite) TestListAccounts_ByClass() {
	suite.mockAccountService.On("ListAccounts", mock.Anything, companyID,
		mock.MatchedBy(func(p dto.ListAccountsParams) bool { return p.Class != nil && *p.Class == 5 }),
	).Return([]domain.Account{{CompanyID: companyID, Code: "521000", Name: "Bank", Nature: domain.Debit, IsActive: true}}, nil).Once()

	w := suite.do(http.MethodGet, "/accounts?class=5", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Accounts, 1)
	suite.Equal(5, resp.Accounts[0].Class)
}

func (suite *HandlerTestSuite) TestDeactivateAccount() {
	suite.mockAccountService.On("DeactivateAccount", mock.Anything, companyID, "521000", "carol").Return(nil).Once()

	w := suite.do(http.MethodDelete, "/accounts/521000", nil, middleware.ActorHeader, "carol")

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestTrialBalance() {
	asOf := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	tb := &domain.TrialBalance{
		CompanyID: companyID,
		AsOf:      asOf,
		Currency:  "XOF",
		Lines: []domain.TrialBalanceLine{
			domain.NewTrialBalanceLine("521000", "Bank", decimal.NewFromInt(100), decimal.Zero),
			domain.NewTrialBalanceLine("701000", "Sales", decimal.Zero, decimal.NewFromInt(100)),
		},
	}
	suite.mockReportingService.On("TrialBalance", mock.Anything, companyID, asOf, (*time.Time)(nil)).Return(tb, nil).Once()

	w := suite.do(http.MethodGet, "/reports/trial-balance?asOf=2024-03-31", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TrialBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Balanced)
	suite.Equal("2024-03-31", resp.AsOf)
	suite.Len(resp.Rows, 2)
}

func (suite *HandlerTestSuite) TestTrialBalance_MissingAsOf() {
	w := suite.do(http.MethodGet, "/reports/trial-balance", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReportingService.AssertNotCalled(suite.T(), "TrialBalance")
}

func (suite *HandlerTestSuite) TestBalanceSheet_UnknownStandard() {
	suite.mockReportingService.On("BalanceSheet", mock.Anything, companyID, mock.Anything, "US-GAAP").
		Return(nil, &statements.UnknownStandardError{Standard: "US-GAAP"}).Once()

	w := suite.do(http.MethodGet, "/reports/balance-sheet?asOf=2024-03-31&standard=US-GAAP", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(handlers.CodeUnknownStandard, body["code"])
}

func (suite *HandlerTestSuite) TestIncomeStatement_InvertedPeriod() {
	suite.mockReportingService.On("IncomeStatement", mock.Anything, companyID, mock.Anything, mock.Anything, "").
		Return(nil, fmt.Errorf("period start after end: %w", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodGet, "/reports/income-statement?from=2024-12-31&to=2024-01-01", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
