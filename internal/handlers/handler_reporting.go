package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ecompta_backend/internal/core/ports/services"
	"github.com/SscSPs/ecompta_backend/internal/dto"
	"github.com/SscSPs/ecompta_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// RegisterReportingRoutes registers report routes under a company-scoped group.
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/income-statement", h.getIncomeStatement)
		reportingGroup.GET("/cash-flow", h.getCashFlow)
		reportingGroup.GET("/all-statements", h.getAllStatements)
	}
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Aggregates posted entries up to asOf. With from, only the activity of [from, asOf] is included.
// @Tags reports
// @Produce json
// @Param company_id path string true "Company ID"
// @Param asOf query string true "Report date (YYYY-MM-DD)"
// @Param from query string false "Period start (YYYY-MM-DD)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /companies/{company_id}/reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.TrialBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "Invalid query parameters")
		return
	}

	tb, err := h.reportingService.TrialBalance(c.Request.Context(), c.Param("company_id"), params.AsOf, params.From)
	if err != nil {
		respondError(c, err, "trial balance")
		return
	}

	logger.Info("Trial balance report generated successfully", slog.Int("row_count", len(tb.Lines)))
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}

// getBalanceSheet godoc
// @Summary Generate balance sheet
// @Tags reports
// @Produce json
// @Param company_id path string true "Company ID"
// @Param asOf query string true "Report date (YYYY-MM-DD)"
// @Param standard query string false "Accounting standard, defaults to the company's"
// @Success 200 {object} domain.FinancialStatement
// @Failure 400 {object} map[string]string "Invalid input or unknown standard"
// @Failure 404 {object} map[string]string "Company not found"
// @Router /companies/{company_id}/reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	var params dto.BalanceSheetParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "Invalid query parameters")
		return
	}

	statement, err := h.reportingService.BalanceSheet(c.Request.Context(), c.Param("company_id"), params.AsOf, params.Standard)
	if err != nil {
		respondError(c, err, "balance sheet")
		return
	}
	c.JSON(http.StatusOK, statement)
}

// getIncomeStatement godoc
// @Summary Generate income statement
// @Tags reports
// @Produce json
// @Param company_id path string true "Company ID"
// @Param from query string true "Period start (YYYY-MM-DD)"
// @Param to query string true "Period end (YYYY-MM-DD)"
// @Param standard query string false "Accounting standard, defaults to the company's"
// @Success 200 {object} domain.FinancialStatement
// @Failure 400 {object} map[string]string "Invalid input or unknown standard"
// @Router /companies/{company_id}/reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	var params dto.PeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "Invalid query parameters")
		return
	}

	statement, err := h.reportingService.IncomeStatement(c.Request.Context(), c.Param("company_id"), params.From, params.To, params.Standard)
	if err != nil {
		respondError(c, err, "income statement")
		return
	}
	c.JSON(http.StatusOK, statement)
}

// getCashFlow godoc
// @Summary Generate cash-flow statement
// @Tags reports
// @Produce json
// @Param company_id path string true "Company ID"
// @Param from query string true "Period start (YYYY-MM-DD)"
// @Param to query string true "Period end (YYYY-MM-DD)"
// @Param standard query string false "Accounting standard, defaults to the company's"
// @Success 200 {object} domain.FinancialStatement
// @Failure 400 {object} map[string]string "Invalid input or unknown standard"
// @Router /companies/{company_id}/reports/cash-flow [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	var params dto.PeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "Invalid query parameters")
		return
	}

	statement, err := h.reportingService.CashFlow(c.Request.Context(), c.Param("company_id"), params.From, params.To, params.Standard)
	if err != nil {
		respondError(c, err, "cash-flow statement")
		return
	}
	c.JSON(http.StatusOK, statement)
}

// getAllStatements godoc
// @Summary Generate the three statements of a period
// @Description Balance sheet as of `to`, income statement and cash flow over [from, to].
// @Tags reports
// @Produce json
// @Param company_id path string true "Company ID"
// @Param from query string true "Period start (YYYY-MM-DD)"
// @Param to query string true "Period end (YYYY-MM-DD)"
// @Param standard query string false "Accounting standard, defaults to the company's"
// @Success 200 {object} dto.AllStatementsResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown standard"
// @Router /companies/{company_id}/reports/all-statements [get]
func (h *reportingHandler) getAllStatements(c *gin.Context) {
	var params dto.PeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "Invalid query parameters")
		return
	}

	all, err := h.reportingService.AllStatements(c.Request.Context(), c.Param("company_id"), params.From, params.To, params.Standard)
	if err != nil {
		respondError(c, err, "financial statements")
		return
	}
	c.JSON(http.StatusOK, dto.AllStatementsResponse{
		BalanceSheet:    all.BalanceSheet,
		IncomeStatement: all.IncomeStatement,
		CashFlow:        all.CashFlow,
	})
}
