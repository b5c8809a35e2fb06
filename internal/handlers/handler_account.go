package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ecompta_backend/internal/core/ports/services"
	"github.com/SscSPs/ecompta_backend/internal/dto"
	"github.com/SscSPs/ecompta_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// RegisterAccountRoutes registers chart-of-accounts routes under a company-scoped group.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.POST("/third-party", h.createThirdPartyAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:code", h.getAccount)
		accounts.DELETE("/:code", h.deactivateAccount)
	}
}

// createAccount godoc
// @Summary Add an account to the chart
// @Description The code must follow the numbering format of the company's standard.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   X-Actor header string false "Who performs the change"
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 409 {object} map[string]string "Code already used"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Router /companies/{company_id}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "Invalid request format")
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), c.Param("company_id"), req, middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err, "account")
		return
	}

	logger.Info("Account created successfully", slog.String("code", account.Code))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// createThirdPartyAccount godoc
// @Summary Open a customer or supplier sub-account
// @Description Allocates the next 411NNNN (customer) or 401NNNN (supplier) code.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   X-Actor header string false "Who performs the change"
// @Param   account body dto.CreateThirdPartyAccountRequest true "Third party"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Numbering exhausted"
// @Router /companies/{company_id}/accounts/third-party [post]
func (h *accountHandler) createThirdPartyAccount(c *gin.Context) {
	var req dto.CreateThirdPartyAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "Invalid request format")
		return
	}

	account, err := h.accountService.CreateThirdPartyAccount(c.Request.Context(), c.Param("company_id"), req, middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err, "account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account by code
// @Tags accounts
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   code path string true "Account code"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /companies/{company_id}/accounts/{code} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.GetAccount(c.Request.Context(), c.Param("company_id"), c.Param("code"))
	if err != nil {
		respondError(c, err, "account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List the chart of accounts
// @Tags accounts
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   class query int false "Restrict to one class (1-9)"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Router /companies/{company_id}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "Invalid query parameters")
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), c.Param("company_id"), params)
	if err != nil {
		respondError(c, err, "accounts")
		return
	}

	logger.Debug("Accounts listed successfully", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToAccountResponses(accounts)})
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Inactive accounts are refused in new entries; booked postings are kept.
// @Tags accounts
// @Param   company_id path string true "Company ID"
// @Param   code path string true "Account code"
// @Param   X-Actor header string false "Who performs the change"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /companies/{company_id}/accounts/{code} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	if err := h.accountService.DeactivateAccount(c.Request.Context(), c.Param("company_id"), c.Param("code"), middleware.GetActorFromContext(c)); err != nil {
		respondError(c, err, "account")
		return
	}
	c.Status(http.StatusNoContent)
}
