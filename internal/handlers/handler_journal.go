package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ecompta_backend/internal/core/ledger"
	portssvc "github.com/SscSPs/ecompta_backend/internal/core/ports/services"
	"github.com/SscSPs/ecompta_backend/internal/dto"
	"github.com/SscSPs/ecompta_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

// RegisterJournalRoutes registers journal entry routes under a company-scoped group.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("/check", h.checkEntry)
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/statistics", h.getStatistics)
		entries.GET("/:entry_id", h.getEntry)
		entries.PUT("/:entry_id", h.updateDraft)
		entries.POST("/:entry_id/validate", h.validateEntry)
		entries.POST("/:entry_id/post", h.postEntry)
		entries.POST("/:entry_id/cancel", h.cancelEntry)
	}
}

// checkEntry godoc
// @Summary Dry-run validation of a journal entry
// @Description Validates structure and balance without persisting anything. Rejections are reported in the body with status 200.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   entry body dto.EntryRequest true "Entry to check"
// @Success 200 {object} dto.ValidationResponse
// @Failure 400 {object} map[string]string "Invalid request format or unknown standard"
// @Failure 404 {object} map[string]string "Company not found"
// @Router /companies/{company_id}/journal-entries/check [post]
func (h *journalHandler) checkEntry(c *gin.Context) {
	var req dto.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "Invalid request format")
		return
	}

	result, err := h.journalService.CheckEntry(c.Request.Context(), c.Param("company_id"), req)
	if err != nil && !isLedgerRejection(err) {
		respondError(c, err, "company")
		return
	}
	c.JSON(http.StatusOK, dto.ValidationResponse{Result: result})
}

// createEntry godoc
// @Summary Create a draft journal entry
// @Description Validates the entry, allocates its number and stores it as DRAFT.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   X-Actor header string false "Who performs the change"
// @Param   entry body dto.EntryRequest true "Entry to create"
// @Success 201 {object} dto.ValidationResponse
// @Failure 400 {object} map[string]string "Invalid request format or unknown standard"
// @Failure 404 {object} map[string]string "Company not found"
// @Failure 422 {object} dto.ValidationResponse "Entry rejected"
// @Failure 500 {object} map[string]string "Failed to create entry"
// @Router /companies/{company_id}/journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "Invalid request format")
		return
	}

	entry, result, err := h.journalService.CreateEntry(c.Request.Context(), c.Param("company_id"), req, middleware.GetActorFromContext(c))
	if err != nil {
		respondLedgerError(c, err, result)
		return
	}

	logger.Info("Journal entry created", slog.String("entry_id", entry.EntryID), slog.String("entry_number", entry.EntryNumber))
	resp := dto.ToEntryResponse(entry)
	c.JSON(http.StatusCreated, dto.ValidationResponse{Result: result, Entry: &resp})
}

// updateDraft godoc
// @Summary Replace a draft journal entry
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   entry_id path string true "Entry ID"
// @Param   X-Actor header string false "Who performs the change"
// @Param   entry body dto.EntryRequest true "New content"
// @Success 200 {object} dto.ValidationResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is no longer a draft"
// @Failure 422 {object} dto.ValidationResponse "Entry rejected"
// @Router /companies/{company_id}/journal-entries/{entry_id} [put]
func (h *journalHandler) updateDraft(c *gin.Context) {
	var req dto.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "Invalid request format")
		return
	}

	entry, result, err := h.journalService.UpdateDraft(c.Request.Context(), c.Param("company_id"), c.Param("entry_id"), req, middleware.GetActorFromContext(c))
	if err != nil {
		respondLedgerError(c, err, result)
		return
	}
	resp := dto.ToEntryResponse(entry)
	c.JSON(http.StatusOK, dto.ValidationResponse{Result: result, Entry: &resp})
}

// validateEntry godoc
// @Summary Validate a draft journal entry
// @Description Re-runs the ledger checks on the stored draft and moves it to VALIDATED.
// @Tags journal-entries
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   entry_id path string true "Entry ID"
// @Param   X-Actor header string false "Who performs the change"
// @Success 200 {object} dto.ValidationResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Failure 422 {object} dto.ValidationResponse "Entry rejected"
// @Router /companies/{company_id}/journal-entries/{entry_id}/validate [post]
func (h *journalHandler) validateEntry(c *gin.Context) {
	entry, result, err := h.journalService.ValidateEntry(c.Request.Context(), c.Param("company_id"), c.Param("entry_id"), middleware.GetActorFromContext(c))
	if err != nil {
		respondLedgerError(c, err, result)
		return
	}
	resp := dto.ToEntryResponse(entry)
	c.JSON(http.StatusOK, dto.ValidationResponse{Result: result, Entry: &resp})
}

// postEntry godoc
// @Summary Post a validated journal entry
// @Description Posted entries are immutable and feed the trial balance.
// @Tags journal-entries
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   entry_id path string true "Entry ID"
// @Param   X-Actor header string false "Who performs the change"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Router /companies/{company_id}/journal-entries/{entry_id}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	entry, err := h.journalService.PostEntry(c.Request.Context(), c.Param("company_id"), c.Param("entry_id"), middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err, "journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// cancelEntry godoc
// @Summary Cancel a draft or validated journal entry
// @Tags journal-entries
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   entry_id path string true "Entry ID"
// @Param   X-Actor header string false "Who performs the change"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Router /companies/{company_id}/journal-entries/{entry_id}/cancel [post]
func (h *journalHandler) cancelEntry(c *gin.Context) {
	entry, err := h.journalService.CancelEntry(c.Request.Context(), c.Param("company_id"), c.Param("entry_id"), middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err, "journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry and its postings
// @Tags journal-entries
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Router /companies/{company_id}/journal-entries/{entry_id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	entry, err := h.journalService.GetEntry(c.Request.Context(), c.Param("company_id"), c.Param("entry_id"))
	if err != nil {
		respondError(c, err, "journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Newest first, paginated with an opaque token.
// @Tags journal-entries
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   status query string false "DRAFT, VALIDATED, POSTED or CANCELLED"
// @Param   from query string false "First entry date (YYYY-MM-DD)"
// @Param   to query string false "Last entry date (YYYY-MM-DD)"
// @Param   limit query int false "Page size (1-100)" default(20)
// @Param   nextToken query string false "Token returned by the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Router /companies/{company_id}/journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "Invalid query parameters")
		return
	}

	resp, err := h.journalService.ListEntries(c.Request.Context(), c.Param("company_id"), params)
	if err != nil {
		respondError(c, err, "journal entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getStatistics godoc
// @Summary Journal statistics
// @Tags journal-entries
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Success 200 {object} dto.StatisticsResponse
// @Router /companies/{company_id}/journal-entries/statistics [get]
func (h *journalHandler) getStatistics(c *gin.Context) {
	stats, err := h.journalService.Statistics(c.Request.Context(), c.Param("company_id"))
	if err != nil {
		respondError(c, err, "journal statistics")
		return
	}
	c.JSON(http.StatusOK, dto.ToStatisticsResponse(stats))
}

func isLedgerRejection(err error) bool {
	var structural *ledger.StructuralError
	var imbalance *ledger.ImbalanceError
	return errors.As(err, &structural) || errors.As(err, &imbalance)
}
