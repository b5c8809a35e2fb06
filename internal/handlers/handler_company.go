package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ecompta_backend/internal/core/ports/services"
	"github.com/SscSPs/ecompta_backend/internal/core/statements"
	"github.com/SscSPs/ecompta_backend/internal/dto"
	"github.com/SscSPs/ecompta_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type companyHandler struct {
	companyService portssvc.CompanySvcFacade
	registry       *statements.Registry
}

// RegisterCompanyRoutes registers company and standards routes.
func RegisterCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanySvcFacade, registry *statements.Registry) {
	h := &companyHandler{companyService: companyService, registry: registry}

	rg.POST("/companies", h.createCompany)
	rg.GET("/companies/:company_id", h.getCompany)
	rg.GET("/standards", h.listStandards)
}

// createCompany godoc
// @Summary Open a company
// @Tags companies
// @Accept  json
// @Produce  json
// @Param   X-Actor header string false "Who performs the change"
// @Param   company body dto.CreateCompanyRequest true "Company details"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown standard"
// @Failure 500 {object} map[string]string "Failed to create company"
// @Router /companies [post]
func (h *companyHandler) createCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "Invalid request format")
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), req, middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err, "company")
		return
	}

	logger.Info("Company created", slog.String("company_id", company.CompanyID), slog.String("standard", string(company.Standard)))
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company))
}

// getCompany godoc
// @Summary Get a company
// @Tags companies
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} map[string]string "Company not found"
// @Router /companies/{company_id} [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	company, err := h.companyService.GetCompany(c.Request.Context(), c.Param("company_id"))
	if err != nil {
		respondError(c, err, "company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// listStandards godoc
// @Summary List the accounting standards with a mapping table
// @Tags standards
// @Produce  json
// @Success 200 {array} dto.StandardResponse
// @Router /standards [get]
func (h *companyHandler) listStandards(c *gin.Context) {
	defs := h.registry.Standards()
	resp := make([]dto.StandardResponse, len(defs))
	for i, d := range defs {
		resp[i] = dto.StandardResponse{Standard: string(d.Standard), Label: d.Label}
	}
	c.JSON(http.StatusOK, resp)
}
