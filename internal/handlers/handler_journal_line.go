package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/erp_journal_engine/internal/core/ports/services"
	"github.com/SscSPs/erp_journal_engine/internal/dto"
	"github.com/SscSPs/erp_journal_engine/internal/utils/pagination"
)

type journalLineHandler struct {
	lineService portssvc.JournalLineSvc
}

// RegisterJournalLineRoutes registers the read-only line and report routes on rg.
func RegisterJournalLineRoutes(rg *gin.RouterGroup, lineService portssvc.JournalLineSvc) {
	h := &journalLineHandler{lineService: lineService}

	lines := rg.Group("/journal-lines")
	{
		lines.GET("", h.listLines)
		lines.GET("/by-account/:accountId", h.listLinesByAccount)
		lines.GET("/trial-balance", h.trialBalance)
		lines.GET("/integrity", h.verifyIntegrity)
	}
}

// listLines godoc
// @Summary List journal lines
// @Description Chronological lines; deleted and reversed journals are hidden unless requested
// @Tags journal-lines
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param account_id query string false "Account ID"
// @Param branch_id query string false "Branch ID"
// @Param status query string false "Comma separated journal statuses"
// @Param period query string false "Period (YYYY-MM)"
// @Param date_from query string false "Start date (YYYY-MM-DD)"
// @Param date_to query string false "End date (YYYY-MM-DD)"
// @Param include_reversed query bool false "Include reversed journals and their reversals"
// @Param include_deleted query bool false "Include soft-deleted journals"
// @Success 200 {object} dto.Response{data=[]domain.LineWithDetails}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /journal-lines [get]
func (h *journalLineHandler) listLines(c *gin.Context) {
	auth, ok := authContext(c)
	if !ok {
		return
	}

	var query dto.LineQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithBindError(c, err)
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		respondWithBindError(c, err)
		return
	}
	page := pagination.Resolve(query.Page, query.Limit)

	lines, total, err := h.lineService.ListLines(c.Request.Context(), auth, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	meta := pagination.NewMeta(page, total)
	c.JSON(http.StatusOK, dto.Response{Data: nonNilLines(lines), Message: "Journal lines retrieved", Pagination: &meta})
}

// listLinesByAccount godoc
// @Summary List an account's lines with its balance
// @Description The summary covers every matching POSTED line unless statuses are given
// @Tags journal-lines
// @Produce json
// @Param accountId path string true "Account ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "Comma separated journal statuses"
// @Param period query string false "Period (YYYY-MM)"
// @Param date_from query string false "Start date (YYYY-MM-DD)"
// @Param date_to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.Response{data=dto.AccountLinesResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /journal-lines/by-account/{accountId} [get]
func (h *journalLineHandler) listLinesByAccount(c *gin.Context) {
	auth, ok := authContext(c)
	if !ok {
		return
	}

	var query dto.LineQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithBindError(c, err)
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		respondWithBindError(c, err)
		return
	}
	page := pagination.Resolve(query.Page, query.Limit)
	accountID := c.Param("accountId")

	lines, total, balance, err := h.lineService.ListByAccount(c.Request.Context(), auth, accountID, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	meta := pagination.NewMeta(page, total)
	c.JSON(http.StatusOK, dto.Response{
		Data: dto.AccountLinesResponse{
			AccountID: accountID,
			Lines:     nonNilLines(lines),
			Summary:   balance,
		},
		Message:    "Account lines retrieved",
		Pagination: &meta,
	})
}

// trialBalance godoc
// @Summary Trial balance
// @Description Per-account totals of POSTED journals unless statuses are given
// @Tags journal-lines
// @Produce json
// @Param branch_id query string false "Branch ID"
// @Param status query string false "Comma separated journal statuses"
// @Param period query string false "Period (YYYY-MM)"
// @Param date_from query string false "Start date (YYYY-MM-DD)"
// @Param date_to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.Response{data=domain.TrialBalance}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /journal-lines/trial-balance [get]
func (h *journalLineHandler) trialBalance(c *gin.Context) {
	auth, ok := authContext(c)
	if !ok {
		return
	}

	var query dto.LineQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithBindError(c, err)
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		respondWithBindError(c, err)
		return
	}

	tb, err := h.lineService.GetTrialBalance(c.Request.Context(), auth, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Response{Data: tb, Message: "Trial balance retrieved"})
}

// verifyIntegrity godoc
// @Summary Verify journal integrity
// @Description Re-aggregates stored lines and lists journals that contradict them
// @Tags journal-lines
// @Produce json
// @Success 200 {object} dto.Response{data=domain.IntegrityReport}
// @Security BearerAuth
// @Router /journal-lines/integrity [get]
func (h *journalLineHandler) verifyIntegrity(c *gin.Context) {
	auth, ok := authContext(c)
	if !ok {
		return
	}

	report, err := h.lineService.VerifyIntegrity(c.Request.Context(), auth.CompanyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	message := "No integrity problems found"
	if !report.Healthy() {
		message = "Integrity problems found"
	}
	c.JSON(http.StatusOK, dto.Response{Data: report, Message: message})
}
