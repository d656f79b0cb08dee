package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
	portssvc "github.com/SscSPs/erp_journal_engine/internal/core/ports/services"
	"github.com/SscSPs/erp_journal_engine/internal/dto"
	"github.com/SscSPs/erp_journal_engine/internal/middleware"
	"github.com/SscSPs/erp_journal_engine/internal/utils/pagination"
)

// journalHandler handles HTTP requests related to journals.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
	lineService    portssvc.JournalLineSvc
}

func newJournalHandler(journalService portssvc.JournalSvcFacade, lineService portssvc.JournalLineSvc) *journalHandler {
	return &journalHandler{
		journalService: journalService,
		lineService:    lineService,
	}
}

// RegisterJournalRoutes registers the journal lifecycle routes on rg.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, lineService portssvc.JournalLineSvc) {
	h := newJournalHandler(journalService, lineService)

	journals := rg.Group("/journals")
	{
		journals.GET("", h.listJournals)
		journals.POST("", h.createJournal)
		journals.GET("/:id", h.getJournal)
		journals.PUT("/:id", h.updateJournal)
		journals.DELETE("/:id", h.deleteJournal)
		journals.POST("/:id/restore", h.restoreJournal)
		journals.POST("/:id/submit", h.submitJournal)
		journals.POST("/:id/approve", h.approveJournal)
		journals.POST("/:id/reject", h.rejectJournal)
		journals.POST("/:id/reopen", h.reopenJournal)
		journals.POST("/:id/post", h.postJournal)
		journals.POST("/:id/reverse", h.reverseJournal)
		journals.GET("/:id/lines", h.listJournalLines)
	}
}

// listJournals godoc
// @Summary List journals
// @Description Lists the caller's company journals, newest first by default
// @Tags journals
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Param sort_by query string false "journal_date, journal_number, created_at, total_debit or status"
// @Param sort_order query string false "asc or desc"
// @Param branch_id query string false "Branch ID"
// @Param journal_type query string false "Journal type"
// @Param status query string false "Journal status"
// @Param date_from query string false "Start date (YYYY-MM-DD)"
// @Param date_to query string false "End date (YYYY-MM-DD)"
// @Param period query string false "Period (YYYY-MM)"
// @Param search query string false "Matches journal number or description"
// @Param show_deleted query bool false "Include soft-deleted journals"
// @Param with_lines query bool false "Attach lines to every journal"
// @Success 200 {object} dto.Response{data=[]domain.JournalHeader}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	auth, ok := authContext(c)
	if !ok {
		return
	}

	var query dto.ListJournalsQuery
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

	journals, total, err := h.journalService.ListJournals(c.Request.Context(), auth, filter, page, query.IncludeLines())
	if err != nil {
		respondWithError(c, err)
		return
	}

	meta := pagination.NewMeta(page, total)
	c.JSON(http.StatusOK, dto.Response{
		Data:       nonNilJournals(journals),
		Message:    "Journals retrieved",
		Pagination: &meta,
	})
}

// getJournal godoc
// @Summary Get a journal
// @Description Returns a journal with its lines
// @Tags journals
// @Produce json
// @Param id path string true "Journal ID"
// @Param include_deleted query bool false "Return the journal even if soft-deleted"
// @Success 200 {object} dto.Response{data=domain.JournalHeader}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /journals/{id} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	auth, ok := authContext(c)
	if !ok {
		return
	}
	includeDeleted, _ := strconv.ParseBool(c.Query("include_deleted"))

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), auth, c.Param("id"), includeDeleted)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Response{Data: journal, Message: "Journal retrieved"})
}

// createJournal godoc
// @Summary Create a journal
// @Description Validates, numbers and stores a DRAFT journal
// @Tags journals
// @Accept json
// @Produce json
// @Param journal body dto.CreateJournalRequest true "Journal"
// @Success 201 {object} dto.Response{data=domain.JournalHeader}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	auth, ok := authContext(c)
	if !ok {
		return
	}

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	journal, err := h.journalService.CreateJournal(c.Request.Context(), auth, req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	middleware.GetLoggerFromContext(c).Info("Journal created", slog.String("journal_id", journal.ID))
	c.JSON(http.StatusCreated, dto.Response{Data: journal, Message: "Journal created"})
}

// updateJournal godoc
// @Summary Update a journal
// @Description Edits a DRAFT journal; lines are replaced only when sent
// @Tags journals
// @Accept json
// @Produce json
// @Param id path string true "Journal ID"
// @Param journal body dto.UpdateJournalRequest true "Changes"
// @Success 200 {object} dto.Response{data=domain.JournalHeader}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /journals/{id} [put]
func (h *journalHandler) updateJournal(c *gin.Context) {
	auth, ok := authContext(c)
	if !ok {
		return
	}

	var req dto.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	journal, err := h.journalService.UpdateJournal(c.Request.Context(), auth, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Response{Data: journal, Message: "Journal updated"})
}

// deleteJournal godoc
// @Summary Delete a journal
// @Description Soft-deletes a DRAFT or REJECTED journal
// @Tags journals
// @Produce json
// @Param id path string true "Journal ID"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /journals/{id} [delete]
func (h *journalHandler) deleteJournal(c *gin.Context) {
	auth, ok := authContext(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if err := h.journalService.DeleteJournal(c.Request.Context(), auth, id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Response{Data: gin.H{"id": id}, Message: "Journal deleted"})
}

// restoreJournal godoc
// @Summary Restore a journal
// @Tags journals
// @Produce json
// @Param id path string true "Journal ID"
// @Success 200 {object} dto.Response{data=domain.JournalHeader}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /journals/{id}/restore [post]
func (h *journalHandler) restoreJournal(c *gin.Context) {
	h.lifecycle(c, "Journal restored", h.journalService.RestoreJournal)
}

// submitJournal godoc
// @Summary Submit a journal for approval
// @Tags journals
// @Produce json
// @Param id path string true "Journal ID"
// @Success 200 {object} dto.Response{data=domain.JournalHeader}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /journals/{id}/submit [post]
func (h *journalHandler) submitJournal(c *gin.Context) {
	h.lifecycle(c, "Journal submitted", h.journalService.SubmitJournal)
}

// approveJournal godoc
// @Summary Approve a submitted journal
// @Tags journals
// @Produce json
// @Param id path string true "Journal ID"
// @Success 200 {object} dto.Response{data=domain.JournalHeader}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /journals/{id}/approve [post]
func (h *journalHandler) approveJournal(c *gin.Context) {
	h.lifecycle(c, "Journal approved", h.journalService.ApproveJournal)
}

// reopenJournal godoc
// @Summary Move a rejected journal back to draft
// @Tags journals
// @Produce json
// @Param id path string true "Journal ID"
// @Success 200 {object} dto.Response{data=domain.JournalHeader}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /journals/{id}/reopen [post]
func (h *journalHandler) reopenJournal(c *gin.Context) {
	h.lifecycle(c, "Journal reopened", h.journalService.ReopenJournal)
}

// postJournal godoc
// @Summary Post an approved journal
// @Description Re-validates the stored lines and checks the fiscal period is open
// @Tags journals
// @Produce json
// @Param id path string true "Journal ID"
// @Success 200 {object} dto.Response{data=domain.JournalHeader}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /journals/{id}/post [post]
func (h *journalHandler) postJournal(c *gin.Context) {
	h.lifecycle(c, "Journal posted", h.journalService.PostJournal)
}

// rejectJournal godoc
// @Summary Reject a journal
// @Tags journals
// @Accept json
// @Produce json
// @Param id path string true "Journal ID"
// @Param body body dto.RejectJournalRequest true "Rejection reason"
// @Success 200 {object} dto.Response{data=domain.JournalHeader}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /journals/{id}/reject [post]
func (h *journalHandler) rejectJournal(c *gin.Context) {
	auth, ok := authContext(c)
	if !ok {
		return
	}

	var req dto.RejectJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	journal, err := h.journalService.RejectJournal(c.Request.Context(), auth, c.Param("id"), req.RejectionReason)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Response{Data: journal, Message: "Journal rejected"})
}

// reverseJournal godoc
// @Summary Reverse a posted journal
// @Description Creates and posts a mirrored journal and returns it
// @Tags journals
// @Accept json
// @Produce json
// @Param id path string true "Journal ID"
// @Param body body dto.ReverseJournalRequest true "Reversal details"
// @Success 201 {object} dto.Response{data=domain.JournalHeader}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /journals/{id}/reverse [post]
func (h *journalHandler) reverseJournal(c *gin.Context) {
	auth, ok := authContext(c)
	if !ok {
		return
	}

	var req dto.ReverseJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err)
		return
	}

	reversal, err := h.journalService.ReverseJournal(c.Request.Context(), auth, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.Response{Data: reversal, Message: "Journal reversed"})
}

// listJournalLines godoc
// @Summary List the lines of a journal
// @Tags journals
// @Produce json
// @Param id path string true "Journal ID"
// @Success 200 {object} dto.Response{data=[]domain.LineWithDetails}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /journals/{id}/lines [get]
func (h *journalHandler) listJournalLines(c *gin.Context) {
	auth, ok := authContext(c)
	if !ok {
		return
	}

	lines, err := h.lineService.ListByJournal(c.Request.Context(), auth, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Response{Data: nonNilLines(lines), Message: "Journal lines retrieved"})
}

type lifecycleFunc func(ctx context.Context, auth domain.AuthContext, journalID string) (*domain.JournalHeader, error)

// lifecycle serves the body-less state-machine endpoints.
func (h *journalHandler) lifecycle(c *gin.Context, message string, fn lifecycleFunc) {
	auth, ok := authContext(c)
	if !ok {
		return
	}

	journal, err := fn(c.Request.Context(), auth, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Response{Data: journal, Message: message})
}

func nonNilJournals(journals []domain.JournalHeader) []domain.JournalHeader {
	if journals == nil {
		return []domain.JournalHeader{}
	}
	return journals
}

func nonNilLines(lines []domain.LineWithDetails) []domain.LineWithDetails {
	if lines == nil {
		return []domain.LineWithDetails{}
	}
	return lines
}
