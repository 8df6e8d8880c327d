package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portssvc "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/services"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/dto"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/middleware"
)

// journalHandler handles HTTP requests related to journals.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: js,
	}
}

// registerJournalRoutes registers routes related to journals.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.GET("", h.listJournals)
		journals.GET("/:id", h.getJournal)
		journals.POST("", middleware.RequireRoles(domain.RoleAdmin, domain.RoleAccounting), h.createJournal)
	}
}

// createJournal posts a manual adjusting journal.
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to create journal", slog.Int("line_count", len(req.Lines)))
	journal, err := h.journalService.CreateJournal(c.Request.Context(), req, actor)
	if err != nil {
		handleServiceError(c, logger, err, "create journal")
		return
	}

	logger.Info("Journal created successfully", slog.Int64("journal_id", journal.JournalID), slog.String("reference", journal.ReferenceNumber))
	c.JSON(http.StatusCreated, dto.ToGetJournalResponse(journal))
}

func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID, ok := parseIDParam(c, logger, "id")
	if !ok {
		return
	}

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), journalID)
	if err != nil {
		handleServiceError(c, logger.With(slog.Int64("journal_id", journalID)), err, "retrieve journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToGetJournalResponse(journal))
}

// listJournals returns journals newest first, paginated with an opaque nextToken.
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for ListJournals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListJournals(c.Request.Context(), params)
	if err != nil {
		handleServiceError(c, logger, err, "list journals")
		return
	}
	c.JSON(http.StatusOK, resp)
}
