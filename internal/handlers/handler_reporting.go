package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/services"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/dto"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/middleware"
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

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/profit-and-loss", h.getProfitAndLoss)
		reportingGroup.GET("/ledger/:id", h.getAccountLedger)
		reportingGroup.GET("/journal-integrity", h.verifyJournals)
	}
}

// getTrialBalance returns balances as of ?asOf=YYYY-MM-DD, today when omitted.
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.TrialBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid asOf date format", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}
	if params.AsOf.IsZero() {
		params.AsOf = time.Now()
	}

	logger = logger.With(slog.String("as_of", params.AsOf.Format(time.DateOnly)))
	report, err := h.reportingService.TrialBalance(c.Request.Context(), params.AsOf)
	if err != nil {
		handleServiceError(c, logger, err, "generate trial balance")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid date range", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both 'from' and 'to' are required in YYYY-MM-DD format"})
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), params.From, params.To)
	if err != nil {
		handleServiceError(c, logger, err, "generate profit and loss")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) getAccountLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := parseIDParam(c, logger, "id")
	if !ok {
		return
	}
	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid date range", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both 'from' and 'to' are required in YYYY-MM-DD format"})
		return
	}

	ledger, err := h.reportingService.AccountLedger(c.Request.Context(), accountID, params.From, params.To)
	if err != nil {
		handleServiceError(c, logger.With(slog.Int64("account_id", accountID)), err, "generate account ledger")
		return
	}
	c.JSON(http.StatusOK, ledger)
}

// verifyJournals lists stored journals whose debits and credits differ. An empty list is healthy.
func (h *reportingHandler) verifyJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	imbalances, err := h.reportingService.VerifyJournals(c.Request.Context())
	if err != nil {
		handleServiceError(c, logger, err, "verify journals")
		return
	}
	if len(imbalances) > 0 {
		logger.Error("Unbalanced journals found in storage", slog.Int("count", len(imbalances)))
	}
	c.JSON(http.StatusOK, gin.H{"balanced": len(imbalances) == 0, "imbalances": imbalances})
}
