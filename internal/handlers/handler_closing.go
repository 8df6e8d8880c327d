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

// closingHandler handles HTTP requests for the monthly close.
type closingHandler struct {
	closingService portssvc.ClosingSvcFacade
	effects        portssvc.EffectDispatcher
}

func newClosingHandler(cs portssvc.ClosingSvcFacade, effects portssvc.EffectDispatcher) *closingHandler {
	return &closingHandler{closingService: cs, effects: effects}
}

// registerClosingRoutes registers routes for closing and reopening months.
func registerClosingRoutes(rg *gin.RouterGroup, closingService portssvc.ClosingSvcFacade, effects portssvc.EffectDispatcher) {
	h := newClosingHandler(closingService, effects)
	backOffice := middleware.RequireRoles(domain.RoleAdmin, domain.RoleAccounting, domain.RoleManager)

	closings := rg.Group("/closings")
	{
		closings.GET("", h.listClosings)
		closings.GET("/:year/:month", h.getClosing)
		closings.POST("/:year/:month", backOffice, h.closeMonth)
		closings.DELETE("/:year/:month", backOffice, h.reopenMonth)
	}
}

func (h *closingHandler) bindPeriod(c *gin.Context, logger *slog.Logger) (dto.ClosingPeriodURI, bool) {
	var period dto.ClosingPeriodURI
	if err := c.ShouldBindUri(&period); err != nil {
		logger.Warn("Invalid closing period in path", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid period: " + err.Error()})
		return period, false
	}
	return period, true
}

func (h *closingHandler) closeMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	period, ok := h.bindPeriod(c, logger)
	if !ok {
		return
	}
	actor, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.Int("year", period.Year), slog.Int("month", period.Month))
	logger.Info("Received request to close month")

	outcome, err := h.closingService.CloseMonth(c.Request.Context(), period.Year, period.Month, actor)
	if err != nil {
		handleServiceError(c, logger, err, "close month")
		return
	}
	dispatchEffects(c.Request.Context(), h.effects, outcome.Effects)

	logger.Info("Month closed", slog.Int("movement_count", len(outcome.Movements)))
	c.JSON(http.StatusCreated, outcome)
}

func (h *closingHandler) reopenMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	period, ok := h.bindPeriod(c, logger)
	if !ok {
		return
	}
	actor, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.Int("year", period.Year), slog.Int("month", period.Month))
	effects, err := h.closingService.ReopenMonth(c.Request.Context(), period.Year, period.Month, actor)
	if err != nil {
		handleServiceError(c, logger, err, "reopen month")
		return
	}
	dispatchEffects(c.Request.Context(), h.effects, effects)

	logger.Info("Month reopened")
	c.Status(http.StatusNoContent)
}

func (h *closingHandler) getClosing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	period, ok := h.bindPeriod(c, logger)
	if !ok {
		return
	}

	closing, err := h.closingService.GetClosing(c.Request.Context(), period.Year, period.Month)
	if err != nil {
		handleServiceError(c, logger, err, "retrieve closing")
		return
	}
	c.JSON(http.StatusOK, closing)
}

func (h *closingHandler) listClosings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	closings, err := h.closingService.ListClosings(c.Request.Context())
	if err != nil {
		handleServiceError(c, logger, err, "list closings")
		return
	}
	c.JSON(http.StatusOK, closings)
}
