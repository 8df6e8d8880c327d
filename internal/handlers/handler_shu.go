package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portssvc "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/services"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/dto"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/middleware"
)

// shuHandler handles the yearly SHU distribution.
type shuHandler struct {
	shuService portssvc.SHUSvcFacade
	effects    portssvc.EffectDispatcher
}

func newSHUHandler(ss portssvc.SHUSvcFacade, effects portssvc.EffectDispatcher) *shuHandler {
	return &shuHandler{shuService: ss, effects: effects}
}

func registerSHURoutes(rg *gin.RouterGroup, shuService portssvc.SHUSvcFacade, effects portssvc.EffectDispatcher) {
	h := newSHUHandler(shuService, effects)

	shu := rg.Group("/shu", middleware.RequireRoles(domain.RoleAdmin, domain.RoleAccounting, domain.RoleManager))
	{
		shu.POST("/preview", h.previewSHU)
		shu.POST("/distributions", middleware.RequireRoles(domain.RoleAdmin, domain.RoleManager), h.distributeSHU)
		shu.GET("/distributions/:year", h.getDistribution)
	}
}

func (h *shuHandler) bindRules(c *gin.Context, logger *slog.Logger) (dto.DistributeSHURequest, bool) {
	var req dto.DistributeSHURequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SHU rules", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return req, false
	}
	return req, true
}

// previewSHU computes the allocations without posting.
func (h *shuHandler) previewSHU(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	req, ok := h.bindRules(c, logger)
	if !ok {
		return
	}

	allocations, err := h.shuService.PreviewSHU(c.Request.Context(), req.ToRules())
	if err != nil {
		handleServiceError(c, logger.With(slog.Int("year", req.Year)), err, "preview SHU")
		return
	}
	c.JSON(http.StatusOK, allocations)
}

func (h *shuHandler) distributeSHU(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	req, ok := h.bindRules(c, logger)
	if !ok {
		return
	}
	actor, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.Int("year", req.Year))
	outcome, err := h.shuService.DistributeSHU(c.Request.Context(), req.ToRules(), actor)
	if err != nil {
		handleServiceError(c, logger, err, "distribute SHU")
		return
	}
	dispatchEffects(c.Request.Context(), h.effects, outcome.Effects)

	logger.Info("SHU distributed",
		slog.String("distributed", outcome.Distribution.Distributed.String()),
		slog.Int("member_count", len(outcome.Distribution.Allocations)))
	c.JSON(http.StatusCreated, outcome.Distribution)
}

func (h *shuHandler) getDistribution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}

	distribution, err := h.shuService.GetDistribution(c.Request.Context(), year)
	if err != nil {
		handleServiceError(c, logger.With(slog.Int("year", year)), err, "retrieve SHU distribution")
		return
	}
	c.JSON(http.StatusOK, distribution)
}
