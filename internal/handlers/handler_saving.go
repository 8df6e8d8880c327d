package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portssvc "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/services"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/dto"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/middleware"
)

// savingHandler handles HTTP requests for member savings.
type savingHandler struct {
	savingService portssvc.SavingSvcFacade
	effects       portssvc.EffectDispatcher
}

func newSavingHandler(ss portssvc.SavingSvcFacade, effects portssvc.EffectDispatcher) *savingHandler {
	return &savingHandler{savingService: ss, effects: effects}
}

// registerSavingRoutes registers saving transaction and member balance routes.
func registerSavingRoutes(rg *gin.RouterGroup, savingService portssvc.SavingSvcFacade, effects portssvc.EffectDispatcher) {
	h := newSavingHandler(savingService, effects)
	accounting := middleware.RequireRoles(domain.RoleAdmin, domain.RoleAccounting)

	savings := rg.Group("/savings")
	{
		savings.POST("", h.submitSaving)
		savings.GET("/:id", h.getSaving)
		savings.POST("/:id/approve", accounting, h.approveSaving)
		savings.POST("/:id/reject", accounting, h.rejectSaving)
	}

	members := rg.Group("/members/:id/savings")
	{
		members.GET("", h.listMemberSavings)
		members.GET("/balance", h.getBalance)
	}
}

func (h *savingHandler) submitSaving(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SubmitSavingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitSaving", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	logger.Info("Received saving transaction",
		slog.Int64("member_id", req.MemberID),
		slog.String("saving_type", req.SavingType),
		slog.String("kind", string(req.Kind)))
	outcome, err := h.savingService.SubmitSaving(c.Request.Context(), req.ToSaving(), actor)
	if err != nil {
		handleServiceError(c, logger, err, "submit saving")
		return
	}
	dispatchEffects(c.Request.Context(), h.effects, outcome.Effects)
	c.JSON(http.StatusCreated, outcome.Saving)
}

func (h *savingHandler) approveSaving(c *gin.Context) {
	h.review(c, h.savingService.ApproveSaving, "approve saving")
}

func (h *savingHandler) rejectSaving(c *gin.Context) {
	h.review(c, h.savingService.RejectSaving, "reject saving")
}

func (h *savingHandler) review(c *gin.Context, action func(ctx context.Context, savingID int64, actor domain.Actor) (*domain.SavingOutcome, error), name string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	savingID, ok := parseIDParam(c, logger, "id")
	if !ok {
		return
	}
	actor, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.Int64("saving_id", savingID))
	outcome, err := action(c.Request.Context(), savingID, actor)
	if err != nil {
		handleServiceError(c, logger, err, name)
		return
	}
	dispatchEffects(c.Request.Context(), h.effects, outcome.Effects)

	logger.Info("Saving reviewed", slog.String("status", string(outcome.Saving.Status)))
	c.JSON(http.StatusOK, outcome.Saving)
}

func (h *savingHandler) getSaving(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	savingID, ok := parseIDParam(c, logger, "id")
	if !ok {
		return
	}

	saving, err := h.savingService.GetSaving(c.Request.Context(), savingID)
	if err != nil {
		handleServiceError(c, logger.With(slog.Int64("saving_id", savingID)), err, "retrieve saving")
		return
	}
	c.JSON(http.StatusOK, saving)
}

func (h *savingHandler) listMemberSavings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID, ok := parseIDParam(c, logger, "id")
	if !ok {
		return
	}

	savings, err := h.savingService.ListMemberSavings(c.Request.Context(), memberID)
	if err != nil {
		handleServiceError(c, logger.With(slog.Int64("member_id", memberID)), err, "list member savings")
		return
	}
	c.JSON(http.StatusOK, savings)
}

// getBalance returns the approved balance of one saving type, given as ?type=.
func (h *savingHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID, ok := parseIDParam(c, logger, "id")
	if !ok {
		return
	}
	savingType := c.Query("type")
	if savingType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'type' is required"})
		return
	}

	balance, err := h.savingService.Balance(c.Request.Context(), memberID, savingType)
	if err != nil {
		handleServiceError(c, logger.With(slog.Int64("member_id", memberID)), err, "compute saving balance")
		return
	}
	c.JSON(http.StatusOK, dto.SavingBalanceResponse{MemberID: memberID, SavingType: savingType, Balance: balance})
}
