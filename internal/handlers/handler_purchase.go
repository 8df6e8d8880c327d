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

// purchaseHandler handles goods receipts and supplier payables.
type purchaseHandler struct {
	purchaseService portssvc.PurchaseSvcFacade
	effects         portssvc.EffectDispatcher
}

func newPurchaseHandler(ps portssvc.PurchaseSvcFacade, effects portssvc.EffectDispatcher) *purchaseHandler {
	return &purchaseHandler{purchaseService: ps, effects: effects}
}

func registerPurchaseRoutes(rg *gin.RouterGroup, purchaseService portssvc.PurchaseSvcFacade, effects portssvc.EffectDispatcher) {
	h := newPurchaseHandler(purchaseService, effects)
	accounting := middleware.RequireRoles(domain.RoleAdmin, domain.RoleAccounting)

	rg.POST("/goods-receipts", accounting, h.receiveGoods)
	payables := rg.Group("/payables")
	{
		payables.GET("", h.listOpenPayables)
		payables.GET("/:id", h.getPayable)
		payables.POST("/:id/payments", accounting, h.payPayable)
	}
}

func (h *purchaseHandler) receiveGoods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReceiveGoodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReceiveGoods", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	outcome, err := h.purchaseService.ReceiveGoods(c.Request.Context(), req.ToGoodsReceipt(), actor)
	if err != nil {
		handleServiceError(c, logger, err, "receive goods")
		return
	}
	dispatchEffects(c.Request.Context(), h.effects, outcome.Effects)

	logger.Info("Goods received", slog.String("reference", outcome.Receipt.ReferenceNumber), slog.Int64("payable_id", outcome.Payable.PayableID))
	c.JSON(http.StatusCreated, outcome)
}

func (h *purchaseHandler) payPayable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	payableID, ok := parseIDParam(c, logger, "id")
	if !ok {
		return
	}
	var req dto.PayPayableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PayPayable", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.Int64("payable_id", payableID))
	outcome, err := h.purchaseService.PayPayable(c.Request.Context(), payableID, req.Amount, actor)
	if err != nil {
		handleServiceError(c, logger, err, "pay payable")
		return
	}
	dispatchEffects(c.Request.Context(), h.effects, outcome.Effects)

	logger.Info("Payable paid", slog.String("status", string(outcome.Payable.Status)))
	c.JSON(http.StatusCreated, outcome)
}

func (h *purchaseHandler) getPayable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	payableID, ok := parseIDParam(c, logger, "id")
	if !ok {
		return
	}

	payable, err := h.purchaseService.GetPayable(c.Request.Context(), payableID)
	if err != nil {
		handleServiceError(c, logger.With(slog.Int64("payable_id", payableID)), err, "retrieve payable")
		return
	}
	c.JSON(http.StatusOK, payable)
}

func (h *purchaseHandler) listOpenPayables(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	payables, err := h.purchaseService.ListOpenPayables(c.Request.Context())
	if err != nil {
		handleServiceError(c, logger, err, "list payables")
		return
	}
	c.JSON(http.StatusOK, payables)
}
