package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/services"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/dto"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/middleware"
)

// saleHandler handles point-of-sale requests.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
	effects     portssvc.EffectDispatcher
}

func newSaleHandler(ss portssvc.SaleSvcFacade, effects portssvc.EffectDispatcher) *saleHandler {
	return &saleHandler{saleService: ss, effects: effects}
}

func registerSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade, effects portssvc.EffectDispatcher) {
	h := newSaleHandler(saleService, effects)

	rg.GET("/products", h.listProducts)
	sales := rg.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.GET("/:id", h.getSale)
	}
}

func (h *saleHandler) createSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	outcome, err := h.saleService.CreateCashSale(c.Request.Context(), req.MemberID, req.ToSaleItems(), actor)
	if err != nil {
		handleServiceError(c, logger, err, "create sale")
		return
	}
	dispatchEffects(c.Request.Context(), h.effects, outcome.Effects)

	logger.Info("Cash sale recorded", slog.String("order_number", outcome.Sale.OrderNumber), slog.String("total", outcome.Sale.TotalAmount.String()))
	c.JSON(http.StatusCreated, outcome.Sale)
}

func (h *saleHandler) getSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	saleID, ok := parseIDParam(c, logger, "id")
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), saleID)
	if err != nil {
		handleServiceError(c, logger.With(slog.Int64("sale_id", saleID)), err, "retrieve sale")
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *saleHandler) listProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	products, err := h.saleService.ListProducts(c.Request.Context())
	if err != nil {
		handleServiceError(c, logger, err, "list products")
		return
	}
	c.JSON(http.StatusOK, products)
}
