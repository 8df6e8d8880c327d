package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portssvc "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/services"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/middleware"
)

// parseIDParam reads a positive int64 path parameter, writing a 400 when it is malformed.
func parseIDParam(c *gin.Context, logger *slog.Logger, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		logger.Warn("Invalid ID in path", slog.String("param", name), slog.String("value", raw))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// actorFromContext returns the authenticated actor, writing a 401 when there is none.
func actorFromContext(c *gin.Context, logger *slog.Logger) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.Actor{}, false
	}
	return actor, true
}

// dispatchEffects hands committed side effects to the outbox. A nil dispatcher drops them.
func dispatchEffects(ctx context.Context, dispatcher portssvc.EffectDispatcher, effects []domain.Effect) {
	if dispatcher == nil || len(effects) == 0 {
		return
	}
	dispatcher.Dispatch(ctx, effects)
}
