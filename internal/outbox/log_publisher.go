package outbox

import (
	"context"
	"log/slog"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/middleware"
)

// LogPublisher writes effects to the structured log. It is used when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, effect domain.Effect) error {
	middleware.GetLoggerFromCtx(ctx).Info("Effect",
		slog.String("recipient", effect.Recipient),
		slog.String("subject", effect.Subject),
		slog.String("message", effect.Message))
	return nil
}

func (LogPublisher) Close() error { return nil }
