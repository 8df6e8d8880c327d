// Package outbox delivers post-commit effects (member and back-office
// notifications) without ever failing the ledger operation they follow.
package outbox

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portssvc "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/services"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/middleware"
)

// Publisher delivers one effect to its recipient.
type Publisher interface {
	Publish(ctx context.Context, effect domain.Effect) error
	Close() error
}

// Dispatcher publishes effects on a background goroutine per batch.
type Dispatcher struct {
	publisher Publisher
	timeout   time.Duration
	wg        sync.WaitGroup

	// mu orders wg.Add against Close so no batch starts after Wait began.
	mu     sync.Mutex
	closed bool
}

var _ portssvc.EffectDispatcher = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher; timeout bounds each batch.
func NewDispatcher(publisher Publisher, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{publisher: publisher, timeout: timeout}
}

// Dispatch returns immediately. The request context may be cancelled as soon as
// the handler responds, so delivery runs on a detached copy that keeps its values.
func (d *Dispatcher) Dispatch(ctx context.Context, effects []domain.Effect) {
	if len(effects) == 0 {
		return
	}
	logger := middleware.GetLoggerFromCtx(ctx)
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		logger.Warn("Dispatcher closed, dropping effects", slog.Int("count", len(effects)))
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	batch := append([]domain.Effect(nil), effects...)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()
		for _, effect := range batch {
			if err := d.publisher.Publish(ctx, effect); err != nil {
				logger.Warn("Failed to publish effect",
					slog.String("recipient", effect.Recipient),
					slog.String("subject", effect.Subject),
					slog.String("error", err.Error()))
			}
		}
	}()
}

// Close stops accepting effects, waits for in-flight batches until ctx is done
// and then closes the publisher.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		slog.Warn("Timed out waiting for effect delivery", slog.String("error", ctx.Err().Error()))
	}
	return d.publisher.Close()
}
