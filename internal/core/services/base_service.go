package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	clock func() time.Time
}

// now returns the service clock's current time.
func (s *BaseService) now() time.Time {
	if s.clock != nil {
		return s.clock()
	}
	return time.Now()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeRole checks that the actor holds one of the allowed roles.
func (s *BaseService) AuthorizeRole(ctx context.Context, actor domain.Actor, allowed ...domain.Role) error {
	if slices.Contains(allowed, actor.Role) {
		return nil
	}
	s.LogDebug(ctx, "Role not permitted for operation",
		slog.String("user_id", actor.UserID),
		slog.String("role", string(actor.Role)))
	return fmt.Errorf("%w: role %q may not perform this operation", apperrors.ErrForbidden, actor.Role)
}

// ServiceOption configures the fields shared by every service.
type ServiceOption func(*BaseService)

// WithClock overrides the time source. Used by tests to pin dates.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.clock = clock
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	var b BaseService
	for _, option := range options {
		option(&b)
	}
	return b
}
