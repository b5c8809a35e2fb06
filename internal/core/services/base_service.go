package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/ecompta_backend/internal/middleware"
)

// BaseService carries the logger lookup and clock shared by the services.
type BaseService struct {
	component string
	now       func() time.Time
}

func newBaseService(component string) BaseService {
	return BaseService{component: component}
}

// GetLogger returns the request-scoped logger tagged with the service name.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if s.component != "" {
		logger = logger.With(slog.String("service", s.component))
	}
	return logger
}

func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	s.GetLogger(ctx).Error(msg, append([]any{slog.String("error", err.Error())}, keyvals...)...)
}

func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Now returns the current time in UTC, from the injected clock when one is set.
func (s *BaseService) Now() time.Time {
	if s.now != nil {
		return s.now().UTC()
	}
	return time.Now().UTC()
}
