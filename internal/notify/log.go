package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/hamed0406/webmon/internal/domain"
)

// Log writes transitions to the process log: up at Info, anything else at Warn.
type Log struct {
	Logger *zap.Logger
}

func (l Log) Notify(ctx context.Context, ev domain.Event) error {
	fields := []zap.Field{
		zap.String("target", ev.Target),
		zap.String("url", ev.URL),
		zap.Stringer("state", ev.State),
	}
	switch ev.State.Kind {
	case domain.KindUp:
		l.Logger.Info("target_up", fields...)
	case domain.KindTimeout:
		l.Logger.Warn("target_timeout", fields...)
	default:
		l.Logger.Warn("target_down", fields...)
	}
	return nil
}
