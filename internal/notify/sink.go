package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/webmon/internal/domain"
	"github.com/hamed0406/webmon/internal/metrics"
)

const DefaultTimeout = 10 * time.Second

// Sink is the watcher-facing side of notification. It turns a transition
// into an Event, delivers it within its own timeout and swallows failures.
// A deadline already on the caller's ctx wins when it is sooner.
type Sink struct {
	notifier Notifier
	timeout  time.Duration
	logger   *zap.Logger
	metrics  *metrics.Collector
}

func NewSink(n Notifier, timeout time.Duration, logger *zap.Logger, mc *metrics.Collector) *Sink {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sink{notifier: n, timeout: timeout, logger: logger, metrics: mc}
}

func (s *Sink) Report(ctx context.Context, name, url string, st domain.State) {
	ev := domain.NewEvent(name, url, st, time.Now().UTC())
	log := s.logger.With(
		zap.String("target", name),
		zap.String("event_id", ev.ID.String()),
	)
	defer func() {
		if r := recover(); r != nil {
			log.Error("notify_panic", zap.Any("panic", r))
			s.metrics.NotifyFailed(name)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.notifier.Notify(ctx, ev); err != nil {
		log.Error("notify_failed", zap.Stringer("state", st), zap.Error(err))
		s.metrics.NotifyFailed(name)
		return
	}
	log.Debug("notify_sent", zap.Stringer("state", st))
}
