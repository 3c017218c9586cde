package scheduler

import (
	"go.uber.org/zap"

	"github.com/hamed0406/webmon/internal/metrics"
	"github.com/hamed0406/webmon/internal/repo"
)

type settings struct {
	logger  *zap.Logger
	metrics *metrics.Collector
	results repo.ResultStore
}

// Option configures watchers, either directly or through a Supervisor.
type Option func(*settings)

func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithMetrics(c *metrics.Collector) Option {
	return func(s *settings) { s.metrics = c }
}

// WithResults records every tick's result in rs (best-effort).
func WithResults(rs repo.ResultStore) Option {
	return func(s *settings) { s.results = rs }
}

func newSettings(opts []Option) settings {
	s := settings{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
