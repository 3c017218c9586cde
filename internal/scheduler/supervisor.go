package scheduler

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hamed0406/webmon/internal/domain"
	"github.com/hamed0406/webmon/internal/probe"
)

var ErrNoTargets = errors.New("scheduler: no targets to watch")

// Supervisor starts one Watcher per endpoint and ties their lifetimes together.
type Supervisor struct {
	checker  probe.Checker
	reporter Reporter
	opts     []Option
	logger   *zap.Logger
}

func NewSupervisor(checker probe.Checker, reporter Reporter, opts ...Option) *Supervisor {
	return &Supervisor{
		checker:  checker,
		reporter: reporter,
		opts:     opts,
		logger:   newSettings(opts).logger,
	}
}

// Handle controls a running set of watchers.
type Handle struct {
	group    *errgroup.Group
	cancel   context.CancelFunc
	start    time.Time
	watchers []*Watcher
}

// Start launches every watcher anchored to the same start instant. The
// watchers stop when ctx is done or Cancel is called.
func (s *Supervisor) Start(ctx context.Context, eps []domain.Endpoint) (*Handle, error) {
	if len(eps) == 0 {
		return nil, ErrNoTargets
	}

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	h := &Handle{
		group:  g,
		cancel: cancel,
		start:  time.Now(),
	}

	for _, ep := range eps {
		w := NewWatcher(ep, s.checker, s.reporter, s.opts...)
		h.watchers = append(h.watchers, w)
		g.Go(func() error {
			w.Run(gctx, h.start)
			return nil
		})
	}

	s.logger.Info("supervisor_started", zap.Int("targets", len(eps)))
	return h, nil
}

// Wait blocks until every watcher has returned.
func (h *Handle) Wait() error {
	err := h.group.Wait()
	h.cancel()
	return err
}

// Cancel signals all watchers to stop at their next safe point.
func (h *Handle) Cancel() { h.cancel() }

// Start is the instant every watcher's schedule is anchored to.
func (h *Handle) Start() time.Time { return h.start }

func (h *Handle) Len() int { return len(h.watchers) }
