package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/webmon/internal/domain"
	"github.com/hamed0406/webmon/internal/probe"
)

// Reporter receives kind transitions. It must not block the watcher for long
// and never reports failure back; delivery problems are its own concern.
type Reporter interface {
	Report(ctx context.Context, name, url string, st domain.State)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(ctx context.Context, name, url string, st domain.State)

func (f ReporterFunc) Report(ctx context.Context, name, url string, st domain.State) {
	f(ctx, name, url, st)
}

// TickResult is the outcome of one Step.
type TickResult struct {
	State   domain.State
	Changed bool
}

// Watcher owns one endpoint's poll loop. Its state is touched only by the
// goroutine running Run (or the caller of Step).
type Watcher struct {
	ep       domain.Endpoint
	checker  probe.Checker
	reporter Reporter
	settings

	log   *zap.Logger
	last  *domain.State
	ticks uint64

	// set by Run; zero when Step is driven by hand
	start  time.Time
	tickAt time.Time
	due    time.Time // next boundary, fixed once the probe returns
}

func NewWatcher(ep domain.Endpoint, checker probe.Checker, reporter Reporter, opts ...Option) *Watcher {
	s := newSettings(opts)
	return &Watcher{
		ep:       ep,
		checker:  checker,
		reporter: reporter,
		settings: s,
		log: s.logger.With(
			zap.String("target", ep.Name),
			zap.String("url", ep.URL.String()),
		),
	}
}

func (w *Watcher) Endpoint() domain.Endpoint { return w.ep }

// Last returns the state of the previous tick; ok is false before the first one.
func (w *Watcher) Last() (st domain.State, ok bool) {
	if w.last == nil {
		return domain.State{}, false
	}
	return *w.last, true
}

// Ticks is the number of consecutive Up ticks.
func (w *Watcher) Ticks() uint64 { return w.ticks }

// Run ticks at start, start+Interval, start+2*Interval, ... until ctx is done.
// A tick that overruns its interval delays the next one to the following
// boundary; missed boundaries are skipped, never run twice.
func (w *Watcher) Run(ctx context.Context, start time.Time) {
	w.log.Info("watcher_started",
		zap.String("method", string(w.ep.Method)),
		zap.Duration("interval", w.ep.Interval),
		zap.Duration("timeout", w.ep.Timeout),
	)

	w.start = start
	next := start
	for {
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			w.log.Info("watcher_stopped")
			return
		case <-timer.C:
		}
		// Both channels may have been ready.
		if ctx.Err() != nil {
			w.log.Info("watcher_stopped")
			return
		}

		w.tickAt = next
		if _, err := w.Step(ctx); err != nil {
			w.log.Info("watcher_stopped")
			return
		}
		next = w.due
	}
}

// Step runs one probe-classify-report cycle. It returns ctx.Err() without
// classifying or reporting if ctx was cancelled while the probe was in flight.
// Under Run, a report must finish by the next tick boundary.
func (w *Watcher) Step(ctx context.Context) (TickResult, error) {
	latency, err := w.checker.Check(ctx, w.ep)
	if ctx.Err() != nil {
		return TickResult{}, ctx.Err()
	}
	if !w.start.IsZero() {
		w.due = nextTick(w.start, w.ep.Interval, w.tickAt, time.Now())
	}

	st := probe.Classify(latency, err)
	changed := w.last == nil || !domain.SameKind(*w.last, st)
	if st.IsUp() {
		w.ticks++
	} else {
		w.ticks = 0
	}

	if changed {
		w.logTransition(st, err)
		w.report(ctx, st)
	} else {
		w.log.Debug("target_checked",
			zap.Stringer("state", st),
			zap.Uint64("ticks", w.ticks),
			zap.Error(err),
		)
	}

	w.metrics.ObserveProbe(w.ep.Name, st, changed)
	w.record(ctx, st, err)
	w.last = &st
	return TickResult{State: st, Changed: changed}, nil
}

func (w *Watcher) report(ctx context.Context, st domain.State) {
	if !w.start.IsZero() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, w.due)
		defer cancel()
	}
	w.reporter.Report(ctx, w.ep.Name, w.ep.URL.String(), st)
}

func (w *Watcher) logTransition(st domain.State, err error) {
	from := "none"
	if w.last != nil {
		from = w.last.Kind.String()
	}
	fields := []zap.Field{
		zap.String("from", from),
		zap.Stringer("to", st),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	if st.IsUp() {
		w.log.Info("target_state_changed", fields...)
	} else {
		w.log.Warn("target_state_changed", fields...)
	}
}

func (w *Watcher) record(ctx context.Context, st domain.State, err error) {
	if w.results == nil {
		return
	}
	cr := &domain.CheckResult{
		Target:     w.ep.Name,
		URL:        w.ep.URL.String(),
		State:      st,
		StatusCode: probe.StatusCode(err),
		CheckedAt:  time.Now().UTC(),
		Ticks:      w.ticks,
	}
	if st.IsUp() {
		cr.StatusCode = 200
	}
	if err != nil {
		cr.Reason = err.Error()
	}
	if err := w.results.Append(ctx, cr); err != nil {
		w.log.Warn("result_append_error", zap.Error(err))
	}
}

// nextTick returns the first boundary start+k*interval after prev that is not
// already in the past at now.
func nextTick(start time.Time, interval time.Duration, prev, now time.Time) time.Time {
	next := prev.Add(interval)
	if !next.Before(now) {
		return next
	}
	k := (now.Sub(start) + interval - 1) / interval
	return start.Add(k * interval)
}
