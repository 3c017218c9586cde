package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hamed0406/webmon/internal/domain"
	"github.com/hamed0406/webmon/internal/probe"
)

type outcome struct {
	latency time.Duration
	err     error
}

func ok(d time.Duration) outcome { return outcome{latency: d} }

var (
	timeout     = outcome{err: &probe.ProbeError{Kind: probe.ErrTimeout}}
	connRefused = outcome{err: &probe.ProbeError{Kind: probe.ErrTransport, Err: errors.New("dial tcp 127.0.0.1:1: connect: connection refused")}}
)

func badStatus(code int) outcome {
	return outcome{err: &probe.ProbeError{Kind: probe.ErrBadStatus, StatusCode: code}}
}

// scriptedChecker replays outcomes in order and repeats the last one forever.
type scriptedChecker struct {
	mu       sync.Mutex
	outcomes []outcome
	i        int
}

func (s *scriptedChecker) Check(ctx context.Context, ep domain.Endpoint) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.outcomes[min(s.i, len(s.outcomes)-1)]
	s.i++
	return o.latency, o.err
}

type report struct {
	name, url string
	state     domain.State
	at        time.Time
}

type recordingReporter struct {
	mu      sync.Mutex
	reports []report
}

func (r *recordingReporter) Report(ctx context.Context, name, url string, st domain.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report{name: name, url: url, state: st, at: time.Now()})
}

func (r *recordingReporter) snapshot() []report {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]report(nil), r.reports...)
}

func testEndpoint(t *testing.T, name string, interval, timeout time.Duration) domain.Endpoint {
	t.Helper()
	ep, err := domain.NewEndpoint(name, "https://"+name+".example.com", "HEAD", interval, timeout, "")
	require.NoError(t, err)
	return ep
}
