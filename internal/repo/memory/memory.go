package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hamed0406/webmon/internal/domain"
)

const defaultRetention = 100

// Store keeps the latest results and transition events in memory. Nothing
// survives a restart.
type Store struct {
	mu        sync.RWMutex
	retention int
	targets   map[string]domain.Endpoint
	order     []string
	results   map[string][]domain.CheckResult
	events    []domain.Event
}

// New returns a store keeping at most retention results per target and
// retention events overall. retention <= 0 selects the default.
func New(retention int) *Store {
	if retention <= 0 {
		retention = defaultRetention
	}
	return &Store{
		retention: retention,
		targets:   make(map[string]domain.Endpoint),
		results:   make(map[string][]domain.CheckResult),
	}
}

func (m *Store) Add(ctx context.Context, ep domain.Endpoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.targets[ep.Name]; !ok {
		m.order = append(m.order, ep.Name)
	}
	m.targets[ep.Name] = ep
	return nil
}

func (m *Store) List(ctx context.Context) ([]domain.Endpoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Endpoint, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.targets[name])
	}
	return out, nil
}

func (m *Store) Get(ctx context.Context, name string) (domain.Endpoint, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ep, ok := m.targets[name]
	return ep, ok, nil
}

func (m *Store) Append(ctx context.Context, r *domain.CheckResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rs := append(m.results[r.Target], *r)
	if len(rs) > m.retention {
		rs = rs[len(rs)-m.retention:]
	}
	m.results[r.Target] = rs
	return nil
}

// Latest returns the newest result per target, sorted by target name.
func (m *Store) Latest(ctx context.Context) ([]domain.CheckResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.CheckResult, 0, len(m.results))
	for _, rs := range m.results {
		if len(rs) > 0 {
			out = append(out, rs[len(rs)-1])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Target < out[j].Target })
	return out, nil
}

// History returns up to limit results for target, oldest first.
func (m *Store) History(ctx context.Context, target string, limit int) ([]domain.CheckResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return tail(m.results[target], limit), nil
}

// Notify records a transition event; it makes the store usable as a notifier.
func (m *Store) Notify(ctx context.Context, ev domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	if len(m.events) > m.retention {
		m.events = m.events[len(m.events)-m.retention:]
	}
	return nil
}

// Events returns up to limit events, oldest first.
func (m *Store) Events(ctx context.Context, limit int) ([]domain.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return tail(m.events, limit), nil
}

func tail[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		s = s[len(s)-limit:]
	}
	return append([]T(nil), s...)
}
