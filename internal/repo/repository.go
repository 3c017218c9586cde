package repo

import (
	"context"

	"github.com/hamed0406/webmon/internal/domain"
)

// Ports (interfaces) for the read model behind the status API. None of them
// feed back into transition logic; each watcher owns its own state.
type TargetStore interface {
	Add(ctx context.Context, ep domain.Endpoint) error
	List(ctx context.Context) ([]domain.Endpoint, error)
	Get(ctx context.Context, name string) (domain.Endpoint, bool, error)
}

type ResultStore interface {
	Append(ctx context.Context, r *domain.CheckResult) error
	Latest(ctx context.Context) ([]domain.CheckResult, error)
	History(ctx context.Context, target string, limit int) ([]domain.CheckResult, error)
}

type EventStore interface {
	Notify(ctx context.Context, ev domain.Event) error
	Events(ctx context.Context, limit int) ([]domain.Event, error)
}
