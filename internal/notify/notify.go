package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/hamed0406/webmon/internal/domain"
)

// Notifier delivers one transition event to some channel.
type Notifier interface {
	Notify(ctx context.Context, ev domain.Event) error
}

// Multi fans an event out to every notifier and collects all failures.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, ev domain.Event) error {
	var err error
	for _, n := range m {
		if n == nil {
			continue
		}
		err = multierr.Append(err, n.Notify(ctx, ev))
	}
	return err
}

// Message renders the title and body shared by the chat transports.
func Message(ev domain.Event) (title, text string) {
	switch ev.State.Kind {
	case domain.KindUp:
		title = fmt.Sprintf("🟢 %s is up", ev.Target)
	case domain.KindTimeout:
		title = fmt.Sprintf("🟠 %s timed out", ev.Target)
	default:
		title = fmt.Sprintf("🔴 %s is down", ev.Target)
	}
	text = fmt.Sprintf("URL: %s\nState: %s\nAt: %s", ev.URL, ev.State, ev.At.Format(time.RFC3339))
	return title, text
}
