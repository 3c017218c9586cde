package probe

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/hamed0406/webmon/internal/domain"
)

// Classify maps the outcome of one probe to a health state.
func Classify(latency time.Duration, err error) domain.State {
	if err == nil {
		return domain.Up(latency)
	}
	if isTimeout(err) {
		return domain.TimedOut()
	}
	return domain.Down()
}

func isTimeout(err error) bool {
	var pe *ProbeError
	if errors.As(err, &pe) {
		return pe.Kind == ErrTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
