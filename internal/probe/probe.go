package probe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hamed0406/webmon/internal/domain"
)

// Checker performs exactly one bounded check against an endpoint and
// returns the round-trip latency on success.
type Checker interface {
	Check(ctx context.Context, ep domain.Endpoint) (time.Duration, error)
}

type ErrorKind int

const (
	ErrTimeout ErrorKind = iota
	ErrBadStatus
	ErrTransport
)

func (k ErrorKind) String() string {
	switch k {
	case ErrTimeout:
		return "timeout"
	case ErrBadStatus:
		return "bad_status"
	default:
		return "transport"
	}
}

// ProbeError is returned by a Checker for every failed probe.
type ProbeError struct {
	Kind       ErrorKind
	StatusCode int   // set for ErrBadStatus
	Err        error // underlying cause, if any
}

func (e *ProbeError) Error() string {
	switch e.Kind {
	case ErrTimeout:
		return "probe timed out"
	case ErrBadStatus:
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	default:
		return fmt.Sprintf("transport: %v", e.Err)
	}
}

func (e *ProbeError) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var pe *ProbeError
	if errors.As(err, &pe) {
		return pe.StatusCode
	}
	return 0
}
