package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Method string

const (
	MethodHead Method = "HEAD"
	MethodGet  Method = "GET"
	MethodPost Method = "POST"
)

// ParseMethod accepts HEAD, GET and POST in any case. An empty string means HEAD.
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToUpper(strings.TrimSpace(s))); m {
	case "":
		return MethodHead, nil
	case MethodHead, MethodGet, MethodPost:
		return m, nil
	default:
		return "", fmt.Errorf("unsupported method %q", s)
	}
}

// Endpoint is the immutable description of one monitored target.
type Endpoint struct {
	Name     string
	URL      *url.URL
	Method   Method
	Interval time.Duration
	Timeout  time.Duration
	Body     string // sent with POST only
}

// NewEndpoint validates its inputs and returns a *ConfigError on the first violation.
func NewEndpoint(name, rawURL, method string, interval, timeout time.Duration, body string) (Endpoint, error) {
	if strings.TrimSpace(name) == "" {
		return Endpoint{}, &ConfigError{Target: name, Field: "name", Err: errEmpty}
	}
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return Endpoint{}, &ConfigError{Target: name, Field: "url", Err: err}
	}
	if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Endpoint{}, &ConfigError{Target: name, Field: "url", Err: fmt.Errorf("%q is not an absolute http(s) URL", rawURL)}
	}
	m, err := ParseMethod(method)
	if err != nil {
		return Endpoint{}, &ConfigError{Target: name, Field: "method", Err: err}
	}
	if interval <= 0 {
		return Endpoint{}, &ConfigError{Target: name, Field: "interval", Err: errNotPositive}
	}
	if timeout <= 0 {
		return Endpoint{}, &ConfigError{Target: name, Field: "timeout", Err: errNotPositive}
	}
	return Endpoint{
		Name:     name,
		URL:      u,
		Method:   m,
		Interval: interval,
		Timeout:  timeout,
		Body:     body,
	}, nil
}

// CheckResult is what a watcher observed on one tick.
type CheckResult struct {
	Target     string    `json:"target"`
	URL        string    `json:"url"`
	State      State     `json:"state"`
	StatusCode int       `json:"status_code,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	CheckedAt  time.Time `json:"checked_at"`
	Ticks      uint64    `json:"ticks"`
}

// Event is one reported kind transition.
type Event struct {
	ID     uuid.UUID `json:"id"`
	Target string    `json:"target"`
	URL    string    `json:"url"`
	State  State     `json:"state"`
	At     time.Time `json:"at"`
}

func NewEvent(target, rawURL string, st State, at time.Time) Event {
	return Event{ID: uuid.New(), Target: target, URL: rawURL, State: st, At: at}
}
