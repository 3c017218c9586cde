package probe

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/hamed0406/webmon/internal/domain"
)

const maxDrain = 64 << 10

var UserAgent = "webmon/1.0"

type HTTPChecker struct {
	Client *http.Client
}

// NewHTTPChecker returns a checker with a shared client. The client carries no
// global timeout; every call is bounded by the endpoint's own Timeout.
func NewHTTPChecker() *HTTPChecker {
	return &HTTPChecker{
		Client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
	}
}

func (h *HTTPChecker) Check(ctx context.Context, ep domain.Endpoint) (time.Duration, error) {
	cctx, cancel := context.WithTimeout(ctx, ep.Timeout)
	defer cancel()

	req, err := newRequest(cctx, ep)
	if err != nil {
		return 0, &ProbeError{Kind: ErrTransport, Err: err}
	}

	start := time.Now()
	resp, err := h.Client.Do(req)
	latency := time.Since(start)
	if err != nil {
		// Shutdown is not an outcome; hand the caller its own error back.
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) || isNetTimeout(err) {
			return 0, &ProbeError{Kind: ErrTimeout, Err: err}
		}
		return 0, &ProbeError{Kind: ErrTransport, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.CopyN(io.Discard, resp.Body, maxDrain)

	if resp.StatusCode != http.StatusOK {
		return 0, &ProbeError{Kind: ErrBadStatus, StatusCode: resp.StatusCode}
	}
	return latency, nil
}

func newRequest(ctx context.Context, ep domain.Endpoint) (*http.Request, error) {
	var body io.Reader
	if ep.Method == domain.MethodPost && ep.Body != "" {
		body = strings.NewReader(ep.Body)
	}
	req, err := http.NewRequestWithContext(ctx, string(ep.Method), ep.URL.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", UserAgent)
	if body != nil {
		req.Header.Set("Content-Type", contentType(ep.Body))
	}
	return req, nil
}

func contentType(body string) string {
	b := strings.TrimSpace(body)
	if strings.HasPrefix(b, "{") || strings.HasPrefix(b, "[") {
		return "application/json"
	}
	return "text/plain; charset=utf-8"
}

func isNetTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
