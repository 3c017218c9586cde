package probe

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hamed0406/webmon/internal/domain"
)

func endpoint(t *testing.T, rawURL string, method domain.Method, timeout time.Duration) domain.Endpoint {
	t.Helper()
	ep, err := domain.NewEndpoint("test", rawURL, string(method), time.Second, timeout, "")
	require.NoError(t, err)
	return ep
}

func TestHTTPChecker_StatusOK(t *testing.T) {
	var gotMethod string
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(200)
	}))
	defer s.Close()

	chk := NewHTTPChecker()
	lat, err := chk.Check(context.Background(), endpoint(t, s.URL, domain.MethodHead, 2*time.Second))
	require.NoError(t, err)
	require.GreaterOrEqual(t, lat, time.Duration(0))
	require.Equal(t, http.MethodHead, gotMethod)
	require.Equal(t, domain.KindUp, Classify(lat, err).Kind)
}

func TestHTTPChecker_PostSendsBody(t *testing.T) {
	var gotBody, gotType string
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotType = r.Header.Get("Content-Type")
		w.WriteHeader(200)
	}))
	defer s.Close()

	ep, err := domain.NewEndpoint("api", s.URL, "post", time.Second, time.Second, `{"ping":true}`)
	require.NoError(t, err)

	_, err = NewHTTPChecker().Check(context.Background(), ep)
	require.NoError(t, err)
	require.Equal(t, `{"ping":true}`, gotBody)
	require.Equal(t, "application/json", gotType)
}

func TestHTTPChecker_Non200IsBadStatus(t *testing.T) {
	for _, code := range []int{201, 204, 301, 404, 500, 503} {
		s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))

		_, err := NewHTTPChecker().Check(context.Background(), endpoint(t, s.URL, domain.MethodGet, 2*time.Second))
		s.Close()

		var pe *ProbeError
		require.ErrorAs(t, err, &pe, "status %d", code)
		require.Equal(t, ErrBadStatus, pe.Kind)
		require.Equal(t, code, pe.StatusCode)
		require.Equal(t, code, StatusCode(err))
		require.Equal(t, domain.KindDown, Classify(0, err).Kind)
	}
}

func TestHTTPChecker_TimeoutIsTimeoutNotDown(t *testing.T) {
	release := make(chan struct{})
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer s.Close()
	defer close(release)

	start := time.Now()
	_, err := NewHTTPChecker().Check(context.Background(), endpoint(t, s.URL, domain.MethodGet, 100*time.Millisecond))
	elapsed := time.Since(start)

	var pe *ProbeError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, ErrTimeout, pe.Kind)
	require.Equal(t, domain.TimedOut(), Classify(0, err))
	require.Less(t, elapsed, time.Second)
}

func TestHTTPChecker_ConnectionRefusedIsTransport(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = NewHTTPChecker().Check(context.Background(), endpoint(t, "http://"+addr, domain.MethodHead, time.Second))

	var pe *ProbeError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, ErrTransport, pe.Kind)
	require.Equal(t, domain.Down(), Classify(0, err))
}

func TestHTTPChecker_ParentCancelIsNotAnOutcome(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err := NewHTTPChecker().Check(ctx, endpoint(t, s.URL, domain.MethodGet, 5*time.Second))
	require.ErrorIs(t, err, context.Canceled)

	var pe *ProbeError
	require.False(t, errors.As(err, &pe))
}

func TestClassify(t *testing.T) {
	require.Equal(t, domain.Up(10*time.Millisecond), Classify(10*time.Millisecond, nil))
	require.Equal(t, domain.TimedOut(), Classify(0, &ProbeError{Kind: ErrTimeout}))
	require.Equal(t, domain.TimedOut(), Classify(0, context.DeadlineExceeded))
	require.Equal(t, domain.Down(), Classify(0, &ProbeError{Kind: ErrBadStatus, StatusCode: 500}))
	require.Equal(t, domain.Down(), Classify(0, &ProbeError{Kind: ErrTransport, Err: &url.Error{Op: "Get", Err: errors.New("refused")}}))
}
