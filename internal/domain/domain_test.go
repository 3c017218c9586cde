package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestSameKind_IsAnEquivalenceOverThreeClasses(t *testing.T) {
	states := []State{
		Up(10 * time.Millisecond), Up(0), Up(3 * time.Second),
		TimedOut(), TimedOut(),
		Down(), Down(),
	}
	classes := map[Kind]struct{}{}
	for _, a := range states {
		if !SameKind(a, a) {
			t.Fatalf("SameKind(%v,%v) must be reflexive", a, a)
		}
		for _, b := range states {
			if SameKind(a, b) != SameKind(b, a) {
				t.Fatalf("SameKind not symmetric for %v,%v", a, b)
			}
			if SameKind(a, b) != (a.Kind == b.Kind) {
				t.Fatalf("SameKind(%v,%v) disagrees with kind", a, b)
			}
		}
		classes[a.Kind] = struct{}{}
	}
	if len(classes) != 3 {
		t.Fatalf("want 3 classes, got %d", len(classes))
	}
}

func TestSameKind_LatencyIsNotATransition(t *testing.T) {
	if !SameKind(Up(10*time.Millisecond), Up(900*time.Millisecond)) {
		t.Fatalf("two Up states with different latency must be the same kind")
	}
	if SameKind(TimedOut(), Down()) {
		t.Fatalf("Timeout and Down are distinct kinds")
	}
}

func TestState_String(t *testing.T) {
	cases := []struct {
		in   State
		want string
	}{
		{Up(12 * time.Millisecond), "Up (12ms)"},
		{TimedOut(), "Timeout"},
		{Down(), "Down"},
	}
	for _, c := range cases {
		if got := c.in.String(); got != c.want {
			t.Fatalf("String()=%q want %q", got, c.want)
		}
	}
}

func TestCheckResult_JSONRoundTrip(t *testing.T) {
	want := CheckResult{
		Target:     "google",
		URL:        "https://www.google.com",
		State:      Up(125 * time.Millisecond),
		StatusCode: 200,
		CheckedAt:  time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC),
		Ticks:      4,
	}
	b, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got CheckResult
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Target != want.Target || got.State != want.State || got.Ticks != want.Ticks ||
		!got.CheckedAt.Equal(want.CheckedAt) {
		t.Fatalf("mismatch after round-trip:\nwant=%+v\ngot =%+v", want, got)
	}
}

func TestState_UnmarshalRejectsUnknownKind(t *testing.T) {
	var s State
	if err := json.Unmarshal([]byte(`{"kind":"unknown"}`), &s); err == nil {
		t.Fatalf("want error for unknown kind")
	}
}

func TestNewEndpoint(t *testing.T) {
	ep, err := NewEndpoint("google", "https://www.google.com", "", time.Minute, 10*time.Second, "")
	if err != nil {
		t.Fatalf("NewEndpoint: %v", err)
	}
	if ep.Method != MethodHead {
		t.Fatalf("want default method HEAD, got %s", ep.Method)
	}
	if ep.URL.Host != "www.google.com" {
		t.Fatalf("unexpected host %q", ep.URL.Host)
	}

	bad := []struct {
		name, url, method string
		interval, timeout time.Duration
		field             string
	}{
		{"x", "www.google.com", "GET", time.Second, time.Second, "url"},
		{"x", "ftp://example.com", "GET", time.Second, time.Second, "url"},
		{"x", "https://", "GET", time.Second, time.Second, "url"},
		{"x", "https://example.com", "DELETE", time.Second, time.Second, "method"},
		{"x", "https://example.com", "get", 0, time.Second, "interval"},
		{"x", "https://example.com", "post", time.Second, -time.Second, "timeout"},
		{" ", "https://example.com", "GET", time.Second, time.Second, "name"},
	}
	for _, c := range bad {
		_, err := NewEndpoint(c.name, c.url, c.method, c.interval, c.timeout, "")
		var ce *ConfigError
		if !errors.As(err, &ce) {
			t.Fatalf("%s/%s: want *ConfigError, got %v", c.url, c.method, err)
		}
		if ce.Field != c.field {
			t.Fatalf("%s/%s: want field %q, got %q", c.url, c.method, c.field, ce.Field)
		}
	}
}
