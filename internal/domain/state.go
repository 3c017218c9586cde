package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind is the class of a health state. Transitions are detected on Kind only.
type Kind int

const (
	KindUp Kind = iota
	KindTimeout
	KindDown
)

func (k Kind) String() string {
	switch k {
	case KindUp:
		return "up"
	case KindTimeout:
		return "timeout"
	case KindDown:
		return "down"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// State is the classified outcome of the last probe. Latency is only set for KindUp.
type State struct {
	Kind    Kind
	Latency time.Duration
}

func Up(latency time.Duration) State { return State{Kind: KindUp, Latency: latency} }
func TimedOut() State                { return State{Kind: KindTimeout} }
func Down() State                    { return State{Kind: KindDown} }

func (s State) IsUp() bool { return s.Kind == KindUp }

func (s State) String() string {
	switch s.Kind {
	case KindUp:
		return fmt.Sprintf("Up (%s)", s.Latency)
	case KindTimeout:
		return "Timeout"
	default:
		return "Down"
	}
}

// SameKind ignores intra-kind detail such as latency.
func SameKind(a, b State) bool { return a.Kind == b.Kind }

type stateJSON struct {
	Kind      string  `json:"kind"`
	LatencyMS float64 `json:"latency_ms,omitempty"`
}

func (s State) MarshalJSON() ([]byte, error) {
	out := stateJSON{Kind: s.Kind.String()}
	if s.Kind == KindUp {
		out.LatencyMS = float64(s.Latency) / float64(time.Millisecond)
	}
	return json.Marshal(out)
}

func (s *State) UnmarshalJSON(b []byte) error {
	var in stateJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	switch in.Kind {
	case "up":
		*s = Up(time.Duration(in.LatencyMS * float64(time.Millisecond)))
	case "timeout":
		*s = TimedOut()
	case "down":
		*s = Down()
	default:
		return fmt.Errorf("unknown state kind %q", in.Kind)
	}
	return nil
}
