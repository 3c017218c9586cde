package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hamed0406/webmon/internal/domain"
)

// Collector holds all Prometheus metrics
type Collector struct {
	registry *prometheus.Registry

	// Probe metrics
	ProbesTotal   *prometheus.CounterVec
	ProbeDuration *prometheus.HistogramVec

	// State metrics
	TargetState      *prometheus.GaugeVec
	TransitionsTotal *prometheus.CounterVec

	// Notification metrics
	NotifyFailures *prometheus.CounterVec
}

// NewCollector creates a collector on its own registry so tests and multiple
// supervisors do not collide on the global one.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Collector{
		registry: reg,

		ProbesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webmon_probes_total",
				Help: "Total number of probes by classified result",
			},
			[]string{"target", "result"},
		),

		ProbeDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webmon_probe_duration_seconds",
				Help:    "Latency of successful probes in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"target"},
		),

		TargetState: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "webmon_target_state",
				Help: "Current target state (0=UP, 1=TIMEOUT, 2=DOWN)",
			},
			[]string{"target"},
		),

		TransitionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webmon_transitions_total",
				Help: "Total number of reported state transitions",
			},
			[]string{"target", "to"},
		),

		NotifyFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webmon_notify_failures_total",
				Help: "Total number of failed notification deliveries",
			},
			[]string{"target"},
		),
	}
}

// ObserveProbe records one classified probe. Safe on a nil collector.
func (c *Collector) ObserveProbe(target string, st domain.State, transition bool) {
	if c == nil {
		return
	}
	c.ProbesTotal.WithLabelValues(target, st.Kind.String()).Inc()
	c.TargetState.WithLabelValues(target).Set(float64(st.Kind))
	if st.IsUp() {
		c.ProbeDuration.WithLabelValues(target).Observe(st.Latency.Seconds())
	}
	if transition {
		c.TransitionsTotal.WithLabelValues(target, st.Kind.String()).Inc()
	}
}

// NotifyFailed is safe on a nil collector.
func (c *Collector) NotifyFailed(target string) {
	if c == nil {
		return
	}
	c.NotifyFailures.WithLabelValues(target).Inc()
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
