package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/infobot/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "infobot"

// Metrics holds the collectors fed by the lifecycle hooks.
type Metrics struct {
	Turns        *prometheus.CounterVec
	Lookups      *prometheus.CounterVec
	TurnDuration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them on reg.
// A *prometheus.Registry is also used as the gatherer for Handler; any other
// Registerer falls back to the default gatherer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Turns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "turns_total",
				Help:      "Resolved utterances by routing intent.",
			},
			[]string{"intent"},
		),
		Lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "lookups_total",
				Help:      "Catalog lookups by kind and outcome.",
			},
			[]string{"kind", "outcome"},
		),
		TurnDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "turn_duration_seconds",
				Help:      "Time spent resolving one utterance.",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
			},
			[]string{"intent"},
		),
		gatherer: prometheus.DefaultGatherer,
	}

	reg.MustRegister(m.Turns, m.Lookups, m.TurnDuration)
	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	}
	return m
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurn: func(_ context.Context, e *domain.TurnEvent) {
			intent := string(e.Intent)
			m.Turns.WithLabelValues(intent).Inc()
			m.TurnDuration.WithLabelValues(intent).Observe(e.Duration.Seconds())
		},
		OnLookup: func(_ context.Context, e *domain.LookupEvent) {
			m.Lookups.WithLabelValues(e.Kind, string(e.Outcome)).Inc()
		},
	}
}

// Handler serves the registered metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
