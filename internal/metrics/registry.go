package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nao1215/pagescore/internal/aggregator"
	"github.com/nao1215/pagescore/internal/model"
)

// Metric family names.
const (
	EvaluationsTotal      = "pagescore_evaluations_total"
	UpstreamRequestsTotal = "pagescore_upstream_requests_total"
	EvaluationsInFlight   = "pagescore_evaluations_in_flight"
)

// Registry holds the service collectors. It is safe for concurrent use
// and implements aggregator.Recorder.
type Registry struct {
	registry    *prometheus.Registry
	evaluations *prometheus.CounterVec
	upstream    *prometheus.CounterVec
	inFlight    prometheus.Gauge
}

// NewRegistry returns a registry with every collector registered and no
// samples recorded.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: EvaluationsTotal,
			Help: "Evaluations handled by the aggregator service, by outcome.",
		}, []string{"outcome"}),
		upstream: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: UpstreamRequestsTotal,
			Help: "Calls to the scoring API, by strategy and outcome.",
		}, []string{"strategy", "outcome"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: EvaluationsInFlight,
			Help: "Evaluations currently waiting on the scoring API.",
		}),
	}
	r.registry.MustRegister(r.evaluations, r.upstream, r.inFlight)
	return r
}

// ObserveEvaluation counts one finished evaluation.
func (r *Registry) ObserveEvaluation(outcome aggregator.Outcome) {
	r.evaluations.WithLabelValues(string(outcome)).Inc()
}

// ObserveUpstream counts one call to the scoring API.
func (r *Registry) ObserveUpstream(profile model.Profile, err error) {
	r.upstream.WithLabelValues(profile.String(), string(aggregator.Classify(err))).Inc()
}

// TrackInFlight increments the in-flight gauge and returns the function
// that decrements it. Calling the returned function more than once has no
// further effect.
func (r *Registry) TrackInFlight() func() {
	r.inFlight.Inc()

	var once sync.Once
	return func() {
		once.Do(r.inFlight.Dec)
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		Registry: r.registry,
	})
}
