package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records oracle invocation outcomes. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	responses *prometheus.CounterVec
	fatal     prometheus.Counter
	fetch     prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lens_oracle",
			Name:      "responses_total",
			Help:      "Encoded responses by response type and payload code.",
		}, []string{"type", "code"}),
		fatal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lens_oracle",
			Name:      "fatal_total",
			Help:      "Invocations that failed without producing a response.",
		}),
		fetch: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lens_oracle",
			Name:      "fetch_duration_seconds",
			Help:      "Latency of Lens API fetches.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
	}
	reg.MustRegister(m.responses, m.fatal, m.fetch)
	return m
}

func (m *Metrics) ObserveResponse(typ string, code uint64) {
	if m == nil {
		return
	}
	m.responses.WithLabelValues(typ, strconv.FormatUint(code, 10)).Inc()
}

func (m *Metrics) ObserveFatal() {
	if m == nil {
		return
	}
	m.fatal.Inc()
}

func (m *Metrics) ObserveFetch(d time.Duration) {
	if m == nil {
		return
	}
	m.fetch.Observe(d.Seconds())
}

func (m *Metrics) Responses() *prometheus.CounterVec { return m.responses }

func (m *Metrics) Fatal() prometheus.Counter { return m.fatal }
