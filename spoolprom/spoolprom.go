// Package spoolprom exports spool resolution and construction metrics to
// Prometheus through container observer hooks.
package spoolprom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danpasecinic/spool"
)

const (
	resultSuccess = "success"
	resultError   = "error"
)

type Option func(*options)

type options struct {
	namespace string
	buckets   []float64
	labels    prometheus.Labels
}

// WithNamespace prefixes every metric name. The default is "spool".
func WithNamespace(namespace string) Option {
	return func(o *options) {
		o.namespace = namespace
	}
}

func WithBuckets(buckets []float64) Option {
	return func(o *options) {
		o.buckets = buckets
	}
}

func WithConstLabels(labels prometheus.Labels) Option {
	return func(o *options) {
		o.labels = labels
	}
}

// Metrics is a prometheus.Collector fed by spool observer hooks.
type Metrics struct {
	resolves          *prometheus.CounterVec
	resolveDuration   *prometheus.HistogramVec
	constructs        *prometheus.CounterVec
	constructDuration *prometheus.HistogramVec
}

func New(opts ...Option) *Metrics {
	o := &options{
		namespace: "spool",
		buckets:   prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Metrics{
		resolves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "resolves_total",
			Help:        "Top-level resolutions by path and result.",
			ConstLabels: o.labels,
		}, []string{"path", "result"}),
		resolveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   o.namespace,
			Name:        "resolve_duration_seconds",
			Help:        "Time spent in top-level resolutions, dependencies included.",
			Buckets:     o.buckets,
			ConstLabels: o.labels,
		}, []string{"path"}),
		constructs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Name:        "constructions_total",
			Help:        "Factory invocations by container, path, lifetime and result.",
			ConstLabels: o.labels,
		}, []string{"container", "path", "lifetime", "result"}),
		constructDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   o.namespace,
			Name:        "construction_duration_seconds",
			Help:        "Time spent in factories, dependencies included.",
			Buckets:     o.buckets,
			ConstLabels: o.labels,
		}, []string{"container", "path", "lifetime"}),
	}
}

// Options returns the container options that feed m. Child containers
// inherit them.
func (m *Metrics) Options() []spool.Option {
	return []spool.Option{
		spool.WithResolveObserver(m.ObserveResolve),
		spool.WithConstructObserver(m.ObserveConstruct),
	}
}

func (m *Metrics) ObserveResolve(path string, duration time.Duration, err error) {
	m.resolves.WithLabelValues(path, result(err)).Inc()
	m.resolveDuration.WithLabelValues(path).Observe(duration.Seconds())
}

func (m *Metrics) ObserveConstruct(path, container string, lifetime spool.Lifetime, duration time.Duration, err error) {
	m.constructs.WithLabelValues(container, path, lifetime.String(), result(err)).Inc()
	m.constructDuration.WithLabelValues(container, path, lifetime.String()).Observe(duration.Seconds())
}

func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.resolves.Describe(ch)
	m.resolveDuration.Describe(ch)
	m.constructs.Describe(ch)
	m.constructDuration.Describe(ch)
}

func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.resolves.Collect(ch)
	m.resolveDuration.Collect(ch)
	m.constructs.Collect(ch)
	m.constructDuration.Collect(ch)
}

func result(err error) string {
	if err != nil {
		return resultError
	}
	return resultSuccess
}

var _ prometheus.Collector = (*Metrics)(nil)
