package hydrate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the hydration Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "lumina").
	Namespace string

	// Subsystem is the metrics subsystem (default: "hydrate").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for lazy module load duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the hydration metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "lumina",
		Subsystem: "hydrate",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the hydration pipeline's Prometheus instruments.
type Metrics struct {
	payloadReads   prometheus.Counter
	decodeFailures prometheus.Counter
	deferredFields prometheus.Counter
	lazyLoads      prometheus.Counter
	lazyFailures   prometheus.Counter
	lazyDuration   prometheus.Histogram
}

// NewMetrics registers and returns the hydration metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)
	return &Metrics{
		payloadReads: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "payload_reads_total",
			Help:        "Hydration payloads read from the page.",
			ConstLabels: cfg.ConstLabels,
		}),
		decodeFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "decode_failures_total",
			Help:        "Payloads that failed to parse.",
			ConstLabels: cfg.ConstLabels,
		}),
		deferredFields: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "deferred_values_total",
			Help:        "Wire values decoded back into pending handles.",
			ConstLabels: cfg.ConstLabels,
		}),
		lazyLoads: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "lazy_loads_total",
			Help:        "Lazy route modules resolved during bootstrap.",
			ConstLabels: cfg.ConstLabels,
		}),
		lazyFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "lazy_load_failures_total",
			Help:        "Lazy route modules whose producer failed.",
			ConstLabels: cfg.ConstLabels,
		}),
		lazyDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "lazy_load_duration_seconds",
			Help:        "Lazy route module load duration.",
			Buckets:     cfg.Buckets,
			ConstLabels: cfg.ConstLabels,
		}),
	}
}
