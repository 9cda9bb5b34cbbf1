package model

// Metric names one value extracted from an upstream scoring payload.
type Metric string

const (
	// MetricScore is the performance category score scaled to 0-100.
	MetricScore Metric = "score"
	// MetricTiming is the total time the analysis took, in milliseconds.
	MetricTiming Metric = "timing"
	// MetricFCP is the first contentful paint display value.
	MetricFCP Metric = "fcp"
	// MetricLCP is the largest contentful paint display value.
	MetricLCP Metric = "lcp"
	// MetricCLS is the cumulative layout shift display value.
	MetricCLS Metric = "cls"
	// MetricSpeedIndex is the speed index display value.
	MetricSpeedIndex Metric = "si"
	// MetricTBT is the total blocking time display value.
	MetricTBT Metric = "tbt"
	// MetricTTI is the time to interactive display value.
	MetricTTI Metric = "tti"
)

// auditIDs maps audit-backed metrics to their Lighthouse audit identifier.
var auditIDs = map[Metric]string{
	MetricFCP:        "first-contentful-paint",
	MetricLCP:        "largest-contentful-paint",
	MetricCLS:        "cumulative-layout-shift",
	MetricSpeedIndex: "speed-index",
	MetricTBT:        "total-blocking-time",
	MetricTTI:        "interactive",
}

// metricLabels holds the short column label of each metric.
var metricLabels = map[Metric]string{
	MetricScore:      "Score",
	MetricTiming:     "Timing",
	MetricFCP:        "FCP",
	MetricLCP:        "LCP",
	MetricCLS:        "CLS",
	MetricSpeedIndex: "SI",
	MetricTBT:        "TBT",
	MetricTTI:        "TTI",
}

// StandardMetrics returns the metrics every report carries, in column order.
func StandardMetrics() []Metric {
	return []Metric{MetricScore, MetricTiming, MetricFCP, MetricLCP, MetricCLS}
}

// ExtendedMetrics returns the standard metrics followed by the optional ones.
func ExtendedMetrics() []Metric {
	return append(StandardMetrics(), MetricSpeedIndex, MetricTBT, MetricTTI)
}

// Label returns the short human-readable label of the metric.
func (m Metric) Label() string {
	if label, ok := metricLabels[m]; ok {
		return label
	}
	return string(m)
}

// AuditID returns the Lighthouse audit backing the metric, if any.
func (m Metric) AuditID() (string, bool) {
	id, ok := auditIDs[m]
	return id, ok
}

// Metrics holds formatted metric values of one profile.
type Metrics map[Metric]string

// Value returns the value of metric, or NotAvailable when absent.
func (m Metrics) Value(metric Metric) string {
	if v, ok := m[metric]; ok && v != "" {
		return v
	}
	return NotAvailable
}

// ErrorMetrics returns a Metrics value with every metric set to ErrorValue.
func ErrorMetrics() Metrics {
	metrics := make(Metrics, len(metricLabels))
	for _, metric := range ExtendedMetrics() {
		metrics[metric] = ErrorValue
	}
	return metrics
}
