package coinselect

import (
	"sync"

	"github.com/bsv-blockchain/go-txcore/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics collectors
var (
	// prometheusCoinSelect measures time spent selecting candidates
	prometheusCoinSelect prometheus.Histogram

	// prometheusCoinSelectInputs tracks how many points each covered selection used
	prometheusCoinSelectInputs prometheus.Histogram

	// prometheusCoinSelectInsufficient counts selections that could not cover their target
	prometheusCoinSelectInsufficient prometheus.Counter
)

// prometheusMetricsInitOnce ensures metrics are initialized only once
var prometheusMetricsInitOnce sync.Once

// initPrometheusMetrics initializes all Prometheus metrics
func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

// _initPrometheusMetrics creates and registers all metrics for this package
func _initPrometheusMetrics() {
	prometheusCoinSelect = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "txcore",
			Subsystem: "coinselect",
			Name:      "select",
			Help:      "Histogram of coin selection",
			Buckets:   util.MetricsBucketsMicroSeconds,
		},
	)

	prometheusCoinSelectInputs = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "txcore",
			Subsystem: "coinselect",
			Name:      "select_inputs",
			Help:      "Histogram of points per covered selection",
			Buckets:   util.MetricsBucketsSizeSmall,
		},
	)

	prometheusCoinSelectInsufficient = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "txcore",
			Subsystem: "coinselect",
			Name:      "select_insufficient",
			Help:      "Number of selections that could not cover their target",
		},
	)
}
