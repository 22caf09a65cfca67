package utxoset

import (
	"sync"

	"github.com/bsv-blockchain/go-txcore/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics collectors
var (
	// prometheusUtxoSetAddTx counts transactions added to the set
	prometheusUtxoSetAddTx prometheus.Counter

	// prometheusUtxoSetAddTxSize tracks the size distribution of added transactions
	prometheusUtxoSetAddTxSize prometheus.Histogram

	// prometheusUtxoSetIngest measures batch ingest time
	prometheusUtxoSetIngest prometheus.Histogram

	// prometheusUtxoSetIngestTxs tracks how many transactions each ingest carried
	prometheusUtxoSetIngestTxs prometheus.Histogram

	// prometheusUtxoSetSpend measures spend batch time
	prometheusUtxoSetSpend prometheus.Histogram

	// prometheusUtxoSetSelect measures unspent selection time
	prometheusUtxoSetSelect prometheus.Histogram

	// prometheusUtxoSetErrors counts failed operations by function and error category
	prometheusUtxoSetErrors *prometheus.CounterVec
)

// prometheusMetricsInitOnce ensures metrics are initialized only once
var prometheusMetricsInitOnce sync.Once

// initPrometheusMetrics initializes all Prometheus metrics
func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

// _initPrometheusMetrics creates and registers all metrics for this package
func _initPrometheusMetrics() {
	prometheusUtxoSetAddTx = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "txcore",
			Subsystem: "utxoset",
			Name:      "add_tx",
			Help:      "Number of transactions added to the utxo set",
		},
	)

	prometheusUtxoSetAddTxSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "txcore",
			Subsystem: "utxoset",
			Name:      "add_tx_size",
			Help:      "Histogram of added transaction sizes in bytes",
			Buckets:   util.MetricsBucketsSize,
		},
	)

	prometheusUtxoSetIngest = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "txcore",
			Subsystem: "utxoset",
			Name:      "ingest",
			Help:      "Histogram of batch ingests",
			Buckets:   util.MetricsBucketsMilliSeconds,
		},
	)

	prometheusUtxoSetIngestTxs = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "txcore",
			Subsystem: "utxoset",
			Name:      "ingest_txs",
			Help:      "Histogram of transactions per ingest batch",
			Buckets:   util.MetricsBucketsSizeSmall,
		},
	)

	prometheusUtxoSetSpend = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "txcore",
			Subsystem: "utxoset",
			Name:      "spend",
			Help:      "Histogram of spend batches",
			Buckets:   util.MetricsBucketsMicroSeconds,
		},
	)

	prometheusUtxoSetSelect = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "txcore",
			Subsystem: "utxoset",
			Name:      "select_unspent",
			Help:      "Histogram of unspent selections",
			Buckets:   util.MetricsBucketsMicroSeconds,
		},
	)

	prometheusUtxoSetErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "txcore",
			Subsystem: "utxoset",
			Name:      "errors",
			Help:      "Number of failed utxo set operations",
		},
		[]string{
			"function", // function the failure came from
			"category", // error category
		},
	)
}
