package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checkerChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "checker",
		Name:      "checks_total",
		Help:      "Count of transaction checks by kind and result.",
	}, []string{"network", "kind", "status"})

	checkerRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "checker",
		Name:      "rejections_total",
		Help:      "Count of rejected transactions by violated rule.",
	}, []string{"network", "rule"})

	checkerCheckDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "checker",
		Name:      "check_duration_seconds",
		Help:      "Duration of a single transaction check.",
		Buckets:   []float64{.0001, .0005, .001, .0025, .005, .01, .025, .05, .1, .25},
	}, []string{"network", "kind", "status"})

	checkerBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "checker",
		Name:      "batches_total",
		Help:      "Count of processed check batches.",
	}, []string{"network", "status"})

	checkerBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "checker",
		Name:      "batch_duration_seconds",
		Help:      "Duration of processing a check batch.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	checkerBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "checker",
		Name:      "batch_size",
		Help:      "Number of transactions per check batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"network"})
)

// Checker tracks metrics for the transaction checker.
type Checker struct {
	network string
}

// NewChecker constructs a Checker collector for network.
func NewChecker(network string) *Checker {
	if network == "" {
		network = "unknown"
	}
	return &Checker{network: network}
}

// ObserveCheck records one transaction check. rule names the violated rule of a rejected
// transaction and is ignored when err is nil.
func (m Checker) ObserveCheck(kind, rule string, err error, started time.Time) {
	status := "valid"
	if err != nil {
		status = "invalid"
		if rule == "" {
			rule = "unknown"
		}
		checkerRejectionsTotal.WithLabelValues(m.network, rule).Inc()
	}
	if kind == "" {
		kind = "unknown"
	}
	checkerChecksTotal.WithLabelValues(m.network, kind, status).Inc()
	checkerCheckDuration.WithLabelValues(m.network, kind, status).Observe(time.Since(started).Seconds())
}

// ObserveBatch records processing of a batch of transactions.
func (m Checker) ObserveBatch(err error, size int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	checkerBatchTotal.WithLabelValues(m.network, status).Inc()
	checkerBatchDuration.WithLabelValues(m.network, status).Observe(time.Since(started).Seconds())
	checkerBatchSize.WithLabelValues(m.network).Observe(float64(size))
}
