package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	archiveFlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "archive_writer",
		Name:      "flush_total",
		Help:      "Count of archive flushes.",
	}, []string{"network", "status"})

	archiveFlushDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "archive_writer",
		Name:      "flush_duration_seconds",
		Help:      "Duration of archive flushes, retries included.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	archiveFlushSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "archive_writer",
		Name:      "flush_size",
		Help:      "Number of checked transactions per flush.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"network"})
)

// ArchiveWriter tracks metrics for the batched archive writer.
type ArchiveWriter struct {
	network string
}

// NewArchiveWriter constructs an ArchiveWriter collector for network.
func NewArchiveWriter(network string) *ArchiveWriter {
	if network == "" {
		network = "unknown"
	}
	return &ArchiveWriter{network: network}
}

// ObserveFlush records a flush of size checked transactions.
func (m ArchiveWriter) ObserveFlush(err error, size int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	archiveFlushTotal.WithLabelValues(m.network, status).Inc()
	archiveFlushDuration.WithLabelValues(m.network, status).Observe(time.Since(started).Seconds())
	archiveFlushSize.WithLabelValues(m.network).Observe(float64(size))
}
