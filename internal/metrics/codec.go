// Package metrics exposes application metrics collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	codecOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "codec",
		Name:      "operations_total",
		Help:      "Count of transaction decode and encode operations.",
	}, []string{"operation", "format", "network", "status"})

	codecOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "codec",
		Name:      "operation_duration_seconds",
		Help:      "Duration of transaction decode and encode operations.",
		Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1},
	}, []string{"operation", "format", "network", "status"})

	codecPayloadBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "codec",
		Name:      "payload_bytes",
		Help:      "Size of decoded and encoded transaction payloads.",
		Buckets:   prometheus.ExponentialBuckets(64, 4, 10), // 64B..16MiB
	}, []string{"operation", "format", "network"})
)

// Codec tracks metrics for transaction decoding and encoding.
type Codec struct {
	network string
}

// NewCodec constructs a Codec collector for network.
func NewCodec(network string) *Codec {
	if network == "" {
		network = "unknown"
	}
	return &Codec{network: network}
}

// ObserveDecode records a decode of size bytes in format ("binary", "hex" or "json").
func (m Codec) ObserveDecode(format string, size int, err error, started time.Time) {
	m.observe("decode", format, size, err, started)
}

// ObserveEncode records an encode of size bytes in format.
func (m Codec) ObserveEncode(format string, size int, err error, started time.Time) {
	m.observe("encode", format, size, err, started)
}

func (m Codec) observe(operation, format string, size int, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	codecOperationsTotal.WithLabelValues(operation, format, m.network, status).Inc()
	codecOperationDuration.WithLabelValues(operation, format, m.network, status).
		Observe(time.Since(started).Seconds())
	if err == nil {
		codecPayloadBytes.WithLabelValues(operation, format, m.network).Observe(float64(size))
	}
}
