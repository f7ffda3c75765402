package daemon

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "elfinspectd"

// Request outcomes used as the "outcome" label.
const (
	OutcomeValid      = "valid"
	OutcomeInvalid    = "invalid_elf"
	OutcomeBadRequest = "bad_request"
)

// Metrics holds the daemon's Prometheus collectors.
type Metrics struct {
	Connections     prometheus.Counter
	Requests        *prometheus.CounterVec
	PeerGone        prometheus.Counter
	PayloadBytes    prometheus.Histogram
	RequestDuration prometheus.Histogram
	Machines        *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	var m Metrics

	m.Connections = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "connections_total",
		Help:      "Total connections accepted",
	})
	m.Requests = promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "requests_total",
		Help:      "Total requests answered, by outcome",
	}, []string{"outcome"})
	m.PeerGone = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "responses_undelivered_total",
		Help:      "Responses not delivered because the client closed its socket",
	})
	m.PayloadBytes = promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "payload_bytes",
		Help:      "Size of received file payloads",
		Buckets:   prometheus.ExponentialBuckets(64, 4, 8),
	})
	m.RequestDuration = promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "request_duration_seconds",
		Help:      "Time from accept to response",
		Buckets:   prometheus.DefBuckets,
	})
	m.Machines = promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "valid_files_total",
		Help:      "Valid ELF files inspected, by class and machine code",
	}, []string{"class", "machine"})

	return &m
}
