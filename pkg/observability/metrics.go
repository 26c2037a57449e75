// Package observability provides Prometheus metrics for monitoring the
// plauder pipeline.
package observability

import "github.com/prometheus/client_golang/prometheus"

// LLMBuckets defines histogram buckets suited for LLM inference latencies,
// ranging from 100ms to 120s.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

var (
	// TransportLaunchesTotal counts transport processes launched per
	// provider and model.
	TransportLaunchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plauder_transport_launches_total",
			Help: "Transport process launches",
		},
		[]string{"provider", "model"},
	)

	// TransportDuration records end-to-end transport process duration in
	// seconds, from launch until the exit inspection completes.
	TransportDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "plauder_transport_duration_seconds",
			Help:    "Transport process duration",
			Buckets: LLMBuckets,
		},
		[]string{"provider", "model"},
	)

	// TransportFailuresTotal counts runs the exit inspection classified
	// as failed.
	TransportFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plauder_transport_failures_total",
			Help: "Failed transport runs",
		},
		[]string{"provider"},
	)

	// StreamEventsTotal counts decoded stream events by kind
	// (delta, done, none).
	StreamEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plauder_stream_events_total",
			Help: "Decoded stream events",
		},
		[]string{"provider", "kind"},
	)

	// TranscriptsSavedTotal counts transcripts persisted to the store.
	TranscriptsSavedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plauder_transcripts_saved_total",
			Help: "Persisted transcripts",
		},
		[]string{"provider", "status"},
	)

	// CredentialRejectionsTotal counts requests refused because the
	// configured credential was absent or unresolved.
	CredentialRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plauder_credential_rejections_total",
			Help: "Requests refused by credential verification",
		},
		[]string{"provider"},
	)
)

func init() {
	prometheus.MustRegister(
		TransportLaunchesTotal,
		TransportDuration,
		TransportFailuresTotal,
		StreamEventsTotal,
		TranscriptsSavedTotal,
		CredentialRejectionsTotal,
	)
}
