package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AssistantMetrics holds the Prometheus metrics for the meeting assistant client.
type AssistantMetrics struct {
	// Gateway metrics
	GatewayCallsTotal   *prometheus.CounterVec
	GatewayLatency      *prometheus.HistogramVec
	GatewayRetriesTotal *prometheus.CounterVec

	// Stream metrics
	StreamFramesTotal   *prometheus.CounterVec
	StreamFramesSkipped prometheus.Counter

	// Session metrics
	SessionsStartedTotal prometheus.Counter
	SessionsClearedTotal prometheus.Counter
	TranscriptEntries    prometheus.Gauge
	RecordingActive      prometheus.Gauge
}

// NewAssistantMetrics registers the metric set on reg.
func NewAssistantMetrics(reg prometheus.Registerer) *AssistantMetrics {
	factory := promauto.With(reg)

	return &AssistantMetrics{
		GatewayCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_gateway_calls_total",
				Help: "Backend calls by operation and outcome",
			},
			[]string{"operation", "status"},
		),
		GatewayLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assistant_gateway_latency_seconds",
				Help:    "Backend call latency",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"operation"},
		),
		GatewayRetriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_gateway_retries_total",
				Help: "Retried backend calls by operation",
			},
			[]string{"operation"},
		),
		StreamFramesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_stream_frames_total",
				Help: "Decoded stream frames by type",
			},
			[]string{"type"},
		),
		StreamFramesSkipped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "assistant_stream_frames_skipped_total",
				Help: "Stream lines that failed to parse",
			},
		),
		SessionsStartedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "assistant_sessions_started_total",
				Help: "Recording sessions started",
			},
		),
		SessionsClearedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "assistant_sessions_cleared_total",
				Help: "Sessions cleared by the user",
			},
		),
		TranscriptEntries: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "assistant_transcript_entries",
				Help: "Finalized transcript entries in the current session",
			},
		),
		RecordingActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "assistant_recording_active",
				Help: "1 while a recording session is running",
			},
		),
	}
}

// ObserveCall records one backend call. A nil receiver is a no-op.
func (m *AssistantMetrics) ObserveCall(operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.GatewayCallsTotal.WithLabelValues(operation, status).Inc()
	m.GatewayLatency.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// ObserveRetry counts a retried attempt.
func (m *AssistantMetrics) ObserveRetry(operation string) {
	if m == nil {
		return
	}
	m.GatewayRetriesTotal.WithLabelValues(operation).Inc()
}

// ObserveFrame counts a decoded stream frame, or a skipped line when frameType is empty.
func (m *AssistantMetrics) ObserveFrame(frameType string) {
	if m == nil {
		return
	}
	if frameType == "" {
		m.StreamFramesSkipped.Inc()
		return
	}
	m.StreamFramesTotal.WithLabelValues(frameType).Inc()
}

// SessionStarted counts a recording start and flips the recording gauge.
func (m *AssistantMetrics) SessionStarted() {
	if m == nil {
		return
	}
	m.SessionsStartedTotal.Inc()
	m.RecordingActive.Set(1)
}

// SessionStopped flips the recording gauge back.
func (m *AssistantMetrics) SessionStopped() {
	if m == nil {
		return
	}
	m.RecordingActive.Set(0)
}

// SessionCleared counts a clear.
func (m *AssistantMetrics) SessionCleared() {
	if m == nil {
		return
	}
	m.SessionsClearedTotal.Inc()
	m.TranscriptEntries.Set(0)
}

// SetTranscriptEntries tracks the finalized transcript length.
func (m *AssistantMetrics) SetTranscriptEntries(n int) {
	if m == nil {
		return
	}
	m.TranscriptEntries.Set(float64(n))
}
