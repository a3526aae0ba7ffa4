package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveCall(t *testing.T) {
	m := NewAssistantMetrics(prometheus.NewRegistry())

	m.ObserveCall("analyze_emotion", time.Now(), nil)
	m.ObserveCall("analyze_emotion", time.Now(), errors.New("boom"))
	m.ObserveCall("analyze_emotion", time.Now(), nil)

	if got := testutil.ToFloat64(m.GatewayCallsTotal.WithLabelValues("analyze_emotion", "ok")); got != 2 {
		t.Errorf("ok calls = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.GatewayCallsTotal.WithLabelValues("analyze_emotion", "error")); got != 1 {
		t.Errorf("error calls = %v, want 1", got)
	}
}

func TestObserveFrame(t *testing.T) {
	m := NewAssistantMetrics(prometheus.NewRegistry())

	m.ObserveFrame("transcript")
	m.ObserveFrame("transcript")
	m.ObserveFrame("")

	if got := testutil.ToFloat64(m.StreamFramesTotal.WithLabelValues("transcript")); got != 2 {
		t.Errorf("transcript frames = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.StreamFramesSkipped); got != 1 {
		t.Errorf("skipped = %v, want 1", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *AssistantMetrics
	m.ObserveCall("x", time.Now(), nil)
	m.ObserveRetry("x")
	m.ObserveFrame("status")
	m.SessionStarted()
	m.SessionStopped()
	m.SessionCleared()
	m.SetTranscriptEntries(3)
}

func TestSessionGauges(t *testing.T) {
	m := NewAssistantMetrics(prometheus.NewRegistry())

	m.SessionStarted()
	m.SetTranscriptEntries(4)
	if got := testutil.ToFloat64(m.RecordingActive); got != 1 {
		t.Errorf("recording = %v, want 1", got)
	}

	m.SessionStopped()
	m.SessionCleared()
	if got := testutil.ToFloat64(m.RecordingActive); got != 0 {
		t.Errorf("recording = %v, want 0", got)
	}
	if got := testutil.ToFloat64(m.TranscriptEntries); got != 0 {
		t.Errorf("entries = %v, want 0", got)
	}
	if got := testutil.ToFloat64(m.SessionsStartedTotal); got != 1 {
		t.Errorf("started = %v, want 1", got)
	}
}
