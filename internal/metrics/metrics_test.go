package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordCompletion(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordCompletion("map", nil, 0.3)
	m.RecordCompletion("map", errors.New("throttled"), 1.2)
	m.RecordCompletion("reduce", nil, 0.8)

	if got := testutil.ToFloat64(m.CompletionErrors.WithLabelValues("map")); got != 1 {
		t.Errorf("expected 1 map error, got %v", got)
	}
	if got := testutil.ToFloat64(m.CompletionErrors.WithLabelValues("reduce")); got != 0 {
		t.Errorf("expected 0 reduce errors, got %v", got)
	}
}

func TestRecordRun(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordRun("", 12)
	m.RecordRun("summarize", 3)

	if got := testutil.ToFloat64(m.RunsTotal); got != 2 {
		t.Errorf("expected 2 runs, got %v", got)
	}
	if got := testutil.ToFloat64(m.RunsFailed.WithLabelValues("summarize")); got != 1 {
		t.Errorf("expected 1 failed run, got %v", got)
	}
}

func TestNewOnSeparateRegistries(t *testing.T) {
	// Should not panic with duplicate registration
	New(prometheus.NewRegistry())
	New(prometheus.NewRegistry())
}
