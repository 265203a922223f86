package metrics

import (
	"strings"
	"testing"
)

func TestHistogramObserveCountsOneBucket(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	if snap.count != 3 || snap.sum != 555 {
		t.Fatalf("unexpected snapshot: count=%d sum=%v", snap.count, snap.sum)
	}
	if snap.counts[0] != 1 || snap.counts[1] != 1 {
		t.Fatalf("unexpected bucket counts: %v", snap.counts)
	}
}

func TestRenderIncludesLevelCounters(t *testing.T) {
	IncAnalysis("HIGH")
	IncAnalysis("HIGH")
	IncAnalysis("LOW")
	IncRejected("invalid_emotion")
	ObserveCaptureDurationMs(120)

	out := Render()
	for _, want := range []string{
		`stress_analyses_total{level="HIGH"}`,
		`stress_analyses_total{level="LOW"}`,
		`stress_analyses_rejected_total{code="invalid_emotion"}`,
		"# TYPE stress_capture_duration_ms histogram",
		`stress_capture_duration_ms_bucket{le="+Inf"}`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("render output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, `level="HIGH"`) > strings.Index(out, `level="LOW"`) {
		t.Fatalf("expected labels sorted")
	}
}
