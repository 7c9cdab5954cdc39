package observability

import (
	"testing"
	"time"
)

func TestMetricsSnapshotCountsRequestsAndErrors(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/staff", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/staff", "GET", 200, 30*time.Millisecond)
	m.RecordRequest("/staff/:id", "PATCH", 404, time.Millisecond)
	m.RecordError("/staff/:id", "PATCH", "NOT_FOUND")

	snap := m.Snapshot()
	if got := snap.Requests["GET /staff|200"]; got != 2 {
		t.Fatalf("expected 2 GET requests, got %d", got)
	}
	if got := snap.AvgLatencyMs["GET /staff|200"]; got != 20 {
		t.Fatalf("expected 20ms average latency, got %v", got)
	}
	if got := snap.Errors["PATCH /staff/:id|NOT_FOUND"]; got != 1 {
		t.Fatalf("expected 1 NOT_FOUND error, got %d", got)
	}

	m.RecordRequest("/staff", "GET", 200, 0)
	if snap.Requests["GET /staff|200"] != 2 {
		t.Fatal("snapshot must not alias live counters")
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/x", "GET", 200, time.Second)
	m.RecordError("/x", "GET", "INTERNAL_ERROR")
	if snap := m.Snapshot(); len(snap.Requests) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}
