package obsmetrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("failed to read counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestInit_RegistersCollectorsAndSetsDefault(t *testing.T) {
	m := Init("testns1", "engine")
	if m == nil {
		t.Fatal("expected non-nil Metrics")
	}
	if Get() != m {
		t.Error("expected Get() to return the instance Init just set as default")
	}
}

func TestRecordSolve_IncrementsCounterAndObservesDuration(t *testing.T) {
	m := Init("testns2", "engine")
	m.RecordSolve("success", 250*time.Millisecond)

	got := counterValue(t, m.SolveOperationsTotal.WithLabelValues("success"))
	if got != 1 {
		t.Errorf("expected solve_operations_total{status=success}=1, got %f", got)
	}
}

func TestRecordCache_HitAndMiss(t *testing.T) {
	m := Init("testns3", "engine")
	m.RecordCache("matrix", true)
	m.RecordCache("matrix", false)

	if got := counterValue(t, m.CacheHitsTotal.WithLabelValues("matrix")); got != 1 {
		t.Errorf("expected 1 cache hit, got %f", got)
	}
	if got := counterValue(t, m.CacheMissesTotal.WithLabelValues("matrix")); got != 1 {
		t.Errorf("expected 1 cache miss, got %f", got)
	}
}

func TestRecordMatrixBuild(t *testing.T) {
	m := Init("testns4", "engine")
	m.RecordMatrixBuild("haversine", 10*time.Millisecond)

	got := counterValue(t, m.MatrixBuildTotal.WithLabelValues("haversine"))
	if got != 1 {
		t.Errorf("expected 1 matrix build recorded, got %f", got)
	}
}

func TestRecordReroute(t *testing.T) {
	m := Init("testns5", "engine")
	m.RecordReroute("traffic", "success")

	got := counterValue(t, m.RerouteOperationsTotal.WithLabelValues("traffic", "success"))
	if got != 1 {
		t.Errorf("expected 1 reroute operation recorded, got %f", got)
	}
}

func TestRecordProblemSize_DoesNotPanic(t *testing.T) {
	m := Init("testns6", "engine")
	m.RecordProblemSize("optimize", 10, 3, 25)
}

func TestSetServiceInfo_DoesNotPanic(t *testing.T) {
	m := Init("testns7", "engine")
	m.SetServiceInfo("1.0.0", "test")
}
