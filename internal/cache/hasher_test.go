package cache

import (
	"testing"

	"routeopt/internal/domain"
)

func TestLocationSetHash_OrderIndependent(t *testing.T) {
	a := []domain.Location{
		{ID: "x", Latitude: 1, Longitude: 2},
		{ID: "y", Latitude: 3, Longitude: 4},
	}
	b := []domain.Location{
		{ID: "y", Latitude: 3, Longitude: 4},
		{ID: "x", Latitude: 1, Longitude: 2},
	}

	if LocationSetHash(a) != LocationSetHash(b) {
		t.Error("expected hash to be independent of input order")
	}
}

func TestLocationSetHash_SensitiveToCoordinates(t *testing.T) {
	a := []domain.Location{{ID: "x", Latitude: 1, Longitude: 2}}
	b := []domain.Location{{ID: "x", Latitude: 1.5, Longitude: 2}}

	if LocationSetHash(a) == LocationSetHash(b) {
		t.Error("expected different hashes for different coordinates")
	}
}

func TestMatrixKey_DiffersBySource(t *testing.T) {
	locs := []domain.Location{{ID: "x", Latitude: 1, Longitude: 2}}
	haversineKey := MatrixKey(locs, false)
	apiKey := MatrixKey(locs, true)

	if haversineKey == apiKey {
		t.Error("expected distinct keys for haversine vs api source")
	}
}

func TestProblemHash_Deterministic(t *testing.T) {
	locs := []domain.Location{{ID: "depot", Latitude: 0, Longitude: 0}, {ID: "a", Latitude: 1, Longitude: 1}}
	vehicles := []domain.Vehicle{{ID: "v1", Capacity: 10, StartLocationID: "depot", EndLocationID: "depot"}}
	deliveries := []domain.Delivery{{ID: "d1", LocationID: "a", Demand: 5, Priority: 1}}

	h1 := ProblemHash(locs, vehicles, deliveries)
	h2 := ProblemHash(locs, vehicles, deliveries)
	if h1 != h2 {
		t.Error("expected ProblemHash to be deterministic for identical inputs")
	}
}

func TestProblemHash_OrderIndependentAcrossEntities(t *testing.T) {
	locs := []domain.Location{{ID: "depot", Latitude: 0, Longitude: 0}, {ID: "a", Latitude: 1, Longitude: 1}}
	vehicles := []domain.Vehicle{
		{ID: "v1", Capacity: 10, StartLocationID: "depot", EndLocationID: "depot"},
		{ID: "v2", Capacity: 20, StartLocationID: "depot", EndLocationID: "depot"},
	}
	deliveries := []domain.Delivery{{ID: "d1", LocationID: "a", Demand: 5, Priority: 1}}

	h1 := ProblemHash(locs, vehicles, deliveries)

	reorderedVehicles := []domain.Vehicle{vehicles[1], vehicles[0]}
	h2 := ProblemHash(locs, reorderedVehicles, deliveries)

	if h1 != h2 {
		t.Error("expected ProblemHash to be independent of vehicle order")
	}
}

func TestProblemHash_SensitiveToDemand(t *testing.T) {
	locs := []domain.Location{{ID: "depot", Latitude: 0, Longitude: 0}, {ID: "a", Latitude: 1, Longitude: 1}}
	vehicles := []domain.Vehicle{{ID: "v1", Capacity: 10, StartLocationID: "depot", EndLocationID: "depot"}}

	h1 := ProblemHash(locs, vehicles, []domain.Delivery{{ID: "d1", LocationID: "a", Demand: 5}})
	h2 := ProblemHash(locs, vehicles, []domain.Delivery{{ID: "d1", LocationID: "a", Demand: 6}})

	if h1 == h2 {
		t.Error("expected different hashes for different delivery demand")
	}
}

func TestKindOf_ClassifiesByKeyConvention(t *testing.T) {
	locs := []domain.Location{{ID: "x", Latitude: 1, Longitude: 2}}

	if got := KindOf(MatrixKey(locs, true)); got != KindMatrixAPI {
		t.Errorf("KindOf(api matrix key) = %v, want KindMatrixAPI", got)
	}
	if got := KindOf(MatrixKey(locs, false)); got != KindMatrixHaversine {
		t.Errorf("KindOf(haversine matrix key) = %v, want KindMatrixHaversine", got)
	}
	if got := KindOf(SolveKey("abc")); got != KindSolveResult {
		t.Errorf("KindOf(solve key) = %v, want KindSolveResult", got)
	}
	if got := KindOf("anything-else"); got != KindOther {
		t.Errorf("KindOf(unrecognized key) = %v, want KindOther", got)
	}
}

func TestShortHash_Length(t *testing.T) {
	h := ShortHash([]byte("hello"))
	if len(h) != 32 {
		t.Errorf("expected 32 hex chars (16 bytes), got %d", len(h))
	}
}

func TestQuickHash_LongerThanShortHash(t *testing.T) {
	data := []byte("hello")
	if len(QuickHash(data)) <= len(ShortHash(data)) {
		t.Error("expected QuickHash to be longer than ShortHash")
	}
}
