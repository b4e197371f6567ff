package depot

import (
	"testing"

	"routeopt/internal/domain"
)

func TestResolve_SingleMarkedDepot(t *testing.T) {
	locs := []domain.Location{
		{ID: "depot", IsDepot: true},
		{ID: "a"},
	}
	vehicles := []domain.Vehicle{{ID: "v1", StartLocationID: "depot", EndLocationID: "depot"}}

	loc, err := Resolve(locs, vehicles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.ID != "depot" {
		t.Errorf("expected depot, got %s", loc.ID)
	}
}

func TestResolve_MultipleMarkedDepots_IsError(t *testing.T) {
	locs := []domain.Location{
		{ID: "depot1", IsDepot: true},
		{ID: "depot2", IsDepot: true},
	}
	vehicles := []domain.Vehicle{{ID: "v1", StartLocationID: "depot1", EndLocationID: "depot1"}}

	if _, err := Resolve(locs, vehicles); err == nil {
		t.Error("expected an error for multiple marked depots")
	}
}

func TestResolve_FallsBackToSharedVehicleStart(t *testing.T) {
	locs := []domain.Location{
		{ID: "hub"},
		{ID: "a"},
	}
	vehicles := []domain.Vehicle{
		{ID: "v1", StartLocationID: "hub", EndLocationID: "hub"},
		{ID: "v2", StartLocationID: "hub", EndLocationID: "hub"},
	}

	loc, err := Resolve(locs, vehicles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.ID != "hub" {
		t.Errorf("expected hub, got %s", loc.ID)
	}
}

func TestResolve_NoDepotAndMismatchedVehicleStarts_IsError(t *testing.T) {
	locs := []domain.Location{
		{ID: "a"},
		{ID: "b"},
	}
	vehicles := []domain.Vehicle{
		{ID: "v1", StartLocationID: "a", EndLocationID: "a"},
		{ID: "v2", StartLocationID: "b", EndLocationID: "b"},
	}

	if _, err := Resolve(locs, vehicles); err == nil {
		t.Error("expected an error for mismatched vehicle start locations")
	}
}

func TestResolve_NoVehiclesAndNoDepot_IsError(t *testing.T) {
	locs := []domain.Location{{ID: "a"}}
	if _, err := Resolve(locs, nil); err == nil {
		t.Error("expected an error with no vehicles and no marked depot")
	}
}
