package stats

import (
	"testing"
	"time"

	"routeopt/internal/domain"
)

func TestAggregate_ComputesCostAndTotals(t *testing.T) {
	vehicles := []domain.Vehicle{
		{ID: "v1", StartLocationID: "depot", EndLocationID: "depot", FixedCost: 50, CostPerDistanceUnit: 2},
	}
	sol := &domain.Solution{
		DetailedRoutes: []*domain.DetailedRoute{
			{
				VehicleID: "v1",
				Stops:     []string{"depot", "a", "b", "depot"},
				Segments: []domain.RouteSegment{
					{From: "depot", To: "a", Distance: 10},
					{From: "a", To: "b", Distance: 10},
					{From: "b", To: "depot", Distance: 20},
				},
			},
		},
	}

	Aggregate(sol, vehicles, 5*time.Millisecond)

	wantCost := 50.0 + 40.0*2
	if sol.TotalCost != wantCost {
		t.Errorf("TotalCost = %f, want %f", sol.TotalCost, wantCost)
	}
	if sol.TotalDistance != 40 {
		t.Errorf("TotalDistance = %f, want 40", sol.TotalDistance)
	}
	if sol.Statistics["vehicles_used"] != 1 {
		t.Errorf("vehicles_used = %v, want 1", sol.Statistics["vehicles_used"])
	}
	if sol.Statistics["deliveries_assigned"] != 2 {
		t.Errorf("deliveries_assigned = %v, want 2", sol.Statistics["deliveries_assigned"])
	}
}

func TestAggregate_IsIdempotent(t *testing.T) {
	vehicles := []domain.Vehicle{{ID: "v1", FixedCost: 10, CostPerDistanceUnit: 1}}
	sol := &domain.Solution{
		DetailedRoutes: []*domain.DetailedRoute{
			{VehicleID: "v1", Stops: []string{"depot", "a", "depot"}, Segments: []domain.RouteSegment{{Distance: 5}, {Distance: 5}}},
		},
	}

	Aggregate(sol, vehicles, time.Millisecond)
	firstCost := sol.TotalCost

	Aggregate(sol, vehicles, time.Millisecond)
	if sol.TotalCost != firstCost {
		t.Errorf("expected Aggregate to be idempotent, got %f then %f", firstCost, sol.TotalCost)
	}
}

func TestAggregate_UnusedVehicleNotCountedAsUsed(t *testing.T) {
	vehicles := []domain.Vehicle{{ID: "v1", StartLocationID: "depot", EndLocationID: "depot"}}
	sol := &domain.Solution{
		DetailedRoutes: []*domain.DetailedRoute{
			{VehicleID: "v1", Stops: []string{"depot", "depot"}, Segments: nil},
		},
	}

	Aggregate(sol, vehicles, 0)
	if sol.Statistics["vehicles_used"] != 0 {
		t.Errorf("expected an empty route to not count its vehicle as used, got %v", sol.Statistics["vehicles_used"])
	}
}

func TestAggregate_UnknownVehicleFallsBackToZeroCost(t *testing.T) {
	sol := &domain.Solution{
		DetailedRoutes: []*domain.DetailedRoute{
			{VehicleID: "ghost", Stops: []string{"depot", "a", "depot"}, Segments: []domain.RouteSegment{{Distance: 10}}},
		},
	}

	Aggregate(sol, nil, 0)
	if sol.TotalCost != 0 {
		t.Errorf("expected 0 cost when the vehicle has no cost fields, got %f", sol.TotalCost)
	}
}

func TestAggregate_RecordsComputationTimeInMilliseconds(t *testing.T) {
	sol := &domain.Solution{}
	Aggregate(sol, nil, 2500*time.Microsecond)

	got := sol.Statistics["computation_time_ms"]
	if got != 2.5 {
		t.Errorf("computation_time_ms = %v, want 2.5", got)
	}
}
