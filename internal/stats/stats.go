// Package stats computes per-vehicle and aggregate statistics over an
// annotated Solution, the same pure accumulate-and-return style the
// logistics stack uses for its graph/flow statistics.
package stats

import (
	"time"

	"routeopt/internal/domain"
)

// Aggregate computes route_cost and stops per vehicle and writes
// totals into sol.TotalCost and sol.Statistics. It is idempotent:
// calling it twice on the same Solution yields identical values,
// because every field it writes is recomputed from sol.DetailedRoutes
// rather than accumulated onto a prior value.
func Aggregate(sol *domain.Solution, vehicles []domain.Vehicle, computationTime time.Duration) *domain.Solution {
	vehicleByID := make(map[string]*domain.Vehicle, len(vehicles))
	for i := range vehicles {
		vehicleByID[vehicles[i].ID] = &vehicles[i]
	}

	var totalCost, totalDistance float64
	var deliveriesAssigned int
	vehiclesUsed := make(map[string]struct{})

	for _, route := range sol.DetailedRoutes {
		v := vehicleByID[route.VehicleID]

		var segmentDistance float64
		for _, seg := range route.Segments {
			segmentDistance += seg.Distance
		}

		fixedCost := 0.0
		costPerDistance := 0.0
		if v != nil {
			fixedCost = v.FixedCost
			costPerDistance = v.CostPerDistanceUnit
		}
		route.RouteCost = fixedCost + segmentDistance*costPerDistance
		route.StopCount = uniqueNonDepotCount(route.Stops, v)

		totalCost += route.RouteCost
		totalDistance += segmentDistance
		deliveriesAssigned += route.StopCount

		if route.StopCount > 0 {
			vehiclesUsed[route.VehicleID] = struct{}{}
		}
	}

	sol.TotalCost = totalCost
	sol.TotalDistance = totalDistance

	if sol.Statistics == nil {
		sol.Statistics = make(map[string]any)
	}
	sol.Statistics["total_cost"] = totalCost
	sol.Statistics["total_distance"] = totalDistance
	sol.Statistics["vehicles_used"] = len(vehiclesUsed)
	sol.Statistics["deliveries_assigned"] = deliveriesAssigned
	sol.Statistics["computation_time_ms"] = float64(computationTime.Microseconds()) / 1000.0

	return sol
}

func uniqueNonDepotCount(stops []string, v *domain.Vehicle) int {
	seen := make(map[string]struct{}, len(stops))
	count := 0
	for _, s := range stops {
		if v != nil && (s == v.StartLocationID || s == v.EndLocationID) {
			continue
		}
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			count++
		}
	}
	return count
}
