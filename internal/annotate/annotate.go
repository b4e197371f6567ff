// Package annotate expands a Solution's routes into turn-by-turn
// RouteSegments via shortest-path search over the road-network graph,
// accumulating per-vehicle distance, time, and capacity utilization.
package annotate

import (
	"log/slog"

	"routeopt/internal/domain"
	"routeopt/internal/shortestpath"
)

// Annotate walks every route in sol and fills in sol.DetailedRoutes.
// vehicles and deliveries are looked up by ID to compute per-vehicle
// capacity utilization and locate each stop's demand. matrix supplies
// the time-dimension fallback when graph carries no time-weighted
// edges (CVRP solves never build one).
func Annotate(sol *domain.Solution, graph *shortestpath.Graph, matrix *domain.Matrix, vehicles []domain.Vehicle, deliveries []domain.Delivery, log *slog.Logger) *domain.Solution {
	vehicleByID := make(map[string]*domain.Vehicle, len(vehicles))
	for i := range vehicles {
		vehicleByID[vehicles[i].ID] = &vehicles[i]
	}
	demandByLocation := make(map[string]int, len(deliveries))
	for _, d := range deliveries {
		demandByLocation[d.LocationID] += d.Demand
	}

	for i, stops := range sol.Routes {
		vehicleID := ""
		if i < len(sol.RouteVehicleIDs) {
			vehicleID = sol.RouteVehicleIDs[i]
		}

		detailed := &domain.DetailedRoute{
			VehicleID:           vehicleID,
			Stops:               stops,
			EstimatedArrivalMin: make(map[string]float64),
		}

		var cumulativeTime float64
		var demandSum int

		for j := 0; j+1 < len(stops); j++ {
			from, to := stops[j], stops[j+1]
			segment := buildSegment(from, to, graph, matrix, log)
			detailed.Segments = append(detailed.Segments, segment)
			detailed.TotalDistance += segment.Distance
			cumulativeTime += segment.Time
			detailed.EstimatedArrivalMin[to] = cumulativeTime
		}
		detailed.TotalTime = cumulativeTime

		for _, stop := range stops {
			demandSum += demandByLocation[stop]
		}
		vehicle := vehicleByID[vehicleID]
		if vehicle != nil && vehicle.Capacity > 0 {
			detailed.CapacityUtilization = float64(demandSum) / float64(vehicle.Capacity)
		}
		detailed.StopCount = countUniqueNonDepot(stops, vehicle)

		sol.DetailedRoutes = append(sol.DetailedRoutes, detailed)
	}

	return sol
}

func buildSegment(from, to string, graph *shortestpath.Graph, matrix *domain.Matrix, log *slog.Logger) domain.RouteSegment {
	result := shortestpath.ShortestPath(graph, from)
	dist, reachable := result.Distances[to]

	if !reachable || dist >= shortestpath.Infinity {
		if log != nil {
			log.Warn("unreachable segment in route, emitting placeholder", "from", from, "to", to)
		}
		timeVal := 0.0
		if matrix != nil {
			i, j := matrix.IndexOf(from), matrix.IndexOf(to)
			if i >= 0 && j >= 0 {
				timeVal = matrix.Values[i][j]
			}
		}
		return domain.RouteSegment{
			From:     from,
			To:       to,
			Path:     []string{from, to},
			Distance: domain.MaxSafeDistance,
			Time:     timeVal,
		}
	}

	path := shortestpath.ReconstructPath(result, from, to)
	timeVal := dist
	if matrix != nil {
		i, j := matrix.IndexOf(from), matrix.IndexOf(to)
		if i >= 0 && j >= 0 {
			timeVal = matrix.Values[i][j]
		}
	}

	return domain.RouteSegment{From: from, To: to, Path: path, Distance: dist, Time: timeVal}
}

func countUniqueNonDepot(stops []string, v *domain.Vehicle) int {
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
