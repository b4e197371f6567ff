// Package reroute implements the engine's three dynamic re-solve
// triggers (traffic, delay, roadblock), per spec.md §4.8: each computes
// the remaining work, mutates the affected vehicles/locations/matrix,
// and re-invokes the Optimizer against the mutated inputs rather than
// patching the prior Solution in place.
package reroute

import (
	"context"

	"routeopt/internal/domain"
	"routeopt/internal/optimizer"
)

// Rerouter drives reroute_for_traffic/delay/roadblock against an
// Engine, the way the Optimizer drives a first solve.
type Rerouter struct {
	Engine *optimizer.Engine
}

// New wraps engine for reroute operations.
func New(engine *optimizer.Engine) *Rerouter {
	return &Rerouter{Engine: engine}
}

// Input bundles the arguments common to every reroute operation, per
// spec.md §4.8's shared signature prefix.
type Input struct {
	CurrentSolution      *domain.Solution
	Locations            []domain.Location
	Vehicles             []domain.Vehicle
	OriginalDeliveries   []domain.Delivery
	CompletedDeliveryIDs []string
	ConsiderTimeWindows  bool
}

// RerouteForTraffic computes remaining = original \ completed, updates
// each vehicle's start location to its last completed stop, and
// re-solves with trafficData applied.
func (r *Rerouter) RerouteForTraffic(ctx context.Context, in Input, trafficData *optimizer.TrafficData) *domain.Solution {
	remaining, completedCount := remainingDeliveries(in.OriginalDeliveries, in.CompletedDeliveryIDs)
	vehicles := advanceVehicles(in.CurrentSolution, in.Vehicles, in.OriginalDeliveries, in.CompletedDeliveryIDs)

	req := &optimizer.Request{
		Locations:           in.Locations,
		Vehicles:            vehicles,
		Deliveries:          remaining,
		ConsiderTraffic:     true,
		ConsiderTimeWindows: in.ConsiderTimeWindows,
		TrafficData:         trafficData,
	}

	sol := r.Engine.Optimize(ctx, req)
	annotateRerouteInfo(sol, in.CurrentSolution, "traffic", completedCount, len(remaining), map[string]any{
		"traffic_factors": trafficData,
	})
	return sol
}

// RerouteForDelay adds delayMinutes to every location in
// delayedLocationIDs's service time and re-solves, forcing VRPTW since
// a delay is meaningless without time windows to violate.
func (r *Rerouter) RerouteForDelay(ctx context.Context, in Input, delayedLocationIDs []string, delayMinutes int) *domain.Solution {
	remaining, completedCount := remainingDeliveries(in.OriginalDeliveries, in.CompletedDeliveryIDs)
	vehicles := advanceVehicles(in.CurrentSolution, in.Vehicles, in.OriginalDeliveries, in.CompletedDeliveryIDs)
	locations := applyDelay(in.Locations, delayedLocationIDs, delayMinutes)

	req := &optimizer.Request{
		Locations:           locations,
		Vehicles:            vehicles,
		Deliveries:          remaining,
		ConsiderTimeWindows: true,
	}

	sol := r.Engine.Optimize(ctx, req)
	annotateRerouteInfo(sol, in.CurrentSolution, "delay", completedCount, len(remaining), map[string]any{
		"delayed_location_ids": delayedLocationIDs,
		"delay_minutes":        delayMinutes,
	})
	return sol
}

// BlockedSegment is one (from, to) location-ID pair marked impassable, per
// spec.md §4.8.
type BlockedSegment struct {
	FromLocationID string
	ToLocationID   string
}

// RerouteForRoadblock synthesizes a traffic-factor entry at the clamp-cap
// MaxTrafficFactor (5.0) for each blocked segment, then re-solves. The
// factor multiplies the segment's own matrix distance; the edge is not
// first set to MaxSafeDistance, so a blocked segment stays routable at
// five times its normal cost rather than being excluded.
func (r *Rerouter) RerouteForRoadblock(ctx context.Context, in Input, blockedSegments []BlockedSegment) *domain.Solution {
	remaining, completedCount := remainingDeliveries(in.OriginalDeliveries, in.CompletedDeliveryIDs)
	vehicles := advanceVehicles(in.CurrentSolution, in.Vehicles, in.OriginalDeliveries, in.CompletedDeliveryIDs)

	trafficData := &optimizer.TrafficData{}
	for _, seg := range blockedSegments {
		trafficData.LocationPairs = append(trafficData.LocationPairs, optimizer.TrafficPair{
			From:   seg.FromLocationID,
			To:     seg.ToLocationID,
			Factor: domain.MaxTrafficFactor,
		})
	}

	req := &optimizer.Request{
		Locations:           in.Locations,
		Vehicles:            vehicles,
		Deliveries:          remaining,
		ConsiderTraffic:     true,
		ConsiderTimeWindows: in.ConsiderTimeWindows,
		TrafficData:         trafficData,
	}

	sol := r.Engine.Optimize(ctx, req)
	annotateRerouteInfo(sol, in.CurrentSolution, "roadblock", completedCount, len(remaining), map[string]any{
		"blocked_segments": blockedSegments,
	})
	return sol
}

// remainingDeliveries returns original minus every delivery whose ID is
// in completedIDs, plus the count removed.
func remainingDeliveries(original []domain.Delivery, completedIDs []string) ([]domain.Delivery, int) {
	completed := make(map[string]struct{}, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = struct{}{}
	}

	var remaining []domain.Delivery
	removed := 0
	for _, d := range original {
		if _, done := completed[d.ID]; done {
			removed++
			continue
		}
		remaining = append(remaining, d)
	}
	return remaining, removed
}

// advanceVehicles returns a copy of vehicles with each one's
// StartLocationID set to the last completed stop on its route in
// current, per spec.md §4.8's vehicle-position-update rule. A vehicle
// with no completed stops on its route is left unchanged.
func advanceVehicles(current *domain.Solution, vehicles []domain.Vehicle, originalDeliveries []domain.Delivery, completedDeliveryIDs []string) []domain.Vehicle {
	completedStops := completedStopLocations(originalDeliveries, completedDeliveryIDs)

	out := make([]domain.Vehicle, len(vehicles))
	copy(out, vehicles)

	if current == nil {
		return out
	}

	for i := range out {
		route := routeFor(current, out[i].ID)
		if route == nil {
			continue
		}
		if last, ok := lastCompletedStop(route, completedStops); ok {
			out[i].StartLocationID = last
		}
	}
	return out
}

// completedStopLocations resolves completed delivery IDs to the
// location IDs they were delivered to.
func completedStopLocations(originalDeliveries []domain.Delivery, completedDeliveryIDs []string) map[string]struct{} {
	completed := make(map[string]struct{}, len(completedDeliveryIDs))
	for _, id := range completedDeliveryIDs {
		completed[id] = struct{}{}
	}

	stops := make(map[string]struct{}, len(completedDeliveryIDs))
	for _, d := range originalDeliveries {
		if _, ok := completed[d.ID]; ok {
			stops[d.LocationID] = struct{}{}
		}
	}
	return stops
}

func routeFor(sol *domain.Solution, vehicleID string) []string {
	for i, vID := range sol.RouteVehicleIDs {
		if vID == vehicleID && i < len(sol.Routes) {
			return sol.Routes[i]
		}
	}
	return nil
}

func lastCompletedStop(route []string, completed map[string]struct{}) (string, bool) {
	last := ""
	found := false
	for _, stop := range route {
		if _, ok := completed[stop]; ok {
			last = stop
			found = true
		}
	}
	return last, found
}

// applyDelay returns a copy of locations with delayMinutes added to
// ServiceTime for every location whose ID is in delayedIDs.
func applyDelay(locations []domain.Location, delayedIDs []string, delayMinutes int) []domain.Location {
	delayed := make(map[string]struct{}, len(delayedIDs))
	for _, id := range delayedIDs {
		delayed[id] = struct{}{}
	}

	out := make([]domain.Location, len(locations))
	copy(out, locations)
	for i := range out {
		if _, ok := delayed[out[i].ID]; ok {
			out[i].ServiceTime += delayMinutes
		}
	}
	return out
}

// annotateRerouteInfo populates sol.Statistics["rerouting_info"] per
// spec.md §4.8, without disturbing the fields StatsAggregator already
// wrote.
func annotateRerouteInfo(sol *domain.Solution, previous *domain.Solution, reason string, completedCount, rerouted int, payload map[string]any) {
	if sol == nil {
		return
	}
	if sol.Statistics == nil {
		sol.Statistics = make(map[string]any)
	}

	info := map[string]any{
		"reason":                   reason,
		"original_total_distance":  0.0,
		"new_total_distance":       sol.TotalDistance,
		"completed_delivery_count": completedCount,
		"rerouted_delivery_count":  rerouted,
	}
	if previous != nil {
		info["original_total_distance"] = previous.TotalDistance
	}
	for k, v := range payload {
		info[k] = v
	}
	sol.Statistics["rerouting_info"] = info
}
