package vrp

import sdkroute "github.com/nextmv-io/sdk/route"

// skillConstraint rejects any vehicle route carrying a stop whose
// delivery requires a skill the vehicle lacks. It is grounded directly
// on the nextmv Parcel Routing template's CustomConstraint, which
// checks package-type homogeneity along a route the same way: by
// reading the stop indices route.PartialVehicle.Route() returns and
// looking each one up in a parallel, build-time-populated slice.
type skillConstraint struct {
	// requiredSkills[i] holds the skills stop index i's delivery
	// needs, or nil if the stop carries no requirement.
	requiredSkills []map[string]struct{}
	// vehicleSkills maps a vehicle ID to the skills it carries.
	vehicleSkills map[string]map[string]struct{}
}

// Violated reports whether vehicle's route visits a stop it doesn't
// have the skills for.
func (c skillConstraint) Violated(vehicle sdkroute.PartialVehicle) (sdkroute.VehicleConstraint, bool) {
	have := c.vehicleSkills[vehicle.ID()]
	for _, stopIdx := range vehicle.Route() {
		required := c.requiredSkills[stopIdx]
		if len(required) == 0 {
			continue
		}
		for skill := range required {
			if _, ok := have[skill]; !ok {
				return c, true
			}
		}
	}
	return c, false
}

// distanceBoundConstraint enforces a per-vehicle hard cap on the total
// arc cost (distance or, for VRPTW, time) accumulated along its route,
// standing in for SolverOptions.MaxRouteDistanceUnscaled /
// MaxRouteDurationUnscaled, which the old hand-rolled local search
// checked directly against a candidate route's cumulative distance.
type distanceBoundConstraint struct {
	measure matrixMeasure
	// maxByVehicle maps a vehicle ID to its bound; a vehicle absent
	// from the map (or mapped to <= 0) is unbounded.
	maxByVehicle map[string]float64
}

// Violated sums vehicle's route cost under c.measure and compares it
// against its configured bound.
func (c distanceBoundConstraint) Violated(vehicle sdkroute.PartialVehicle) (sdkroute.VehicleConstraint, bool) {
	max, ok := c.maxByVehicle[vehicle.ID()]
	if !ok || max <= 0 {
		return c, false
	}

	stops := vehicle.Route()
	var total float64
	for i := 0; i+1 < len(stops); i++ {
		total += c.measure.Cost(stops[i], stops[i+1])
	}
	return c, total > max
}
