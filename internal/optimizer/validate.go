package optimizer

import (
	"fmt"

	"routeopt/internal/apperror"
)

// validate checks the cross-entity invariants spec.md §4.7 stage 1
// requires before any matrix is built: non-empty locations/vehicles,
// every delivery's location exists, every vehicle's start/end exists.
func validate(req *Request) *apperror.Error {
	if len(req.Locations) == 0 {
		return apperror.Invalid("locations", "at least one location is required")
	}
	if len(req.Vehicles) == 0 {
		return apperror.Invalid("vehicles", "at least one vehicle is required")
	}

	locationIDs := make(map[string]struct{}, len(req.Locations))
	for _, loc := range req.Locations {
		if err := loc.Validate(); err != nil {
			return apperror.Invalid("locations", err.Error())
		}
		locationIDs[loc.ID] = struct{}{}
	}

	for _, v := range req.Vehicles {
		if err := v.Validate(); err != nil {
			return apperror.Invalid("vehicles", err.Error())
		}
		if _, ok := locationIDs[v.StartLocationID]; !ok {
			return apperror.Invalid("vehicles", fmt.Sprintf("vehicle %s: start location %q does not exist", v.ID, v.StartLocationID))
		}
		if _, ok := locationIDs[v.EndLocationID]; !ok {
			return apperror.Invalid("vehicles", fmt.Sprintf("vehicle %s: end location %q does not exist", v.ID, v.EndLocationID))
		}
	}

	for _, d := range req.Deliveries {
		if err := d.Validate(); err != nil {
			return apperror.Invalid("deliveries", err.Error())
		}
		if _, ok := locationIDs[d.LocationID]; !ok {
			return apperror.Invalid("deliveries", fmt.Sprintf("delivery %s: location %q does not exist", d.ID, d.LocationID))
		}
	}

	return nil
}
