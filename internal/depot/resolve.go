// Package depot resolves the depot location referenced by vehicles'
// start/end points within a request's location set.
package depot

import (
	"routeopt/internal/apperror"
	"routeopt/internal/domain"
)

// Resolve finds the location marked IsDepot in locations. More than one
// marked location is an InvalidInput error. If none is marked, it falls
// back to requiring all vehicles to share a single start location, which
// it treats as the depot.
func Resolve(locations []domain.Location, vehicles []domain.Vehicle) (*domain.Location, error) {
	var marked []*domain.Location
	for i := range locations {
		if locations[i].IsDepot {
			marked = append(marked, &locations[i])
		}
	}

	if len(marked) == 1 {
		return marked[0], nil
	}
	if len(marked) > 1 {
		return nil, apperror.Invalid("locations", "more than one location is marked as depot")
	}

	return resolveFromVehicles(locations, vehicles)
}

func resolveFromVehicles(locations []domain.Location, vehicles []domain.Vehicle) (*domain.Location, error) {
	if len(vehicles) == 0 {
		return nil, apperror.Invalid("vehicles", "cannot resolve depot with no vehicles and no location marked as depot")
	}

	byID := make(map[string]*domain.Location, len(locations))
	for i := range locations {
		byID[locations[i].ID] = &locations[i]
	}

	startID := vehicles[0].StartLocationID
	for _, v := range vehicles[1:] {
		if v.StartLocationID != startID {
			return nil, apperror.Invalid("vehicles", "vehicles do not share a common start location and no depot is marked")
		}
	}

	loc, ok := byID[startID]
	if !ok {
		return nil, apperror.Invalid("vehicles", "vehicle start location id does not exist in the location set")
	}
	return loc, nil
}
