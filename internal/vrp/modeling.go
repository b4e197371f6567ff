package vrp

import (
	"time"

	sdkroute "github.com/nextmv-io/sdk/route"

	"routeopt/internal/domain"
)

// routeModel is everything needed to hand a Problem to
// github.com/nextmv-io/sdk/route and to translate its solution back:
// the router itself and the vehicle IDs given to route.NewRouter, in
// order.
type routeModel struct {
	router     sdkroute.Router
	vehicleIDs []string
}

// epoch anchors the location-relative-minute time windows the domain
// package works in (see domain.Location.TimeWindowStart's doc comment)
// to the absolute time.Time values route.TimeWindow expects.
var epoch = time.Unix(0, 0).UTC()

// buildRouteModel shapes p into a nextmv router: one route.Stop per
// deliverable location, route.Starts/Ends at each available vehicle's
// depot, route.Capacity for demand, route.Services/Windows for the
// VRPTW dimension, route.Unassigned for the priority-proportional drop
// penalty (spec.md §4.3), route.InitializationCosts for each vehicle's
// fixed cost, and a skill/distance-bound custom constraint pair
// standing in for the requirements the old hand-rolled local search
// checked directly.
func buildRouteModel(p *Problem, available []domain.Vehicle, opts *SolverOptions) (*routeModel, error) {
	stops := make([]sdkroute.Stop, 0, len(p.Deliveries))
	quantities := make([]int, 0, len(p.Deliveries))
	penalties := make([]int, 0, len(p.Deliveries))
	services := make([]sdkroute.Service, 0, len(p.Deliveries))
	windows := make([]sdkroute.Window, 0, len(p.Deliveries))
	requiredSkills := make([]map[string]struct{}, 0, len(p.Deliveries))
	pointIDs := make([]string, 0, len(p.Deliveries)+2*len(available))

	for i := range p.Deliveries {
		d := &p.Deliveries[i]
		loc := locationByID(p.Locations, d.LocationID)
		if loc == nil {
			continue
		}

		stops = append(stops, sdkroute.Stop{
			ID:       loc.ID,
			Position: sdkroute.Position{Lon: loc.Longitude, Lat: loc.Latitude},
		})
		quantities = append(quantities, opts.scaleDemand(d.Demand))
		penalties = append(penalties, opts.unassignedPenalty(d.Priority))
		services = append(services, sdkroute.Service{ID: loc.ID, Duration: loc.ServiceTime * 60})
		windows = append(windows, stopWindow(loc))
		requiredSkills = append(requiredSkills, d.RequiredSkills)
		pointIDs = append(pointIDs, loc.ID)
	}

	vehicleIDs := make([]string, len(available))
	starts := make([]sdkroute.Position, len(available))
	ends := make([]sdkroute.Position, len(available))
	capacities := make([]int, len(available))
	initializationCosts := make([]float64, len(available))
	vehicleSkills := make(map[string]map[string]struct{}, len(available))
	maxDistanceByVehicle := make(map[string]float64, len(available))
	maxDurationByVehicle := make(map[string]float64, len(available))

	for i, v := range available {
		startLoc := locationByID(p.Locations, v.StartLocationID)
		endLoc := locationByID(p.Locations, v.EndLocationID)
		if startLoc == nil || endLoc == nil {
			return nil, errUnroutableVehicle{vehicleID: v.ID}
		}

		vehicleIDs[i] = v.ID
		starts[i] = sdkroute.Position{Lon: startLoc.Longitude, Lat: startLoc.Latitude}
		ends[i] = sdkroute.Position{Lon: endLoc.Longitude, Lat: endLoc.Latitude}
		capacities[i] = opts.scaleDemand(v.Capacity)
		initializationCosts[i] = v.FixedCost
		vehicleSkills[v.ID] = v.Skills
		maxDistanceByVehicle[v.ID] = p.maxRouteDistance(&v, opts)
		if p.ConsiderTimeWindows {
			maxDurationByVehicle[v.ID] = opts.MaxRouteDurationUnscaled
		}

		pointIDs = append(pointIDs, v.StartLocationID, v.EndLocationID)
		requiredSkills = append(requiredSkills, nil, nil)
	}

	distanceCost, err := indexedMeasure(p.Distance, pointIDs)
	if err != nil {
		return nil, err
	}

	routerOpts := []sdkroute.Option{
		sdkroute.Starts(starts),
		sdkroute.Ends(ends),
		sdkroute.Capacity(quantities, capacities),
		sdkroute.Services(services),
		sdkroute.Unassigned(penalties),
		sdkroute.InitializationCosts(initializationCosts),
		sdkroute.ValueFunctionMeasures(repeatMeasure(distanceCost, len(vehicleIDs))),
		sdkroute.Constraint(skillConstraint{requiredSkills: requiredSkills, vehicleSkills: vehicleSkills}, vehicleIDs),
		sdkroute.Constraint(distanceBoundConstraint{measure: distanceCost, maxByVehicle: maxDistanceByVehicle}, vehicleIDs),
	}

	if hasAnyWindow(windows) {
		routerOpts = append(routerOpts, sdkroute.Windows(windows))
	}

	if p.ConsiderTimeWindows && p.Time != nil {
		timeCost, err := indexedMeasure(p.Time, pointIDs)
		if err != nil {
			return nil, err
		}
		routerOpts = append(routerOpts,
			sdkroute.TravelTimeMeasures(repeatMeasure(timeCost, len(vehicleIDs))),
			sdkroute.Constraint(distanceBoundConstraint{measure: timeCost, maxByVehicle: maxDurationByVehicle}, vehicleIDs),
		)
	}

	router, err := sdkroute.NewRouter(stops, vehicleIDs, routerOpts...)
	if err != nil {
		return nil, err
	}

	return &routeModel{router: router, vehicleIDs: vehicleIDs}, nil
}

// errUnroutableVehicle is returned when a vehicle's start/end location
// isn't present in the request's location set.
type errUnroutableVehicle struct{ vehicleID string }

func (e errUnroutableVehicle) Error() string {
	return "vrp: vehicle " + e.vehicleID + " references a location outside the request"
}

// errLocationNotIndexed is returned when a point's location ID can't
// be found in the distance/time matrix being indexed.
type errLocationNotIndexed struct{ locationID string }

func (e errLocationNotIndexed) Error() string {
	return "vrp: location " + e.locationID + " is missing from the matrix"
}

func locationByID(locs []domain.Location, id string) *domain.Location {
	for i := range locs {
		if locs[i].ID == id {
			return &locs[i]
		}
	}
	return nil
}

// stopWindow converts a location's relative-minute hard window into a
// route.Window anchored at epoch, with unlimited wait - matching the
// nextmv template's maxWait=-1 default for stops that don't separately
// configure one.
func stopWindow(loc *domain.Location) sdkroute.Window {
	if !loc.HasTimeWindow() {
		return sdkroute.Window{}
	}
	return sdkroute.Window{
		TimeWindow: sdkroute.TimeWindow{
			Start: epoch.Add(time.Duration(*loc.TimeWindowStart) * time.Minute),
			End:   epoch.Add(time.Duration(*loc.TimeWindowEnd) * time.Minute),
		},
		MaxWait: -1,
	}
}

func hasAnyWindow(windows []sdkroute.Window) bool {
	zero := sdkroute.Window{}
	for _, w := range windows {
		if w != zero {
			return true
		}
	}
	return false
}

// indexedMeasure builds a matrixMeasure over pointIDs's index space by
// looking each point's location ID up in m, once, at construction
// time, rather than on every Cost call during the search.
func indexedMeasure(m *domain.Matrix, pointIDs []string) (matrixMeasure, error) {
	n := len(pointIDs)
	rowIdx := make([]int, n)
	for i, id := range pointIDs {
		idx := m.IndexOf(id)
		if idx < 0 {
			return matrixMeasure{}, errLocationNotIndexed{locationID: id}
		}
		rowIdx[i] = idx
	}

	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
		for j := range values[i] {
			values[i][j] = m.Values[rowIdx[i]][rowIdx[j]]
		}
	}
	return matrixMeasure{values: values}, nil
}

// repeatMeasure satisfies route.ValueFunctionMeasures/TravelTimeMeasures,
// which take one measure per vehicle; every vehicle here shares the
// same distance/time matrix, so the same measure is repeated.
func repeatMeasure(m matrixMeasure, n int) []sdkroute.ByIndex {
	out := make([]sdkroute.ByIndex, n)
	for i := range out {
		out[i] = m
	}
	return out
}
