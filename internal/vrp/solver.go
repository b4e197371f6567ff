package vrp

import (
	"context"
	"encoding/json"

	sdkstore "github.com/nextmv-io/sdk/store"

	"routeopt/internal/domain"
)

// Solve solves a CVRP: assign deliveries to vehicles and order each
// vehicle's route to minimize total distance subject to capacity and
// per-vehicle distance bounds.
func Solve(ctx context.Context, distance *domain.Matrix, locations []domain.Location, vehicles []domain.Vehicle, deliveries []domain.Delivery, depotIndex int, opts *SolverOptions) *domain.Solution {
	if opts == nil {
		opts = DefaultSolverOptions()
	}
	p := &Problem{
		Distance:   distance,
		Locations:  locations,
		Vehicles:   vehicles,
		Deliveries: deliveries,
		DepotIndex: depotIndex,
	}
	return solve(ctx, p, opts)
}

// SolveWithTimeWindows solves a VRPTW: as Solve, additionally honoring
// each location's time window against cumulative travel+service time,
// using the time matrix for the time dimension.
func SolveWithTimeWindows(ctx context.Context, distance, timeMatrix *domain.Matrix, locations []domain.Location, vehicles []domain.Vehicle, deliveries []domain.Delivery, depotIndex int, opts *SolverOptions) *domain.Solution {
	if opts == nil {
		opts = DefaultSolverOptions()
	}
	p := &Problem{
		Distance:            distance,
		Time:                timeMatrix,
		Locations:           locations,
		Vehicles:            vehicles,
		Deliveries:          deliveries,
		DepotIndex:          depotIndex,
		ConsiderTimeWindows: true,
	}
	return solve(ctx, p, opts)
}

func solve(ctx context.Context, p *Problem, opts *SolverOptions) *domain.Solution {
	available := availableVehicles(p.Vehicles)

	if len(available) == 0 {
		return &domain.Solution{
			Status:                domain.StatusError,
			UnassignedDeliveryIDs: allDeliveryIDs(p.Deliveries),
			Statistics:            map[string]any{"error": "no available vehicles"},
		}
	}

	if len(p.Deliveries) == 0 {
		return trivialSolution(available)
	}

	model, err := buildRouteModel(p, available, opts)
	if err != nil {
		return &domain.Solution{
			Status:                domain.StatusNoSolution,
			UnassignedDeliveryIDs: allDeliveryIDs(p.Deliveries),
			Statistics:            map[string]any{"error": err.Error()},
		}
	}

	var storeOpts sdkstore.Options
	storeOpts.Diagram.Expansion.Limit = opts.ExpansionLimit
	storeOpts.Limits.Duration = opts.TimeLimit

	solver, err := model.router.Solver(storeOpts)
	if err != nil {
		return &domain.Solution{
			Status:                domain.StatusNoSolution,
			UnassignedDeliveryIDs: allDeliveryIDs(p.Deliveries),
			Statistics:            map[string]any{"error": err.Error()},
		}
	}

	last := solver.Last(ctx)
	return assembleSolution(p, model, last)
}

func availableVehicles(vehicles []domain.Vehicle) []domain.Vehicle {
	var out []domain.Vehicle
	for _, v := range vehicles {
		if v.Available {
			out = append(out, v)
		}
	}
	return out
}

func allDeliveryIDs(deliveries []domain.Delivery) []string {
	ids := make([]string, len(deliveries))
	for i, d := range deliveries {
		ids[i] = d.ID
	}
	return ids
}

// trivialSolution handles the "no deliveries" edge case: one route per
// available vehicle consisting of just the depot, zero distance.
func trivialSolution(available []domain.Vehicle) *domain.Solution {
	sol := &domain.Solution{Status: domain.StatusSuccess}
	for _, v := range available {
		sol.Routes = append(sol.Routes, []string{v.StartLocationID})
		sol.RouteVehicleIDs = append(sol.RouteVehicleIDs, v.ID)
		sol.AssignedVehicleIDs = append(sol.AssignedVehicleIDs, v.ID)
	}
	return sol
}

// formattedSolution mirrors the JSON shape router.Format produces:
// one entry per vehicle with its visited stop IDs in order, plus the
// stop IDs the router chose to leave unassigned under their
// disjunction penalty. We round-trip through JSON rather than the
// router's own return type because Format's result is an opaque
// interface{} shaped for direct marshaling, not a typed struct.
type formattedSolution struct {
	Vehicles []struct {
		ID    string `json:"id"`
		Route []struct {
			ID string `json:"id"`
		} `json:"route"`
	} `json:"vehicles"`
	Unassigned []struct {
		ID string `json:"id"`
	} `json:"unassigned"`
}

func assembleSolution(p *Problem, model *routeModel, last sdkstore.Store) *domain.Solution {
	raw, err := json.Marshal(model.router.Format(last))
	if err != nil {
		return &domain.Solution{
			Status:                domain.StatusNoSolution,
			UnassignedDeliveryIDs: allDeliveryIDs(p.Deliveries),
			Statistics:            map[string]any{"error": err.Error()},
		}
	}

	var formatted formattedSolution
	if err := json.Unmarshal(raw, &formatted); err != nil {
		return &domain.Solution{
			Status:                domain.StatusNoSolution,
			UnassignedDeliveryIDs: allDeliveryIDs(p.Deliveries),
			Statistics:            map[string]any{"error": err.Error()},
		}
	}

	sol := &domain.Solution{Status: domain.StatusSuccess}
	locByIdx := p.deliveryByLocation()
	vehicleByID := make(map[string]*domain.Vehicle, len(p.Vehicles))
	for i := range p.Vehicles {
		vehicleByID[p.Vehicles[i].ID] = &p.Vehicles[i]
	}

	for _, v := range formatted.Vehicles {
		if len(v.Route) == 0 {
			continue
		}
		stopIDs := make([]string, len(v.Route))
		for i, s := range v.Route {
			stopIDs[i] = s.ID
		}
		// route.Format reports only the deliverable stops a vehicle
		// visits; pin its depot start/end back on so domain.Solution's
		// Routes keep the "first and last entry is the depot" contract
		// the rest of the engine (stats, annotate) relies on.
		if veh, ok := vehicleByID[v.ID]; ok {
			if len(stopIDs) == 0 || stopIDs[0] != veh.StartLocationID {
				stopIDs = append([]string{veh.StartLocationID}, stopIDs...)
			}
			if stopIDs[len(stopIDs)-1] != veh.EndLocationID {
				stopIDs = append(stopIDs, veh.EndLocationID)
			}
		}
		sol.Routes = append(sol.Routes, stopIDs)
		sol.RouteVehicleIDs = append(sol.RouteVehicleIDs, v.ID)
		sol.AssignedVehicleIDs = append(sol.AssignedVehicleIDs, v.ID)
		sol.TotalDistance += routeDistance(p, stopIDs)
	}

	for _, u := range formatted.Unassigned {
		idx := p.locationIndex(u.ID)
		if d, ok := locByIdx[idx]; ok {
			sol.UnassignedDeliveryIDs = append(sol.UnassignedDeliveryIDs, d.ID)
		}
	}

	if len(sol.Routes) == 0 && len(p.Deliveries) > 0 && len(sol.UnassignedDeliveryIDs) == len(p.Deliveries) {
		sol.Status = domain.StatusNoSolution
	}

	return sol
}

func routeDistance(p *Problem, stopIDs []string) float64 {
	var total float64
	for i := 0; i+1 < len(stopIDs); i++ {
		from, to := p.locationIndex(stopIDs[i]), p.locationIndex(stopIDs[i+1])
		if from < 0 || to < 0 {
			continue
		}
		total += p.Distance.Values[from][to]
	}
	return total
}
