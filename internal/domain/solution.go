package domain

// Status is the outcome of a solve.
type Status string

const (
	StatusSuccess    Status = "success"
	StatusNoSolution Status = "no_solution"
	StatusError      Status = "error"
)

// RouteSegment is a single shortest-path expansion between two
// consecutive stops on a vehicle's route, produced by the PathAnnotator.
type RouteSegment struct {
	From     string
	To       string
	Path     []string
	Distance float64
	Time     float64
}

// DetailedRoute is the per-vehicle expansion of a route: its segments
// plus cumulative distance/time and estimated arrival at each stop.
type DetailedRoute struct {
	VehicleID            string
	Stops                []string
	Segments             []RouteSegment
	TotalDistance        float64
	TotalTime            float64
	CapacityUtilization  float64
	EstimatedArrivalMin  map[string]float64 // location ID -> arrival minutes, VRPTW only
	RouteCost            float64
	StopCount            int
}

// Solution is the result of a solve: an assignment of deliveries to
// vehicles and an ordered route per vehicle.
type Solution struct {
	Status                Status
	Routes                [][]string // one ordered location-ID sequence per used vehicle
	RouteVehicleIDs        []string   // parallel to Routes: which vehicle ran each route
	TotalDistance         float64
	TotalCost             float64
	AssignedVehicleIDs    []string
	UnassignedDeliveryIDs []string
	DetailedRoutes        []*DetailedRoute
	Statistics            map[string]any
}

// NewErrorSolution builds a Solution carrying a diagnostic message, per
// spec.md §4.7's "short-circuits to Error" state-machine behavior.
func NewErrorSolution(message string, unassigned []string) *Solution {
	return &Solution{
		Status:                StatusError,
		UnassignedDeliveryIDs: unassigned,
		Statistics: map[string]any{
			"error": message,
		},
	}
}
