package optimizer

import (
	"strings"

	"routeopt/internal/distancematrix"
	"routeopt/internal/domain"
)

// Request is the engine's public entry point shape for Optimize, per
// spec.md §6's `Optimize(locations, vehicles, deliveries,
// consider_traffic, consider_time_windows, traffic_data?, use_api?,
// time_limit_seconds)`.
type Request struct {
	Locations  []domain.Location
	Vehicles   []domain.Vehicle
	Deliveries []domain.Delivery

	ConsiderTraffic     bool
	ConsiderTimeWindows bool
	TrafficData         *TrafficData

	// UseAPI overrides Matrix.UseAPIByDefault when non-nil.
	UseAPI *bool

	// TimeLimitSeconds overrides Solver.TimeLimitSeconds when non-zero.
	TimeLimitSeconds float64
}

// TrafficData accepts either of the two shapes spec.md §6 documents:
// an explicit list of (from, to, factor) pairs, or a map keyed by
// "from_id:to_id". Both normalize to the same []distancematrix.TrafficFactor.
type TrafficData struct {
	LocationPairs []TrafficPair
	Segments      map[string]float64
}

// TrafficPair is one entry of TrafficData.LocationPairs.
type TrafficPair struct {
	From   string
	To     string
	Factor float64
}

func (t *TrafficData) normalize() []distancematrix.TrafficFactor {
	if t == nil {
		return nil
	}
	out := make([]distancematrix.TrafficFactor, 0, len(t.LocationPairs)+len(t.Segments))
	for _, p := range t.LocationPairs {
		out = append(out, distancematrix.TrafficFactor{From: p.From, To: p.To, Factor: p.Factor})
	}
	for key, factor := range t.Segments {
		from, to, ok := strings.Cut(key, ":")
		if !ok {
			continue
		}
		out = append(out, distancematrix.TrafficFactor{From: from, To: to, Factor: factor})
	}
	return out
}
