package domain

import "fmt"

// Location is a geographic point referenced by ID from vehicles and
// deliveries within a single request.
type Location struct {
	ID               string
	Latitude         float64
	Longitude        float64
	IsDepot          bool
	TimeWindowStart  *int // minutes from the request's implicit epoch
	TimeWindowEnd    *int
	ServiceTime      int // minutes
}

// Validate checks the invariants from the data model: latitude/longitude
// ranges and, when a time window is present, start <= end.
func (l *Location) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("location: id must not be empty")
	}
	if l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("location %s: latitude %f out of range [-90, 90]", l.ID, l.Latitude)
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("location %s: longitude %f out of range [-180, 180]", l.ID, l.Longitude)
	}
	if l.TimeWindowStart != nil && l.TimeWindowEnd != nil && *l.TimeWindowStart > *l.TimeWindowEnd {
		return fmt.Errorf("location %s: time window start %d > end %d", l.ID, *l.TimeWindowStart, *l.TimeWindowEnd)
	}
	return nil
}

// HasTimeWindow reports whether both window bounds are set.
func (l *Location) HasTimeWindow() bool {
	return l.TimeWindowStart != nil && l.TimeWindowEnd != nil
}

// Vehicle is a routable resource available to carry deliveries.
type Vehicle struct {
	ID                string
	Capacity          int
	StartLocationID   string
	EndLocationID     string
	CostPerDistanceUnit float64
	FixedCost         float64
	MaxDistance       float64 // km; 0 means "use the global default"
	MaxStops          int     // 0 means unbounded
	Available         bool
	Skills            map[string]struct{}
}

// Validate checks the per-vehicle invariants; it does not check that the
// referenced locations exist — that is a cross-entity check performed by
// the caller (Optimizer.validate).
func (v *Vehicle) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("vehicle: id must not be empty")
	}
	if v.Capacity < 0 {
		return fmt.Errorf("vehicle %s: capacity %d must be >= 0", v.ID, v.Capacity)
	}
	if v.StartLocationID == "" || v.EndLocationID == "" {
		return fmt.Errorf("vehicle %s: start and end location ids must be set", v.ID)
	}
	return nil
}

// HasSkills reports whether the vehicle carries every skill in required.
func (v *Vehicle) HasSkills(required map[string]struct{}) bool {
	for s := range required {
		if _, ok := v.Skills[s]; !ok {
			return false
		}
	}
	return true
}

// Delivery is a unit of work to be assigned to a vehicle's route.
type Delivery struct {
	ID              string
	LocationID      string
	Demand          int
	Priority        int
	RequiredSkills  map[string]struct{}
	IsPickup        bool
}

// Validate checks the per-delivery invariants that don't require the
// full location set (non-negative demand); the "location is a non-depot
// location in the request" invariant is checked by the Optimizer, which
// has access to the location set.
func (d *Delivery) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("delivery: id must not be empty")
	}
	if d.LocationID == "" {
		return fmt.Errorf("delivery %s: location_id must not be empty", d.ID)
	}
	if d.Demand < 0 {
		return fmt.Errorf("delivery %s: demand %d must be >= 0", d.ID, d.Demand)
	}
	return nil
}
