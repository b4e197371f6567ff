package cache

import (
	"context"
	"encoding/json"
	"time"

	"routeopt/internal/domain"
)

// ResultCache memoizes full optimize results keyed on the problem's
// content hash, so an unchanged (locations, vehicles, deliveries) tuple
// skips the solver entirely.
type ResultCache struct {
	cache      Cache
	defaultTTL time.Duration
}

// CachedSolution is the JSON-serializable projection of a
// domain.Solution stored in the cache.
type CachedSolution struct {
	Status                domain.Status          `json:"status"`
	Routes                [][]string             `json:"routes"`
	RouteVehicleIDs       []string               `json:"route_vehicle_ids"`
	TotalDistance         float64                `json:"total_distance"`
	TotalCost             float64                `json:"total_cost"`
	AssignedVehicleIDs    []string               `json:"assigned_vehicle_ids"`
	UnassignedDeliveryIDs []string               `json:"unassigned_delivery_ids"`
	DetailedRoutes        []*domain.DetailedRoute `json:"detailed_routes,omitempty"`
	Statistics            map[string]any         `json:"statistics,omitempty"`
	ComputedAt            time.Time              `json:"computed_at"`
}

// NewResultCache wraps cache with a default TTL for solve results.
func NewResultCache(cache Cache, defaultTTL time.Duration) *ResultCache {
	if defaultTTL <= 0 {
		defaultTTL = 15 * time.Minute
	}
	return &ResultCache{cache: cache, defaultTTL: defaultTTL}
}

// Get fetches a previously cached solution for problemHash. The second
// return value is false on a miss, never an error.
func (rc *ResultCache) Get(ctx context.Context, problemHash string) (*domain.Solution, bool, error) {
	key := SolveKey(problemHash)

	data, err := rc.cache.Get(ctx, key)
	if err != nil {
		if err == ErrKeyNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}

	var cached CachedSolution
	if err := json.Unmarshal(data, &cached); err != nil {
		_ = rc.cache.Delete(ctx, key) //nolint:errcheck // corrupted entry, best-effort cleanup
		return nil, false, nil
	}

	return &domain.Solution{
		Status:                cached.Status,
		Routes:                cached.Routes,
		RouteVehicleIDs:       cached.RouteVehicleIDs,
		TotalDistance:         cached.TotalDistance,
		TotalCost:             cached.TotalCost,
		AssignedVehicleIDs:    cached.AssignedVehicleIDs,
		UnassignedDeliveryIDs: cached.UnassignedDeliveryIDs,
		DetailedRoutes:        cached.DetailedRoutes,
		Statistics:            cached.Statistics,
	}, true, nil
}

// Set stores sol under problemHash with ttl (or the cache's default).
func (rc *ResultCache) Set(ctx context.Context, problemHash string, sol *domain.Solution, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = rc.defaultTTL
	}

	cached := CachedSolution{
		Status:                sol.Status,
		Routes:                sol.Routes,
		RouteVehicleIDs:       sol.RouteVehicleIDs,
		TotalDistance:         sol.TotalDistance,
		TotalCost:             sol.TotalCost,
		AssignedVehicleIDs:    sol.AssignedVehicleIDs,
		UnassignedDeliveryIDs: sol.UnassignedDeliveryIDs,
		DetailedRoutes:        sol.DetailedRoutes,
		Statistics:            sol.Statistics,
		ComputedAt:            time.Now(),
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return err
	}

	key := SolveKey(problemHash)
	return rc.cache.Set(ctx, key, data, ttl)
}

// Invalidate removes the cached solution for problemHash.
func (rc *ResultCache) Invalidate(ctx context.Context, problemHash string) error {
	return rc.cache.Delete(ctx, SolveKey(problemHash))
}

// InvalidateAll removes every cached solve result.
func (rc *ResultCache) InvalidateAll(ctx context.Context) (int64, error) {
	return rc.cache.DeleteByPattern(ctx, "solve:*")
}
