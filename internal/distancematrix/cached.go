package distancematrix

import (
	"context"
	"encoding/json"
	"time"

	"routeopt/internal/cache"
	"routeopt/internal/domain"
	"routeopt/internal/obsmetrics"
)

// CacheEntry is the JSON payload stored under a matrix cache key, per
// spec.md §3/§6's persisted distance-matrix shape.
type CacheEntry struct {
	DistanceMatrix [][]float64 `json:"distance_matrix"`
	TimeMatrix     [][]float64 `json:"time_matrix,omitempty"`
	LocationIDs    []string    `json:"location_ids"`
	CreatedAt      time.Time   `json:"created_at"`
}

// CachedBuild wraps Build with a matrix cache keyed on the exact
// location set, so repeated optimize calls against an unchanged set of
// coordinates skip the Haversine/API computation entirely.
func CachedBuild(ctx context.Context, c cache.Cache, ttl time.Duration, locations []domain.Location, useAPI bool, provider Provider) (*Result, error) {
	metrics := obsmetrics.Get()
	key := cache.MatrixKey(locations, useAPI)

	if c != nil {
		if data, err := c.Get(ctx, key); err == nil {
			var entry CacheEntry
			if err := json.Unmarshal(data, &entry); err == nil {
				metrics.RecordCache("matrix", true)
				return entryToResult(&entry, useAPI), nil
			}
		}
		metrics.RecordCache("matrix", false)
	}

	result := Build(ctx, locations, useAPI, provider)

	if c != nil && result.Source != "api_fallback" {
		entry := resultToEntry(result)
		if data, err := json.Marshal(entry); err == nil {
			_ = c.Set(ctx, key, data, ttl)
		}
	}

	return result, nil
}

func resultToEntry(r *Result) *CacheEntry {
	entry := &CacheEntry{
		DistanceMatrix: r.Distance.Values,
		LocationIDs:    r.Distance.IDs,
		CreatedAt:      time.Now(),
	}
	if r.Time != nil {
		entry.TimeMatrix = r.Time.Values
	}
	return entry
}

func entryToResult(e *CacheEntry, useAPI bool) *Result {
	dist := &domain.Matrix{IDs: e.LocationIDs, Values: e.DistanceMatrix}
	var dur *domain.Matrix
	if e.TimeMatrix != nil {
		dur = &domain.Matrix{IDs: e.LocationIDs, Values: e.TimeMatrix}
	}
	source := "haversine"
	if useAPI {
		source = "api"
	}
	return &Result{Distance: dist, Time: dur, Source: source + "_cached"}
}
