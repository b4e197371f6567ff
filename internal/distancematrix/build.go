// Package distancematrix builds the distance and time matrices an
// optimize request solves against, from either the Haversine formula or
// an external routing API, with traffic-factor application and
// sanitization per spec.md §3/§4.2.
package distancematrix

import (
	"context"
	"time"

	"routeopt/internal/domain"
	"routeopt/internal/obsmetrics"
	"routeopt/internal/shortestpath"
)

// Provider fetches real-world distances/durations for a location set.
// HTTPProvider implements it against an external routing API; tests and
// the Haversine path don't need an implementation at all.
type Provider interface {
	FetchMatrix(ctx context.Context, locations []domain.Location) (distance, duration *domain.Matrix, err error)
}

// Result is the outcome of Build: the sanitized matrices plus which
// source actually produced them (for metrics/logging, and because a
// caller asking for the API may silently receive the Haversine
// fallback).
type Result struct {
	Distance *domain.Matrix
	Time     *domain.Matrix
	Source   string // "haversine", "api", or "api_fallback"
}

// Build constructs a sanitized distance/time matrix pair for locations.
// When useAPI is false or provider is nil, it always uses Haversine. When
// useAPI is true, it tries provider first and falls back to Haversine
// (uncached) on any error, per spec.md §3.2's provider-failure rule.
func Build(ctx context.Context, locations []domain.Location, useAPI bool, provider Provider) *Result {
	start := time.Now()
	metrics := obsmetrics.Get()

	if useAPI && provider != nil {
		distance, duration, err := provider.FetchMatrix(ctx, locations)
		if err == nil {
			distance.Sanitize()
			if duration != nil {
				duration.Sanitize()
			}
			metrics.RecordMatrixBuild("api", time.Since(start))
			return &Result{Distance: distance, Time: duration, Source: "api"}
		}
		// Provider exhausted its retries or failed outright: fall back
		// to Haversine rather than fail the whole optimize call.
		result := buildHaversine(locations)
		result.Source = "api_fallback"
		metrics.RecordMatrixBuild("api_fallback", time.Since(start))
		return result
	}

	result := buildHaversine(locations)
	metrics.RecordMatrixBuild("haversine", time.Since(start))
	return result
}

func buildHaversine(locations []domain.Location) *Result {
	ids := make([]string, len(locations))
	for i, loc := range locations {
		ids[i] = loc.ID
	}

	dist := domain.NewMatrix(ids)
	for i, a := range locations {
		for j, b := range locations {
			if i == j {
				continue
			}
			dist.Values[i][j] = domain.HaversineKm(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
		}
	}
	dist.Sanitize()

	return &Result{Distance: dist, Time: nil, Source: "haversine"}
}

// ApplyTraffic scales every off-diagonal entry of m by factor, clamped
// to [domain.MinTrafficFactor, domain.MaxTrafficFactor] per spec.md §4.3,
// and returns a new matrix (the input is never mutated).
func ApplyTraffic(m *domain.Matrix, factor float64) *domain.Matrix {
	factor = domain.Clamp(factor, domain.MinTrafficFactor, domain.MaxTrafficFactor)

	out := m.Clone()
	n := out.Size()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			out.Values[i][j] = m.Values[i][j] * factor
		}
	}
	return out
}

// ToGraph converts m into a shortestpath.Graph over the same node IDs,
// used by the PathAnnotator to expand a route into road-network
// segments.
func ToGraph(m *domain.Matrix) (*shortestpath.Graph, error) {
	g := shortestpath.NewGraph()
	n := m.Size()
	for i := 0; i < n; i++ {
		g.AddNode(m.IDs[i])
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if err := g.AddEdge(m.IDs[i], m.IDs[j], m.Values[i][j]); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}
