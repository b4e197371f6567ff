package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"routeopt/internal/domain"
)

// CacheKind classifies a stored entry by what it would cost to
// regenerate, used to prioritize what survives eviction under memory
// pressure. Distance/time matrices fetched from a paid routing API are
// the most expensive to lose; a Haversine-derived matrix or a VRP solve
// result can be recomputed locally at the cost of CPU time.
type CacheKind int

const (
	KindOther CacheKind = iota
	KindSolveResult
	KindMatrixHaversine
	KindMatrixAPI
)

// KindOf classifies key by the prefix convention MatrixKey/SolveKey
// produce, so a generic Cache implementation can make domain-aware
// eviction and reporting decisions without parsing stored values.
func KindOf(key string) CacheKind {
	switch {
	case strings.HasPrefix(key, "matrix:api:"):
		return KindMatrixAPI
	case strings.HasPrefix(key, "matrix:"):
		return KindMatrixHaversine
	case strings.HasPrefix(key, "solve:"):
		return KindSolveResult
	default:
		return KindOther
	}
}

// MatrixKey builds the deterministic cache key for a distance/time
// matrix keyed on the sorted location IDs and their coordinates rounded
// to 5 decimal places, so a cache hit means the same IDs at the same
// coordinates to within that precision.
func MatrixKey(locations []domain.Location, useAPI bool) string {
	hash := LocationSetHash(locations)
	source := "haversine"
	if useAPI {
		source = "api"
	}
	return fmt.Sprintf("matrix:%s:%s", source, hash)
}

// LocationSetHash hashes a location set into a short deterministic
// digest, independent of input ordering.
func LocationSetHash(locations []domain.Location) string {
	data := locationsToCanonical(locations)
	return ShortHash(data)
}

func locationsToCanonical(locations []domain.Location) []byte {
	sorted := make([]domain.Location, len(locations))
	copy(sorted, locations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	var result []byte
	for _, loc := range sorted {
		result = append(result, []byte(fmt.Sprintf("l:%s:%.5f:%.5f;", loc.ID, loc.Latitude, loc.Longitude))...)
	}
	return result
}

// SolveKey builds the cache key for a full optimize result: the problem
// hash, which already incorporates locations, vehicles and deliveries.
func SolveKey(problemHash string) string {
	return fmt.Sprintf("solve:%s", problemHash)
}

// ProblemHash hashes the full optimize request (locations, vehicles,
// deliveries) into the deterministic key used to memoize Optimize calls.
func ProblemHash(locations []domain.Location, vehicles []domain.Vehicle, deliveries []domain.Delivery) string {
	var result []byte
	result = append(result, locationsToCanonical(locations)...)

	sortedVehicles := make([]domain.Vehicle, len(vehicles))
	copy(sortedVehicles, vehicles)
	sort.Slice(sortedVehicles, func(i, j int) bool { return sortedVehicles[i].ID < sortedVehicles[j].ID })
	for _, v := range sortedVehicles {
		result = append(result, []byte(fmt.Sprintf("v:%s:%d:%s:%s:%.6f;",
			v.ID, v.Capacity, v.StartLocationID, v.EndLocationID, v.CostPerDistanceUnit))...)
	}

	sortedDeliveries := make([]domain.Delivery, len(deliveries))
	copy(sortedDeliveries, deliveries)
	sort.Slice(sortedDeliveries, func(i, j int) bool { return sortedDeliveries[i].ID < sortedDeliveries[j].ID })
	for _, d := range sortedDeliveries {
		result = append(result, []byte(fmt.Sprintf("d:%s:%s:%d:%d;", d.ID, d.LocationID, d.Demand, d.Priority))...)
	}

	return ShortHash(result)
}

// QuickHash returns the full sha256 hex digest of data.
func QuickHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ShortHash returns a 16-byte-prefix sha256 hex digest, short enough to
// use as a cache key segment while remaining collision-safe in practice.
func ShortHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:16])
}
