package vrp

// matrixMeasure adapts a precomputed domain.Matrix (already built by
// the distancematrix package's provider/cache lookup) to
// github.com/nextmv-io/sdk/measure's ByIndex interface, so the router
// costs its moves against C2's matrix instead of recomputing distances
// with one of the package's own Haversine/OSRM measures.
type matrixMeasure struct {
	values [][]float64
}

// Cost returns the arc cost between two stop indices, satisfying
// measure.ByIndex.
func (m matrixMeasure) Cost(from, to int) float64 {
	return m.values[from][to]
}
