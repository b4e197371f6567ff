package vrp

import "routeopt/internal/domain"

// lineLocations is a line of 4 equally spaced points on the equator:
// depot, a, b, c at longitudes 0, 10, 20, 30. lineMatrix gives the same
// four IDs distances of 0, 10, 20, 30 km along a line. Both are shared by
// every test file in this package that needs a small, hand-verifiable
// geometry.
func lineLocations() []domain.Location {
	return []domain.Location{
		{ID: "depot", IsDepot: true},
		{ID: "a", Latitude: 0, Longitude: 10},
		{ID: "b", Latitude: 0, Longitude: 20},
		{ID: "c", Latitude: 0, Longitude: 30},
	}
}

func lineMatrix() *domain.Matrix {
	ids := []string{"depot", "a", "b", "c"}
	positions := map[string]float64{"depot": 0, "a": 10, "b": 20, "c": 30}
	m := domain.NewMatrix(ids)
	for i, fromID := range ids {
		for j, toID := range ids {
			if i == j {
				continue
			}
			d := positions[toID] - positions[fromID]
			if d < 0 {
				d = -d
			}
			m.Values[i][j] = d
		}
	}
	return m
}
