package domain

import "math"

// Matrix is a square n×n array of non-negative reals indexed by a fixed
// ordering of location IDs. A distance matrix (kilometers) and an
// optional time matrix (minutes) always travel together, sharing the
// same IDs ordering.
type Matrix struct {
	IDs    []string
	Values [][]float64
}

// NewMatrix allocates a zeroed n×n matrix for the given ID ordering.
func NewMatrix(ids []string) *Matrix {
	n := len(ids)
	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
	}
	return &Matrix{IDs: append([]string(nil), ids...), Values: values}
}

// Size returns the matrix's dimension.
func (m *Matrix) Size() int {
	return len(m.IDs)
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	values := make([][]float64, len(m.Values))
	for i, row := range m.Values {
		values[i] = append([]float64(nil), row...)
	}
	return &Matrix{IDs: append([]string(nil), m.IDs...), Values: values}
}

// IndexOf returns the row/column index of id, or -1 if not present.
func (m *Matrix) IndexOf(id string) int {
	for i, candidate := range m.IDs {
		if candidate == id {
			return i
		}
	}
	return -1
}

// Sanitize applies the four sanitization rules from spec.md §4.2 in
// place and returns the receiver for chaining:
//  1. non-finite entries become MaxSafeDistance
//  2. negative entries become 0 on the diagonal, MaxSafeDistance elsewhere
//  3. entries above MaxSafeDistance are clamped down to it
//  4. the diagonal is forced to 0
func (m *Matrix) Sanitize() *Matrix {
	n := m.Size()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := m.Values[i][j]

			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = MaxSafeDistance
			} else if v < 0 {
				if i == j {
					v = 0
				} else {
					v = MaxSafeDistance
				}
			} else if v > MaxSafeDistance {
				v = MaxSafeDistance
			}

			if i == j {
				v = 0
			}

			m.Values[i][j] = v
		}
	}
	return m
}
