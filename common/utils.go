// Package common holds small math and utility helpers shared by the viewer packages.
package common

// Coalesce returns the first argument that is not the zero value of T.
// Used to fill unset configuration fields with their defaults.
//
// Parameters:
//   - values: candidate values in priority order
//
// Returns:
//   - T: the first non-zero value, or the zero value if every candidate is zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
