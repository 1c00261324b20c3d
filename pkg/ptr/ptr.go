// Package ptr contains small helpers for working with pointers to literals.
package ptr

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
