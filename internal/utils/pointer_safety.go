package utils

// NonZeroPtr is nil for the zero value, so optional JSON fields encode as null
func NonZeroPtr[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}
