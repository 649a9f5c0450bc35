package utils

// Ptr returns a pointer to the provided value v. It is handy for populating
// optional (nullable) fields from literals or temporary values.
func Ptr[T any](v T) *T {
	return &v
}
