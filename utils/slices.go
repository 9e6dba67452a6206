package utils

// FindIndex returns the position of item in slice, or -1.
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Without returns a copy of slice with the first occurrence of item removed.
func Without[T comparable](slice []T, item T) []T {
	i := FindIndex(slice, item)
	out := make([]T, 0, len(slice))
	out = append(out, slice[:max(i, 0)]...)
	if i >= 0 {
		return append(out, slice[i+1:]...)
	}
	return append(out, slice...)
}
