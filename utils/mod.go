package utils

// FindIndex returns the position of the first occurrence of item, -1 if absent.
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// AppendUnique appends item unless the slice already holds it.
func AppendUnique[T comparable](slice []T, item T) []T {
	if FindIndex(slice, item) >= 0 {
		return slice
	}
	return append(slice, item)
}

// Remove deletes the first occurrence of item in place, keeping the order of the rest.
func Remove[T comparable](slice []T, item T) []T {
	i := FindIndex(slice, item)
	if i < 0 {
		return slice
	}
	return append(slice[:i], slice[i+1:]...)
}
