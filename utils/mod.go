package utils

import "golang.org/x/exp/rand"

// Sign compares two numbers: 0 if equal, 1 if a > b, -1 if a < b.
func Sign(a, b int) int {
	switch {
	case a == b:
		return 0
	case a > b:
		return 1
	default:
		return -1
	}
}

// Shuffle permutes the slice in place (Fisher-Yates).
func Shuffle[T any](r *rand.Rand, slice []T) []T {
	for i := len(slice) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		slice[i], slice[j] = slice[j], slice[i]
	}
	return slice
}
