package bo

import "golang.org/x/exp/constraints"

// clampf restricts v to [lo, hi].
func clampf[T constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
