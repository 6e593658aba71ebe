// Package acquisition: sentinel error set.
package acquisition

import "errors"

var (
	// ErrEmptyInput is returned by any selection function given empty
	// parallel mean/variance slices.
	ErrEmptyInput = errors.New("acquisition: empty input")

	// ErrLengthMismatch is returned when means and variances have different
	// lengths.
	ErrLengthMismatch = errors.New("acquisition: means/variances length mismatch")
)
