// Package gp: sentinel error set.
//
// Callers MUST use errors.Is to branch on semantics. Validation failures
// never panic; the only panics this package could surface are gonum's own,
// which are reserved for programmer error (e.g. malformed matrix shapes we
// construct ourselves), not caller input.
package gp

import "errors"

var (
	// ErrInvalidInput is returned by Fit for an empty training set or
	// mismatched |X| != |y|.
	ErrInvalidInput = errors.New("gp: invalid input")

	// ErrNotFitted is returned by Predict when called before a successful
	// Fit.
	ErrNotFitted = errors.New("gp: not fitted")

	// ErrNumerical is returned by Fit when the kernel matrix fails Cholesky
	// factorization even after the single jitter retry.
	ErrNumerical = errors.New("gp: numerical instability")
)
