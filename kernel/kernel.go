// Package kernel implements the pairwise similarity function used by the
// Gaussian Process surrogate: the isotropic squared-exponential (RBF) kernel
// over vectors in the unit hypercube.
//
// Mathematical formula:
//
//	k(x, y) = σ² · exp(-½ · ‖x - y‖² / ℓ²)
//
// with σ² the output scale and ℓ the length scale. Distances are computed in
// native float64; no SIMD or numerical-stability tricks are required at the
// dimensions this package is used at (D ≲ 8).
package kernel

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Kernel computes a similarity value between two equal-length vectors.
type Kernel interface {
	// Evaluate returns k(x, y). ErrDimensionMismatch if len(x) != len(y).
	Evaluate(x, y []float64) (float64, error)
}

// RBF is the isotropic squared-exponential kernel.
type RBF struct {
	// OutputScale is σ², the kernel's marginal variance.
	OutputScale float64

	// LengthScale is ℓ, controlling how quickly similarity decays with
	// distance. Smaller values make the kernel more local.
	LengthScale float64
}

// Evaluate computes k(x, y) = σ²·exp(-‖x-y‖²/(2ℓ²)).
func (k RBF) Evaluate(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, ErrDimensionMismatch
	}

	var sqDist float64
	for i := range x {
		d := x[i] - y[i]
		sqDist += d * d
	}

	l := k.LengthScale
	if l == 0 {
		l = 1
	}

	return k.OutputScale * math.Exp(-0.5*sqDist/(l*l)), nil
}

// Matrix builds the dense N×N Gram matrix K[i][j] = k(X[i], X[j]) as a
// symmetric matrix, suitable for Cholesky factorization by the gp package.
func Matrix(k Kernel, X [][]float64) (*mat.SymDense, error) {
	n := len(X)
	if n == 0 {
		return nil, ErrEmptyInput
	}

	K := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v, err := k.Evaluate(X[i], X[j])
			if err != nil {
				return nil, err
			}
			K.SetSym(i, j, v)
		}
	}
	return K, nil
}

// Vector builds k(x, X[0]), ..., k(x, X[n-1]) — the covariance between a
// single test point and every training point.
func Vector(k Kernel, x []float64, X [][]float64) ([]float64, error) {
	if len(X) == 0 {
		return nil, ErrEmptyInput
	}

	out := make([]float64, len(X))
	for i := range X {
		v, err := k.Evaluate(x, X[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
