// Package gp implements Gaussian Process regression over a fixed kernel,
// used as the surrogate model of "rating given normalized brew parameters".
//
// Fit caches a factorized kernel matrix so that repeated predictions (one
// per UCB candidate, or one per sample along a prediction curve) don't
// refactor the matrix. The regressor is not safe for concurrent use; callers
// that share a Regressor across goroutines must serialize access themselves
// (the bo package does this with a per-state-key mutex).
package gp

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/Linskii/coffee-tracker/kernel"
)

// jitter is added to the kernel matrix diagonal on the single retry after an
// initial Cholesky factorization fails the positive-definite test.
const jitter = 1e-2

// Regressor is a Gaussian Process regressor with a fixed kernel and
// observation noise. It caches the factorized kernel matrix's inverse and
// alpha = K⁻¹y after a successful Fit so that Predict is O(N²) per test point
// instead of O(N³).
type Regressor struct {
	kernel kernel.Kernel
	noise  float64

	x     [][]float64
	kInv  *mat.SymDense
	alpha *mat.VecDense
}

// New creates a Regressor using k as the covariance kernel and noise as the
// GP's observation-noise hyperparameter (added to the kernel matrix
// diagonal during Fit).
func New(k kernel.Kernel, noise float64) *Regressor {
	return &Regressor{kernel: k, noise: noise}
}

// Fit stores the training inputs X (N×D) and targets y (length N), builds
// the kernel matrix K, adds the observation noise to its diagonal, and
// factorizes K = LLᵀ via Cholesky decomposition.
//
// If the factorization fails the positive-definite test, jitter (1e-2) is
// added to the diagonal and factorization is retried exactly once; a second
// failure returns ErrNumerical. On success, Fit caches K⁻¹ and
// alpha = K⁻¹y so Predict never refactors the matrix.
//
// Fit rejects an empty training set or a length mismatch between X and y
// with ErrInvalidInput.
func (r *Regressor) Fit(X [][]float64, y []float64) error {
	n := len(X)
	if n == 0 || n != len(y) {
		return ErrInvalidInput
	}

	K, err := kernel.Matrix(r.kernel, X)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		K.SetSym(i, i, K.At(i, i)+r.noise)
	}

	var chol mat.Cholesky
	ok := chol.Factorize(K)
	if !ok {
		for i := 0; i < n; i++ {
			K.SetSym(i, i, K.At(i, i)+jitter)
		}
		ok = chol.Factorize(K)
		if !ok {
			return ErrNumerical
		}
	}

	var kInv mat.SymDense
	if err := chol.InverseTo(&kInv); err != nil {
		return ErrNumerical
	}

	yVec := mat.NewVecDense(n, append([]float64(nil), y...))
	alpha := mat.NewVecDense(n, nil)
	alpha.MulVec(&kInv, yVec)

	r.x = make([][]float64, n)
	for i := range X {
		r.x[i] = append([]float64(nil), X[i]...)
	}
	r.kInv = &kInv
	r.alpha = alpha

	return nil
}

// Predict returns the posterior mean and variance at each row of Xstar.
// For a test point x*, mean = k(x*,X)·α and variance = k(x*,x*) - k(x*,X)·K⁻¹·k(x*,X)ᵀ,
// clamped to be non-negative.
//
// Predict requires a prior successful Fit; calling it beforehand returns
// ErrNotFitted.
func (r *Regressor) Predict(Xstar [][]float64) (mean, variance []float64, err error) {
	if r.kInv == nil || r.alpha == nil {
		return nil, nil, ErrNotFitted
	}

	mean = make([]float64, len(Xstar))
	variance = make([]float64, len(Xstar))

	n := len(r.x)
	for i, xs := range Xstar {
		kStar, err := kernel.Vector(r.kernel, xs, r.x)
		if err != nil {
			return nil, nil, err
		}
		kStarVec := mat.NewVecDense(n, kStar)

		mean[i] = mat.Dot(kStarVec, r.alpha)

		v := mat.NewVecDense(n, nil)
		v.MulVec(r.kInv, kStarVec)

		kxx, err := r.kernel.Evaluate(xs, xs)
		if err != nil {
			return nil, nil, err
		}

		variance[i] = math.Max(0, kxx-mat.Dot(kStarVec, v))
	}

	return mean, variance, nil
}

// Fitted reports whether Fit has completed successfully at least once.
func (r *Regressor) Fitted() bool {
	return r.kInv != nil && r.alpha != nil
}
