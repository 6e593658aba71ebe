package gp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Linskii/coffee-tracker/kernel"
)

func rbf() kernel.RBF {
	return kernel.RBF{OutputScale: 1.0, LengthScale: 0.3}
}

func TestPredictBeforeFit(t *testing.T) {
	r := New(rbf(), 0.1)
	_, _, err := r.Predict([][]float64{{0.5}})
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestFitRejectsEmptyTrainingSet(t *testing.T) {
	r := New(rbf(), 0.1)
	err := r.Fit(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFitRejectsLengthMismatch(t *testing.T) {
	r := New(rbf(), 0.1)
	err := r.Fit([][]float64{{0}, {1}}, []float64{0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFitAndPredictRecoversTrainingPoints(t *testing.T) {
	r := New(rbf(), 1e-6)
	X := [][]float64{{0.0}, {0.25}, {0.5}, {0.75}, {1.0}}
	y := []float64{0.1, 0.3, 0.6, 0.8, 0.5}

	require.NoError(t, r.Fit(X, y))
	assert.True(t, r.Fitted())

	mean, variance, err := r.Predict(X)
	require.NoError(t, err)
	require.Len(t, mean, len(X))
	require.Len(t, variance, len(X))

	for i := range X {
		assert.InDelta(t, y[i], mean[i], 0.05)
		assert.GreaterOrEqual(t, variance[i], 0.0)
	}
}

func TestPredictVarianceIsNeverNegative(t *testing.T) {
	r := New(rbf(), 1e-6)
	X := [][]float64{{0.1}, {0.1}, {0.9}}
	y := []float64{5, 5, 5}
	require.NoError(t, r.Fit(X, y))

	candidates := [][]float64{{0.0}, {0.1}, {0.5}, {0.9}, {1.0}}
	_, variance, err := r.Predict(candidates)
	require.NoError(t, err)
	for _, v := range variance {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestFitHandlesDuplicateInputsViaJitter(t *testing.T) {
	// Identical rows drive the kernel matrix toward singularity; the jitter
	// retry inside Fit must still recover a usable factorization.
	r := New(kernel.RBF{OutputScale: 1.0, LengthScale: 0.3}, 0)
	X := [][]float64{{0.5}, {0.5}, {0.5}}
	y := []float64{7, 7, 7}

	err := r.Fit(X, y)
	require.NoError(t, err)

	mean, variance, err := r.Predict([][]float64{{0.5}})
	require.NoError(t, err)
	assert.InDelta(t, 7.0, mean[0], 0.5)
	assert.False(t, math.IsNaN(variance[0]))
}

func TestFitSingleObservation(t *testing.T) {
	r := New(rbf(), 0.1)
	require.NoError(t, r.Fit([][]float64{{0.4}}, []float64{0.6}))

	mean, variance, err := r.Predict([][]float64{{0.4}, {0.9}})
	require.NoError(t, err)

	assert.InDelta(t, 0.6, mean[0], 0.15)
	assert.Less(t, variance[0], variance[1])
}

func TestPredictDimensionMismatchPropagates(t *testing.T) {
	r := New(rbf(), 0.1)
	require.NoError(t, r.Fit([][]float64{{0.1, 0.2}}, []float64{1}))

	_, _, err := r.Predict([][]float64{{0.1}})
	assert.ErrorIs(t, err, kernel.ErrDimensionMismatch)
}
