package kernel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRBFEvaluateIdenticalPoints(t *testing.T) {
	k := RBF{OutputScale: 1.0, LengthScale: 0.3}

	v, err := k.Evaluate([]float64{0.2, 0.5}, []float64{0.2, 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-12)
}

func TestRBFEvaluateDecaysWithDistance(t *testing.T) {
	k := RBF{OutputScale: 1.0, LengthScale: 0.3}

	near, err := k.Evaluate([]float64{0, 0}, []float64{0.1, 0})
	require.NoError(t, err)

	far, err := k.Evaluate([]float64{0, 0}, []float64{0.9, 0})
	require.NoError(t, err)

	assert.Greater(t, near, far)
	assert.True(t, near <= 1.0 && near > 0)
	assert.True(t, far >= 0)
}

func TestRBFEvaluateDimensionMismatch(t *testing.T) {
	k := RBF{OutputScale: 1.0, LengthScale: 0.3}

	_, err := k.Evaluate([]float64{0, 0}, []float64{0})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestRBFEvaluateOutputScale(t *testing.T) {
	k := RBF{OutputScale: 4.0, LengthScale: 0.3}

	v, err := k.Evaluate([]float64{1}, []float64{1})
	require.NoError(t, err)
	assert.InDelta(t, 4.0, v, 1e-12)
}

func TestMatrixIsSymmetricAndDiagonalIsOutputScale(t *testing.T) {
	k := RBF{OutputScale: 2.0, LengthScale: 0.5}
	X := [][]float64{{0, 0}, {0.5, 0.5}, {1, 1}}

	K, err := Matrix(k, X)
	require.NoError(t, err)

	n, _ := K.Dims()
	require.Equal(t, 3, n)
	for i := 0; i < n; i++ {
		assert.InDelta(t, 2.0, K.At(i, i), 1e-12)
		for j := 0; j < n; j++ {
			assert.InDelta(t, K.At(i, j), K.At(j, i), 1e-12)
		}
	}
}

func TestMatrixEmptyInput(t *testing.T) {
	k := RBF{OutputScale: 1, LengthScale: 1}
	_, err := Matrix(k, nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestVector(t *testing.T) {
	k := RBF{OutputScale: 1.0, LengthScale: 0.3}
	X := [][]float64{{0, 0}, {1, 1}}

	v, err := Vector(k, []float64{0, 0}, X)
	require.NoError(t, err)
	require.Len(t, v, 2)
	assert.InDelta(t, 1.0, v[0], 1e-12)
	assert.True(t, v[1] < v[0])
}

func TestVectorEmptyInput(t *testing.T) {
	k := RBF{OutputScale: 1, LengthScale: 1}
	_, err := Vector(k, []float64{0}, nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestRBFZeroLengthScaleDefaultsToOne(t *testing.T) {
	k := RBF{OutputScale: 1.0, LengthScale: 0}
	v, err := k.Evaluate([]float64{0}, []float64{1})
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-0.5), v, 1e-12)
}
