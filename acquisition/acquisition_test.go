package acquisition

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUCBPicksHighestMeanWhenVarianceEqual(t *testing.T) {
	means := []float64{1, 5, 3}
	variances := []float64{0.1, 0.1, 0.1}

	idx, err := UCB(means, variances, 2.0)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestUCBExplorationFavorsUncertainty(t *testing.T) {
	// Equal means, candidate 2 has much higher variance: a high beta must
	// favor it.
	means := []float64{5, 5}
	variances := []float64{0.0, 4.0}

	idx, err := UCB(means, variances, 3.0)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestUCBTiesBreakByLowestIndex(t *testing.T) {
	means := []float64{2, 2, 2}
	variances := []float64{0, 0, 0}

	idx, err := UCB(means, variances, 1.0)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestUCBEmptyInput(t *testing.T) {
	_, err := UCB(nil, nil, 1.0)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestUCBLengthMismatch(t *testing.T) {
	_, err := UCB([]float64{1, 2}, []float64{0.1}, 1.0)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestSelectBestExpectedImprovementFavorsBestSoFarBeater(t *testing.T) {
	means := []float64{0.2, 0.9}
	variances := []float64{0.05, 0.05}
	params := Params{BestSoFar: 0.5, Xi: 0.01}

	idx, err := SelectBest(ExpectedImprovementStrategy, means, variances, params)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestSelectBestProbabilityOfImprovement(t *testing.T) {
	means := []float64{0.2, 0.9}
	variances := []float64{0.05, 0.05}
	params := Params{BestSoFar: 0.5, Xi: 0.01}

	idx, err := SelectBest(ProbabilityOfImprovementStrategy, means, variances, params)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestSelectBestThompsonSamplingIsDeterministicForSeededRand(t *testing.T) {
	means := []float64{0.5, 0.5}
	variances := []float64{0.2, 0.2}

	p1 := Params{Rand: rand.New(rand.NewSource(42))}
	p2 := Params{Rand: rand.New(rand.NewSource(42))}

	idx1, err := SelectBest(ThompsonSamplingStrategy, means, variances, p1)
	require.NoError(t, err)
	idx2, err := SelectBest(ThompsonSamplingStrategy, means, variances, p2)
	require.NoError(t, err)
	assert.Equal(t, idx1, idx2)
}

func TestCandidatesAreWithinUnitHypercube(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	candidates := Candidates(3, 50, rng)

	require.Len(t, candidates, 50)
	for _, c := range candidates {
		require.Len(t, c, 3)
		for _, v := range c {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestCandidatesAreDeterministicForSeededRand(t *testing.T) {
	c1 := Candidates(2, 10, rand.New(rand.NewSource(99)))
	c2 := Candidates(2, 10, rand.New(rand.NewSource(99)))
	assert.Equal(t, c1, c2)
}
