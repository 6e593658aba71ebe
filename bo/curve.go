package bo

import (
	"context"
	"math"

	"go.uber.org/zap"
)

// CurveOptions configures GetPredictionCurve. FixedValues supplies raw
// values for every optimizable parameter other than ParamID; parameters
// left unset fall back to their schema default, or the midpoint of their
// normalized range if no default is declared.
type CurveOptions struct {
	ParamID     string
	NumPoints   int
	FixedValues map[string]ParamValue
}

// PredictionCurve is the GP's posterior mean and ±1σ band along one
// parameter's axis, with the other parameters held fixed.
type PredictionCurve struct {
	ParamID      string    `json:"paramId"`
	X            []float64 `json:"x"`
	Mean         []float64 `json:"mean"`
	UpperBound   []float64 `json:"upperBound"`
	LowerBound   []float64 `json:"lowerBound"`
	ValidIndices []int     `json:"validIndices,omitempty"`
}

// encodeRawValue encodes v for parameter p, using observations as the
// unbounded-continuous rescaling history.
func encodeRawValue(p ParameterSchema, v ParamValue, observations []Observation, padding float64) float64 {
	switch p.Kind {
	case KindBoundedContinuous:
		n, _ := v.Number()
		return EncodeBounded(n, p.Bounded)
	case KindUnboundedContinuous:
		n, _ := v.Number()
		return EncodeUnbounded(n, collectHistory(observations, p.ID), padding)
	case KindOrdinal:
		t, _ := v.Text()
		return EncodeOrdinal(t, p.Ordinal.Options)
	default:
		return 0.5
	}
}

// defaultEncodedValue returns the encoded fixed-axis value for p when the
// caller supplied none: its declared default if present, otherwise the
// midpoint 0.5 of the normalized range.
func defaultEncodedValue(p ParameterSchema, observations []Observation, padding float64) float64 {
	switch p.Kind {
	case KindBoundedContinuous:
		if p.Bounded.Default != nil {
			return EncodeBounded(*p.Bounded.Default, p.Bounded)
		}
	case KindUnboundedContinuous:
		if p.Unbound.Default != nil {
			return EncodeUnbounded(*p.Unbound.Default, collectHistory(observations, p.ID), padding)
		}
	case KindOrdinal:
		if p.Ordinal.Default != nil {
			return EncodeOrdinal(*p.Ordinal.Default, p.Ordinal.Options)
		}
	}
	return 0.5
}

// GetPredictionCurve samples the GP posterior along opts.ParamID's
// normalized axis, holding every other optimizable parameter fixed. It
// returns nil on any internal failure, following the same read-side
// tolerance as SuggestParameters.
func (s *Service) GetPredictionCurve(ctx context.Context, beanID, machineID string, opts CurveOptions) *PredictionCurve {
	key := stateKey(beanID, machineID)
	lock := s.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	state, err := s.store.GetState(ctx, key)
	if err != nil || state == nil || len(state.Observations) == 0 {
		if err != nil {
			s.logger.Warn("curve: loading state failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}

	targetIdx := -1
	for i, p := range state.ParameterMetadata {
		if p.ID == opts.ParamID {
			targetIdx = i
			break
		}
	}
	if targetIdx < 0 {
		return nil
	}
	target := state.ParameterMetadata[targetIdx]

	s.mu.Lock()
	padding := s.config.UnboundedPadding
	s.mu.Unlock()

	regressor, err := fitRegressor(state)
	if err != nil {
		s.logger.Warn("curve: fit failed", zap.String("key", key), zap.Error(err))
		return nil
	}

	n := opts.NumPoints
	if n < 2 {
		n = 2
	}

	base := make([]float64, len(state.ParameterMetadata))
	for i, p := range state.ParameterMetadata {
		if i == targetIdx {
			continue
		}
		if v, ok := opts.FixedValues[p.ID]; ok {
			base[i] = encodeRawValue(p, v, state.Observations, padding)
		} else {
			base[i] = defaultEncodedValue(p, state.Observations, padding)
		}
	}

	points := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := append([]float64(nil), base...)
		row[targetIdx] = float64(i) / float64(n-1)
		points[i] = row
	}

	means, variances, err := regressor.Predict(points)
	if err != nil {
		s.logger.Warn("curve: predict failed", zap.String("key", key), zap.Error(err))
		return nil
	}

	curve := &PredictionCurve{
		ParamID:    opts.ParamID,
		X:          make([]float64, n),
		Mean:       make([]float64, n),
		UpperBound: make([]float64, n),
		LowerBound: make([]float64, n),
	}
	hist := collectHistory(state.Observations, target.ID)
	for i := 0; i < n; i++ {
		u := points[i][targetIdx]
		switch target.Kind {
		case KindBoundedContinuous:
			curve.X[i] = DecodeBounded(u, target.Bounded)
		case KindUnboundedContinuous:
			curve.X[i] = DecodeUnbounded(u, hist, padding, target.Unbound.Default)
		case KindOrdinal:
			curve.X[i] = u
		}
		sigma := sqrtNonNeg(variances[i])
		curve.Mean[i] = DecodeRating(means[i])
		curve.UpperBound[i] = DecodeRating(means[i] + sigma)
		curve.LowerBound[i] = DecodeRating(means[i] - sigma)
	}

	if target.Kind == KindOrdinal {
		curve.ValidIndices = nearestIndicesForOptions(points, targetIdx, len(target.Ordinal.Options))
	}
	return curve
}

// nearestIndicesForOptions finds, for each ordinal option, the sample index
// whose normalized target coordinate is closest to that option's encoding.
func nearestIndicesForOptions(points [][]float64, targetIdx, numOptions int) []int {
	if numOptions == 0 {
		return nil
	}
	out := make([]int, numOptions)
	for opt := 0; opt < numOptions; opt++ {
		want := float64(opt) / float64(maxInt(numOptions-1, 1))
		best, bestDist := 0, 2.0
		for i, row := range points {
			d := absF(row[targetIdx] - want)
			if d < bestDist {
				best, bestDist = i, d
			}
		}
		out[opt] = best
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func sqrtNonNeg(x float64) float64 {
	if x < 0 {
		x = 0
	}
	return math.Sqrt(x)
}
