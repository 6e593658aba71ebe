package bo

// EncodeBounded maps a bounded-continuous raw value into [0,1] by linear
// interpolation over [Min, Max]. Values outside the declared range are not
// clamped — the service does not clamp on encode (spec.md §4.4.1).
func EncodeBounded(v float64, cfg BoundedConfig) float64 {
	return (v - cfg.Min) / (cfg.Max - cfg.Min)
}

// unboundedEnvelope computes the [lo, hi] rescaling envelope for an
// unbounded-continuous parameter from the multiset of raw values s. When s
// spans a non-degenerate range, the envelope pads each side by
// (hi-lo)*padding; otherwise it falls back to the single value ± 1.
func unboundedEnvelope(s []float64, padding float64) (lo, hi float64) {
	lo, hi = s[0], s[0]
	for _, v := range s[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi > lo {
		pad := (hi - lo) * padding
		return lo - pad, hi + pad
	}
	return s[0] - 1, s[0] + 1
}

// EncodeUnbounded maps an unbounded-continuous raw value v into [0,1]. The
// envelope is recomputed on every call from history (the parameter's
// historical raw values from the pair's current observations) union {v} —
// it is never cached as a fixed scale (spec.md §4.4.1).
func EncodeUnbounded(v float64, history []float64, padding float64) float64 {
	lo, hi := unboundedEnvelope(append(append([]float64(nil), history...), v), padding)
	return (v - lo) / (hi - lo)
}

// EncodeOrdinal maps an ordinal raw value to [0,1] by its index among
// options. A single-option parameter always encodes to 0; an unknown option
// also encodes to 0 (spec.md §4.4.1).
func EncodeOrdinal(v string, options []string) float64 {
	if len(options) <= 1 {
		return 0
	}
	for i, opt := range options {
		if opt == v {
			return float64(i) / float64(len(options)-1)
		}
	}
	return 0
}

// EncodeRating maps an integer rating in [1,10] to a normalized value in
// [0,1]: (r-1)/9.
func EncodeRating(r int) float64 {
	return float64(r-1) / 9.0
}
