package bo

import "math"

// DecodeBounded maps a normalized value u in [0,1] back to a raw
// bounded-continuous value: linear interpolation over [Min, Max], snapped to
// the nearest multiple of Step, then clamped to [Min, Max].
func DecodeBounded(u float64, cfg BoundedConfig) float64 {
	y := cfg.Min + u*(cfg.Max-cfg.Min)
	if cfg.Step > 0 {
		y = math.Round(y/cfg.Step) * cfg.Step
	}
	return clampf(y, cfg.Min, cfg.Max)
}

// DecodeUnbounded maps a normalized value u in [0,1] back to a raw
// unbounded-continuous value, recomputing the same envelope as
// EncodeUnbounded but without including a new value (history only), rounded
// to two decimal places. If history is empty it returns def (when provided)
// or 0.
func DecodeUnbounded(u float64, history []float64, padding float64, def *float64) float64 {
	if len(history) == 0 {
		if def != nil {
			return *def
		}
		return 0
	}
	lo, hi := unboundedEnvelope(history, padding)
	return math.Round((lo+u*(hi-lo))*100) / 100
}

// DecodeOrdinal maps a normalized value u in [0,1] back to the nearest
// option by index.
func DecodeOrdinal(u float64, options []string) string {
	if len(options) == 0 {
		return ""
	}
	idx := int(math.Round(u * float64(len(options)-1)))
	if idx < 0 {
		idx = 0
	}
	if idx > len(options)-1 {
		idx = len(options) - 1
	}
	return options[idx]
}

// DecodeRating maps a normalized mean r in [0,1] back to a 1-10 rating
// scale: 9r+1.
func DecodeRating(r float64) float64 {
	return 9*r + 1
}

// DecodeStdDev maps a normalized standard deviation sigma into rating
// units: 9*sigma.
func DecodeStdDev(sigma float64) float64 {
	return 9 * sigma
}
