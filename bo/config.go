package bo

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Config holds the tunable hyperparameters shared by every (bean, machine)
// optimizer the service manages. LengthScale, OutputScale and Noise are read
// on InitializeOptimizer and captured into the new State's
// GPHyperparameters; the other fields are read afresh by each call that uses
// them (UpdateWithRun, IsReady, SuggestParameters, GetPredictionCurve).
type Config struct {
	LengthScale       float64 `json:"lengthScale" yaml:"lengthScale"`
	OutputScale       float64 `json:"outputScale" yaml:"outputScale"`
	Noise             float64 `json:"noise" yaml:"noise"`
	ExplorationFactor float64 `json:"explorationFactor" yaml:"explorationFactor"`
	NumCandidates     int     `json:"numCandidates" yaml:"numCandidates"`
	UnboundedPadding  float64 `json:"unboundedPadding" yaml:"unboundedPadding"`
	MinObservations   int     `json:"minObservations" yaml:"minObservations"`
	MaxObservations   int     `json:"maxObservations" yaml:"maxObservations"`
}

// DefaultConfig returns the service's out-of-the-box hyperparameters,
// matching spec.md §4.4.6's configuration table.
func DefaultConfig() Config {
	return Config{
		LengthScale:       0.3,
		OutputScale:       1.0,
		Noise:             0.1,
		ExplorationFactor: 2.0,
		NumCandidates:     100,
		UnboundedPadding:  0.2,
		MinObservations:   5,
		MaxObservations:   100,
	}
}

// ConfigPatch carries a partial update: nil fields are left unchanged by
// Merge. Used by SetConfig to avoid forcing callers to resend the full
// Config on every tweak.
type ConfigPatch struct {
	LengthScale       *float64
	OutputScale       *float64
	Noise             *float64
	ExplorationFactor *float64
	NumCandidates     *int
	UnboundedPadding  *float64
	MinObservations   *int
	MaxObservations   *int
}

// Merge applies non-nil patch fields onto a copy of cfg and returns it.
func (p ConfigPatch) Merge(cfg Config) Config {
	if p.LengthScale != nil {
		cfg.LengthScale = *p.LengthScale
	}
	if p.OutputScale != nil {
		cfg.OutputScale = *p.OutputScale
	}
	if p.Noise != nil {
		cfg.Noise = *p.Noise
	}
	if p.ExplorationFactor != nil {
		cfg.ExplorationFactor = *p.ExplorationFactor
	}
	if p.NumCandidates != nil {
		cfg.NumCandidates = *p.NumCandidates
	}
	if p.UnboundedPadding != nil {
		cfg.UnboundedPadding = *p.UnboundedPadding
	}
	if p.MinObservations != nil {
		cfg.MinObservations = *p.MinObservations
	}
	if p.MaxObservations != nil {
		cfg.MaxObservations = *p.MaxObservations
	}
	return cfg
}

const configSchemaJSON = `{
  "type": "object",
  "properties": {
    "lengthScale":       {"type": "number", "exclusiveMinimum": 0},
    "outputScale":       {"type": "number", "exclusiveMinimum": 0},
    "noise":             {"type": "number", "minimum": 0},
    "explorationFactor": {"type": "number", "minimum": 0},
    "numCandidates":     {"type": "integer", "minimum": 1},
    "unboundedPadding":  {"type": "number", "minimum": 0},
    "minObservations":   {"type": "integer", "minimum": 1},
    "maxObservations":   {"type": "integer", "minimum": 1}
  },
  "required": ["lengthScale", "outputScale", "noise", "explorationFactor", "numCandidates", "unboundedPadding", "minObservations", "maxObservations"]
}`

var configSchema = gojsonschema.NewStringLoader(configSchemaJSON)

// Validate checks cfg against the JSON schema governing acceptable
// hyperparameter ranges, returning ErrInvalidInput wrapping every violation
// found.
func (c Config) Validate() error {
	result, err := gojsonschema.Validate(configSchema, gojsonschema.NewGoLoader(c))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !result.Valid() {
		msg := ""
		for i, e := range result.Errors() {
			if i > 0 {
				msg += "; "
			}
			msg += e.String()
		}
		return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
	}
	return nil
}

// Snapshot renders cfg as YAML, used by the service for human-readable
// config dumps alongside its JSON durable representation.
func (c Config) Snapshot() ([]byte, error) {
	return yaml.Marshal(c)
}
