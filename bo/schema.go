package bo

import "fmt"

// BoundedConfig configures a bounded-continuous parameter: a closed interval
// [Min, Max] quantized to multiples of Step. Min must be strictly less than
// Max and Step must be positive.
type BoundedConfig struct {
	Min     float64  `json:"min" yaml:"min"`
	Max     float64  `json:"max" yaml:"max"`
	Step    float64  `json:"step" yaml:"step"`
	Default *float64 `json:"default,omitempty" yaml:"default,omitempty"`
}

// UnboundedConfig configures an unbounded-continuous parameter: no declared
// range, only an optional default used when no history exists yet.
type UnboundedConfig struct {
	Default *float64 `json:"default,omitempty" yaml:"default,omitempty"`
}

// OrdinalConfig configures an ordinal parameter: an ordered, non-empty list
// of option strings encoded by index.
type OrdinalConfig struct {
	Options []string `json:"options" yaml:"options"`
	Default *string  `json:"default,omitempty" yaml:"default,omitempty"`
}

// FreeTextConfig configures a free-text parameter, which is opaque to the
// model.
type FreeTextConfig struct {
	Default *string `json:"default,omitempty" yaml:"default,omitempty"`
}

// ParameterSchema describes one machine parameter: a stable id, a display
// name, its kind, and the kind-specific configuration. Only the config block
// matching Kind is meaningful.
type ParameterSchema struct {
	ID       string          `json:"id" yaml:"id"`
	Name     string          `json:"name" yaml:"name"`
	Kind     ParamKind       `json:"kind" yaml:"kind"`
	Bounded  BoundedConfig   `json:"bounded,omitempty" yaml:"bounded,omitempty"`
	Unbound  UnboundedConfig `json:"unbounded,omitempty" yaml:"unbounded,omitempty"`
	Ordinal  OrdinalConfig   `json:"ordinal,omitempty" yaml:"ordinal,omitempty"`
	FreeText FreeTextConfig  `json:"freeText,omitempty" yaml:"freeText,omitempty"`
}

// Validate checks the kind-specific invariants from spec.md §3.
func (p ParameterSchema) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: parameter id must not be empty", ErrInvalidInput)
	}
	switch p.Kind {
	case KindBoundedContinuous:
		if !(p.Bounded.Min < p.Bounded.Max) {
			return fmt.Errorf("%w: parameter %q: min must be < max", ErrInvalidInput, p.ID)
		}
		if p.Bounded.Step <= 0 {
			return fmt.Errorf("%w: parameter %q: step must be > 0", ErrInvalidInput, p.ID)
		}
	case KindOrdinal:
		if len(p.Ordinal.Options) < 1 {
			return fmt.Errorf("%w: parameter %q: ordinal requires at least one option", ErrInvalidInput, p.ID)
		}
	case KindUnboundedContinuous, KindFreeText:
		// No structural constraints beyond an optional default.
	default:
		return fmt.Errorf("%w: parameter %q: unknown kind", ErrInvalidInput, p.ID)
	}
	return nil
}

// MachineSchema is the ordered set of parameters a brewing machine exposes.
type MachineSchema struct {
	ID         string            `json:"id" yaml:"id"`
	Parameters []ParameterSchema `json:"parameters" yaml:"parameters"`
}

// Validate checks that parameter ids are unique and each parameter schema is
// individually valid.
func (m MachineSchema) Validate() error {
	seen := make(map[string]struct{}, len(m.Parameters))
	for _, p := range m.Parameters {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate parameter id %q", ErrInvalidInput, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

// Optimizable returns the subset of Parameters whose kind is not free-text,
// preserving declared order. This order defines the GP input dimension
// mapping and must stay stable across a BO state's lifetime (spec.md §3
// invariant 1).
func (m MachineSchema) Optimizable() []ParameterSchema {
	out := make([]ParameterSchema, 0, len(m.Parameters))
	for _, p := range m.Parameters {
		if p.Kind != KindFreeText {
			out = append(out, p)
		}
	}
	return out
}
