package bo

import (
	"encoding/json"
	"fmt"
)

// ParamKind identifies which variant of ParamValue a value holds, and which
// parameter-schema configuration applies to it.
type ParamKind int

const (
	// KindBoundedContinuous is a real-valued parameter with a declared
	// [min, max] interval and quantization step.
	KindBoundedContinuous ParamKind = iota
	// KindUnboundedContinuous is a real-valued parameter whose encoding
	// range is derived from the pair's own history plus padding.
	KindUnboundedContinuous
	// KindOrdinal is a parameter drawn from a short ordered list of
	// strings, encoded by index.
	KindOrdinal
	// KindFreeText is opaque, untyped text; it never enters the GP.
	KindFreeText
)

// String renders the kind using the same names as its JSON encoding.
func (k ParamKind) String() string {
	switch k {
	case KindBoundedContinuous:
		return "bounded"
	case KindUnboundedContinuous:
		return "unbounded"
	case KindOrdinal:
		return "ordinal"
	case KindFreeText:
		return "freetext"
	default:
		return "unknown"
	}
}

func paramKindFromString(s string) (ParamKind, error) {
	switch s {
	case "bounded":
		return KindBoundedContinuous, nil
	case "unbounded":
		return KindUnboundedContinuous, nil
	case "ordinal":
		return KindOrdinal, nil
	case "freetext":
		return KindFreeText, nil
	default:
		return 0, fmt.Errorf("bo: unknown param kind %q", s)
	}
}

// MarshalJSON renders the kind as its lowercase name, matching the
// self-describing record schema mandated by spec.md §6.
func (k ParamKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON parses the kind from its lowercase name.
func (k *ParamKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := paramKindFromString(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParamValue is a tagged variant over the four parameter kinds (per spec.md
// §9's "introduce a tagged-variant ParamValue" design note), replacing the
// source's implicit dynamic typing of parameter values. The zero value is a
// bounded-continuous 0.
type ParamValue struct {
	kind   ParamKind
	number float64
	text   string
}

// NewBoundedValue constructs a bounded-continuous ParamValue.
func NewBoundedValue(v float64) ParamValue {
	return ParamValue{kind: KindBoundedContinuous, number: v}
}

// NewUnboundedValue constructs an unbounded-continuous ParamValue.
func NewUnboundedValue(v float64) ParamValue {
	return ParamValue{kind: KindUnboundedContinuous, number: v}
}

// NewOrdinalValue constructs an ordinal ParamValue holding one of the
// parameter's declared options.
func NewOrdinalValue(option string) ParamValue {
	return ParamValue{kind: KindOrdinal, text: option}
}

// NewFreeTextValue constructs a free-text ParamValue.
func NewFreeTextValue(s string) ParamValue {
	return ParamValue{kind: KindFreeText, text: s}
}

// Kind reports which variant this value holds.
func (p ParamValue) Kind() ParamKind {
	return p.kind
}

// Number returns the numeric payload and true for bounded/unbounded values;
// (0, false) otherwise.
func (p ParamValue) Number() (float64, bool) {
	switch p.kind {
	case KindBoundedContinuous, KindUnboundedContinuous:
		return p.number, true
	default:
		return 0, false
	}
}

// Text returns the string payload and true for ordinal/free-text values;
// ("", false) otherwise.
func (p ParamValue) Text() (string, bool) {
	switch p.kind {
	case KindOrdinal, KindFreeText:
		return p.text, true
	default:
		return "", false
	}
}

type paramValueJSON struct {
	Kind   ParamKind `json:"kind"`
	Number float64   `json:"number,omitempty"`
	Text   string    `json:"text,omitempty"`
}

// MarshalJSON renders the value self-describingly: {"kind": "...", "number"|"text": ...}.
func (p ParamValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(paramValueJSON{Kind: p.kind, Number: p.number, Text: p.text})
}

// UnmarshalJSON parses a self-describing ParamValue record.
func (p *ParamValue) UnmarshalJSON(data []byte) error {
	var raw paramValueJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.kind = raw.Kind
	p.number = raw.Number
	p.text = raw.Text
	return nil
}
