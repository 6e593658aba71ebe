package bo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParameterSchemaValidateBounded(t *testing.T) {
	valid := ParameterSchema{ID: "g", Kind: KindBoundedContinuous, Bounded: BoundedConfig{Min: 0, Max: 10, Step: 1}}
	assert.NoError(t, valid.Validate())

	invalidRange := ParameterSchema{ID: "g", Kind: KindBoundedContinuous, Bounded: BoundedConfig{Min: 10, Max: 0, Step: 1}}
	assert.ErrorIs(t, invalidRange.Validate(), ErrInvalidInput)

	invalidStep := ParameterSchema{ID: "g", Kind: KindBoundedContinuous, Bounded: BoundedConfig{Min: 0, Max: 10, Step: 0}}
	assert.ErrorIs(t, invalidStep.Validate(), ErrInvalidInput)
}

func TestParameterSchemaValidateOrdinal(t *testing.T) {
	valid := ParameterSchema{ID: "grind", Kind: KindOrdinal, Ordinal: OrdinalConfig{Options: []string{"Fine"}}}
	assert.NoError(t, valid.Validate())

	empty := ParameterSchema{ID: "grind", Kind: KindOrdinal, Ordinal: OrdinalConfig{}}
	assert.ErrorIs(t, empty.Validate(), ErrInvalidInput)
}

func TestParameterSchemaValidateRejectsEmptyID(t *testing.T) {
	p := ParameterSchema{ID: "", Kind: KindFreeText}
	assert.ErrorIs(t, p.Validate(), ErrInvalidInput)
}

func TestMachineSchemaValidateDetectsDuplicateIDs(t *testing.T) {
	m := MachineSchema{ID: "m1", Parameters: []ParameterSchema{
		{ID: "g", Kind: KindFreeText},
		{ID: "g", Kind: KindFreeText},
	}}
	assert.ErrorIs(t, m.Validate(), ErrInvalidInput)
}

func TestMachineSchemaOptimizableExcludesFreeText(t *testing.T) {
	m := MachineSchema{ID: "m1", Parameters: []ParameterSchema{
		{ID: "g", Kind: KindBoundedContinuous, Bounded: BoundedConfig{Min: 0, Max: 10, Step: 1}},
		{ID: "notes", Kind: KindFreeText},
		{ID: "t", Kind: KindUnboundedContinuous},
	}}
	opt := m.Optimizable()
	assert.Len(t, opt, 2)
	assert.Equal(t, "g", opt[0].ID)
	assert.Equal(t, "t", opt[1].ID)
}
