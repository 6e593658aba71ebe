package bo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidateRejectsNonPositiveLengthScale(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LengthScale = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidInput)
}

func TestConfigValidateRejectsZeroCandidates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumCandidates = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidInput)
}

func TestConfigPatchMergeOnlyTouchesSetFields(t *testing.T) {
	base := DefaultConfig()
	newBeta := 5.0
	patched := ConfigPatch{ExplorationFactor: &newBeta}.Merge(base)

	assert.Equal(t, 5.0, patched.ExplorationFactor)
	assert.Equal(t, base.LengthScale, patched.LengthScale)
	assert.Equal(t, base.NumCandidates, patched.NumCandidates)
}

func TestConfigSnapshotProducesYAML(t *testing.T) {
	data, err := DefaultConfig().Snapshot()
	require.NoError(t, err)
	assert.Contains(t, string(data), "lengthScale")
}
