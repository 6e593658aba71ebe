package bo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamValueNumberAndText(t *testing.T) {
	bounded := NewBoundedValue(4.5)
	n, ok := bounded.Number()
	assert.True(t, ok)
	assert.Equal(t, 4.5, n)
	_, ok = bounded.Text()
	assert.False(t, ok)

	ordinal := NewOrdinalValue("Medium")
	s, ok := ordinal.Text()
	assert.True(t, ok)
	assert.Equal(t, "Medium", s)
	_, ok = ordinal.Number()
	assert.False(t, ok)
}

func TestParamValueJSONRoundTrip(t *testing.T) {
	values := []ParamValue{
		NewBoundedValue(1.5),
		NewUnboundedValue(-3),
		NewOrdinalValue("Fine"),
		NewFreeTextValue("notes here"),
	}
	for _, v := range values {
		data, err := json.Marshal(v)
		require.NoError(t, err)

		var out ParamValue
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, v, out)
	}
}

func TestParamKindJSONRoundTrip(t *testing.T) {
	for _, k := range []ParamKind{KindBoundedContinuous, KindUnboundedContinuous, KindOrdinal, KindFreeText} {
		data, err := json.Marshal(k)
		require.NoError(t, err)

		var out ParamKind
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, k, out)
	}
}

func TestParamKindUnmarshalRejectsUnknown(t *testing.T) {
	var k ParamKind
	err := json.Unmarshal([]byte(`"bogus"`), &k)
	assert.Error(t, err)
}
