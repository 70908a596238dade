package gwsutils

import (
	"testing"

	"github.com/guregu/null"
	"github.com/stretchr/testify/assert"
)

func TestParseMeasurement(t *testing.T) {
	testCases := []struct {
		name    string
		raw     string
		want    null.Float
		wantErr bool
	}{
		{name: "integer", raw: "42", want: null.FloatFrom(42)},
		{name: "decimal", raw: "22.5", want: null.FloatFrom(22.5)},
		{name: "negative with spaces", raw: "  -3.25 ", want: null.FloatFrom(-3.25)},
		{name: "exponent", raw: "1e2", want: null.FloatFrom(100)},
		{name: "empty", raw: "", want: null.Float{}},
		{name: "blank", raw: "   ", want: null.Float{}},
		{name: "nan", raw: "NaN", want: null.Float{}},
		{name: "garbage", raw: "bad", wantErr: true},
		{name: "decimal comma", raw: "22,5", wantErr: true},
		{name: "infinity", raw: "Inf", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseMeasurement(tc.raw)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrNotNumeric)
				assert.False(t, got.Valid)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormatMeasurement(t *testing.T) {
	assert.Equal(t, "22.5", FormatMeasurement(null.FloatFrom(22.5)))
	assert.Equal(t, "100", FormatMeasurement(null.FloatFrom(100)))
	assert.Equal(t, "", FormatMeasurement(null.Float{}))
}
