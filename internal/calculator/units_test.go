package calculator

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unitFactors = map[string]float64{
	"acres":             1,
	"sq mi":             640,
	"square miles":      640,
	"hectares":          2.47105,
	"sq km":             247.105,
	"square kilometers": 247.105,
	"sq ft":             1 / 43560.0,
	"square feet":       1 / 43560.0,
	"sqft":              1 / 43560.0,
	"sq m":              1 / 4046.86,
	"square meters":     1 / 4046.86,
	"square metres":     1 / 4046.86,
	"sq meter":          1 / 4046.86,
	"sq metre":          1 / 4046.86,
}

func TestToAcres(t *testing.T) {
	for unit, factor := range unitFactors {
		got, err := ToAcres(10, unit)
		require.NoError(t, err, unit)
		assert.InEpsilon(t, 10*factor, got, 1e-12, unit)
	}
}

func TestToAcresExact(t *testing.T) {
	got, err := ToAcres(5.2, "acres")
	require.NoError(t, err)
	assert.Equal(t, 5.2, got)

	got, err = ToAcres(1.0, "sq mi")
	require.NoError(t, err)
	assert.Equal(t, 640.0, got)

	got, err = ToAcres(43560, "SQ FT")
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, err = ToAcres(SquareMetresPerAcre, "Square Metres")
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}

func TestToAcresLinear(t *testing.T) {
	for unit := range unitFactors {
		for _, k := range []float64{0, 2, 10, 0.5} {
			base, err := ToAcres(3.3, unit)
			require.NoError(t, err)
			scaled, err := ToAcres(k*3.3, unit)
			require.NoError(t, err)
			assert.InDelta(t, k*base, scaled, 1e-9, "%s k=%v", unit, k)
		}
	}
}

func TestToAcresUnrecognized(t *testing.T) {
	for _, unit := range []string{"furlongs", "hectare", "acre", "sq  mi", "sq. mi", "", "acres "} {
		_, err := ToAcres(1, unit)
		require.Error(t, err, unit)
		assert.True(t, errors.Is(err, ErrUnrecognizedUnit), unit)
	}
}
