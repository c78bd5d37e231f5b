package kml

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polygon-acreage/internal/models"
)

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.Ring
	}{
		{"lon lat pairs", "1,2 3,4", models.Ring{{X: 1, Y: 2}, {X: 3, Y: 4}}},
		{"altitude ignored", "-122.08,37.42,0 -122.09,37.43,15.5", models.Ring{{X: -122.08, Y: 37.42}, {X: -122.09, Y: 37.43}}},
		{"mixed whitespace", "\n\t 1,2\n\t\t3,4  \r\n", models.Ring{{X: 1, Y: 2}, {X: 3, Y: 4}}},
		{"short tokens skipped", "5 1,2 7", models.Ring{{X: 1, Y: 2}}},
		{"third component not parsed", "1,2,n/a", models.Ring{{X: 1, Y: 2}}},
		{"empty", "", models.Ring{}},
		{"whitespace only", "   \n\t", models.Ring{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCoordinates(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCoordinatesMalformed(t *testing.T) {
	for _, text := range []string{"a,b", "1,2 3,north", "1,", "1,2 ,3"} {
		t.Run(text, func(t *testing.T) {
			_, err := ParseCoordinates(text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCoordinateParse))
			assert.True(t, IsInputError(err))
		})
	}
}

func TestFormatCoordinatesRoundTrip(t *testing.T) {
	texts := []string{
		"-122.0822035425683,37.42228990140251,0 -122.0812181915094,37.42315567291919,0",
		"0,0 0,0.001 0.001,0.001 0.001,0 0,0",
		"179.999999,-89.5 -180,90",
	}
	for _, text := range texts {
		first, err := ParseCoordinates(text)
		require.NoError(t, err)

		second, err := ParseCoordinates(FormatCoordinates(first))
		require.NoError(t, err)
		require.Len(t, second, len(first))
		for i := range first {
			assert.InDelta(t, first[i].X, second[i].X, 1e-12)
			assert.InDelta(t, first[i].Y, second[i].Y, 1e-12)
		}
	}
}
