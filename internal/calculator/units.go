package calculator

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// SquareMetresPerAcre converts square metres to acres. Annotations in square
// metres and computed areas both go through it.
const SquareMetresPerAcre = 4046.86

var ErrUnrecognizedUnit = errors.New("unrecognized area unit")

// ToAcres converts value in unit to acres. Units are matched exactly after
// lowercasing; there is no pluralisation or fuzzy matching.
func ToAcres(value float64, unit string) (float64, error) {
	switch strings.ToLower(unit) {
	case "acres":
		return value, nil
	case "sq mi", "square miles":
		return value * 640, nil
	case "hectares":
		return value * 2.47105, nil
	case "sq km", "square kilometers":
		return value * 247.105, nil
	case "sq ft", "square feet", "sqft":
		return value / 43560, nil
	case "sq m", "square meters", "square metres", "sq meter", "sq metre":
		return value / SquareMetresPerAcre, nil
	default:
		return 0, errors.Wrapf(ErrUnrecognizedUnit, "%q", unit)
	}
}
