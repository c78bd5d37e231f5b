package calculator

import (
	"regexp"
	"strconv"
	"strings"

	"polygon-acreage/internal/models"
)

// annotationPattern matches "Area: <number> <unit words>". The unit runs over
// letters and whitespace, newlines included, up to the first other character.
var annotationPattern = regexp.MustCompile(`(?i)area:\s*(\d+(?:\.\d*)?|\.\d+)\s*([a-z][a-z\s]*)`)

// ParseAnnotation finds the first area annotation in a description. The unit
// is lowercased but otherwise kept as written, trailing whitespace included,
// so "acres " is not the unit "acres".
func ParseAnnotation(description string) (models.AreaAnnotation, bool) {
	m := annotationPattern.FindStringSubmatch(description)
	if m == nil {
		return models.AreaAnnotation{}, false
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return models.AreaAnnotation{}, false
	}
	return models.AreaAnnotation{
		Value: value,
		Unit:  strings.ToLower(m[2]),
	}, true
}
