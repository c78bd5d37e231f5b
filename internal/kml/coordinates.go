package kml

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"polygon-acreage/internal/models"
)

// ParseCoordinates turns the text of a <coordinates> element into a ring.
// Tokens are "lon,lat[,alt]" separated by whitespace; altitude is ignored and
// tokens with fewer than two components are skipped.
func ParseCoordinates(text string) (models.Ring, error) {
	fields := strings.Fields(text)
	ring := make(models.Ring, 0, len(fields))
	for _, tok := range fields {
		parts := strings.Split(tok, ",")
		if len(parts) < 2 {
			continue
		}
		lon, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "coordinate %q", tok), ErrCoordinateParse)
		}
		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "coordinate %q", tok), ErrCoordinateParse)
		}
		ring = append(ring, models.Point{X: lon, Y: lat})
	}
	return ring, nil
}

// FormatCoordinates is the inverse of ParseCoordinates, without altitude.
func FormatCoordinates(ring models.Ring) string {
	var sb strings.Builder
	for i, p := range ring {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatFloat(p.X, 'f', -1, 64))
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(p.Y, 'f', -1, 64))
	}
	return sb.String()
}
