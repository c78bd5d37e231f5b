// Package kml reads polygon placemarks out of KML documents and KMZ containers.
package kml

import "github.com/cockroachdb/errors"

// Errors that abort a whole run. Callers test for them with errors.Is.
var (
	ErrNotFile           = errors.New("provided path is not a file")
	ErrUnsupportedFormat = errors.New("please provide a KMZ or KML file")
	ErrContainer         = errors.New("kmz: cannot read container")
	ErrNoDocument        = errors.New("kmz: no KML file found inside KMZ")
	ErrDocumentParse     = errors.New("kml: document is not well-formed")
	ErrCoordinateParse   = errors.New("kml: invalid coordinate")
)

// IsInputError reports whether err means the input itself could not be interpreted.
func IsInputError(err error) bool {
	return errors.IsAny(err,
		ErrNotFile,
		ErrUnsupportedFormat,
		ErrContainer,
		ErrNoDocument,
		ErrDocumentParse,
		ErrCoordinateParse,
	)
}
