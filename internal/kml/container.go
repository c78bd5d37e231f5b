package kml

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// Unwrap returns the bytes of the first .kml entry of a KMZ archive.
func Unwrap(data []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "open KMZ"), ErrContainer)
	}

	for _, f := range zr.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), FormatKML.Extension()) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "open %s", f.Name), ErrContainer)
		}
		defer rc.Close()

		out, err := io.ReadAll(rc)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "read %s", f.Name), ErrContainer)
		}
		return out, nil
	}
	return nil, errors.Mark(ErrNoDocument, ErrContainer)
}
