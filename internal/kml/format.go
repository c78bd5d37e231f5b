package kml

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// Format is the kind of input file.
type Format int

const (
	FormatUnknown Format = iota
	FormatKML
	FormatKMZ
)

func (f Format) String() string {
	switch f {
	case FormatKML:
		return "KML"
	case FormatKMZ:
		return "KMZ"
	default:
		return "Unknown"
	}
}

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	switch f {
	case FormatKML:
		return ".kml"
	case FormatKMZ:
		return ".kmz"
	default:
		return ""
	}
}

// Detect determines the format from the filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".kml":
		return FormatKML
	case ".kmz":
		return FormatKMZ
	default:
		return FormatUnknown
	}
}

var zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// DetectFromMagic looks at the leading bytes: a ZIP header means KMZ, markup
// means KML.
func DetectFromMagic(data []byte) Format {
	if bytes.HasPrefix(data, zipMagic) {
		return FormatKMZ
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if bytes.HasPrefix(trimmed, []byte("<")) {
		return FormatKML
	}
	return FormatUnknown
}

// Load reads a .kml or .kmz file and returns its bytes with the detected format.
// Container bytes are returned as they are; see Decode.
func Load(path string) ([]byte, Format, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, FormatUnknown, errors.Wrapf(ErrNotFile, "%s", path)
	}
	format := Detect(path)
	if format == FormatUnknown {
		return nil, FormatUnknown, errors.Wrapf(ErrUnsupportedFormat, "%s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, FormatUnknown, errors.Mark(errors.Wrapf(err, "read %s", path), ErrNotFile)
	}
	return data, format, nil
}

// Decode unwraps a KMZ container if needed and parses the KML inside.
func Decode(data []byte, format Format) (*Document, error) {
	switch format {
	case FormatKMZ:
		raw, err := Unwrap(data)
		if err != nil {
			return nil, err
		}
		return Parse(raw)
	case FormatKML:
		return Parse(data)
	default:
		return nil, ErrUnsupportedFormat
	}
}
