package kml

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kmz(t *testing.T, files map[string]string, order ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(files[name]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestUnwrap(t *testing.T) {
	files := map[string]string{
		"files/icon.png": "png",
		"DOC.KML":        "<kml/>",
		"other.kml":      "<kml><Document/></kml>",
	}
	data := kmz(t, files, "files/icon.png", "DOC.KML", "other.kml")

	got, err := Unwrap(data)
	require.NoError(t, err)
	assert.Equal(t, "<kml/>", string(got))
}

func TestUnwrapNoDocument(t *testing.T) {
	data := kmz(t, map[string]string{"readme.txt": "hi"}, "readme.txt")

	_, err := Unwrap(data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoDocument))
	assert.True(t, errors.Is(err, ErrContainer))
}

func TestUnwrapCorrupt(t *testing.T) {
	_, err := Unwrap([]byte("PK\x03\x04 definitely not a zip"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrContainer))
	assert.True(t, IsInputError(err))
}

func TestDecodeKMZ(t *testing.T) {
	doc := `<kml xmlns="http://www.opengis.net/kml/2.2"><Placemark><name>Z</name></Placemark></kml>`
	data := kmz(t, map[string]string{"doc.kml": doc}, "doc.kml")

	d, err := Decode(data, FormatKMZ)
	require.NoError(t, err)
	require.Len(t, d.Placemarks(), 1)

	_, err = Decode(data, FormatUnknown)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}
