package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func cliEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ACREAGE_LOG_FILE", filepath.Join(dir, "LOG.txt"))
	return dir
}

func TestReportCommand(t *testing.T) {
	dir := cliEnv(t)
	input := filepath.Join(dir, "lots.kml")
	require.NoError(t, os.WriteFile(input, []byte(uploadKML), 0o644))
	output := filepath.Join(dir, "areas.csv")

	out, err := runCLI(t, "report", input, "--output", output)
	require.NoError(t, err)
	assert.Equal(t, "Report generated: "+output+"\n", out)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "Polygon Name,Total Acreage,Total\nLot 1,2.00,4.47\nLot 2,2.47,\n", string(data))
}

func TestReportCommandNoPolygons(t *testing.T) {
	dir := cliEnv(t)
	input := filepath.Join(dir, "pins.kml")
	require.NoError(t, os.WriteFile(input, []byte(`<kml xmlns="http://www.opengis.net/kml/2.2"/>`), 0o644))

	out, err := runCLI(t, "report", input, "--output", filepath.Join(dir, "areas.csv"))
	require.NoError(t, err)
	assert.Equal(t, "No polygons found in the KML file.\n", out)
	assert.NoFileExists(t, filepath.Join(dir, "areas.csv"))
}

func TestReportCommandFatal(t *testing.T) {
	dir := cliEnv(t)
	bad := filepath.Join(dir, "bad.kml")
	require.NoError(t, os.WriteFile(bad, []byte("<kml><Document>"), 0o644))
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hello"), 0o644))
	kmz := filepath.Join(dir, "broken.kmz")
	require.NoError(t, os.WriteFile(kmz, []byte("not a zip"), 0o644))

	tests := []struct {
		input string
		want  string
	}{
		{bad, "Error parsing KML. See log for details.\n"},
		{txt, "Please provide a KMZ or KML file.\n"},
		{kmz, "Error extracting KML from KMZ. See log for details.\n"},
		{filepath.Join(dir, "missing.kml"), "Provided path is not a file: " + filepath.Join(dir, "missing.kml") + "\n"},
	}
	for _, tt := range tests {
		out, err := runCLI(t, "report", tt.input, "--output", filepath.Join(dir, "areas.csv"))
		assert.True(t, errors.Is(err, errReported), tt.input)
		assert.Equal(t, tt.want, out)
	}

	log, err := os.ReadFile(filepath.Join(dir, "LOG.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(log), "failed to parse KML")
	assert.Contains(t, string(log), "failed to extract KML from KMZ")
}

func TestReportCommandBadMethod(t *testing.T) {
	dir := cliEnv(t)
	_, err := runCLI(t, "report", filepath.Join(dir, "x.kml"), "--method", "planar")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "area.method")
}
