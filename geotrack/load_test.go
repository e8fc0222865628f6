package geotrack

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gpxHeader = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="spur-test" xmlns="http://www.topografix.com/GPX/1/1">
<trk><trkseg>
`

const gpxFooter = `</trkseg></trk>
</gpx>
`

func writeTrackFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o666))

	return path
}

func TestLoadGPXTrack(t *testing.T) {
	path := writeTrackFile(t, "track.gpx", gpxHeader+
		`<trkpt lat="48.0" lon="17.0"><ele>120.5</ele><time>2023-06-01T10:00:00Z</time></trkpt>
<trkpt lat="48.0" lon="17.1"><ele>121.0</ele><time>2023-06-01T10:01:00Z</time></trkpt>
<trkpt lat="48.1" lon="17.1"><time>2023-06-01T10:02:00Z</time></trkpt>
`+gpxFooter)

	track, skipped, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 3, track.Len())
	assert.Equal(t, path, track.Source)
	assert.Empty(t, skipped)

	first := track.Points[0]
	assert.Equal(t, 48.0, first.Lat)
	assert.Equal(t, 17.0, first.Lon)
	require.True(t, first.Elevation.IsSome())
	assert.Equal(t, 120.5, first.Elevation.Get())
	assert.Equal(t, time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC), first.Time)

	// File order is preserved.
	assert.Equal(t, 17.1, track.Points[1].Lon)
	assert.Equal(t, 48.1, track.Points[2].Lat)

	// Last point has no elevation.
	assert.True(t, track.Points[2].Elevation.IsNone())
}

func TestLoadSkipsOutOfRangeRecords(t *testing.T) {
	path := writeTrackFile(t, "track.gpx", gpxHeader+
		`<trkpt lat="48.0" lon="17.0"></trkpt>
<trkpt lat="95.0" lon="17.0"></trkpt>
<trkpt lat="48.0" lon="-181.0"></trkpt>
<trkpt lat="48.1" lon="17.1"></trkpt>
`+gpxFooter)

	track, skipped, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 2, track.Len())
	assert.Equal(t, 48.0, track.Points[0].Lat)
	assert.Equal(t, 48.1, track.Points[1].Lat)

	require.Len(t, skipped, 2)
	assert.Equal(t, 1, skipped[0].Index)
	assert.Contains(t, skipped[0].Reason, "latitude")
	assert.Equal(t, 2, skipped[1].Index)
	assert.Contains(t, skipped[1].Reason, "longitude")
}

func TestLoadFailsWhenAllRecordsMalformed(t *testing.T) {
	path := writeTrackFile(t, "track.gpx", gpxHeader+
		`<trkpt lat="95.0" lon="17.0"></trkpt>
<trkpt lat="-95.0" lon="17.0"></trkpt>
`+gpxFooter)

	_, _, err := Load(path)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, path, loadErr.Path)
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "does-not-exist.gpx"))

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadUnknownExtension(t *testing.T) {
	path := writeTrackFile(t, "track.txt", "not a track")

	_, _, err := Load(path)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestLoadIsIdempotent(t *testing.T) {
	path := writeTrackFile(t, "track.gpx", gpxHeader+
		`<trkpt lat="48.0" lon="17.0"><time>2023-06-01T10:00:00Z</time></trkpt>
<trkpt lat="48.1" lon="17.1"><time>2023-06-01T10:01:00Z</time></trkpt>
`+gpxFooter)

	first, _, err := Load(path)
	require.NoError(t, err)

	second, _, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestLoadNMEATrack(t *testing.T) {
	path := writeTrackFile(t, "track.nmea",
		"$GPRMC,102030.000,A,4800.000,N,01700.000,E,0.000,0.0,010623,,,A*62\n"+
			"garbage line\n"+
			"$GPRMC,102130.000,A,4800.000,N,01706.000,E,0.000,0.0,010623,,,A*65\n"+
			"$GPRMC,102230.000,V,4806.000,N,01706.000,E,0.000,0.0,010623,,,A*77\n")

	track, skipped, err := Load(path)
	require.NoError(t, err)

	// Two active fixes; the garbage line and the void fix are skipped.
	require.Equal(t, 2, track.Len())
	require.Len(t, skipped, 2)

	assert.InDelta(t, 48.0, track.Points[0].Lat, 1e-9)
	assert.InDelta(t, 17.0, track.Points[0].Lon, 1e-9)
	assert.InDelta(t, 17.1, track.Points[1].Lon, 1e-9)

	assert.Equal(t, time.Date(2023, 6, 1, 10, 20, 30, 0, time.UTC), track.Points[0].Time)
}

func TestValidateCoords(t *testing.T) {
	assert.NoError(t, ValidateCoords(48.0, 17.0))
	assert.Error(t, ValidateCoords(95.0, 17.0))
	assert.Error(t, ValidateCoords(48.0, 181.0))
}

func TestLoadErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := &LoadError{Path: "p", Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "p")
}
