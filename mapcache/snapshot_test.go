package mapcache

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/begraf/spur/geotrack"
	"gitlab.com/begraf/spur/option"
)

func snapshotTrack() *geotrack.Track {
	return &geotrack.Track{
		Source: "/tracks/sample.gpx",
		Points: []geotrack.Point{
			{
				Lat:       48.0,
				Lon:       17.0,
				Elevation: option.Some(120.5),
				Time:      time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC),
			},
			{
				Lat: 48.0,
				Lon: 17.1,
			},
			{
				Lat:       48.1,
				Lon:       17.1,
				Elevation: option.Some(130.0),
			},
		},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	track := snapshotTrack()
	path := filepath.Join(t.TempDir(), "sample.mapdata")

	require.NoError(t, Save(track, path))

	restored, err := Load(path)
	require.NoError(t, err)

	// The snapshot restores the track field for field.
	require.Equal(t, track, restored)
}

func TestSnapshotHeader(t *testing.T) {
	track := snapshotTrack()
	path := filepath.Join(t.TempDir(), "sample.mapdata")

	require.NoError(t, Save(track, path))

	header, err := ReadHeader(path)
	require.NoError(t, err)

	assert.Equal(t, 1, header.Version)
	assert.Equal(t, track.Source, header.SourcePath)
	assert.Equal(t, 3, header.PointCount)
	assert.NotEqual(t, uuid.Nil, header.ID)
	assert.False(t, header.CreatedAt.IsZero())
}

func TestLoadDetectsFlippedBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.mapdata")
	require.NoError(t, Save(snapshotTrack(), path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	// Flip a byte in the payload region.
	raw[len(raw)/2] ^= 0xff
	require.NoError(t, os.WriteFile(path, raw, 0o666))

	_, err = Load(path)
	assert.ErrorIs(t, err, ErrSnapshotCorrupt)
}

func TestLoadDetectsTruncation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.mapdata")
	require.NoError(t, Save(snapshotTrack(), path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw[:len(raw)-10], 0o666))

	_, err = Load(path)
	assert.ErrorIs(t, err, ErrSnapshotCorrupt)
}

func TestLoadRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.mapdata")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{'x'}, 128), 0o666))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrSnapshotCorrupt)
}

func TestLoadRejectsFutureFormatVersion(t *testing.T) {
	headerBytes, err := json.Marshal(Header{
		Version:   formatVersion + 1,
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	// Well-formed file with a valid checksum but an unsupported version.
	var buf bytes.Buffer
	buf.Write(magic[:])
	writeBlock(&buf, headerBytes)
	writeBlock(&buf, []byte("[]"))
	sum := sha256.Sum256(buf.Bytes())
	buf.Write(sum[:])

	path := filepath.Join(t.TempDir(), "future.mapdata")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o666))

	_, err = Load(path)
	assert.ErrorIs(t, err, ErrSnapshotVersion)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.mapdata"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
