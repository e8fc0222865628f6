// Package mapcache persists parsed tracks as checksummed snapshot files so a
// track can be restored without re-parsing its source.
//
// Snapshot layout:
//
//	[magic:8 "SPURMAP1"]
//	[headerLen:4 BE][header JSON]
//	[payloadLen:4 BE][payload JSON]
//	[checksum:32 SHA-256 over all bytes above]
package mapcache

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"gitlab.com/begraf/spur/geotrack"
	"gitlab.com/begraf/spur/option"
)

const formatVersion = 1

var magic = [8]byte{'S', 'P', 'U', 'R', 'M', 'A', 'P', '1'}

var (
	// ErrSnapshotCorrupt marks a snapshot whose framing or checksum does not
	// hold; the file is rejected rather than partially decoded.
	ErrSnapshotCorrupt = errors.New("snapshot corrupt")

	// ErrSnapshotVersion marks a snapshot written by an unsupported format
	// version.
	ErrSnapshotVersion = errors.New("unsupported snapshot version")
)

// Header describes a snapshot; it is stored in clear ahead of the payload so
// tools can inspect a snapshot without decoding the points.
type Header struct {
	Version    int       `json:"version"`
	ID         uuid.UUID `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	SourcePath string    `json:"sourcePath"`
	PointCount int       `json:"pointCount"`
}

type snapshotPoint struct {
	Lat  float64    `json:"lat"`
	Lon  float64    `json:"lon"`
	Ele  *float64   `json:"ele,omitempty"`
	Time *time.Time `json:"time,omitempty"`
}

// Save writes the track to the given path. The resulting file can be handed
// to Load to restore a field-for-field equal track.
func Save(track *geotrack.Track, path string) error {
	payload := make([]snapshotPoint, 0, track.Len())
	for _, p := range track.Points {
		sp := snapshotPoint{
			Lat: p.Lat,
			Lon: p.Lon,
			Ele: p.Elevation.Ptr(),
		}
		if p.HasTime() {
			t := p.Time
			sp.Time = &t
		}
		payload = append(payload, sp)
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode snapshot payload: %w", err)
	}

	headerBytes, err := json.Marshal(Header{
		Version:    formatVersion,
		ID:         uuid.New(),
		CreatedAt:  time.Now().UTC(),
		SourcePath: track.Source,
		PointCount: track.Len(),
	})
	if err != nil {
		return fmt.Errorf("encode snapshot header: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(magic[:])
	writeBlock(&buf, headerBytes)
	writeBlock(&buf, payloadBytes)

	sum := sha256.Sum256(buf.Bytes())
	buf.Write(sum[:])

	if err := os.WriteFile(path, buf.Bytes(), 0o666); err != nil {
		return fmt.Errorf("write snapshot '%s': %w", path, err)
	}

	return nil
}

// Load restores a track from a snapshot file. Corrupt or version-mismatched
// snapshots fail with ErrSnapshotCorrupt or ErrSnapshotVersion; a snapshot is
// never partially decoded.
func Load(path string) (*geotrack.Track, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot '%s': %w", path, err)
	}

	header, payloadBytes, err := verify(raw)
	if err != nil {
		return nil, fmt.Errorf("snapshot '%s': %w", path, err)
	}

	var payload []snapshotPoint
	if err := json.Unmarshal(payloadBytes, &payload); err != nil {
		return nil, fmt.Errorf("snapshot '%s': %w: payload: %s", path, ErrSnapshotCorrupt, err)
	}

	points := make([]geotrack.Point, 0, len(payload))
	for _, sp := range payload {
		p := geotrack.Point{
			Lat:       sp.Lat,
			Lon:       sp.Lon,
			Elevation: option.FromPtr(sp.Ele),
		}
		if sp.Time != nil {
			p.Time = *sp.Time
		}
		points = append(points, p)
	}

	return &geotrack.Track{
		Source: header.SourcePath,
		Points: points,
	}, nil
}

// ReadHeader verifies the snapshot and returns its header only.
func ReadHeader(path string) (Header, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Header{}, fmt.Errorf("read snapshot '%s': %w", path, err)
	}

	header, _, err := verify(raw)
	if err != nil {
		return Header{}, fmt.Errorf("snapshot '%s': %w", path, err)
	}

	return header, nil
}

// verify checks framing and checksum and splits the raw bytes into header and
// payload. The checksum is verified before any JSON is decoded.
func verify(raw []byte) (Header, []byte, error) {
	if len(raw) < len(magic)+8+sha256.Size {
		return Header{}, nil, fmt.Errorf("%w: truncated file", ErrSnapshotCorrupt)
	}

	if !bytes.Equal(raw[:len(magic)], magic[:]) {
		return Header{}, nil, fmt.Errorf("%w: bad magic", ErrSnapshotCorrupt)
	}

	body := raw[:len(raw)-sha256.Size]
	var sum [sha256.Size]byte
	copy(sum[:], raw[len(raw)-sha256.Size:])

	if sha256.Sum256(body) != sum {
		return Header{}, nil, fmt.Errorf("%w: checksum mismatch", ErrSnapshotCorrupt)
	}

	rest := body[len(magic):]

	headerBytes, rest, err := readBlock(rest)
	if err != nil {
		return Header{}, nil, fmt.Errorf("%w: header: %s", ErrSnapshotCorrupt, err)
	}

	payloadBytes, rest, err := readBlock(rest)
	if err != nil {
		return Header{}, nil, fmt.Errorf("%w: payload: %s", ErrSnapshotCorrupt, err)
	}

	if len(rest) != 0 {
		return Header{}, nil, fmt.Errorf("%w: %d trailing bytes", ErrSnapshotCorrupt, len(rest))
	}

	var header Header
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return Header{}, nil, fmt.Errorf("%w: header: %s", ErrSnapshotCorrupt, err)
	}

	if header.Version != formatVersion {
		return Header{}, nil, fmt.Errorf("%w: version %d", ErrSnapshotVersion, header.Version)
	}

	return header, payloadBytes, nil
}

func writeBlock(buf *bytes.Buffer, block []byte) {
	var lenBytes [4]byte
	binary.BigEndian.PutUint32(lenBytes[:], uint32(len(block)))
	buf.Write(lenBytes[:])
	buf.Write(block)
}

func readBlock(raw []byte) (block, rest []byte, err error) {
	if len(raw) < 4 {
		return nil, nil, errors.New("missing length")
	}

	n := binary.BigEndian.Uint32(raw[:4])
	raw = raw[4:]

	if uint32(len(raw)) < n {
		return nil, nil, errors.New("length exceeds file size")
	}

	return raw[:n], raw[n:], nil
}
