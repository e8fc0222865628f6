// Package mapdata composes track loading, the spatial query engine and the
// snapshot cache into a single lifecycle: construct, query, re-parse,
// persist.
package mapdata

import (
	"errors"
	"fmt"
	"log"
	"slices"

	"gitlab.com/begraf/spur/config"
	"gitlab.com/begraf/spur/filesystem"
	"gitlab.com/begraf/spur/geoquery"
	"gitlab.com/begraf/spur/geotrack"
	"gitlab.com/begraf/spur/mapcache"
)

// ErrNotInitialized is returned when an operation runs on a facade that was
// never constructed from a track file.
var ErrNotInitialized = errors.New("map data not initialized")

// State tracks the facade lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateLoaded
	StateQueried
	StatePersisted
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateQueried:
		return "queried"
	case StatePersisted:
		return "persisted"
	}
	return "uninitialized"
}

// MapData holds one loaded track and drives queries and persistence over it.
// It is meant for a single sequential caller.
type MapData struct {
	source       string
	flip         bool
	start        *geotrack.Point
	boundsMargin float64

	track   *geotrack.Track
	skipped []geotrack.SkippedRecord
	engine  *geoquery.Engine
	state   State
}

type Option func(*MapData)

// WithFlip reverses the waypoint order after loading.
func WithFlip() Option {
	return func(m *MapData) { m.flip = true }
}

// WithStartPosition prepends the current position as the first waypoint.
func WithStartPosition(lat, lon float64) Option {
	return func(m *MapData) {
		m.start = &geotrack.Point{Lat: lat, Lon: lon}
	}
}

// WithBoundsMargin overrides the margin, in degrees, applied around the
// track bounds for the query battery.
func WithBoundsMargin(margin float64) Option {
	return func(m *MapData) { m.boundsMargin = margin }
}

// New constructs the facade and loads the track file. Load failures are
// propagated unchanged, so callers can inspect *geotrack.LoadError.
func New(source string, opts ...Option) (*MapData, error) {
	m := &MapData{
		source:       source,
		boundsMargin: config.BoundsMargin(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if err := m.reload(); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *MapData) reload() error {
	if m.start != nil {
		if err := geotrack.ValidateCoords(m.start.Lat, m.start.Lon); err != nil {
			return &geotrack.LoadError{Path: m.source, Err: fmt.Errorf("start position: %w", err)}
		}
	}

	track, skipped, err := geotrack.Load(m.source)
	if err != nil {
		return err
	}

	if m.flip {
		slices.Reverse(track.Points)
	}

	if m.start != nil {
		track.Points = append([]geotrack.Point{*m.start}, track.Points...)
	}

	m.track = track
	m.skipped = skipped
	m.engine = geoquery.New(track)
	m.state = StateLoaded

	return nil
}

func (m *MapData) State() State {
	return m.state
}

func (m *MapData) Track() *geotrack.Track {
	return m.track
}

// Skipped returns the malformed-record diagnostics of the last load.
func (m *MapData) Skipped() []geotrack.SkippedRecord {
	return m.skipped
}

func (m *MapData) Source() string {
	return m.source
}

// RunQueries executes the fixed query battery against the current track:
// path length, bounding-box membership over the margin-expanded track
// bounds, and the nearest point to the bounds' center. Results are logged
// and returned; the facade does not retain them.
func (m *MapData) RunQueries() ([]geoquery.Result, error) {
	if m.state == StateUninitialized {
		return nil, ErrNotInitialized
	}

	bounds := m.track.Bounds().Expand(m.boundsMargin)
	centerLat, centerLon := bounds.Center()

	results := []geoquery.Result{
		m.engine.PathLength(),
		m.engine.WithinBoundingBox(bounds.MinLat, bounds.MinLon, bounds.MaxLat, bounds.MaxLon),
	}

	nearest, err := m.engine.Nearest(centerLat, centerLon)
	if err != nil {
		return nil, err
	}
	results = append(results, nearest)

	for _, r := range results {
		log.Printf("query: %s", r)
	}

	// Persisted stays persisted; the snapshot is still valid.
	if m.state != StatePersisted {
		m.state = StateQueried
	}

	return results, nil
}

// RunParse reloads the track from the original source path, refreshing state
// after an external file change. Re-parsing an unchanged file yields an
// equal track.
func (m *MapData) RunParse() error {
	if m.source == "" {
		return ErrNotInitialized
	}

	return m.reload()
}

// SaveToCache writes the current track to the derived cache path and returns
// that path.
func (m *MapData) SaveToCache() (string, error) {
	if m.state == StateUninitialized {
		return "", ErrNotInitialized
	}

	path := CachePath(m.source)
	if err := mapcache.Save(m.track, path); err != nil {
		return "", err
	}

	m.state = StatePersisted

	return path, nil
}

// CachePath derives the snapshot path for a track source path.
func CachePath(source string) string {
	return source + config.CacheSuffix()
}

// CacheIsFresh reports whether a snapshot exists for the source and is newer
// than the source file.
func CacheIsFresh(source string) bool {
	sourceMod, err := filesystem.FileModifiedTime(source)
	if err != nil {
		return false
	}

	cacheMod, err := filesystem.FileModifiedTime(CachePath(source))
	if err != nil {
		return false
	}

	return sourceMod.Before(cacheMod)
}
