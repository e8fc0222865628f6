package geotrack

import (
	"encoding/json"
	"fmt"
	"time"

	"gitlab.com/begraf/spur/option"
)

// Point is a single recorded track sample. Elevation and Time are optional;
// a zero Time means the source record carried no timestamp.
type Point struct {
	Lat, Lon  float64
	Elevation option.Option[float64]
	Time      time.Time
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([]float64{p.Lat, p.Lon})
}

func (p Point) HasTime() bool {
	return !p.Time.IsZero()
}

// ValidateCoords rejects coordinates outside the WGS84 domain.
func ValidateCoords(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %f out of range [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitude %f out of range [-180, 180]", lon)
	}
	return nil
}

// SkippedRecord describes a single malformed source record that was dropped
// during loading.
type SkippedRecord struct {
	Index  int    `yaml:"index"`
	Reason string `yaml:"reason"`
}

// Track is an ordered, non-empty point sequence in original file order,
// together with the path it was loaded from. Nothing mutates a Track after
// loading, and a cache round-trip restores it field for field.
type Track struct {
	Source string
	Points []Point
}

func (t *Track) Len() int {
	return len(t.Points)
}

// Bounds returns the smallest rectangle containing every point of the track.
func (t *Track) Bounds() Bounds {
	b := Bounds{
		MinLat: t.Points[0].Lat,
		MinLon: t.Points[0].Lon,
		MaxLat: t.Points[0].Lat,
		MaxLon: t.Points[0].Lon,
	}

	for _, p := range t.Points[1:] {
		b.MinLat = min(b.MinLat, p.Lat)
		b.MinLon = min(b.MinLon, p.Lon)
		b.MaxLat = max(b.MaxLat, p.Lat)
		b.MaxLon = max(b.MaxLon, p.Lon)
	}

	return b
}

// Bounds is a latitude/longitude rectangle.
type Bounds struct {
	MinLat, MinLon float64
	MaxLat, MaxLon float64
}

// Expand grows the rectangle by margin degrees on every side, clamped to the
// valid coordinate domain.
func (b Bounds) Expand(margin float64) Bounds {
	return Bounds{
		MinLat: max(b.MinLat-margin, -90),
		MinLon: max(b.MinLon-margin, -180),
		MaxLat: min(b.MaxLat+margin, 90),
		MaxLon: min(b.MaxLon+margin, 180),
	}
}

func (b Bounds) Center() (lat, lon float64) {
	return (b.MinLat + b.MaxLat) / 2, (b.MinLon + b.MaxLon) / 2
}

func (b Bounds) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// LoadError reports a whole-file load failure: missing or unreadable file,
// unsupported extension, or a file without a single valid point.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load track '%s': %s", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
