package geoquery

import (
	"errors"

	"github.com/jftuga/geodist"

	"gitlab.com/begraf/spur/geotrack"
)

// ErrEmptyTrack is returned by point queries against a track without points.
var ErrEmptyTrack = errors.New("track has no points")

// Engine answers spatial queries over a single track. It borrows the track
// read-only and never mutates it; all operations are deterministic.
type Engine struct {
	track *geotrack.Track
}

func New(track *geotrack.Track) *Engine {
	return &Engine{track: track}
}

// Nearest returns the track point closest to the given coordinate by
// great-circle distance. Repeated samples at the same position resolve to
// their first occurrence; distinct points at exactly equal distance resolve
// to the later sample.
func (e *Engine) Nearest(lat, lon float64) (Result, error) {
	if e.track.Len() == 0 {
		return Result{}, ErrEmptyTrack
	}

	target := geodist.Coord{Lat: lat, Lon: lon}

	best := 0
	bestKm := haversineKm(target, e.track.Points[0])

	for i, p := range e.track.Points[1:] {
		dkm := haversineKm(target, p)
		if dkm > bestKm {
			continue
		}
		if dkm == bestKm && samePosition(p, e.track.Points[best]) {
			continue
		}
		bestKm = dkm
		best = i + 1
	}

	return Result{
		Kind:       KindNearestPoint,
		Point:      e.track.Points[best],
		Index:      best,
		DistanceKm: bestKm,
	}, nil
}

// WithinBoundingBox returns every point inside the rectangle, in original
// track order. An empty result is valid.
func (e *Engine) WithinBoundingBox(minLat, minLon, maxLat, maxLon float64) Result {
	bounds := geotrack.Bounds{
		MinLat: minLat,
		MinLon: minLon,
		MaxLat: maxLat,
		MaxLon: maxLon,
	}

	var matches []geotrack.Point
	for _, p := range e.track.Points {
		if bounds.Contains(p.Lat, p.Lon) {
			matches = append(matches, p)
		}
	}

	return Result{
		Kind:    KindBoundingBoxMatches,
		Matches: matches,
	}
}

// PathLength returns the cumulative great-circle distance over consecutive
// points; zero for a track with fewer than two points.
func (e *Engine) PathLength() Result {
	total := 0.0

	for i := 1; i < e.track.Len(); i++ {
		prev := geodist.Coord{Lat: e.track.Points[i-1].Lat, Lon: e.track.Points[i-1].Lon}
		total += haversineKm(prev, e.track.Points[i])
	}

	return Result{
		Kind:     KindPathLength,
		LengthKm: total,
	}
}

func samePosition(p, q geotrack.Point) bool {
	return p.Lat == q.Lat && p.Lon == q.Lon
}

func haversineKm(from geodist.Coord, to geotrack.Point) float64 {
	_, dkm := geodist.HaversineDistance(from, geodist.Coord{Lat: to.Lat, Lon: to.Lon})
	return dkm
}
