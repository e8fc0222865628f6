package geoquery

import (
	"fmt"

	"gitlab.com/begraf/spur/geotrack"
)

// Kind discriminates the result variants of the query engine.
type Kind int

const (
	KindNearestPoint Kind = iota + 1
	KindBoundingBoxMatches
	KindPathLength
)

func (k Kind) String() string {
	switch k {
	case KindNearestPoint:
		return "nearest-point"
	case KindBoundingBoxMatches:
		return "bounding-box-matches"
	case KindPathLength:
		return "path-length"
	}
	return "unknown"
}

// Result is the value returned by every engine operation. Only the fields of
// the active variant are meaningful.
type Result struct {
	Kind Kind

	// KindNearestPoint
	Point      geotrack.Point
	Index      int
	DistanceKm float64

	// KindBoundingBoxMatches
	Matches []geotrack.Point

	// KindPathLength
	LengthKm float64
}

func (r Result) String() string {
	switch r.Kind {
	case KindNearestPoint:
		return fmt.Sprintf("nearest point #%d (%.5f, %.5f) at %.3f km", r.Index, r.Point.Lat, r.Point.Lon, r.DistanceKm)
	case KindBoundingBoxMatches:
		return fmt.Sprintf("%d points within bounding box", len(r.Matches))
	case KindPathLength:
		return fmt.Sprintf("path length %.3f km", r.LengthKm)
	}
	return "empty result"
}
