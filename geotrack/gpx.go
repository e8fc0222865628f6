package geotrack

import (
	"fmt"

	"github.com/tkrajina/gpxgo/gpx"

	"gitlab.com/begraf/spur/option"
)

func loadGPXTrack(trackFilePath string) (points []Point, skipped []SkippedRecord, err error) {
	gpxData, err := gpx.ParseFile(trackFilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("read GPX file: %w", err)
	}

	index := 0
	for _, track := range gpxData.Tracks {
		for _, segment := range track.Segments {
			for _, p := range segment.Points {
				if err := ValidateCoords(p.Latitude, p.Longitude); err != nil {
					skipped = append(skipped, SkippedRecord{Index: index, Reason: err.Error()})
					index++
					continue
				}

				elevation := option.None[float64]()
				if p.Elevation.NotNull() {
					elevation = option.Some(p.Elevation.Value())
				}

				points = append(points, Point{
					Lat:       p.Latitude,
					Lon:       p.Longitude,
					Elevation: elevation,
					Time:      p.Timestamp,
				})
				index++
			}
		}
	}

	return points, skipped, nil
}
