package geotrack

import (
	"bufio"
	"os"
	"strings"
	"time"

	"github.com/adrianmo/go-nmea"
)

func loadNMEATrack(trackFilePath string) (points []Point, skipped []SkippedRecord, err error) {
	f, err := os.Open(trackFilePath)
	if err != nil {
		return nil, nil, err
	}

	defer f.Close()

	scanner := bufio.NewScanner(f)

	index := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		sentence, err := nmea.Parse(line)
		if err != nil {
			skipped = append(skipped, SkippedRecord{Index: index, Reason: err.Error()})
			index++
			continue
		}

		if sentence.DataType() != nmea.TypeRMC {
			index++
			continue
		}

		rmc := sentence.(nmea.RMC)

		// Only "ACTIVE" fixes carry a trustworthy position.
		if rmc.Validity != "A" {
			skipped = append(skipped, SkippedRecord{Index: index, Reason: "inactive RMC fix"})
			index++
			continue
		}

		if err := ValidateCoords(rmc.Latitude, rmc.Longitude); err != nil {
			skipped = append(skipped, SkippedRecord{Index: index, Reason: err.Error()})
			index++
			continue
		}

		// Adds 2000 to the date... I think this will be sufficient for life :)
		date := time.Date(
			2000+rmc.Date.YY, time.Month(rmc.Date.MM), rmc.Date.DD,
			rmc.Time.Hour, rmc.Time.Minute, rmc.Time.Second, 0, time.UTC,
		)

		points = append(points, Point{
			Lat:  rmc.Latitude,
			Lon:  rmc.Longitude,
			Time: date,
		})
		index++
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	return points, skipped, nil
}
