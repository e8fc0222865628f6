package geotrack

import (
	"errors"
	"fmt"
	"os"
	"path"
	"slices"
	"strings"

	"gitlab.com/begraf/spur/config"
)

var errNoValidPoints = errors.New("no valid points in file")

// Load reads the track file at the given path and returns its points in file
// order. Records with missing or out-of-range coordinates are skipped and
// returned as diagnostics alongside the track; a file that yields zero valid
// points, does not exist or has an unsupported extension fails with
// *LoadError.
//
// Loading is idempotent: loading the same unchanged file twice yields equal
// tracks.
func Load(trackFilePath string) (*Track, []SkippedRecord, error) {
	if _, err := os.Stat(trackFilePath); err != nil {
		return nil, nil, &LoadError{Path: trackFilePath, Err: err}
	}

	var (
		points  []Point
		skipped []SkippedRecord
		err     error
	)

	ext := strings.ToLower(path.Ext(trackFilePath))
	if slices.Contains(config.GPXExtensions(), ext) {
		points, skipped, err = loadGPXTrack(trackFilePath)
	} else if slices.Contains(config.NMEAExtensions(), ext) {
		points, skipped, err = loadNMEATrack(trackFilePath)
	} else {
		err = fmt.Errorf("unknown track extension '%s'", ext)
	}

	if err != nil {
		return nil, nil, &LoadError{Path: trackFilePath, Err: err}
	}

	if len(points) == 0 {
		return nil, nil, &LoadError{Path: trackFilePath, Err: errNoValidPoints}
	}

	return &Track{
		Source: trackFilePath,
		Points: points,
	}, skipped, nil
}
