package geotrack

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackBounds(t *testing.T) {
	track := &Track{
		Points: []Point{
			{Lat: 48.0, Lon: 17.0},
			{Lat: 48.0, Lon: 17.1},
			{Lat: 48.1, Lon: 17.1},
		},
	}

	b := track.Bounds()
	assert.Equal(t, Bounds{MinLat: 48.0, MinLon: 17.0, MaxLat: 48.1, MaxLon: 17.1}, b)

	lat, lon := b.Center()
	assert.InDelta(t, 48.05, lat, 1e-9)
	assert.InDelta(t, 17.05, lon, 1e-9)
}

func TestBoundsExpandClampsToCoordinateDomain(t *testing.T) {
	b := Bounds{MinLat: -89.99, MinLon: -179.99, MaxLat: 89.99, MaxLon: 179.99}

	e := b.Expand(0.5)
	assert.Equal(t, Bounds{MinLat: -90, MinLon: -180, MaxLat: 90, MaxLon: 180}, e)
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{MinLat: 47.9, MinLon: 16.9, MaxLat: 48.05, MaxLon: 17.15}

	assert.True(t, b.Contains(48.0, 17.0))
	assert.True(t, b.Contains(48.05, 17.15))
	assert.False(t, b.Contains(48.1, 17.1))
}

func TestPointMarshalsAsLatLonPair(t *testing.T) {
	payload, err := json.Marshal(Point{Lat: 48.0, Lon: 17.1})
	require.NoError(t, err)

	assert.JSONEq(t, "[48.0, 17.1]", string(payload))
}
