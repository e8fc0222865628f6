package serve

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (api *serveAPI) ServeTrack(c *gin.Context) {
	c.JSON(
		http.StatusOK,
		gin.H{
			"source": api.track.Source,
			"track":  api.track.Points,
		},
	)
}

func (api *serveAPI) ServeNearest(c *gin.Context) {
	lat, ok := floatQuery(c, "lat")
	if !ok {
		return
	}

	lon, ok := floatQuery(c, "lon")
	if !ok {
		return
	}

	result, err := api.engine.Nearest(lat, lon)
	if err != nil {
		c.String(http.StatusInternalServerError, "error during query")
		return
	}

	c.JSON(
		http.StatusOK,
		gin.H{
			"point":      result.Point,
			"index":      result.Index,
			"distanceKm": result.DistanceKm,
		},
	)
}

func (api *serveAPI) ServeBBox(c *gin.Context) {
	minLat, ok := floatQuery(c, "minLat")
	if !ok {
		return
	}
	minLon, ok := floatQuery(c, "minLon")
	if !ok {
		return
	}
	maxLat, ok := floatQuery(c, "maxLat")
	if !ok {
		return
	}
	maxLon, ok := floatQuery(c, "maxLon")
	if !ok {
		return
	}

	result := api.engine.WithinBoundingBox(minLat, minLon, maxLat, maxLon)

	c.JSON(
		http.StatusOK,
		gin.H{
			"count":   len(result.Matches),
			"matches": result.Matches,
		},
	)
}

func (api *serveAPI) ServeStats(c *gin.Context) {
	bounds := api.track.Bounds()
	length := api.engine.PathLength()

	c.JSON(
		http.StatusOK,
		gin.H{
			"source":   api.track.Source,
			"points":   api.track.Len(),
			"skipped":  len(api.skipped),
			"lengthKm": length.LengthKm,
			"bounds": gin.H{
				"minLat": bounds.MinLat,
				"minLon": bounds.MinLon,
				"maxLat": bounds.MaxLat,
				"maxLon": bounds.MaxLon,
			},
		},
	)
}

func floatQuery(c *gin.Context, name string) (float64, bool) {
	v, err := strconv.ParseFloat(c.Query(name), 64)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid parameter '%s'", name)
		return 0, false
	}

	return v, true
}
