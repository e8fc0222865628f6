package serve

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"gitlab.com/begraf/spur/config"
	"gitlab.com/begraf/spur/geoquery"
	"gitlab.com/begraf/spur/geotrack"
)

func RunServeCmd(cmd *cobra.Command, args []string) error {
	track, skipped, err := geotrack.Load(args[0])
	if err != nil {
		return err
	}

	address, _ := cmd.Flags().GetString("address")
	if address == "" {
		address = config.ServeAddress()
	}

	api := newServeAPI(track, skipped)

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/track", api.ServeTrack)
	r.GET("/nearest", api.ServeNearest)
	r.GET("/bbox", api.ServeBBox)
	r.GET("/stats", api.ServeStats)

	log.Printf("serving track '%s' (%d points) on %s", track.Source, track.Len(), address)

	if err = r.Run(address); err != nil {
		log.Fatal(err)
	}

	return nil
}

type serveAPI struct {
	track   *geotrack.Track
	skipped []geotrack.SkippedRecord
	engine  *geoquery.Engine
}

func newServeAPI(track *geotrack.Track, skipped []geotrack.SkippedRecord) *serveAPI {
	return &serveAPI{
		track:   track,
		skipped: skipped,
		engine:  geoquery.New(track),
	}
}
