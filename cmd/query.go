package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/begraf/spur/geoquery"
	"gitlab.com/begraf/spur/geotrack"
)

// queryCmd groups the single-shot query commands.
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run a single spatial query against a track file",
}

var queryNearestCmd = &cobra.Command{
	Use:   "nearest <track-file>",
	Short: "Find the track point nearest to a coordinate",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueryNearestCmd,
}

var queryBBoxCmd = &cobra.Command{
	Use:   "bbox <track-file>",
	Short: "List the track points inside a bounding box",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueryBBoxCmd,
}

var queryLengthCmd = &cobra.Command{
	Use:   "length <track-file>",
	Short: "Compute the cumulative great-circle length of a track",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueryLengthCmd,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.AddCommand(queryNearestCmd)
	queryCmd.AddCommand(queryBBoxCmd)
	queryCmd.AddCommand(queryLengthCmd)

	queryNearestCmd.Flags().Float64("lat", 0, "Query latitude")
	queryNearestCmd.Flags().Float64("lon", 0, "Query longitude")
	_ = queryNearestCmd.MarkFlagRequired("lat")
	_ = queryNearestCmd.MarkFlagRequired("lon")

	queryBBoxCmd.Flags().Float64("min-lat", -90, "Minimum latitude")
	queryBBoxCmd.Flags().Float64("min-lon", -180, "Minimum longitude")
	queryBBoxCmd.Flags().Float64("max-lat", 90, "Maximum latitude")
	queryBBoxCmd.Flags().Float64("max-lon", 180, "Maximum longitude")
}

func loadEngine(trackFilePath string) (*geoquery.Engine, *geotrack.Track, error) {
	track, _, err := geotrack.Load(trackFilePath)
	if err != nil {
		return nil, nil, err
	}

	return geoquery.New(track), track, nil
}

func runQueryNearestCmd(cmd *cobra.Command, args []string) error {
	engine, _, err := loadEngine(args[0])
	if err != nil {
		return err
	}

	lat, _ := cmd.Flags().GetFloat64("lat")
	lon, _ := cmd.Flags().GetFloat64("lon")

	result, err := engine.Nearest(lat, lon)
	if err != nil {
		return err
	}

	fmt.Println(result)

	return nil
}

func runQueryBBoxCmd(cmd *cobra.Command, args []string) error {
	engine, _, err := loadEngine(args[0])
	if err != nil {
		return err
	}

	minLat, _ := cmd.Flags().GetFloat64("min-lat")
	minLon, _ := cmd.Flags().GetFloat64("min-lon")
	maxLat, _ := cmd.Flags().GetFloat64("max-lat")
	maxLon, _ := cmd.Flags().GetFloat64("max-lon")

	result := engine.WithinBoundingBox(minLat, minLon, maxLat, maxLon)

	fmt.Println(result)
	for _, p := range result.Matches {
		fmt.Printf("  %.6f, %.6f\n", p.Lat, p.Lon)
	}

	return nil
}

func runQueryLengthCmd(cmd *cobra.Command, args []string) error {
	engine, _, err := loadEngine(args[0])
	if err != nil {
		return err
	}

	fmt.Println(engine.PathLength())

	return nil
}
