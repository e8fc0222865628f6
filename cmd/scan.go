package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"gitlab.com/begraf/spur/config"
	"gitlab.com/begraf/spur/filesystem"
	"gitlab.com/begraf/spur/geoquery"
	"gitlab.com/begraf/spur/geotrack"
)

// scanCmd lists the track files below the given roots with a short summary.
var scanCmd = &cobra.Command{
	Use:   "scan <file-or-directory>...",
	Short: "List track files and summarize their contents",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScanCmd,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScanCmd(cmd *cobra.Command, args []string) error {
	extensions := append(config.GPXExtensions(), config.NMEAExtensions()...)

	paths, err := filesystem.GatherFiles(args, extensions)
	if err != nil {
		return err
	}

	for _, path := range paths {
		track, _, err := geotrack.Load(path)
		if err != nil {
			log.Printf("skipping '%s': %s", path, err)
			continue
		}

		length := geoquery.New(track).PathLength()
		fmt.Printf("%s: %d points, %.2f km\n", path, track.Len(), length.LengthKm)
	}

	return nil
}
