package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"gitlab.com/begraf/spur/config"
	"gitlab.com/begraf/spur/filesystem"
	"gitlab.com/begraf/spur/geotrack"
	"gitlab.com/begraf/spur/mapcache"
	"gitlab.com/begraf/spur/mapdata"
)

// runCmd drives the full lifecycle: load the track, run the query battery
// and persist the snapshot.
var runCmd = &cobra.Command{
	Use:   "run <track-file>",
	Short: "Load a track, run the query battery and write the snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunCmd,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("flip", false, "Reverse the waypoint order")
	runCmd.Flags().Float64("start-lat", 0, "Latitude of a start position prepended to the track")
	runCmd.Flags().Float64("start-lon", 0, "Longitude of a start position prepended to the track")
	runCmd.Flags().Float64("margin", config.DefaultBoundsMargin(), "Bounding box margin in degrees")
	runCmd.Flags().Bool("force", false, "Re-parse even when a fresh snapshot exists")
	runCmd.Flags().String("report", "", "Write skipped-record diagnostics to the given YAML file")

	_ = viper.BindPFlag(config.KeyBoundsMargin, runCmd.Flags().Lookup("margin"))
}

func runRunCmd(cmd *cobra.Command, args []string) error {
	trackFilePath := filesystem.Abs(args[0])

	force, _ := cmd.Flags().GetBool("force")
	if !force && mapdata.CacheIsFresh(trackFilePath) {
		cachePath := mapdata.CachePath(trackFilePath)
		track, err := mapcache.Load(cachePath)
		if err != nil {
			log.Printf("stale or unreadable snapshot, re-parsing: %s", err)
		} else {
			log.Printf("snapshot '%s' is fresh (%d points), nothing to do", cachePath, track.Len())
			return nil
		}
	}

	var opts []mapdata.Option

	if flip, _ := cmd.Flags().GetBool("flip"); flip {
		opts = append(opts, mapdata.WithFlip())
	}

	if cmd.Flags().Changed("start-lat") || cmd.Flags().Changed("start-lon") {
		lat, _ := cmd.Flags().GetFloat64("start-lat")
		lon, _ := cmd.Flags().GetFloat64("start-lon")
		opts = append(opts, mapdata.WithStartPosition(lat, lon))
	}

	m, err := mapdata.New(trackFilePath, opts...)
	if err != nil {
		return err
	}

	log.Printf("loaded %d points from '%s' (%d records skipped)",
		m.Track().Len(), trackFilePath, len(m.Skipped()))

	if _, err := m.RunQueries(); err != nil {
		return err
	}

	cachePath, err := m.SaveToCache()
	if err != nil {
		return err
	}

	log.Printf("snapshot written to '%s'", cachePath)

	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		if err := writeDiagnosticsReport(m.Track(), m.Skipped(), reportPath); err != nil {
			return err
		}
		log.Printf("diagnostics report written to '%s'", reportPath)
	}

	return nil
}

type diagnosticsReport struct {
	Source  string                   `yaml:"source"`
	Loaded  int                      `yaml:"loaded"`
	Skipped []geotrack.SkippedRecord `yaml:"skipped"`
}

func writeDiagnosticsReport(track *geotrack.Track, skipped []geotrack.SkippedRecord, path string) error {
	report := diagnosticsReport{
		Source:  track.Source,
		Loaded:  track.Len(),
		Skipped: skipped,
	}

	payloadBytes, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode diagnostics report: %w", err)
	}

	if err := filesystem.CreateDirectoryIfNotExists(filepath.Dir(path)); err != nil {
		return fmt.Errorf("could not ensure report directory: %w", err)
	}

	return os.WriteFile(path, payloadBytes, 0o666)
}
