package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"gitlab.com/begraf/spur/geotrack"
	"gitlab.com/begraf/spur/mapcache"
	"gitlab.com/begraf/spur/mapdata"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Write and inspect track snapshots",
}

var cacheWriteCmd = &cobra.Command{
	Use:   "write <track-file>",
	Short: "Parse a track file and write its snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheWriteCmd,
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info <snapshot-file>",
	Short: "Show the header of a snapshot file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheInfoCmd,
}

var cacheVerifyCmd = &cobra.Command{
	Use:   "verify <snapshot-file>",
	Short: "Verify a snapshot's integrity by fully restoring it",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheVerifyCmd,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheWriteCmd)
	cacheCmd.AddCommand(cacheInfoCmd)
	cacheCmd.AddCommand(cacheVerifyCmd)
}

func runCacheWriteCmd(cmd *cobra.Command, args []string) error {
	trackFilePath := args[0]

	track, _, err := geotrack.Load(trackFilePath)
	if err != nil {
		return err
	}

	cachePath := mapdata.CachePath(trackFilePath)
	if err := mapcache.Save(track, cachePath); err != nil {
		return err
	}

	log.Printf("snapshot written to '%s' (%d points)", cachePath, track.Len())

	return nil
}

func runCacheInfoCmd(cmd *cobra.Command, args []string) error {
	header, err := mapcache.ReadHeader(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("id:      %s\n", header.ID)
	fmt.Printf("version: %d\n", header.Version)
	fmt.Printf("created: %s\n", header.CreatedAt)
	fmt.Printf("source:  %s\n", header.SourcePath)
	fmt.Printf("points:  %d\n", header.PointCount)

	return nil
}

func runCacheVerifyCmd(cmd *cobra.Command, args []string) error {
	track, err := mapcache.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("snapshot ok, %d points from '%s'\n", track.Len(), track.Source)

	return nil
}
