package cmd

import (
	"github.com/spf13/cobra"

	"gitlab.com/begraf/spur/cmd/serve"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve <track-file>",
	Short: "Serve a track and its queries over HTTP",
	Args:  cobra.ExactArgs(1),
	RunE:  serve.RunServeCmd,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("address", "a", "", "Listen address")
}
