package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"gitlab.com/begraf/spur/config"
	"gitlab.com/begraf/spur/pathanalysis"
)

// analyzeCmd hands a track to the external path-planning tool. It does
// nothing unless analysis.command is configured.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <track-file>",
	Short: "Run the configured external path analysis tool on a track",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyzeCmd,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("output", "o", "path.out", "Output file name passed to the analysis tool")
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	if !config.HasAnalysisCommand() {
		return pathanalysis.ErrNotConfigured
	}

	outputName, _ := cmd.Flags().GetString("output")

	runner := pathanalysis.NewRunner(config.AnalysisCommand())
	if err := runner.Run(cmd.Context(), args[0], outputName); err != nil {
		return err
	}

	log.Printf("analysis finished, output in '%s'", outputName)

	return nil
}
