// Package pathanalysis wraps an external path-planning tool. The planner's
// internals are not modeled here; the contract is only that it takes a track
// file path and an output file name.
package pathanalysis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// ErrNotConfigured is returned when no planner command is configured.
var ErrNotConfigured = errors.New("no path analysis command configured")

// Runner invokes the configured planner executable.
type Runner struct {
	Command string
}

func NewRunner(command string) *Runner {
	return &Runner{Command: command}
}

// Run executes the planner against the given track file, writing its result
// to outputName. It fails before launching when the input file is missing.
func (r *Runner) Run(ctx context.Context, trackFilePath, outputName string) error {
	if r.Command == "" {
		return ErrNotConfigured
	}

	if _, err := os.Stat(trackFilePath); err != nil {
		return fmt.Errorf("analysis input: %w", err)
	}

	cmd := exec.CommandContext(ctx, r.Command, trackFilePath, outputName)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("run '%s': %w: %s", r.Command, err, output)
	}

	return nil
}
