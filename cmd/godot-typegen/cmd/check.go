package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/godot-bevy/typegen"
	"github.com/godot-bevy/typegen/errors"
	"github.com/godot-bevy/typegen/logger"
)

// errCheckFailed marks errors where the freshness check itself broke, so
// Execute can exit 2 instead of the stale-artifacts code.
var errCheckFailed = errors.New("check could not complete")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether the generated artifacts are up to date",
	Long: `Check whether the committed artifacts match a fresh render.

Renders all four artifacts from the schema dump already on disk and
compares byte-for-byte with the working tree. The engine is never run and
nothing is written, so this is safe as a CI gate against schema or rules
changes whose regenerated output was not committed.

Exit codes:
  0 - Artifacts are up to date
  1 - Artifacts are stale or missing (each one listed)
  2 - The check itself could not run

Examples:
  godot-typegen check
  godot-typegen check --project-root ~/src/godot-bevy`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return errors.Mark(err, errCheckFailed)
	}

	pipeline := typegen.New(cfg, logger.ComponentLogger("check"))
	result, err := pipeline.Check()
	if err != nil {
		return errors.Mark(err, errCheckFailed)
	}

	if result.Clean() {
		pterm.Success.Printf("All %d artifacts are up to date\n", len(result.Fresh))
		return nil
	}

	for _, path := range result.Stale {
		pterm.Warning.Printf("stale: %s\n", path)
	}
	for _, path := range result.Missing {
		pterm.Warning.Printf("missing: %s\n", path)
	}
	return result.Err()
}
