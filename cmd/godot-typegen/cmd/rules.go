package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/godot-bevy/typegen/logger"
	"github.com/godot-bevy/typegen/taxonomy"
)

var rulesWritePath string

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the effective filtering, gating, and naming tables",
	Long: `Show the effective rules tables as TOML.

The tables steer which classes get markers (exclusion prefixes, excluded
classes, binding-unavailable classes), which sit behind cargo feature
gates, and how engine names map to godot-rust struct names. When --rules
points at an overlay file, the merged result is shown; otherwise the
built-in tables.

--write saves the same TOML to a file, the starting point for a project
rules overlay.

Examples:
  godot-typegen rules                          # Print built-in tables
  godot-typegen rules --rules my-rules.toml    # Print merged tables
  godot-typegen rules --write my-rules.toml    # Save a starter file`,
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().StringVar(&rulesWritePath, "write", "", "Write the effective tables to a TOML file instead of stdout")
}

func runRules(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	rules := taxonomy.DefaultRules()
	if cfg.RulesFile != "" {
		rules, err = taxonomy.LoadFile(cfg.RulesFile, rules, logger.ComponentLogger("rules"))
		if err != nil {
			return err
		}
	}

	if rulesWritePath != "" {
		if err := taxonomy.WriteFile(rulesWritePath, rules); err != nil {
			return err
		}
		pterm.Success.Printf("Wrote rules to %s\n", rulesWritePath)
		return nil
	}

	data, err := taxonomy.Render(rules)
	if err != nil {
		return err
	}
	fmt.Printf("# godot-typegen effective rules\n%s", data)
	return nil
}
