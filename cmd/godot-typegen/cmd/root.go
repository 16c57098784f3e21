// Package cmd wires the godot-typegen CLI: the root command runs the full
// generation pipeline, subcommands cover freshness checking, rules-table
// inspection, and version reporting.
package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/godot-bevy/typegen"
	"github.com/godot-bevy/typegen/config"
	"github.com/godot-bevy/typegen/errors"
	"github.com/godot-bevy/typegen/logger"
	"github.com/godot-bevy/typegen/taxonomy"
)

var (
	flagConfig   string
	flagVerbose  int
	flagJSONLogs bool
)

var rootCmd = &cobra.Command{
	Use:   "godot-typegen",
	Short: "Generate godot-bevy node type markers from the Godot extension API",
	Long: `godot-typegen - node type generation for godot-bevy.

Runs the Godot editor headless to dump its extension API, derives the
taggable Node hierarchy from it, and regenerates the four artifacts the
godot-bevy scene tree plugin consumes:

  godot-bevy/src/interop/node_markers.rs
  godot-bevy/src/plugins/scene_tree/node_type_checking_generated.rs
  godot-bevy/src/plugins/scene_tree/node_type_strings_generated.rs
  addons/godot-bevy/optimized_scene_tree_watcher.gd

All four files are written together or not at all, so the generated set
never mixes two schema versions.

Examples:
  godot-typegen                          # Full run against ./extension_api.json
  godot-typegen --project-root ~/gb      # Run against another checkout
  godot-typegen --skip-dump              # Reuse the existing schema dump
  godot-typegen --godot-bin "flatpak run org.godotengine.Godot"
  godot-typegen check                    # CI freshness gate`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Initialize(flagVerbose, flagJSONLogs); err != nil {
			return errors.Wrap(err, "initializing logger")
		}
		return nil
	},
	RunE: runGenerate,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default ./godot-typegen.toml)")
	pf.CountVarP(&flagVerbose, "verbose", "v", "Increase output verbosity (-v, -vv, -vvv)")
	pf.BoolVar(&flagJSONLogs, "json-logs", false, "Emit logs as JSON instead of console output")
	pf.String("project-root", "", "godot-bevy repository root (default \".\")")
	pf.String("api-file", "", "Extension API dump path (default <project-root>/extension_api.json)")
	pf.String("rules", "", "TOML rules file overlaying the built-in tables")
	pf.Bool("skip-dump", false, "Reuse the existing schema dump instead of running the engine")
	pf.String("godot-bin", "", "Godot editor command (default: try godot, godot4)")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the CLI and returns the process exit code: 0 on success,
// 1 on failure or stale artifacts, 2 when a check could not complete.
func Execute() int {
	defer logger.Cleanup()

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	pterm.Error.Println(err.Error())
	for _, hint := range errors.GetAllHints(err) {
		pterm.Info.Println(hint)
	}

	switch {
	case errors.Is(err, errors.ErrStale):
		return 1
	case errors.Is(err, errCheckFailed):
		return 2
	default:
		return 1
	}
}

// loadConfig resolves settings from defaults, the config file, GDTYPEGEN_
// environment variables, and any flags set on cmd, in ascending precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.NewViper()
	if err := config.ReadConfigFile(v, flagConfig); err != nil {
		return nil, err
	}
	if err := bindFlags(v, cmd); err != nil {
		return nil, err
	}
	return config.LoadWithViper(v)
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	bindings := map[string]string{
		"project_root": "project-root",
		"api_file":     "api-file",
		"rules_file":   "rules",
		"skip_dump":    "skip-dump",
		"godot_bin":    "godot-bin",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return errors.Wrapf(err, "binding flag --%s", flag)
		}
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	pipeline := typegen.New(cfg, logger.ComponentLogger("pipeline"))
	summary, err := pipeline.Run(cmd.Context())
	if err != nil {
		return err
	}

	printSummary(summary)
	return nil
}

// printSummary renders the human-readable run report. Logs go to stderr;
// this report owns stdout.
func printSummary(s *typegen.Summary) {
	pterm.Success.Printf("Generated %d node types from %s in %s\n",
		s.Members, s.EngineName, s.Duration.Round(time.Millisecond))

	counts := make([]string, 0, len(taxonomy.CategoryOrder))
	for _, cat := range taxonomy.CategoryOrder {
		counts = append(counts, fmt.Sprintf("%s: %d", cat, s.CategoryCounts[cat]))
	}
	pterm.Info.Printf("Categories: %s\n", strings.Join(counts, "  "))
	if s.Gated > 0 {
		pterm.Info.Printf("Version gated: %d types\n", s.Gated)
	}

	for _, a := range s.Artifacts {
		pterm.Printf("  %s %s (%s)\n", pterm.Green("✓"), a.Path, humanSize(a.Size))
	}

	for _, stale := range s.StaleOverrides {
		pterm.Warning.Printf("Stale %s entry: %s is not in this schema\n", stale.Table, stale.Class)
	}

	if s.Wiring == typegen.WiringNeeded {
		pterm.Warning.Println("plugin.rs does not call the generated dispatcher yet; see the log for wiring steps")
	}
}

func humanSize(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}
