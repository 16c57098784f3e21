package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := LoadWithViper(NewViper())
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.ProjectRoot)
	assert.Empty(t, cfg.APIFile)
	assert.Empty(t, cfg.RulesFile)
	assert.False(t, cfg.SkipDump)
	assert.Empty(t, cfg.GodotBin)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("GDTYPEGEN_SKIP_DUMP", "true")
	t.Setenv("GDTYPEGEN_GODOT_BIN", "godot4 --rendering-driver dummy")
	t.Setenv("GDTYPEGEN_PROJECT_ROOT", "/srv/game")

	cfg, err := LoadWithViper(NewViper())
	require.NoError(t, err)

	assert.True(t, cfg.SkipDump)
	assert.Equal(t, "godot4 --rendering-driver dummy", cfg.GodotBin)
	assert.Equal(t, "/srv/game", cfg.ProjectRoot)
}

func TestReadConfigFileExplicit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typegen.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
project_root = "/srv/game"
skip_dump = true

[output]
markers = "src/markers.rs"
`), 0o644))

	v := NewViper()
	require.NoError(t, ReadConfigFile(v, path))
	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, "/srv/game", cfg.ProjectRoot)
	assert.True(t, cfg.SkipDump)
	assert.Equal(t, "src/markers.rs", cfg.Output.Markers)
}

func TestReadConfigFileExplicitMissing(t *testing.T) {
	err := ReadConfigFile(NewViper(), filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.toml")
}

func TestArtifactPaths(t *testing.T) {
	cfg := &Config{ProjectRoot: "/srv/game"}

	assert.Equal(t, "/srv/game/extension_api.json", cfg.ResolvedAPIFile())
	assert.Equal(t, "/srv/game/godot-bevy/src/interop/node_markers.rs", cfg.MarkersPath())
	assert.Equal(t,
		"/srv/game/godot-bevy/src/plugins/scene_tree/node_type_checking_generated.rs",
		cfg.TypeCheckingPath())
	assert.Equal(t,
		"/srv/game/godot-bevy/src/plugins/scene_tree/node_type_strings_generated.rs",
		cfg.StringDispatchPath())
	assert.Equal(t,
		"/srv/game/addons/godot-bevy/optimized_scene_tree_watcher.gd",
		cfg.WatcherPath())
	assert.Equal(t,
		"/srv/game/godot-bevy/src/plugins/scene_tree/plugin.rs",
		cfg.PluginPath())

	// The dispatcher pair must share a directory; one re-exports the other
	// by module path.
	assert.Equal(t,
		filepath.Dir(cfg.TypeCheckingPath()),
		filepath.Dir(cfg.StringDispatchPath()))
}

func TestArtifactPathOverrides(t *testing.T) {
	cfg := &Config{
		ProjectRoot: "/srv/game",
		APIFile:     "dumps/api.json",
		Output: OutputConfig{
			Markers: "/abs/markers.rs",
			Watcher: "scripts/watcher.gd",
		},
	}

	assert.Equal(t, "/srv/game/dumps/api.json", cfg.ResolvedAPIFile())
	assert.Equal(t, "/abs/markers.rs", cfg.MarkersPath())
	assert.Equal(t, "/srv/game/scripts/watcher.gd", cfg.WatcherPath())
}
