// Package config resolves godot-typegen settings from defaults, an
// optional godot-typegen.toml, GDTYPEGEN_-prefixed environment variables,
// and the flags the cmd layer binds on top.
package config

import "path/filepath"

// Config is the resolved tool configuration.
type Config struct {
	// ProjectRoot is the consumer repository root; artifact paths and the
	// default schema location hang off it.
	ProjectRoot string `mapstructure:"project_root"`

	// APIFile locates the extension API schema dump. Empty means
	// <project_root>/extension_api.json, the name the engine itself uses.
	APIFile string `mapstructure:"api_file"`

	// RulesFile is an optional TOML overlay extending the built-in
	// exclusion, gate, and name tables.
	RulesFile string `mapstructure:"rules_file"`

	// SkipDump reuses the existing schema file instead of running the
	// engine. The offline and CI path.
	SkipDump bool `mapstructure:"skip_dump"`

	// GodotBin is the engine invocation, shellquote-split so it may carry
	// flags ("flatpak run org.godotengine.Godot"). Empty tries the
	// well-known binary names.
	GodotBin string `mapstructure:"godot_bin"`

	Output OutputConfig `mapstructure:"output"`
}

// OutputConfig overrides artifact destinations. Empty fields use the
// standard godot-bevy repo layout. Relative overrides resolve against
// ProjectRoot.
type OutputConfig struct {
	Markers        string `mapstructure:"markers"`
	TypeChecking   string `mapstructure:"type_checking"`
	StringDispatch string `mapstructure:"string_dispatch"`
	Watcher        string `mapstructure:"watcher"`
	Plugin         string `mapstructure:"plugin"` // consumer file the verifier inspects
}

// ResolvedAPIFile returns the schema path, defaulting to the engine's
// fixed dump name under the project root.
func (c *Config) ResolvedAPIFile() string {
	if c.APIFile != "" {
		return c.resolve(c.APIFile)
	}
	return filepath.Join(c.ProjectRoot, "extension_api.json")
}

// MarkersPath returns the marker-declarations destination.
func (c *Config) MarkersPath() string {
	return c.artifactPath(c.Output.Markers,
		"godot-bevy", "src", "interop", "node_markers.rs")
}

// TypeCheckingPath returns the reflective-dispatcher destination.
func (c *Config) TypeCheckingPath() string {
	return c.artifactPath(c.Output.TypeChecking,
		"godot-bevy", "src", "plugins", "scene_tree", "node_type_checking_generated.rs")
}

// StringDispatchPath returns the string-keyed dispatcher destination. It
// must stay a sibling of the type-checking file; that file re-exports it
// by module path.
func (c *Config) StringDispatchPath() string {
	return c.artifactPath(c.Output.StringDispatch,
		"godot-bevy", "src", "plugins", "scene_tree", "node_type_strings_generated.rs")
}

// WatcherPath returns the GDScript watcher destination inside the addon.
func (c *Config) WatcherPath() string {
	return c.artifactPath(c.Output.Watcher,
		"addons", "godot-bevy", "optimized_scene_tree_watcher.gd")
}

// PluginPath returns the consumer file the integration verifier reads.
func (c *Config) PluginPath() string {
	return c.artifactPath(c.Output.Plugin,
		"godot-bevy", "src", "plugins", "scene_tree", "plugin.rs")
}

func (c *Config) artifactPath(override string, defaults ...string) string {
	if override != "" {
		return c.resolve(override)
	}
	return filepath.Join(append([]string{c.ProjectRoot}, defaults...)...)
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.ProjectRoot, path)
}
