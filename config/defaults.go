package config

import "github.com/spf13/viper"

// SetDefaults registers default values for all configuration options.
// Every key must appear here so environment variables and Unmarshal see
// the full key set.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("project_root", ".")
	v.SetDefault("api_file", "")   // <project_root>/extension_api.json
	v.SetDefault("rules_file", "") // built-in tables only
	v.SetDefault("skip_dump", false)
	v.SetDefault("godot_bin", "") // try godot, then godot4

	// Artifact destinations; empty = standard godot-bevy layout
	v.SetDefault("output.markers", "")
	v.SetDefault("output.type_checking", "")
	v.SetDefault("output.string_dispatch", "")
	v.SetDefault("output.watcher", "")
	v.SetDefault("output.plugin", "")
}
