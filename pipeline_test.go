package typegen

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/godot-bevy/typegen/config"
	"github.com/godot-bevy/typegen/errors"
)

// testParents is a miniature class tree with every categorization shape:
// direct children per branch, a deep universal chain, a gated class, a
// class with a rust name fix, and entries the default rules exclude.
var testParents = map[string]string{
	"Node":             "Object",
	"Node3D":           "Node",
	"CanvasItem":       "Node",
	"Node2D":           "CanvasItem",
	"Control":          "CanvasItem",
	"Camera3D":         "Node3D",
	"MeshInstance3D":   "Node3D",
	"LookAtModifier3D": "Node3D",
	"Sprite2D":         "Node2D",
	"Area2D":           "Node2D",
	"Button":           "Control",
	"Label":            "Control",
	"Timer":            "Node",
	"HTTPRequest":      "Node",
	"AnimationMixer":   "Node",
	"AnimationPlayer":  "AnimationMixer",
	"MissingNode":      "Node",
	"EditorPlugin":     "Node",
	"RefCounted":       "Object",
	"ResourceImporter": "RefCounted",
}

func writeSchema(t *testing.T, dir string) string {
	t.Helper()

	classes := []map[string]string{{"name": "Object"}}
	names := make([]string, 0, len(testParents))
	for name := range testParents {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		classes = append(classes, map[string]string{"name": name, "inherits": testParents[name]})
	}

	dump := map[string]any{
		"header": map[string]any{
			"version_major":     4,
			"version_minor":     4,
			"version_patch":     1,
			"version_status":    "stable",
			"version_full_name": "Godot Engine v4.4.1.stable.official",
		},
		"classes": classes,
	}
	data, err := json.Marshal(dump)
	require.NoError(t, err)

	path := filepath.Join(dir, "extension_api.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// testConfig sets up a project root holding a schema dump, configured for
// offline generation.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	writeSchema(t, root)
	return &config.Config{ProjectRoot: root, SkipDump: true}
}

func testPipeline(t *testing.T) (*Pipeline, *config.Config) {
	t.Helper()
	cfg := testConfig(t)
	return New(cfg, zap.NewNop().Sugar()), cfg
}

func TestRunCommitsAllArtifacts(t *testing.T) {
	p, cfg := testPipeline(t)

	summary, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Artifacts, 4)
	for _, a := range summary.Artifacts {
		data, err := os.ReadFile(a.Path)
		require.NoError(t, err, "artifact %s should be on disk", a.Name)
		assert.Len(t, data, a.Size)
		assert.NoFileExists(t, a.Path+".tmp")
	}

	markers, err := os.ReadFile(cfg.MarkersPath())
	require.NoError(t, err)
	assert.Contains(t, string(markers), "pub struct Camera3DMarker;")
	assert.Contains(t, string(markers), "pub struct HTTPRequestMarker;")
	assert.NotContains(t, string(markers), "MissingNodeMarker")

	watcher, err := os.ReadFile(cfg.WatcherPath())
	require.NoError(t, err)
	assert.Contains(t, string(watcher), "class_name OptimizedSceneTreeWatcher")
}

func TestRunSummary(t *testing.T) {
	p, _ := testPipeline(t)

	summary, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Godot Engine v4.4.1.stable.official", summary.EngineName)
	assert.Equal(t, "4.4.1", summary.EngineVersion)
	assert.Positive(t, summary.Members)
	assert.Equal(t, 1, summary.Gated, "LookAtModifier3D sits behind api-4-4")
	assert.Empty(t, summary.StaleOverrides)
	assert.Equal(t, WiringUnknown, summary.Wiring, "temp project has no plugin.rs")
	assert.Positive(t, summary.Duration)

	total := 0
	for _, n := range summary.CategoryCounts {
		total += n
	}
	assert.Equal(t, summary.Members, total, "every member lands in exactly one category")
}

func TestRunTwiceIsByteIdentical(t *testing.T) {
	p, cfg := testPipeline(t)

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	paths := []string{
		cfg.MarkersPath(), cfg.TypeCheckingPath(),
		cfg.StringDispatchPath(), cfg.WatcherPath(),
	}
	first := make(map[string][]byte, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		first[path] = data
	}

	_, err = p.Run(context.Background())
	require.NoError(t, err)

	for _, path := range paths {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, first[path], data, "%s should not change between identical runs", path)
	}
}

// TestDispatchSurfacesAgree pins the property that makes the artifacts a
// set: the string dispatcher's match arms, the GDScript classifier's
// returnable names, and the taxonomy's dispatch names are the same names.
// A class reachable through one surface but not another would attach
// different markers depending on which code path noticed the node.
func TestDispatchSurfacesAgree(t *testing.T) {
	p, cfg := testPipeline(t)

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	armRe := regexp.MustCompile(`"([A-Za-z0-9_]+)" =>`)
	returnRe := regexp.MustCompile(`return "([A-Za-z0-9_]+)"`)

	rustNames := parseNames(t, cfg.StringDispatchPath(), armRe)
	gdNames := parseNames(t, cfg.WatcherPath(), returnRe)
	assert.Equal(t, rustNames, gdNames,
		"string dispatcher and GDScript classifier must cover the same names")

	tax, err := p.buildTaxonomy(cfg.ResolvedAPIFile())
	require.NoError(t, err)
	assert.Equal(t, tax.DispatchNames(), rustNames)
}

func parseNames(t *testing.T, path string, re *regexp.Regexp) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, m := range re.FindAllStringSubmatch(string(data), -1) {
		seen[m[1]] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func TestRunFailsWithoutSchema(t *testing.T) {
	cfg := &config.Config{ProjectRoot: t.TempDir(), SkipDump: true}
	p := New(cfg, zap.NewNop().Sugar())

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSchemaMissing))

	assert.NoFileExists(t, cfg.MarkersPath(), "failed runs must not write artifacts")
}

func TestRunFailsOnMalformedSchema(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "extension_api.json"), []byte("{not json"), 0o644))
	cfg := &config.Config{ProjectRoot: root, SkipDump: true}
	p := New(cfg, zap.NewNop().Sugar())

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSchemaMalformed))
}

func TestRunAppliesRulesFile(t *testing.T) {
	p, cfg := testPipeline(t)
	rulesPath := filepath.Join(cfg.ProjectRoot, "typegen-rules.toml")
	require.NoError(t, os.WriteFile(rulesPath,
		[]byte("excluded_classes = [\"Camera3D\"]\n"), 0o644))
	cfg.RulesFile = rulesPath

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	markers, err := os.ReadFile(cfg.MarkersPath())
	require.NoError(t, err)
	assert.NotContains(t, string(markers), "Camera3DMarker")
	assert.Contains(t, string(markers), "MeshInstance3DMarker",
		"overlay excludes only what it names")
}

func TestRunFailsOnBadRulesFile(t *testing.T) {
	p, cfg := testPipeline(t)
	cfg.RulesFile = filepath.Join(cfg.ProjectRoot, "missing-rules.toml")

	_, err := p.Run(context.Background())
	require.Error(t, err)
}

func TestNewWithNilLogger(t *testing.T) {
	p := New(testConfig(t), nil)
	require.NotNil(t, p.log)

	_, err := p.Run(context.Background())
	require.NoError(t, err)
}

func TestRenderCoversEveryConfiguredPath(t *testing.T) {
	p, cfg := testPipeline(t)
	tax, err := p.buildTaxonomy(cfg.ResolvedAPIFile())
	require.NoError(t, err)

	files := p.render(tax)
	got := make([]string, 0, len(files))
	for _, f := range files {
		got = append(got, f.path)
		assert.NotEmpty(t, f.content)
	}
	assert.ElementsMatch(t, []string{
		cfg.MarkersPath(), cfg.TypeCheckingPath(),
		cfg.StringDispatchPath(), cfg.WatcherPath(),
	}, got)
}
