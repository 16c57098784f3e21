// Package typegen drives node type generation for godot-bevy.
//
// A Pipeline runs the whole flow: refresh the engine's extension_api.json
// dump (unless skipped), load it, build the node taxonomy, render the Rust
// and GDScript artifacts, commit them atomically, and verify that the
// consumer plugin actually calls the generated dispatcher.
//
// Rendering is pure. The same taxonomy always produces the same bytes, so
// Check can diff a fresh render against the committed artifacts without
// touching the engine or the filesystem beyond reads.
package typegen

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/godot-bevy/typegen/config"
	"github.com/godot-bevy/typegen/gdscript"
	"github.com/godot-bevy/typegen/godotapi"
	"github.com/godot-bevy/typegen/logger"
	"github.com/godot-bevy/typegen/rust"
	"github.com/godot-bevy/typegen/taxonomy"
)

// Pipeline generates all node type artifacts from one engine schema.
type Pipeline struct {
	cfg *config.Config
	log *zap.SugaredLogger
}

// New creates a pipeline over resolved configuration. A nil logger is
// replaced with a no-op logger.
func New(cfg *config.Config, log *zap.SugaredLogger) *Pipeline {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Pipeline{cfg: cfg, log: log}
}

// Artifact describes one committed output file.
type Artifact struct {
	Name string
	Path string
	Size int
}

// Summary reports what a run produced, for CLI display.
type Summary struct {
	EngineName     string
	EngineVersion  string
	Members        int
	CategoryCounts map[taxonomy.Category]int
	Gated          int
	StaleOverrides []taxonomy.StaleOverride
	Artifacts      []Artifact
	Wiring         WiringStatus
	Duration       time.Duration
}

// Run executes the full pipeline and commits all artifacts.
//
// A dump failure is fatal when a dump was requested, even if a previous
// schema file exists on disk; stale schemas produce artifacts that look
// plausible and drift silently. Pass SkipDump to reuse an existing dump.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()

	apiFile := p.cfg.ResolvedAPIFile()
	if p.cfg.SkipDump {
		p.log.Infow("Skipping engine dump, using existing schema", logger.FieldFile, apiFile)
	} else if err := godotapi.DumpExtensionAPI(ctx, p.cfg.GodotBin, apiFile, p.log); err != nil {
		return nil, err
	}

	tax, err := p.buildTaxonomy(apiFile)
	if err != nil {
		return nil, err
	}

	files := p.render(tax)
	if err := commitAll(files, p.log); err != nil {
		return nil, err
	}

	summary := p.summarize(tax, files)
	summary.Wiring = VerifyIntegration(p.cfg.PluginPath(), p.log)
	summary.Duration = time.Since(start)

	p.log.Infow("Generation complete",
		logger.FieldEngine, tax.EngineName(),
		logger.FieldCount, summary.Members,
		logger.FieldDurationMS, summary.Duration.Milliseconds(),
	)
	return summary, nil
}

// buildTaxonomy loads the schema and classifies every taggable node class,
// applying rules file overrides when configured.
func (p *Pipeline) buildTaxonomy(apiFile string) (*taxonomy.NodeTaxonomy, error) {
	api, err := godotapi.Load(apiFile)
	if err != nil {
		return nil, err
	}

	rules := taxonomy.DefaultRules()
	if p.cfg.RulesFile != "" {
		rules, err = taxonomy.LoadFile(p.cfg.RulesFile, rules, p.log)
		if err != nil {
			return nil, err
		}
	}

	return taxonomy.Build(api, rules, p.log)
}

// render produces every artifact from one taxonomy. Both Run and Check go
// through here so they can never disagree about content.
func (p *Pipeline) render(tax *taxonomy.NodeTaxonomy) []stagedFile {
	return []stagedFile{
		{name: "node markers", path: p.cfg.MarkersPath(), content: []byte(rust.Markers(tax))},
		{name: "type checking", path: p.cfg.TypeCheckingPath(), content: []byte(rust.TypeChecking(tax))},
		{name: "string dispatch", path: p.cfg.StringDispatchPath(), content: []byte(rust.StringDispatch(tax))},
		{name: "scene tree watcher", path: p.cfg.WatcherPath(), content: []byte(gdscript.Watcher(tax))},
	}
}

func (p *Pipeline) summarize(tax *taxonomy.NodeTaxonomy, files []stagedFile) *Summary {
	artifacts := make([]Artifact, 0, len(files))
	for _, f := range files {
		artifacts = append(artifacts, Artifact{Name: f.name, Path: f.path, Size: len(f.content)})
	}
	return &Summary{
		EngineName:     tax.EngineName(),
		EngineVersion:  tax.EngineVersion().String(),
		Members:        len(tax.Members()),
		CategoryCounts: tax.CategoryCounts(),
		Gated:          tax.GatedCount(),
		StaleOverrides: tax.StaleOverrides(),
		Artifacts:      artifacts,
	}
}
