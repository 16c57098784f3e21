package taxonomy

import (
	"sort"
	"time"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/zap"

	"github.com/godot-bevy/typegen/errors"
	"github.com/godot-bevy/typegen/godotapi"
	"github.com/godot-bevy/typegen/logger"
)

// StaleOverride records a rules-table entry naming a class the current
// schema does not contain. Stale entries never fail a run; they surface in
// logs and the run summary so the tables get pruned eventually.
type StaleOverride struct {
	Table string
	Class string
}

// NodeTaxonomy is the single model all four artifacts render from.
// Building it is the only place filtering, categorization, and gate
// resolution happen; emitters only read.
type NodeTaxonomy struct {
	engineVersion *semver.Version
	engineName    string

	members    []string
	memberSet  map[string]bool
	parents    map[string]string
	categories map[string]Category
	byCategory map[Category][]string
	gates      map[string]Gate
	rustNames  map[string]string
	stale      []StaleOverride
}

// Build derives the taxonomy from a parsed schema. The returned model is
// immutable; subsequent edits to rules do not affect it.
func Build(api *godotapi.API, rules *Rules, log *zap.SugaredLogger) (*NodeTaxonomy, error) {
	start := time.Now()
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	engineVersion, err := api.Header.Version()
	if err != nil {
		return nil, errors.Wrap(err, "reading engine version from schema header")
	}

	graph := godotapi.BuildGraph(api)
	subtree := graph.Descendants(RootClass)
	members := Filter(subtree, rules)
	if len(members) == 0 {
		return nil, errors.Wrapf(errors.ErrSchemaMalformed,
			"no taggable classes under %s after filtering", RootClass)
	}
	log.Debugw("filtered node subtree",
		logger.FieldCount, len(members),
		"dropped", len(subtree)-len(members))

	t := &NodeTaxonomy{
		engineVersion: engineVersion,
		engineName:    api.Header.FullName(),
		members:       members,
		memberSet:     make(map[string]bool, len(members)),
		parents:       make(map[string]string, len(members)),
		categories:    make(map[string]Category, len(members)),
		byCategory:    make(map[Category][]string),
		gates:         make(map[string]Gate),
		rustNames:     make(map[string]string, len(rules.RustNames)),
	}
	for _, class := range members {
		t.memberSet[class] = true
		if parent, ok := graph.Parent(class); ok {
			t.parents[class] = parent
		}
		cat := Categorize(graph, class)
		t.categories[class] = cat
		t.byCategory[cat] = append(t.byCategory[cat], class)
	}

	if err := t.resolveGates(rules, log); err != nil {
		return nil, err
	}
	t.resolveRustNames(rules, log)

	log.Infow("Built node taxonomy",
		logger.FieldEngine, t.engineName,
		logger.FieldCount, len(t.members),
		"gated", len(t.gates),
		"stale_overrides", len(t.stale),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return t, nil
}

// resolveGates attaches gates to members. A gated class missing from the
// schema is expected when the engine predates the gate's release and stale
// when it does not.
func (t *NodeTaxonomy) resolveGates(rules *Rules, log *zap.SugaredLogger) error {
	for _, gate := range rules.Gates {
		min, err := gate.Min()
		if err != nil {
			return err
		}
		expectPresent := !t.engineVersion.LessThan(min)
		for _, class := range gate.Classes {
			switch {
			case t.memberSet[class]:
				t.gates[class] = gate
			case expectPresent:
				t.stale = append(t.stale, StaleOverride{Table: "gates", Class: class})
				log.Warnw("gate lists a class the schema does not contain",
					logger.FieldGate, gate.Feature,
					logger.FieldClass, class,
					logger.FieldEngine, t.engineName)
			default:
				log.Debugw("gated class not in this engine yet",
					logger.FieldGate, gate.Feature,
					logger.FieldClass, class)
			}
		}
	}
	return nil
}

// resolveRustNames keeps overrides for members and flags the rest as
// stale. Iteration is sorted so warning order is stable across runs.
func (t *NodeTaxonomy) resolveRustNames(rules *Rules, log *zap.SugaredLogger) {
	overridden := make([]string, 0, len(rules.RustNames))
	for class := range rules.RustNames {
		overridden = append(overridden, class)
	}
	sort.Strings(overridden)
	for _, class := range overridden {
		if !t.memberSet[class] {
			t.stale = append(t.stale, StaleOverride{Table: "rust_names", Class: class})
			log.Warnw("binding-name override for a class the schema does not contain",
				logger.FieldClass, class)
			continue
		}
		t.rustNames[class] = rules.RustNames[class]
	}
}

// EngineVersion returns the schema's engine version.
func (t *NodeTaxonomy) EngineVersion() *semver.Version { return t.engineVersion }

// EngineName returns the human-readable engine build name, e.g.
// "Godot Engine v4.4.1.stable.official".
func (t *NodeTaxonomy) EngineName() string { return t.engineName }

// Members returns all taxonomy members in sorted order. Callers must not
// mutate the returned slice.
func (t *NodeTaxonomy) Members() []string { return t.members }

// Contains reports whether class survived filtering.
func (t *NodeTaxonomy) Contains(class string) bool { return t.memberSet[class] }

// Parent returns the schema parent of a member.
func (t *NodeTaxonomy) Parent(class string) (string, bool) {
	parent, ok := t.parents[class]
	return parent, ok
}

// Category returns the dispatch bucket of a member. Non-members report
// the universal bucket; callers gate on Contains first when it matters.
func (t *NodeTaxonomy) Category(class string) Category {
	if cat, ok := t.categories[class]; ok {
		return cat
	}
	return CategoryUniversal
}

// MembersOf returns the sorted members of one bucket.
func (t *NodeTaxonomy) MembersOf(cat Category) []string { return t.byCategory[cat] }

// CategoryCounts returns the bucket sizes for run summaries.
func (t *NodeTaxonomy) CategoryCounts() map[Category]int {
	counts := make(map[Category]int, len(t.byCategory))
	for cat, classes := range t.byCategory {
		counts[cat] = len(classes)
	}
	return counts
}

// Gate returns the feature gate covering a member, if any.
func (t *NodeTaxonomy) Gate(class string) (Gate, bool) {
	gate, ok := t.gates[class]
	return gate, ok
}

// GatedCount returns how many members sit behind a feature gate.
func (t *NodeTaxonomy) GatedCount() int { return len(t.gates) }

// RustName returns the godot-rust struct name for a member, applying the
// override table with identity as the default.
func (t *NodeTaxonomy) RustName(class string) string {
	if fixed, ok := t.rustNames[class]; ok {
		return fixed
	}
	return class
}

// DispatchNames returns the exact set of engine class names every
// dispatching artifact must handle: the base classes with dedicated arms
// plus all members outside them. Artifacts that diverge from this set
// cannot stay mutually consistent, so tests compare against it.
func (t *NodeTaxonomy) DispatchNames() []string {
	names := make(map[string]bool, len(t.members)+len(BaseClasses))
	for base := range BaseClasses {
		names[base] = true
	}
	for _, member := range t.members {
		names[member] = true
	}
	out := make([]string, 0, len(names))
	for name := range names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// StaleOverrides returns rules entries naming classes absent from this
// schema, in resolution order.
func (t *NodeTaxonomy) StaleOverrides() []StaleOverride { return t.stale }
