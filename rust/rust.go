// Package rust renders the Rust artifacts: marker component declarations
// and the two dispatchers that tag entities with them. Every emitter is a
// pure function over the taxonomy; file placement and writing live with
// the caller so idempotence is testable on strings.
package rust

import (
	"fmt"
	"sort"
	"strings"

	"github.com/godot-bevy/typegen/taxonomy"
)

// RegenerateCommand appears in every generated header so readers know how
// to refresh the file.
const RegenerateCommand = "godot-typegen"

// EntryPoint is the reflective dispatcher's public name. The integration
// verifier greps the consumer for it.
const EntryPoint = "add_comprehensive_node_type_markers"

// StringEntryPoint is the string-keyed fast path's public name.
const StringEntryPoint = "add_node_type_markers_from_string"

// header is the shared generated-file preamble. Deliberately timestamp
// free: regenerating from an unchanged schema must be byte-identical.
func header(t *taxonomy.NodeTaxonomy) string {
	var sb strings.Builder
	sb.WriteString("// Code generated by godot-typegen. DO NOT EDIT.\n")
	sb.WriteString(fmt.Sprintf("// Regenerate with: %s\n", RegenerateCommand))
	sb.WriteString(fmt.Sprintf("// Engine: %s\n", t.EngineName()))
	return sb.String()
}

// markerName returns the marker component identifier for an engine class.
// Markers keep the engine spelling; binding-name fixes apply only to
// reflective probe targets.
func markerName(class string) string {
	return class + "Marker"
}

// memberArms returns the bucket members that get their own arms. Base
// classes have dedicated arms outside the member loops, so they are
// never emitted twice.
func memberArms(t *taxonomy.NodeTaxonomy, cat taxonomy.Category) []string {
	var out []string
	for _, class := range t.MembersOf(cat) {
		if taxonomy.BaseClasses[class] {
			continue
		}
		out = append(out, class)
	}
	return out
}

type gateGroup struct {
	gate    taxonomy.Gate
	classes []string
}

// splitGated partitions classes into ungated members and per-feature
// groups, features sorted for stable output.
func splitGated(t *taxonomy.NodeTaxonomy, classes []string) ([]string, []gateGroup) {
	var regular []string
	byFeature := map[string]*gateGroup{}
	for _, class := range classes {
		gate, ok := t.Gate(class)
		if !ok {
			regular = append(regular, class)
			continue
		}
		group, seen := byFeature[gate.Feature]
		if !seen {
			group = &gateGroup{gate: gate}
			byFeature[gate.Feature] = group
		}
		group.classes = append(group.classes, class)
	}

	features := make([]string, 0, len(byFeature))
	for feature := range byFeature {
		features = append(features, feature)
	}
	sort.Strings(features)

	groups := make([]gateGroup, 0, len(features))
	for _, feature := range features {
		groups = append(groups, *byFeature[feature])
	}
	return regular, groups
}
