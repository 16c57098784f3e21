package rust

import (
	"fmt"
	"strings"

	"github.com/godot-bevy/typegen/taxonomy"
)

// branchInserts lists the ancestry markers each bucket's arms add before
// the member's own marker, mirroring what the reflective branch probes
// would have established.
var branchInserts = map[taxonomy.Category][]string{
	taxonomy.Category3D:        {"Node3DMarker"},
	taxonomy.Category2D:        {"Node2DMarker", "CanvasItemMarker"},
	taxonomy.CategoryControl:   {"ControlMarker", "CanvasItemMarker"},
	taxonomy.CategoryUniversal: nil,
}

// StringDispatch renders the string-keyed dispatcher. It tags entities
// from a type name precomputed on the scripting side, so the hot path
// never touches the reflective probes. Its arm set and the companion
// classifier's return set are generated from the same model and must stay
// equal.
func StringDispatch(t *taxonomy.NodeTaxonomy) string {
	var sb strings.Builder
	sb.WriteString(header(t))
	sb.WriteString("\n")
	sb.WriteString("use bevy::ecs::system::EntityCommands;\n")
	sb.WriteString("use crate::interop::node_markers::*;\n")
	sb.WriteString("\n")
	sb.WriteString("/// Adds node type markers based on a pre-analyzed type string from GDScript.\n")
	sb.WriteString("/// Skips the per-node FFI probes by reusing type information determined on\n")
	sb.WriteString("/// the GDScript side.\n")
	sb.WriteString(fmt.Sprintf("pub fn %s(\n", StringEntryPoint))
	sb.WriteString("    entity_commands: &mut EntityCommands,\n")
	sb.WriteString("    node_type: &str,\n")
	sb.WriteString(") {\n")
	sb.WriteString("    // All nodes inherit from Node\n")
	sb.WriteString("    entity_commands.insert(NodeMarker);\n")
	sb.WriteString("\n")
	sb.WriteString("    match node_type {\n")

	writeArm(&sb, "Node3D", "", "Node3DMarker")
	writeArm(&sb, "Node2D", "", "Node2DMarker", "CanvasItemMarker")
	writeArm(&sb, "Control", "", "ControlMarker", "CanvasItemMarker")
	writeArm(&sb, "CanvasItem", "", "CanvasItemMarker")
	sb.WriteString("        \"Node\" => {\n")
	sb.WriteString("            // NodeMarker already added above\n")
	sb.WriteString("        }\n")

	for _, cat := range taxonomy.CategoryOrder {
		for _, class := range memberArms(t, cat) {
			cfg := ""
			if gate, ok := t.Gate(class); ok {
				cfg = gate.CfgAttr()
			}
			inserts := append(append([]string{}, branchInserts[cat]...), markerName(class))
			writeArm(&sb, class, cfg, inserts...)
		}
	}

	sb.WriteString("        // Unrecognized names keep NodeMarker only; custom user classes\n")
	sb.WriteString("        // extending engine nodes land here.\n")
	sb.WriteString("        _ => {}\n")
	sb.WriteString("    }\n")
	sb.WriteString("}\n")
	return sb.String()
}

func writeArm(sb *strings.Builder, name, cfg string, inserts ...string) {
	if cfg != "" {
		sb.WriteString("        ")
		sb.WriteString(cfg)
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("        %q => {\n", name))
	for _, marker := range inserts {
		sb.WriteString(fmt.Sprintf("            entity_commands.insert(%s);\n", marker))
	}
	sb.WriteString("        }\n")
}
