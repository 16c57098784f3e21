package rust

import (
	"fmt"
	"strings"

	"github.com/godot-bevy/typegen/taxonomy"
)

// TypeChecking renders the reflective dispatcher. The entry points probe a
// live node handle with is-a checks, tagging the entity with every marker
// on its inheritance path; the string-keyed fast path is re-exported from
// its sibling file so consumers wire a single module.
func TypeChecking(t *taxonomy.NodeTaxonomy) string {
	var sb strings.Builder
	sb.WriteString(header(t))
	sb.WriteString("\n")
	sb.WriteString("use bevy::ecs::system::EntityCommands;\n")
	sb.WriteString("use crate::interop::{GodotNodeHandle, node_markers::*};\n")
	sb.WriteString("\n")
	sb.WriteString("// String-keyed fast path, generated alongside this file.\n")
	sb.WriteString(fmt.Sprintf("pub use super::node_type_strings_generated::%s;\n", StringEntryPoint))
	sb.WriteString("\n")

	sb.WriteString("/// Adds appropriate marker components to an entity based on the Godot node type.\n")
	sb.WriteString(fmt.Sprintf("/// Handles all %d Godot node types.\n", len(t.Members())))
	sb.WriteString("///\n")
	sb.WriteString("/// Godot's hierarchy: Node -> {Node3D, CanvasItem -> {Node2D, Control}, Others}\n")
	sb.WriteString("/// The major branches are checked once: 3D, 2D, Control (UI), and Universal.\n")
	sb.WriteString(fmt.Sprintf("pub fn %s(\n", EntryPoint))
	sb.WriteString("    entity_commands: &mut EntityCommands,\n")
	sb.WriteString("    node: &mut GodotNodeHandle,\n")
	sb.WriteString(") {\n")
	sb.WriteString("    // All nodes inherit from Node, so add this first\n")
	sb.WriteString("    entity_commands.insert(NodeMarker);\n")
	sb.WriteString("\n")
	sb.WriteString("    // Check the major hierarchy branches to minimize FFI calls\n")
	sb.WriteString("    if node.try_get::<godot::classes::Node3D>().is_some() {\n")
	sb.WriteString("        entity_commands.insert(Node3DMarker);\n")
	sb.WriteString("        check_3d_node_types_comprehensive(entity_commands, node);\n")
	sb.WriteString("    } else if node.try_get::<godot::classes::Node2D>().is_some() {\n")
	sb.WriteString("        entity_commands.insert(Node2DMarker);\n")
	sb.WriteString("        entity_commands.insert(CanvasItemMarker); // Node2D inherits from CanvasItem\n")
	sb.WriteString("        check_2d_node_types_comprehensive(entity_commands, node);\n")
	sb.WriteString("    } else if node.try_get::<godot::classes::Control>().is_some() {\n")
	sb.WriteString("        entity_commands.insert(ControlMarker);\n")
	sb.WriteString("        entity_commands.insert(CanvasItemMarker); // Control inherits from CanvasItem\n")
	sb.WriteString("        check_control_node_types_comprehensive(entity_commands, node);\n")
	sb.WriteString("    }\n")
	sb.WriteString("\n")
	sb.WriteString("    // Check node types that inherit directly from Node\n")
	sb.WriteString("    check_universal_node_types_comprehensive(entity_commands, node);\n")
	sb.WriteString("}\n")
	sb.WriteString("\n")

	sb.WriteString("/// Removes every generated marker from an entity, the inverse of\n")
	sb.WriteString(fmt.Sprintf("/// `%s`.\n", EntryPoint))
	sb.WriteString("pub fn remove_comprehensive_node_type_markers(\n")
	sb.WriteString("    entity_commands: &mut EntityCommands,\n")
	sb.WriteString("    node: &mut GodotNodeHandle,\n")
	sb.WriteString(") {\n")
	sb.WriteString("    // All nodes inherit from Node, so remove this first\n")
	sb.WriteString("    entity_commands.remove::<NodeMarker>();\n")
	sb.WriteString("\n")
	sb.WriteString("    entity_commands.remove::<Node3DMarker>();\n")
	sb.WriteString("    remove_3d_node_types_comprehensive(entity_commands, node);\n")
	sb.WriteString("\n")
	sb.WriteString("    entity_commands.remove::<Node2DMarker>();\n")
	sb.WriteString("    entity_commands.remove::<CanvasItemMarker>(); // Node2D inherits from CanvasItem\n")
	sb.WriteString("    remove_2d_node_types_comprehensive(entity_commands, node);\n")
	sb.WriteString("\n")
	sb.WriteString("    entity_commands.remove::<ControlMarker>();\n")
	sb.WriteString("    remove_control_node_types_comprehensive(entity_commands, node);\n")
	sb.WriteString("\n")
	sb.WriteString("    remove_universal_node_types_comprehensive(entity_commands, node);\n")
	sb.WriteString("}\n")

	for _, cat := range taxonomy.CategoryOrder {
		sb.WriteString("\n")
		sb.WriteString(checkFn(t, cat))
		sb.WriteString("\n")
		sb.WriteString(removeFn(t, cat))
	}
	return sb.String()
}

// checkFn renders one bucket's probe function: sorted is-a probes against
// the binding name, inserting the engine-named marker on a hit.
func checkFn(t *taxonomy.NodeTaxonomy, cat taxonomy.Category) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("fn check_%s_node_types_comprehensive(\n", cat))
	sb.WriteString("    entity_commands: &mut EntityCommands,\n")
	sb.WriteString("    node: &mut GodotNodeHandle,\n")
	sb.WriteString(") {\n")
	for _, class := range memberArms(t, cat) {
		if gate, ok := t.Gate(class); ok {
			sb.WriteString("    ")
			sb.WriteString(gate.CfgAttr())
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("    if node.try_get::<godot::classes::%s>().is_some() {\n", t.RustName(class)))
		sb.WriteString(fmt.Sprintf("        entity_commands.insert(%s);\n", markerName(class)))
		sb.WriteString("    }\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

// removeFn renders one bucket's removal function. Ungated markers come off
// in one method chain; each feature gate gets its own chain under its
// #[cfg] attribute.
func removeFn(t *taxonomy.NodeTaxonomy, cat taxonomy.Category) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("fn remove_%s_node_types_comprehensive(\n", cat))
	sb.WriteString("    entity_commands: &mut EntityCommands,\n")
	sb.WriteString("    _node: &mut GodotNodeHandle,\n")
	sb.WriteString(") {\n")

	writeChain := func(classes []string) {
		sb.WriteString("    entity_commands\n")
		for i, class := range classes {
			sb.WriteString(fmt.Sprintf("        .remove::<%s>()", markerName(class)))
			if i == len(classes)-1 {
				sb.WriteString(";")
			}
			sb.WriteString("\n")
		}
	}

	regular, gated := splitGated(t, memberArms(t, cat))
	if len(regular) > 0 {
		writeChain(regular)
	}
	for i, group := range gated {
		if len(regular) > 0 || i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("    ")
		sb.WriteString(group.gate.CfgAttr())
		sb.WriteString("\n")
		writeChain(group.classes)
	}
	sb.WriteString("}\n")
	return sb.String()
}
