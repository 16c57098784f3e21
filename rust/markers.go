package rust

import (
	"fmt"
	"strings"

	"github.com/godot-bevy/typegen/taxonomy"
)

// Markers renders the marker-declarations file: one zero-sized component
// per taxonomy member plus the unconditional NodeMarker every scene-tree
// entity carries. Gated members get their #[cfg] attribute so consumers
// pinned to older bindings still compile.
func Markers(t *taxonomy.NodeTaxonomy) string {
	var sb strings.Builder
	sb.WriteString(header(t))
	sb.WriteString("\n")
	sb.WriteString("//! Marker components for Godot node types.\n")
	sb.WriteString("//! These enable type-safe ECS queries like:\n")
	sb.WriteString("//! `Query<&GodotNodeHandle, With<Sprite2DMarker>>`\n")
	sb.WriteString("\n")
	sb.WriteString("use bevy::ecs::component::Component;\n")
	sb.WriteString("\n")
	sb.WriteString("// Base node type marker\n")
	sb.WriteString("#[derive(Component, Debug, Clone, Copy, PartialEq, Eq)]\n")
	sb.WriteString("pub struct NodeMarker;\n")

	for _, class := range t.Members() {
		sb.WriteString("\n")
		if gate, ok := t.Gate(class); ok {
			sb.WriteString(gate.CfgAttr())
			sb.WriteString("\n")
		}
		sb.WriteString("#[derive(Component, Debug, Clone, Copy, PartialEq, Eq)]\n")
		sb.WriteString(fmt.Sprintf("pub struct %s;\n", markerName(class)))
	}
	return sb.String()
}
