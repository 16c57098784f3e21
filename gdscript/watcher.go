// Package gdscript renders the companion scene-tree watcher script. The
// classifier inside replicates the taxonomy's category precedence, so the
// type names it produces match the string dispatcher's arms exactly; the
// two are generated from the same model and tested for equality.
package gdscript

import (
	"fmt"
	"strings"

	"github.com/godot-bevy/typegen/taxonomy"
)

// ClassName is the generated script's class_name; the script also renames
// its own node to it on ready.
const ClassName = "OptimizedSceneTreeWatcher"

const regenerateCommand = "godot-typegen"

// Hot classes probed before the sorted remainder of their branch. Scene
// trees are dominated by these, so the linear scans stay short in
// practice.
var (
	common3D = []string{
		"MeshInstance3D", "StaticBody3D", "RigidBody3D", "CharacterBody3D", "Area3D",
		"Camera3D", "DirectionalLight3D", "OmniLight3D", "SpotLight3D", "CollisionShape3D",
	}
	common2D = []string{
		"Sprite2D", "StaticBody2D", "RigidBody2D", "CharacterBody2D", "Area2D",
		"Camera2D", "CollisionShape2D", "AnimatedSprite2D",
	}
	commonControl = []string{
		"Button", "Label", "Panel", "VBoxContainer", "HBoxContainer",
		"MarginContainer", "ColorRect", "LineEdit", "TextEdit", "CheckBox",
	}
	commonUniversal = []string{
		"AnimationPlayer", "Timer", "AudioStreamPlayer", "HTTPRequest", "CanvasLayer",
	}
)

// Watcher renders the scene-tree watcher script: signal plumbing to the
// Rust side, the per-node classifier, and the whole-tree snapshot used
// for initial setup.
func Watcher(t *taxonomy.NodeTaxonomy) string {
	var sb strings.Builder
	sb.WriteString("extends Node\n")
	sb.WriteString(fmt.Sprintf("class_name %s\n", ClassName))
	sb.WriteString("\n")
	sb.WriteString("# Code generated by godot-typegen. DO NOT EDIT.\n")
	sb.WriteString(fmt.Sprintf("# Regenerate with: %s\n", regenerateCommand))
	sb.WriteString(fmt.Sprintf("# Engine: %s\n", t.EngineName()))
	sb.WriteString("\n")
	sb.WriteString("# Intercepts scene tree events and performs type analysis on the GDScript\n")
	sb.WriteString("# side to avoid expensive FFI calls from Rust.\n")
	sb.WriteString(fmt.Sprintf("# Handles %d different Godot node types.\n", len(t.Members())))
	sb.WriteString("\n")
	sb.WriteString("# Reference to the Rust SceneTreeWatcher\n")
	sb.WriteString("var rust_watcher: Node = null\n")
	sb.WriteString("\n")
	sb.WriteString("func _ready():\n")
	sb.WriteString(fmt.Sprintf("\tname = %q\n", ClassName))
	sb.WriteString("\n")
	sb.WriteString("\t# Auto-detect the Rust SceneTreeWatcher\n")
	sb.WriteString("\tvar bevy_app = get_node(\"/root/BevyAppSingleton\")\n")
	sb.WriteString("\tif bevy_app:\n")
	sb.WriteString("\t\trust_watcher = bevy_app.get_node(\"SceneTreeWatcher\")\n")
	sb.WriteString("\n")
	sb.WriteString("\t# Connect to scene tree signals - these forward to Rust with type info.\n")
	sb.WriteString("\t# Add/remove use immediate connections to get events as early as possible.\n")
	sb.WriteString("\tget_tree().node_added.connect(_on_node_added)\n")
	sb.WriteString("\tget_tree().node_removed.connect(_on_node_removed)\n")
	sb.WriteString("\tget_tree().node_renamed.connect(_on_node_renamed, CONNECT_DEFERRED)\n")
	sb.WriteString("\n")
	sb.WriteString("# Called from Rust to set the SceneTreeWatcher reference (optional)\n")
	sb.WriteString("func set_rust_watcher(watcher: Node):\n")
	sb.WriteString("\trust_watcher = watcher\n")
	sb.WriteString("\n")
	sb.WriteString("# Handle node added events with type analysis\n")
	sb.WriteString("func _on_node_added(node: Node):\n")
	sb.WriteString("\tif not rust_watcher:\n")
	sb.WriteString("\t\treturn\n")
	sb.WriteString("\n")
	sb.WriteString("\tif not is_instance_valid(node):\n")
	sb.WriteString("\t\treturn\n")
	sb.WriteString("\n")
	sb.WriteString("\t# Analyzing on the GDScript side is much faster than FFI probing\n")
	sb.WriteString("\tvar node_type = _analyze_node_type(node)\n")
	sb.WriteString("\n")
	sb.WriteString("\tif rust_watcher.has_method(\"scene_tree_event_typed\"):\n")
	sb.WriteString("\t\trust_watcher.scene_tree_event_typed(node, \"NodeAdded\", node_type)\n")
	sb.WriteString("\telse:\n")
	sb.WriteString("\t\t# Fallback when the Rust side predates the typed channel\n")
	sb.WriteString("\t\trust_watcher.scene_tree_event(node, \"NodeAdded\")\n")
	sb.WriteString("\n")
	sb.WriteString("# Handle node removed events - no type analysis needed for removal\n")
	sb.WriteString("func _on_node_removed(node: Node):\n")
	sb.WriteString("\tif not rust_watcher:\n")
	sb.WriteString("\t\treturn\n")
	sb.WriteString("\n")
	sb.WriteString("\t# Called immediately (not deferred) so the node is still valid; Rust\n")
	sb.WriteString("\t# needs the event to clean up the corresponding Bevy entity.\n")
	sb.WriteString("\trust_watcher.scene_tree_event(node, \"NodeRemoved\")\n")
	sb.WriteString("\n")
	sb.WriteString("# Handle node renamed events - no type analysis needed for renaming\n")
	sb.WriteString("func _on_node_renamed(node: Node):\n")
	sb.WriteString("\tif not rust_watcher:\n")
	sb.WriteString("\t\treturn\n")
	sb.WriteString("\n")
	sb.WriteString("\tif not is_instance_valid(node):\n")
	sb.WriteString("\t\treturn\n")
	sb.WriteString("\n")
	sb.WriteString("\trust_watcher.scene_tree_event(node, \"NodeRenamed\")\n")
	sb.WriteString("\n")
	sb.WriteString("# Returns the most specific built-in Godot type name for node.\n")
	sb.WriteString("# Generated from the engine's extension API to ensure completeness.\n")
	sb.WriteString("func _analyze_node_type(node: Node) -> String:\n")
	sb.WriteString(typeAnalysis(t))
	sb.WriteString("\n")
	sb.WriteString("\t# Default fallback\n")
	sb.WriteString("\treturn \"Node\"\n")
	sb.WriteString("\n")
	sb.WriteString(initialTreeAnalysis())
	return sb.String()
}

// typeAnalysis renders the classifier body: three branch tests in the
// taxonomy's precedence order, each ending in the branch's own name, then
// the universal chain.
func typeAnalysis(t *taxonomy.NodeTaxonomy) string {
	var sb strings.Builder

	sb.WriteString("\t# Check Node3D hierarchy first (most common in 3D games)\n")
	writeBranch(&sb, "if", "Node3D", orderedBucket(t, taxonomy.Category3D, common3D))
	sb.WriteString("\n")

	sb.WriteString("\t# Check Node2D hierarchy (common in 2D games)\n")
	writeBranch(&sb, "elif", "Node2D", orderedBucket(t, taxonomy.Category2D, common2D))
	sb.WriteString("\n")

	sb.WriteString("\t# Check Control hierarchy (UI elements)\n")
	writeBranch(&sb, "elif", "Control", orderedBucket(t, taxonomy.CategoryControl, commonControl))
	sb.WriteString("\n")

	sb.WriteString("\t# Check node types that inherit directly from Node\n")
	sb.WriteString("\telif node is CanvasItem: return \"CanvasItem\"\n")
	for _, class := range orderedBucket(t, taxonomy.CategoryUniversal, commonUniversal) {
		sb.WriteString(fmt.Sprintf("\telif node is %s: return %q\n", class, class))
	}
	return sb.String()
}

func writeBranch(sb *strings.Builder, keyword, root string, classes []string) {
	sb.WriteString(fmt.Sprintf("\t%s node is %s:\n", keyword, root))
	for _, class := range classes {
		sb.WriteString(fmt.Sprintf("\t\tif node is %s: return %q\n", class, class))
	}
	sb.WriteString(fmt.Sprintf("\t\treturn %q\n", root))
}

// orderedBucket returns the bucket's arm-bearing members with the hot
// classes first, then the rest in sorted order. Base classes are covered
// by the branch structure itself.
func orderedBucket(t *taxonomy.NodeTaxonomy, cat taxonomy.Category, common []string) []string {
	members := map[string]bool{}
	for _, class := range t.MembersOf(cat) {
		if taxonomy.BaseClasses[class] {
			continue
		}
		members[class] = true
	}

	out := make([]string, 0, len(members))
	for _, class := range common {
		if members[class] {
			out = append(out, class)
			delete(members, class)
		}
	}
	for _, class := range t.MembersOf(cat) {
		if members[class] {
			out = append(out, class)
		}
	}
	return out
}

func initialTreeAnalysis() string {
	var sb strings.Builder
	sb.WriteString("# Analyze the entire initial scene tree and return node information with\n")
	sb.WriteString("# types. Returns PackedArrays for maximum performance:\n")
	sb.WriteString("#   { \"instance_ids\": PackedInt64Array, \"node_types\": PackedStringArray }\n")
	sb.WriteString("func analyze_initial_tree() -> Dictionary:\n")
	sb.WriteString("\tvar instance_ids = PackedInt64Array()\n")
	sb.WriteString("\tvar node_types = PackedStringArray()\n")
	sb.WriteString("\tvar root = get_tree().get_root()\n")
	sb.WriteString("\tif root:\n")
	sb.WriteString("\t\t_analyze_node_recursive(root, instance_ids, node_types)\n")
	sb.WriteString("\n")
	sb.WriteString("\treturn {\n")
	sb.WriteString("\t\t\"instance_ids\": instance_ids,\n")
	sb.WriteString("\t\t\"node_types\": node_types\n")
	sb.WriteString("\t}\n")
	sb.WriteString("\n")
	sb.WriteString("# Recursively collect (instance id, type name) pairs into the PackedArrays\n")
	sb.WriteString("func _analyze_node_recursive(node: Node, instance_ids: PackedInt64Array, node_types: PackedStringArray):\n")
	sb.WriteString("\tif not is_instance_valid(node):\n")
	sb.WriteString("\t\treturn\n")
	sb.WriteString("\n")
	sb.WriteString("\tvar instance_id = node.get_instance_id()\n")
	sb.WriteString("\tvar node_type = _analyze_node_type(node)\n")
	sb.WriteString("\n")
	sb.WriteString("\tif instance_id != 0 and node_type != \"\":\n")
	sb.WriteString("\t\tinstance_ids.append(instance_id)\n")
	sb.WriteString("\t\tnode_types.append(node_type)\n")
	sb.WriteString("\n")
	sb.WriteString("\tfor child in node.get_children():\n")
	sb.WriteString("\t\t_analyze_node_recursive(child, instance_ids, node_types)\n")
	return sb.String()
}
