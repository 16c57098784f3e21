// Package taxonomy turns the raw inheritance graph into the filtered,
// categorized, version-gated node model every emitter renders from.
//
// The model is built once per run and immutable afterward. All tables
// steering it (exclusions, gates, binding names) are plain data so tests
// can substitute synthetic ones and a rules file can extend the built-ins
// without touching Go code.
package taxonomy

import "strings"

// RootClass is the base of the taggable universe. Everything the engine
// can place in a scene tree descends from it.
const RootClass = "Node"

// Rules holds the static tables steering filtering, gating, and binding
// names. The zero value keeps everything; DefaultRules returns the tables
// matching the godot-bevy runtime.
type Rules struct {
	// ExcludedPrefixes drops editor-tooling class families wholesale.
	ExcludedPrefixes []string `toml:"excluded_prefixes"`

	// ExcludedClasses drops individual classes. The root Node class is
	// listed here because its marker is emitted unconditionally rather
	// than per member.
	ExcludedClasses []string `toml:"excluded_classes"`

	// UnavailableClasses exist in the engine's schema but are absent from
	// the Rust bindings the generated code compiles against (optional
	// modules, editor-only builds, bindings lag).
	UnavailableClasses []string `toml:"unavailable_classes"`

	// Gates wrap classes introduced in newer engine releases behind cargo
	// feature flags so consumers pinned to older bindings still compile.
	Gates []Gate `toml:"gates"`

	// RustNames maps engine class names to the godot-rust struct names
	// where acronym casing diverges. Identity is the default.
	RustNames map[string]string `toml:"rust_names"`
}

// DefaultRules returns the built-in tables. They track what the godot-rust
// bindings actually export; entries are curated, never inferred.
func DefaultRules() *Rules {
	return &Rules{
		ExcludedPrefixes: []string{"Editor", "ScriptEditor", "VisualShader"},

		ExcludedClasses: []string{
			"Node",
			"MissingNode",
			"ImporterMeshInstance3D",
		},

		UnavailableClasses: []string{
			// CSG classes (require the csg module)
			"CSGBox3D", "CSGCombiner3D", "CSGCylinder3D", "CSGMesh3D", "CSGPolygon3D",
			"CSGPrimitive3D", "CSGShape3D", "CSGSphere3D", "CSGTorus3D",
			// Editor-only dialogs and docks
			"GridMapEditorPlugin", "ScriptCreateDialog", "FileSystemDock",
			"OpenXRBindingModifierEditor", "OpenXRInteractionProfileEditor",
			"OpenXRInteractionProfileEditorBase",
			// XR classes absent from default bindings
			"XRAnchor3D", "XRBodyModifier3D", "XRCamera3D", "XRController3D",
			"XRFaceModifier3D", "XRHandModifier3D", "XRNode3D", "XROrigin3D",
			// OpenXR classes
			"OpenXRCompositionLayer", "OpenXRCompositionLayerCylinder",
			"OpenXRCompositionLayerEquirect", "OpenXRCompositionLayerQuad",
			"OpenXRHand", "OpenXRVisibilityMask",
			// Not available in all engine builds
			"VoxelGI", "LightmapGI", "FogVolume", "WorldEnvironment",
			// Navigation module classes
			"NavigationAgent2D", "NavigationAgent3D", "NavigationLink2D",
			"NavigationLink3D", "NavigationObstacle2D", "NavigationObstacle3D",
			"NavigationRegion2D", "NavigationRegion3D",
			"StatusIndicator",
			// Graph classes (not in all builds)
			"GraphEdit", "GraphElement", "GraphFrame", "GraphNode",
			// In the extension API but not in current bindings
			"Parallax2D",
		},

		Gates: []Gate{
			{
				Feature:    "api-4-4",
				MinVersion: "4.4",
				Classes: []string{
					"LookAtModifier3D",
					"RetargetModifier3D",
					"SpringBoneSimulator3D",
					"SpringBoneCollision3D",
					"SpringBoneCollisionCapsule3D",
					"SpringBoneCollisionPlane3D",
					"SpringBoneCollisionSphere3D",
				},
			},
		},

		RustNames: map[string]string{
			"CPUParticles2D":                     "CpuParticles2D",
			"CPUParticles3D":                     "CpuParticles3D",
			"GPUParticles2D":                     "GpuParticles2D",
			"GPUParticles3D":                     "GpuParticles3D",
			"GPUParticlesAttractor3D":            "GpuParticlesAttractor3D",
			"GPUParticlesAttractorBox3D":         "GpuParticlesAttractorBox3D",
			"GPUParticlesAttractorSphere3D":      "GpuParticlesAttractorSphere3D",
			"GPUParticlesAttractorVectorField3D": "GpuParticlesAttractorVectorField3D",
			"GPUParticlesCollision3D":            "GpuParticlesCollision3D",
			"GPUParticlesCollisionBox3D":         "GpuParticlesCollisionBox3D",
			"GPUParticlesCollisionHeightField3D": "GpuParticlesCollisionHeightField3D",
			"GPUParticlesCollisionSDF3D":         "GpuParticlesCollisionSdf3d",
			"GPUParticlesCollisionSphere3D":      "GpuParticlesCollisionSphere3D",
			"HTTPRequest":                        "HttpRequest",
			"SkeletonIK3D":                       "SkeletonIk3d",
			"Generic6DOFJoint3D":                 "Generic6DofJoint3D",
		},
	}
}

// ExclusionReason reports why name would be dropped by Filter. ok is false
// when the class survives all three mechanisms.
func (r *Rules) ExclusionReason(name string) (string, bool) {
	for _, prefix := range r.ExcludedPrefixes {
		if strings.HasPrefix(name, prefix) {
			return "prefix:" + prefix, true
		}
	}
	for _, excluded := range r.ExcludedClasses {
		if name == excluded {
			return "excluded", true
		}
	}
	for _, unavailable := range r.UnavailableClasses {
		if name == unavailable {
			return "unavailable", true
		}
	}
	return "", false
}

// RustName returns the godot-rust binding identifier for an engine class.
func (r *Rules) RustName(class string) string {
	if fixed, ok := r.RustNames[class]; ok {
		return fixed
	}
	return class
}

// GateFor returns the gate covering class, if any. Pure table lookup;
// names are never pattern-matched.
func (r *Rules) GateFor(class string) (Gate, bool) {
	for _, gate := range r.Gates {
		for _, gated := range gate.Classes {
			if class == gated {
				return gate, true
			}
		}
	}
	return Gate{}, false
}
