package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/godot-bevy/typegen/godotapi"
)

func graphOf(parents map[string]string) *godotapi.Graph {
	api := &godotapi.API{}
	for name, parent := range parents {
		api.Classes = append(api.Classes, godotapi.Class{Name: name, Inherits: parent})
	}
	return godotapi.BuildGraph(api)
}

func sceneGraph() *godotapi.Graph {
	return graphOf(map[string]string{
		"Node":            "Object",
		"Node3D":          "Node",
		"CanvasItem":      "Node",
		"Node2D":          "CanvasItem",
		"Control":         "CanvasItem",
		"Camera3D":        "Node3D",
		"Sprite2D":        "Node2D",
		"Button":          "Control",
		"Timer":           "Node",
		"AnimationMixer":  "Node",
		"AnimationPlayer": "AnimationMixer",
	})
}

func TestCategorizeBuckets(t *testing.T) {
	g := sceneGraph()

	tests := []struct {
		class string
		want  Category
	}{
		{"Camera3D", Category3D},
		{"Sprite2D", Category2D},
		{"Button", CategoryControl},
		{"Timer", CategoryUniversal},
		// Deep chains with no category root still land somewhere.
		{"AnimationPlayer", CategoryUniversal},
		{"AnimationMixer", CategoryUniversal},
		// Category roots themselves match no proper ancestor; the
		// dedicated base arms cover them, not the member loops.
		{"Node3D", CategoryUniversal},
		{"Node2D", CategoryUniversal},
		{"Control", CategoryUniversal},
		{"CanvasItem", CategoryUniversal},
	}
	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(g, tt.class))
		})
	}
}

func TestCategorizePrecedenceOnDualPathHierarchy(t *testing.T) {
	// Contrived chain where Control itself descends from Node3D, so Gizmo
	// reaches both roots. The earlier entry in CategoryOrder must win.
	g := graphOf(map[string]string{
		"Node":    "Object",
		"Node3D":  "Node",
		"Control": "Node3D",
		"Gizmo":   "Control",
	})
	assert.Equal(t, Category3D, Categorize(g, "Gizmo"))
}

func TestCategorizeUnknownClass(t *testing.T) {
	g := sceneGraph()
	assert.Equal(t, CategoryUniversal, Categorize(g, "NotInTheSchema"))
}

func TestCategoryOrderShape(t *testing.T) {
	assert.Equal(t, []Category{Category3D, Category2D, CategoryControl, CategoryUniversal}, CategoryOrder)

	// The catch-all must come last or it would shadow real buckets.
	assert.Equal(t, CategoryUniversal, CategoryOrder[len(CategoryOrder)-1])

	// Every root-bearing category appears in the precedence list.
	for cat := range categoryRoots {
		assert.Contains(t, CategoryOrder, cat)
	}
}

func TestBaseClassesCoverDedicatedArms(t *testing.T) {
	for _, base := range []string{"Node", "Node3D", "Node2D", "Control", "CanvasItem"} {
		assert.True(t, BaseClasses[base], base)
	}
	assert.Len(t, BaseClasses, 5)
}
