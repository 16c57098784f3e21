package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterAppliesAllMechanismsToOneSet(t *testing.T) {
	classes := map[string]bool{
		"EditorPanel": true,
		"MissingNode": true,
		"Sprite":      true,
	}
	assert.Equal(t, []string{"Sprite"}, Filter(classes, DefaultRules()))
}

func TestFilterDropsUnavailableClassesEverywhere(t *testing.T) {
	classes := map[string]bool{
		"CSGBox3D":          true,
		"NavigationAgent2D": true,
		"Camera3D":          true,
	}
	members := Filter(classes, DefaultRules())
	assert.Equal(t, []string{"Camera3D"}, members)
}

func TestFilterOutputIsSorted(t *testing.T) {
	classes := map[string]bool{
		"Timer":    true,
		"Area2D":   true,
		"Sprite2D": true,
		"Button":   true,
	}
	assert.Equal(t, []string{"Area2D", "Button", "Sprite2D", "Timer"}, Filter(classes, DefaultRules()))
}

func TestFilterWithEmptyRulesKeepsEverything(t *testing.T) {
	classes := map[string]bool{"A": true, "B": true}
	assert.Equal(t, []string{"A", "B"}, Filter(classes, &Rules{}))
}
