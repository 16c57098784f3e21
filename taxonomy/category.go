package taxonomy

import "github.com/godot-bevy/typegen/godotapi"

// Category names the dispatch bucket a taxonomy member belongs to. Every
// member lands in exactly one bucket; the universal bucket is the
// catch-all, so categorization is total by construction.
type Category string

const (
	Category3D        Category = "3d"
	Category2D        Category = "2d"
	CategoryControl   Category = "control"
	CategoryUniversal Category = "universal"
)

// CategoryOrder fixes the precedence when a class descends from more than
// one category root. Earlier entries win. Emitters also iterate buckets in
// this order, so it doubles as the layout order of generated dispatchers.
var CategoryOrder = []Category{Category3D, Category2D, CategoryControl, CategoryUniversal}

// categoryRoots maps each non-catch-all category to the ancestor that
// defines it. The universal bucket has no root on purpose.
var categoryRoots = map[Category]string{
	Category3D:      "Node3D",
	Category2D:      "Node2D",
	CategoryControl: "Control",
}

// BaseClasses get dedicated dispatch arms in every artifact and are
// skipped by the per-member loops, so a base name never produces a
// duplicate arm. CanvasItem is here because the 2d and control arms tag it
// alongside their own marker.
var BaseClasses = map[string]bool{
	"Node":       true,
	"Node3D":     true,
	"Node2D":     true,
	"Control":    true,
	"CanvasItem": true,
}

// Categorize walks the ancestor chain of class, in CategoryOrder, and
// returns the first category whose root appears among its proper
// ancestors. Classes matching no root fall into the universal bucket.
func Categorize(g *godotapi.Graph, class string) Category {
	parent, ok := g.Parent(class)
	if !ok {
		return CategoryUniversal
	}
	for _, cat := range CategoryOrder {
		root, ok := categoryRoots[cat]
		if !ok {
			continue
		}
		if g.Inherits(parent, root) {
			return cat
		}
	}
	return CategoryUniversal
}
