package godotapi

import "sort"

// Graph indexes the class list for ancestry walks. Both directions are
// kept: ParentOf answers "what does X inherit", ChildrenOf drives the
// descendant collection.
type Graph struct {
	ParentOf   map[string]string
	ChildrenOf map[string][]string
}

// BuildGraph builds the inheritance graph from a decoded dump. Duplicate
// class entries collapse to one node; children lists come out sorted so
// walks are deterministic regardless of dump order.
func BuildGraph(api *API) *Graph {
	g := &Graph{
		ParentOf:   make(map[string]string, len(api.Classes)),
		ChildrenOf: make(map[string][]string),
	}

	seen := make(map[string]bool, len(api.Classes))
	for _, c := range api.Classes {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true

		if c.Inherits != "" {
			g.ParentOf[c.Name] = c.Inherits
			g.ChildrenOf[c.Inherits] = append(g.ChildrenOf[c.Inherits], c.Name)
		}
	}

	for _, children := range g.ChildrenOf {
		sort.Strings(children)
	}

	return g
}

// Parent returns the direct parent of a class and whether one exists.
// Root classes (Object) have no parent.
func (g *Graph) Parent(class string) (string, bool) {
	parent, ok := g.ParentOf[class]
	return parent, ok
}

// Descendants collects root and every class below it in the hierarchy.
// The walk is an explicit work list, not recursion: engine hierarchies
// run deep and a pathological dump must not blow the stack.
func (g *Graph) Descendants(root string) map[string]bool {
	result := map[string]bool{root: true}

	work := []string{root}
	for len(work) > 0 {
		current := work[len(work)-1]
		work = work[:len(work)-1]

		for _, child := range g.ChildrenOf[current] {
			if result[child] {
				continue
			}
			result[child] = true
			work = append(work, child)
		}
	}

	return result
}

// AncestorMatch walks from class toward the root and returns the first
// ancestor (class itself included) present in targets, or "" when the
// chain reaches the top without a hit. A cycle in a malformed dump
// terminates the walk instead of hanging it.
func (g *Graph) AncestorMatch(class string, targets map[string]bool) string {
	visited := make(map[string]bool)
	for current := class; current != "" && !visited[current]; current = g.ParentOf[current] {
		if targets[current] {
			return current
		}
		visited[current] = true
	}
	return ""
}

// Inherits reports whether class has ancestor anywhere up its chain,
// class itself included.
func (g *Graph) Inherits(class, ancestor string) bool {
	return g.AncestorMatch(class, map[string]bool{ancestor: true}) == ancestor
}
