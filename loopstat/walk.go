package loopstat

import "github.com/nickng/loopinfo/loop"

// Visit is a loop visited by Walk.
type Visit struct {
	ID    int     // Identifier from the Sequence.
	Loop  loop.ID // Loop in the forest.
	Depth int     // 0 for a root loop.
}

// Walk visits the loops of f depth-first in pre-order, children in SubLoops
// order. The identifier of a loop is taken from seq when it is first visited,
// before any of its descendants. An empty forest takes no identifiers.
func Walk(f *loop.Forest, seq Sequence) []Visit {
	var visits []Visit
	var visit func(id loop.ID, depth int)
	visit = func(id loop.ID, depth int) {
		visits = append(visits, Visit{ID: seq.Next(), Loop: id, Depth: depth})
		for _, sub := range f.SubLoops(id) {
			visit(sub, depth+1)
		}
	}
	for _, root := range f.Roots() {
		visit(root, 0)
	}
	return visits
}
