// Package block provides traversal utilities for the basic blocks of a
// function.
package block

import (
	"golang.org/x/tools/go/ssa"
)

// Edge is a control flow edge between two blocks of the same function.
type Edge struct {
	From, To *ssa.BasicBlock
}

// VisitEdges takes a Function and apply visit to each control flow edge
// reachable from the entry block, exactly once, in breadth-first order.
// Successors are visited in the order of Succs.
func VisitEdges(fn *ssa.Function, visit func(from, to *ssa.BasicBlock)) {
	if len(fn.Blocks) == 0 {
		return
	}
	visited := make(map[*ssa.BasicBlock]bool)
	queue := []*ssa.BasicBlock{fn.Blocks[0]}
	visited[fn.Blocks[0]] = true
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		for _, succ := range b.Succs {
			visit(b, succ)
			if !visited[succ] {
				visited[succ] = true
				queue = append(queue, succ)
			}
		}
	}
}

// Edges returns all edges of fn in the order of VisitEdges.
func Edges(fn *ssa.Function) []Edge {
	var edges []Edge
	VisitEdges(fn, func(from, to *ssa.BasicBlock) {
		edges = append(edges, Edge{From: from, To: to})
	})
	return edges
}
