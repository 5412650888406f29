package ssa

import (
	"github.com/pkg/errors"

	"golang.org/x/tools/go/callgraph"
	"golang.org/x/tools/go/callgraph/cha"
	"golang.org/x/tools/go/callgraph/rta"
	"golang.org/x/tools/go/callgraph/static"
	"golang.org/x/tools/go/ssa"
)

// ErrUnknownAlgo is returned when the callgraph algorithm is not supported.
var ErrUnknownAlgo = errors.New("unknown callgraph algorithm")

// CallGraph is a representation of CallGraph, wrapped with metadata.
type CallGraph struct {
	cg      *callgraph.Graph // Internal cached copy of the callgraph.
	prog    *ssa.Program     // SSA Program for which the callgraph is built from.
	usedFns []*ssa.Function  // Functions actually used by current Program.
}

// UsedFunctions return a slice of ssa.Function actually used by the current
// Program, rooted at main.init() and main.main(), sorted by position.
func (g *CallGraph) UsedFunctions() ([]*ssa.Function, error) {
	// If cached.
	if g.usedFns != nil {
		return g.usedFns, nil
	}

	callTree := make(map[*ssa.Function][]*ssa.Function)
	if err := callgraph.GraphVisitEdges(g.cg, func(edge *callgraph.Edge) error {
		callTree[edge.Caller.Func] = append(callTree[edge.Caller.Func], edge.Callee.Func)
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "callgraph: failed to visit edges")
	}

	roots, err := mainRoots(g.prog)
	if err != nil {
		return nil, errors.Wrap(err, "callgraph: failed to find main packages (Check if this this a command?)")
	}

	visited := make(map[*ssa.Function]bool)
	var fnQueue []*ssa.Function
	for _, root := range roots {
		if !visited[root] {
			visited[root] = true
			fnQueue = append(fnQueue, root)
		}
	}
	for len(fnQueue) > 0 {
		headFn := fnQueue[0]
		fnQueue = fnQueue[1:]
		for _, fn := range callTree[headFn] {
			if !visited[fn] {
				visited[fn] = true
				fnQueue = append(fnQueue, fn)
			}
		}
	}

	for fn := range visited {
		g.usedFns = append(g.usedFns, fn)
	}
	SortFuncs(g.usedFns)
	return g.usedFns, nil
}

// Reachable filters fns to those used by the Program.
func (g *CallGraph) Reachable(fns []*ssa.Function) ([]*ssa.Function, error) {
	used, err := g.UsedFunctions()
	if err != nil {
		return nil, err
	}
	isUsed := make(map[*ssa.Function]bool, len(used))
	for _, fn := range used {
		isUsed[fn] = true
	}
	var reachable []*ssa.Function
	for _, fn := range fns {
		if isUsed[fn] {
			reachable = append(reachable, fn)
		}
	}
	return reachable, nil
}

// mainRoots returns main.init and main.main of all main packages.
func mainRoots(prog *ssa.Program) ([]*ssa.Function, error) {
	mains, err := MainPkgs(prog)
	if err != nil {
		return nil, err
	}
	var roots []*ssa.Function
	for _, main := range mains {
		if main.Func("main") != nil {
			roots = append(roots, main.Func("init"), main.Func("main"))
		}
	}
	return roots, nil
}

// BuildCallGraph constructs a callgraph from ssa.Info.
// algo is algorithm available in golang.org/x/tools/go/callgraph, which
// includes:
//  - static  static calls only (unsound)
//  - cha     Class Hierarchy Analysis
//  - rta     Rapid Type Analysis
//
func (info *Info) BuildCallGraph(algo string) (*CallGraph, error) {
	var cg *callgraph.Graph
	switch algo {
	case "static":
		cg = static.CallGraph(info.Prog)

	case "cha":
		cg = cha.CallGraph(info.Prog)

	case "rta":
		roots, err := mainRoots(info.Prog)
		if err != nil {
			return nil, err
		}
		rtares := rta.Analyze(roots, true)
		cg = rtares.CallGraph

	default:
		return nil, errors.Wrapf(ErrUnknownAlgo, "callgraph: %q", algo)
	}

	cg.DeleteSyntheticNodes()

	return &CallGraph{cg: cg, prog: info.Prog}, nil
}
