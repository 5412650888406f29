package ssa

import (
	"sort"

	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// MainPkgs returns the main packages in the program.
func MainPkgs(prog *ssa.Program) ([]*ssa.Package, error) {
	mains := ssautil.MainPackages(prog.AllPackages())
	if len(mains) == 0 {
		return nil, ErrNoMainPkgs
	}
	return mains, nil
}

// Functions returns the non-synthetic functions with a body declared in the
// source packages, including anonymous functions, sorted by position.
func (info *Info) Functions() []*ssa.Function {
	src := make(map[*ssa.Package]bool)
	for _, pkg := range info.SrcPkgs {
		src[pkg] = true
	}
	var fns []*ssa.Function
	for fn := range ssautil.AllFunctions(info.Prog) {
		if fn.Synthetic != "" || len(fn.Blocks) == 0 {
			continue
		}
		if outer := enclosing(fn); outer.Synthetic != "" || !src[outer.Pkg] {
			continue
		}
		fns = append(fns, fn)
	}
	SortFuncs(fns)
	return fns
}

// SortFuncs sorts fns by position, then by name for functions sharing a
// position.
func SortFuncs(fns []*ssa.Function) {
	sort.Slice(fns, func(i, j int) bool {
		if fns[i].Pos() != fns[j].Pos() {
			return fns[i].Pos() < fns[j].Pos()
		}
		return fns[i].String() < fns[j].String()
	})
}

// enclosing returns the outermost function of a (possibly anonymous) function.
func enclosing(fn *ssa.Function) *ssa.Function {
	for fn.Parent() != nil {
		fn = fn.Parent()
	}
	return fn
}
