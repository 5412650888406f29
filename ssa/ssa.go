// Package ssa is a library to build and work with SSA.
// For most part the package contains helper or wrapper functions to use the
// packages in Go project's extra tools.
//
// In particular, the SSA IR is from golang.org/x/tools/go/ssa, and the loop
// analysis of this module is built on top of it.
//
package ssa

import (
	"errors"
	"go/token"
	"io"

	"golang.org/x/tools/go/ssa"
)

var (
	ErrNoMainPkgs = errors.New("no main packages")
	ErrNoFunc     = errors.New("function not found")
)

// Info holds the results of a SSA build for analysis.
// To populate this structure, the 'build' subpackage should be used.
//
type Info struct {
	IgnoredPkgs []string // Record of ignored package during the build process.

	FSet    *token.FileSet  // FileSet for parsed source files.
	Prog    *ssa.Program    // SSA IR for whole program.
	SrcPkgs []*ssa.Package  // Packages built from the given source.

	BldLog io.Writer // Build log.
}
