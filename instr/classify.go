// Package instr classifies SSA instructions for loop metrics.
package instr

import "golang.org/x/tools/go/ssa"

// AtomicPkgs are the packages whose functions are atomic operations.
var AtomicPkgs = []string{
	"sync/atomic",
	"internal/runtime/atomic",
	"runtime/internal/atomic",
}

// Classifier is an interface for Instruction classification.
type Classifier interface {
	// IsAtomic returns true if the instruction is an atomic operation.
	IsAtomic(instr ssa.Instruction) bool

	// IsBranch returns true if the instruction transfers control to another
	// block of the function.
	IsBranch(instr ssa.Instruction) bool
}

// Default is a Classifier where atomic operations are direct calls to
// functions and methods of AtomicPkgs, and branches are If and Jump.
type Default struct {
	atomicPkgs map[string]bool
}

// New returns a Default Classifier which also treats calls to extraPkgs as
// atomic operations.
func New(extraPkgs ...string) *Default {
	c := &Default{atomicPkgs: make(map[string]bool)}
	for _, pkg := range AtomicPkgs {
		c.atomicPkgs[pkg] = true
	}
	for _, pkg := range extraPkgs {
		c.atomicPkgs[pkg] = true
	}
	return c
}

// IsAtomic returns true for a Call whose static callee is declared in one of
// the atomic packages. Go and Defer are not counted as they do not run the
// operation at the call site.
func (c *Default) IsAtomic(instr ssa.Instruction) bool {
	call, ok := instr.(*ssa.Call)
	if !ok {
		return false
	}
	callee := call.Call.StaticCallee()
	if callee == nil {
		return false
	}
	if origin := callee.Origin(); origin != nil {
		callee = origin
	}
	if obj := callee.Object(); obj != nil && obj.Pkg() != nil {
		return c.atomicPkgs[obj.Pkg().Path()]
	}
	if callee.Pkg != nil {
		return c.atomicPkgs[callee.Pkg.Pkg.Path()]
	}
	return false
}

// IsBranch returns true for conditional (If) and unconditional (Jump)
// branches.
func (c *Default) IsBranch(instr ssa.Instruction) bool {
	switch instr.(type) {
	case *ssa.If, *ssa.Jump:
		return true
	}
	return false
}
