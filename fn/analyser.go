// Package fn provides the Analyser interface for functions and supporting
// utils.
package fn

import "golang.org/x/tools/go/ssa"

// Analyser is an interface for Function analysis,
// handles function entry and exit.
type Analyser interface {
	// EnterFunc analyses a Function.
	EnterFunc(fn *ssa.Function) error

	// ExitFunc finishes analysing a Function.
	// It should be used for handing over results, cleanup etc.
	ExitFunc(fn *ssa.Function) error
}

// Each enters and exits every function of fns in order, and stops at the
// first error.
func Each(a Analyser, fns []*ssa.Function) error {
	for _, f := range fns {
		if err := a.EnterFunc(f); err != nil {
			return err
		}
		if err := a.ExitFunc(f); err != nil {
			return err
		}
	}
	return nil
}
