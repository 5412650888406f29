// Package prog provides the Analyser interface for programs.
package prog

// Analyser is an interface for Program analysis.
type Analyser interface {
	// Analyse is the entry point to the static analyser. It analyses the
	// whole program and returns the first error which stopped the analysis.
	Analyse() error
}
