// Package loopstat enumerates the loops of functions and computes per-loop
// structural metrics.
//
// Walk flattens a loop forest in pre-order, assigning each loop an identifier
// from a Sequence shared by the whole run and a depth within its tree. Measure
// computes the metrics of one loop. Block and branch counts are "top-level":
// the contribution of direct sub-loops is subtracted. Instruction and atomic
// counts are not: they include every block of the loop, nested loops included.
//
// Analyser drives the analysis over functions in SSA form and hands the
// entries of each function to an Emitter.
package loopstat
