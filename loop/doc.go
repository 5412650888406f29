// Package loop provides utilities for loop representation and detection.
//
// Loops of a function are represented as a Forest, an arena of Loop nodes
// addressed by ID. Each Loop knows its member blocks (inclusive of the blocks
// of its nested loops) and its direct sub-loops.
//
// Loop detection finds the natural loops of a function in SSA form: a back
// edge is an edge whose target dominates its source, and the loop body of a
// header is every block that reaches one of its back edges without passing
// through the header. Loops are nested by containment of their headers.
package loop
