package loopstat

import "github.com/nickng/loopinfo/loop"

// BlockInfo gives the instruction counts of blocks, by block index.
type BlockInfo interface {
	InstrCount(blk int) int
	AtomicCount(blk int) int
	BranchCount(blk int) int
}

// Metrics are the structural metrics of a single loop.
type Metrics struct {
	HasSubLoops bool
	Blocks      int // Blocks not in any sub-loop.
	Instrs      int // Instructions in all blocks, sub-loops included.
	Atomics     int // Atomic instructions in all blocks, sub-loops included.
	Branches    int // Branches not in any sub-loop.
}

// Measure computes all metrics of loop l.
func Measure(f *loop.Forest, l loop.ID, b BlockInfo) Metrics {
	return Metrics{
		HasSubLoops: HasSubLoops(f, l),
		Blocks:      TopLevelBlockCount(f, l),
		Instrs:      InstructionCount(f, l, b),
		Atomics:     AtomicCount(f, l, b),
		Branches:    TopLevelBranchCount(f, l, b),
	}
}

// HasSubLoops returns true if l has direct sub-loops.
func HasSubLoops(f *loop.Forest, l loop.ID) bool {
	return len(f.SubLoops(l)) > 0
}

// TopLevelBlockCount returns the number of blocks of l minus the blocks of its
// direct sub-loops. Sub-loops of a proper nest are disjoint, so subtracting
// their sizes leaves the blocks in no sub-loop.
func TopLevelBlockCount(f *loop.Forest, l loop.ID) int {
	n := len(f.Blocks(l))
	for _, sub := range f.SubLoops(l) {
		n -= len(f.Blocks(sub))
	}
	return n
}

// InstructionCount returns the number of instructions in every block of l.
// Instructions of sub-loops are not subtracted.
func InstructionCount(f *loop.Forest, l loop.ID, b BlockInfo) int {
	return sum(f.Blocks(l), b.InstrCount)
}

// AtomicCount returns the number of atomic instructions in every block of l.
// Atomic instructions of sub-loops are not subtracted.
func AtomicCount(f *loop.Forest, l loop.ID, b BlockInfo) int {
	return sum(f.Blocks(l), b.AtomicCount)
}

// TopLevelBranchCount returns the number of branches in the blocks of l minus
// the branches in the blocks of its direct sub-loops.
func TopLevelBranchCount(f *loop.Forest, l loop.ID, b BlockInfo) int {
	n := sum(f.Blocks(l), b.BranchCount)
	for _, sub := range f.SubLoops(l) {
		n -= sum(f.Blocks(sub), b.BranchCount)
	}
	return n
}

func sum(blocks []int, count func(blk int) int) int {
	n := 0
	for _, blk := range blocks {
		n += count(blk)
	}
	return n
}
