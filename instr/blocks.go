package instr

import "golang.org/x/tools/go/ssa"

// Blocks counts the instructions of the blocks of a function, by block index.
type Blocks struct {
	fn *ssa.Function
	c  Classifier
}

// NewBlocks returns per-block counts of fn classified with c.
func NewBlocks(fn *ssa.Function, c Classifier) *Blocks {
	return &Blocks{fn: fn, c: c}
}

// InstrCount returns the number of instructions in block blk.
func (b *Blocks) InstrCount(blk int) int {
	return len(b.fn.Blocks[blk].Instrs)
}

// AtomicCount returns the number of atomic instructions in block blk.
func (b *Blocks) AtomicCount(blk int) int {
	return b.count(blk, b.c.IsAtomic)
}

// BranchCount returns the number of branch instructions in block blk.
func (b *Blocks) BranchCount(blk int) int {
	return b.count(blk, b.c.IsBranch)
}

func (b *Blocks) count(blk int, is func(ssa.Instruction) bool) int {
	n := 0
	for _, instr := range b.fn.Blocks[blk].Instrs {
		if is(instr) {
			n++
		}
	}
	return n
}
