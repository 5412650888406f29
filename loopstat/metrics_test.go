package loopstat

import (
	"testing"

	"github.com/nickng/loopinfo/loop"
)

type blockCounts struct {
	instrs, atomics, branches int
}

// fakeBlocks is a BlockInfo of hand-written counts.
type fakeBlocks map[int]blockCounts

func (b fakeBlocks) InstrCount(blk int) int  { return b[blk].instrs }
func (b fakeBlocks) AtomicCount(blk int) int { return b[blk].atomics }
func (b fakeBlocks) BranchCount(blk int) int { return b[blk].branches }

// Loop A = {B1, B2, B3} with sub-loop X = {B2, B3}.
func scenario() (*loop.Forest, loop.ID, loop.ID, fakeBlocks) {
	f := loop.NewForest()
	a := f.Add(loop.None, 1, 1, 2, 3)
	x := f.Add(a, 2, 2, 3)
	blocks := fakeBlocks{
		1: {instrs: 4, atomics: 1, branches: 1},
		2: {instrs: 3, atomics: 1, branches: 1},
		3: {instrs: 3, atomics: 0, branches: 0},
	}
	return f, a, x, blocks
}

func TestScenarioEntries(t *testing.T) {
	f, _, _, blocks := scenario()
	entries := Entries("main.main", f, blocks, NewCounter(0))
	want := []Entry{
		{ID: 0, Func: "main.main", Header: 1, Depth: 0, HasSubLoops: true, Blocks: 1, Instrs: 10, Atomics: 2, Branches: 1},
		{ID: 1, Func: "main.main", Header: 2, Depth: 1, HasSubLoops: false, Blocks: 2, Instrs: 6, Atomics: 1, Branches: 1},
	}
	if len(entries) != len(want) {
		t.Fatalf("expects %d entries but got %d", len(want), len(entries))
	}
	for i := range want {
		if want[i] != entries[i] {
			t.Errorf("entry %d\nwant: %+v\ngot:  %+v", i, want[i], entries[i])
		}
	}
}

func TestTopLevelBlockCount(t *testing.T) {
	f, a, x, _ := scenario()
	if want, got := 3-2, TopLevelBlockCount(f, a); want != got {
		t.Errorf("parent top-level blocks want: %d got: %d", want, got)
	}
	if want, got := len(f.Blocks(x)), TopLevelBlockCount(f, x); want != got {
		t.Errorf("leaf loop top-level blocks should be all its blocks, want: %d got: %d", want, got)
	}
}

func TestTopLevelBranchCount(t *testing.T) {
	f, a, x, blocks := scenario()
	if want, got := 2-1, TopLevelBranchCount(f, a, blocks); want != got {
		t.Errorf("parent top-level branches want: %d got: %d", want, got)
	}
	if want, got := 1, TopLevelBranchCount(f, x, blocks); want != got {
		t.Errorf("leaf loop branches want: %d got: %d", want, got)
	}
}

// Instruction and atomic counts include sub-loops, unlike block and branch
// counts.
func TestInstructionCountNotSubtracted(t *testing.T) {
	f, a, x, blocks := scenario()
	if want, got := 10, InstructionCount(f, a, blocks); want != got {
		t.Errorf("parent instructions want: %d got: %d", want, got)
	}
	if InstructionCount(f, a, blocks) == InstructionCount(f, a, blocks)-InstructionCount(f, x, blocks) {
		t.Errorf("instruction count should not subtract sub-loop instructions")
	}
	if want, got := 2, AtomicCount(f, a, blocks); want != got {
		t.Errorf("parent atomics include sub-loop atomics, want: %d got: %d", want, got)
	}
	if want, got := 1, AtomicCount(f, x, blocks); want != got {
		t.Errorf("sub-loop atomics want: %d got: %d", want, got)
	}
}

func TestHasSubLoops(t *testing.T) {
	f, a, x, _ := scenario()
	if !HasSubLoops(f, a) {
		t.Errorf("loop %d has sub-loop %d", a, x)
	}
	if HasSubLoops(f, x) {
		t.Errorf("loop %d has no sub-loop", x)
	}
}

func TestMeasureDoesNotMutate(t *testing.T) {
	f, a, _, blocks := scenario()
	before := append([]int(nil), f.Blocks(a)...)
	first := Measure(f, a, blocks)
	second := Measure(f, a, blocks)
	if first != second {
		t.Errorf("Measure is not deterministic: %+v != %+v", first, second)
	}
	after := f.Blocks(a)
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("Measure changed loop blocks: %v -> %v", before, after)
		}
	}
}

func TestEntriesNoLoops(t *testing.T) {
	seq := NewCounter(3)
	if entries := Entries("main.main", loop.NewForest(), fakeBlocks{}, seq); len(entries) != 0 {
		t.Errorf("expects no entries but got %v", entries)
	}
	if want, got := 3, seq.Peek(); want != got {
		t.Errorf("no loops should consume no ids, next id want: %d got: %d", want, got)
	}
}
