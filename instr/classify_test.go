package instr

import (
	"strings"
	"testing"

	"github.com/nickng/loopinfo/ssa/build"
	"golang.org/x/tools/go/ssa"
)

func buildMain(t *testing.T, src string) *ssa.Function {
	info, err := build.FromReader(strings.NewReader(src)).Default().Build()
	if err != nil {
		t.Fatalf("SSA build failed: %v", err)
	}
	return info.SrcPkgs[0].Func("main")
}

func count(fn *ssa.Function, is func(ssa.Instruction) bool) int {
	n := 0
	for _, b := range fn.Blocks {
		for _, instr := range b.Instrs {
			if is(instr) {
				n++
			}
		}
	}
	return n
}

func TestIsAtomic(t *testing.T) {
	src := `package main
	import "sync/atomic"
	var x int32
	var y atomic.Int64
	func main() {
		atomic.AddInt32(&x, 1)
		y.Add(1)
		_ = atomic.LoadInt32(&x)
		go atomic.StoreInt32(&x, 0)
		println(x)
	}`
	fn := buildMain(t, src)
	c := New()
	if want, got := 3, count(fn, c.IsAtomic); want != got {
		t.Errorf("expects %d atomic instructions but got %d", want, got)
	}
}

func TestIsAtomicExtraPkgs(t *testing.T) {
	src := `package main
	import "strings"
	func main() {
		println(strings.ToUpper("x"))
	}`
	fn := buildMain(t, src)
	if got := count(fn, New().IsAtomic); got != 0 {
		t.Errorf("strings.ToUpper should not be atomic by default, got %d", got)
	}
	if want, got := 1, count(fn, New("strings").IsAtomic); want != got {
		t.Errorf("expects %d atomic instruction with extra package but got %d", want, got)
	}
}

func TestIsBranch(t *testing.T) {
	src := `package main
	func main() {
		x := 1
		if x < 2 {
			x++
		}
		println(x)
	}`
	fn := buildMain(t, src)
	want := 0
	for _, b := range fn.Blocks {
		switch b.Instrs[len(b.Instrs)-1].(type) {
		case *ssa.If, *ssa.Jump:
			want++
		}
	}
	if want == 0 {
		t.Fatalf("test function has no branches")
	}
	if got := count(fn, New().IsBranch); want != got {
		t.Errorf("expects %d branch instructions but got %d", want, got)
	}
}

func TestBlocks(t *testing.T) {
	src := `package main
	import "sync/atomic"
	var x int32
	func main() {
		for i := 0; i < 10; i++ {
			atomic.AddInt32(&x, 1)
		}
	}`
	fn := buildMain(t, src)
	b := NewBlocks(fn, New())
	var instrs, atomics, branches int
	for _, blk := range fn.Blocks {
		if want, got := len(blk.Instrs), b.InstrCount(blk.Index); want != got {
			t.Errorf("block #%d: expects %d instructions but got %d", blk.Index, want, got)
		}
		instrs += b.InstrCount(blk.Index)
		atomics += b.AtomicCount(blk.Index)
		branches += b.BranchCount(blk.Index)
	}
	if want, got := 1, atomics; want != got {
		t.Errorf("expects %d atomic instruction but got %d", want, got)
	}
	if branches == 0 || branches >= instrs {
		t.Errorf("branches should be a non-empty subset of instructions, got %d of %d", branches, instrs)
	}
}
