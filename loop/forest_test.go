package loop

import (
	"reflect"
	"testing"
)

func TestForestAdd(t *testing.T) {
	f := NewForest()
	a := f.Add(None, 1, 3, 1, 2, 3)
	x := f.Add(a, 2, 2, 3)
	b := f.Add(None, 5, 5)

	if want, got := []ID{a, b}, f.Roots(); !reflect.DeepEqual(want, got) {
		t.Errorf("roots want: %v got: %v", want, got)
	}
	if want, got := []int{1, 2, 3}, f.Blocks(a); !reflect.DeepEqual(want, got) {
		t.Errorf("blocks should be sorted and unique, want: %v got: %v", want, got)
	}
	if want, got := []ID{x}, f.SubLoops(a); !reflect.DeepEqual(want, got) {
		t.Errorf("sub-loops want: %v got: %v", want, got)
	}
	if f.Loop(x).Parent != a {
		t.Errorf("parent of %d should be %d, got %d", x, a, f.Loop(x).Parent)
	}
	if !f.Contains(a, 2) || f.Contains(a, 5) {
		t.Errorf("Contains reports wrong membership for loop %d", a)
	}
	if err := f.Validate(); err != nil {
		t.Errorf("forest should be valid: %v", err)
	}
}

func TestForestAddCopiesBlocks(t *testing.T) {
	blocks := []int{2, 1}
	f := NewForest()
	id := f.Add(None, 1, blocks...)
	blocks[0] = 9
	if want, got := []int{1, 2}, f.Blocks(id); !reflect.DeepEqual(want, got) {
		t.Errorf("forest should own a copy of blocks, want: %v got: %v", want, got)
	}
}

func TestValidateNotContained(t *testing.T) {
	f := NewForest()
	a := f.Add(None, 1, 1, 2)
	x := f.Add(a, 3, 3)
	err := f.Validate()
	nc, ok := err.(NotContainedError)
	if !ok {
		t.Fatalf("expects NotContainedError but got %v", err)
	}
	if nc.Loop != a || nc.SubLoop != x || nc.Block != 3 {
		t.Errorf("unexpected error detail: %v", nc)
	}
}

func TestValidateOverlap(t *testing.T) {
	f := NewForest()
	a := f.Add(None, 1, 1, 2, 3)
	f.Add(a, 2, 2, 3)
	f.Add(a, 3, 3)
	if _, ok := f.Validate().(OverlapError); !ok {
		t.Errorf("expects OverlapError but got %v", f.Validate())
	}
}

func TestValidateCycle(t *testing.T) {
	f := NewForest()
	a := f.Add(None, 1, 1, 2)
	x := f.Add(a, 2, 2)
	f.Loop(x).SubLoops = append(f.Loop(x).SubLoops, a)
	if err := f.Validate(); err != ErrCycle {
		t.Errorf("expects ErrCycle but got %v", err)
	}
}
