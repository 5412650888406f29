package loop

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// ErrCycle is returned when the loop nesting relation is not a forest.
var ErrCycle = errors.New("loop nesting is cyclic")

// ID identifies a Loop within a Forest.
type ID int

// None is the parent of a root loop.
const None ID = -1

// Loop is a single loop in a Forest.
type Loop struct {
	Header   int   // Block index of the loop header.
	Blocks   []int // Sorted block indices, inclusive of sub-loops.
	SubLoops []ID  // Direct sub-loops.
	Parent   ID    // Parent loop, or None.
}

// Forest is the loop nesting forest of a function.
//
// Loops are stored in an arena in the order they are added, a parent always
// before its children.
type Forest struct {
	loops []Loop
	roots []ID
}

// NewForest returns an empty Forest.
func NewForest() *Forest {
	return &Forest{}
}

// Add adds a loop with the given header and member blocks as the last
// sub-loop of parent (or as the last root if parent is None), and returns its
// ID. The blocks are copied, sorted and de-duplicated.
func (f *Forest) Add(parent ID, header int, blocks ...int) ID {
	id := ID(len(f.loops))
	f.loops = append(f.loops, Loop{
		Header: header,
		Blocks: normalise(blocks),
		Parent: parent,
	})
	if parent == None {
		f.roots = append(f.roots, id)
	} else {
		f.loops[parent].SubLoops = append(f.loops[parent].SubLoops, id)
	}
	return id
}

func normalise(blocks []int) []int {
	set := make([]int, len(blocks))
	copy(set, blocks)
	sort.Ints(set)
	n := 0
	for i, b := range set {
		if i == 0 || set[n-1] != b {
			set[n] = b
			n++
		}
	}
	return set[:n]
}

// Roots returns the top-level loops in order.
func (f *Forest) Roots() []ID { return f.roots }

// Len returns the number of loops in the forest.
func (f *Forest) Len() int { return len(f.loops) }

// Loop returns the loop with the given id.
func (f *Forest) Loop(id ID) *Loop { return &f.loops[id] }

// Blocks returns the member blocks of loop id.
func (f *Forest) Blocks(id ID) []int { return f.loops[id].Blocks }

// SubLoops returns the direct sub-loops of loop id.
func (f *Forest) SubLoops(id ID) []ID { return f.loops[id].SubLoops }

// Contains returns true if block blk is a member of loop id.
func (f *Forest) Contains(id ID, blk int) bool {
	blocks := f.loops[id].Blocks
	i := sort.SearchInts(blocks, blk)
	return i < len(blocks) && blocks[i] == blk
}

// NotContainedError is the error returned if a sub-loop has a block which is
// not a member of its parent.
type NotContainedError struct {
	Loop, SubLoop ID
	Block         int
}

func (e NotContainedError) Error() string {
	return fmt.Sprintf("block #%d of loop %d is not in parent loop %d", e.Block, e.SubLoop, e.Loop)
}

// OverlapError is the error returned if two sibling loops share a block.
type OverlapError struct {
	A, B  ID
	Block int
}

func (e OverlapError) Error() string {
	return fmt.Sprintf("sibling loops %d and %d share block #%d", e.A, e.B, e.Block)
}

// Validate checks that the forest is well-formed: every loop is reachable
// from exactly one root path, sub-loop blocks are contained in their parent,
// and sibling loops are disjoint.
func (f *Forest) Validate() error {
	visited := make([]bool, len(f.loops))
	var check func(siblings []ID, parent ID) error
	check = func(siblings []ID, parent ID) error {
		owner := make(map[int]ID)
		for _, id := range siblings {
			if id < 0 || int(id) >= len(f.loops) || visited[id] {
				return ErrCycle
			}
			visited[id] = true
			l := f.loops[id]
			if l.Parent != parent {
				return ErrCycle
			}
			for _, b := range l.Blocks {
				if parent != None && !f.Contains(parent, b) {
					return NotContainedError{Loop: parent, SubLoop: id, Block: b}
				}
				if other, dup := owner[b]; dup {
					return OverlapError{A: other, B: id, Block: b}
				}
				owner[b] = id
			}
			if err := check(l.SubLoops, id); err != nil {
				return err
			}
		}
		return nil
	}
	if err := check(f.roots, None); err != nil {
		return err
	}
	for _, seen := range visited {
		if !seen {
			return ErrCycle
		}
	}
	return nil
}
