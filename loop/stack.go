package loop

import (
	"errors"

	"golang.org/x/tools/go/ssa"
)

var ErrEmptyStack = errors.New("error: empty stack")

// Stack is a stack of ssa.BasicBlock, the worklist of a single loop body
// search. It is not safe for concurrent use.
type Stack struct {
	s []*ssa.BasicBlock
}

// NewStack creates a new Stack.
func NewStack() *Stack {
	return &Stack{s: []*ssa.BasicBlock{}}
}

// Push adds a new block to the top of stack.
func (s *Stack) Push(b *ssa.BasicBlock) {
	s.s = append(s.s, b)
}

// Pop removes a block from top of stack.
func (s *Stack) Pop() (*ssa.BasicBlock, error) {
	size := len(s.s)
	if size == 0 {
		return nil, ErrEmptyStack
	}
	b := s.s[size-1]
	s.s = s.s[:size-1]
	return b, nil
}

// IsEmpty returns true if stack is empty.
func (s *Stack) IsEmpty() bool {
	return len(s.s) == 0
}
