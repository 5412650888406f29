package loop

import (
	"sort"

	"github.com/nickng/loopinfo/block"
	"go.uber.org/zap"
	"golang.org/x/tools/go/ssa"
)

// Provider supplies the loop nesting forest of a function.
type Provider interface {
	Loops(fn *ssa.Function) (*Forest, error)
}

// Detector is a Provider of natural loops of SSA functions.
type Detector struct {
	logger *zap.SugaredLogger
}

func NewDetector() *Detector {
	return &Detector{logger: zap.NewNop().Sugar()}
}

// SetLogger sets the logger for detection messages.
func (d *Detector) SetLogger(l *zap.SugaredLogger) {
	if l != nil {
		d.logger = l
	}
}

// natural is a natural loop under construction.
type natural struct {
	header  *ssa.BasicBlock
	latches []*ssa.BasicBlock
	body    map[*ssa.BasicBlock]bool
	parent  *natural
	subs    []*natural
}

// Loops returns the natural loops of fn. Functions without body have no
// loops. The error is always nil.
func (d *Detector) Loops(fn *ssa.Function) (*Forest, error) {
	forest := NewForest()
	if len(fn.Blocks) == 0 {
		return forest, nil
	}

	loops := make(map[*ssa.BasicBlock]*natural)
	var headers []*ssa.BasicBlock
	block.VisitEdges(fn, func(from, to *ssa.BasicBlock) {
		if to == fn.Recover || !to.Dominates(from) {
			return
		}
		d.logger.Debugf("Detect %s: back edge #%d → #%d", fn, from.Index, to.Index)
		l, exists := loops[to]
		if !exists {
			l = &natural{header: to}
			loops[to] = l
			headers = append(headers, to)
		}
		l.latches = append(l.latches, from)
	})
	sort.Slice(headers, func(i, j int) bool { return headers[i].Index < headers[j].Index })

	for _, h := range headers {
		loops[h].body = loopBody(loops[h])
	}

	// Parent is the smallest other loop containing the header.
	var roots []*natural
	for _, h := range headers {
		l := loops[h]
		for _, candidate := range headers {
			c := loops[candidate]
			if c == l || !c.body[h] {
				continue
			}
			if l.parent == nil || len(c.body) < len(l.parent.body) {
				l.parent = c
			}
		}
		if l.parent == nil {
			roots = append(roots, l)
		} else {
			l.parent.subs = append(l.parent.subs, l)
		}
	}

	var add func(l *natural, parent ID)
	add = func(l *natural, parent ID) {
		blocks := make([]int, 0, len(l.body))
		for b := range l.body {
			blocks = append(blocks, b.Index)
		}
		id := forest.Add(parent, l.header.Index, blocks...)
		d.logger.Debugf("Detect %s: loop %d at #%d (%d blocks)", fn, id, l.header.Index, len(blocks))
		for _, sub := range l.subs {
			add(sub, id)
		}
	}
	for _, root := range roots {
		add(root, None)
	}
	return forest, nil
}

// loopBody collects the header and every block reaching a latch without
// passing through the header.
func loopBody(l *natural) map[*ssa.BasicBlock]bool {
	body := map[*ssa.BasicBlock]bool{l.header: true}
	worklist := NewStack()
	for _, latch := range l.latches {
		if !body[latch] {
			body[latch] = true
			worklist.Push(latch)
		}
	}
	for !worklist.IsEmpty() {
		b, _ := worklist.Pop()
		for _, pred := range b.Preds {
			if !body[pred] {
				body[pred] = true
				worklist.Push(pred)
			}
		}
	}
	return body
}
