package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/nickng/loopinfo/loopstat"
)

// TextEmitter writes one line per loop:
//
//	<ID>: func=NAME, depth=D, subLoops=true|false, BBs=N, instrs=N, atomics=N, branches=N
type TextEmitter struct {
	w       io.Writer
	id      *color.Color
	name    *color.Color
	summary *Summary
}

// NewText returns a TextEmitter writing to w.
func NewText(w io.Writer, opts Options) *TextEmitter {
	t := &TextEmitter{
		w:    w,
		id:   color.New(color.FgYellow),
		name: color.New(color.FgCyan),
	}
	if opts.Color {
		t.id.EnableColor()
		t.name.EnableColor()
	} else {
		t.id.DisableColor()
		t.name.DisableColor()
	}
	if opts.Summary {
		t.summary = new(Summary)
	}
	return t
}

func (t *TextEmitter) Emit(name string, entries []loopstat.Entry) error {
	if t.summary != nil {
		t.summary.Add(entries)
	}
	for _, e := range entries {
		_, err := fmt.Fprintf(t.w, "<%s>: func=%s, depth=%d, subLoops=%t, BBs=%d, instrs=%d, atomics=%d, branches=%d\n",
			t.id.Sprint(e.ID), t.name.Sprint(name), e.Depth, e.HasSubLoops, e.Blocks, e.Instrs, e.Atomics, e.Branches)
		if err != nil {
			return err
		}
	}
	return nil
}

// Close writes the summary if enabled.
func (t *TextEmitter) Close() error {
	if t.summary == nil {
		return nil
	}
	_, err := t.summary.WriteTo(t.w)
	return err
}
