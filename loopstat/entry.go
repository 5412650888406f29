package loopstat

import "github.com/nickng/loopinfo/loop"

// Entry is the report record of one loop.
type Entry struct {
	ID          int    `json:"id" yaml:"id" msgpack:"id"`
	Func        string `json:"func" yaml:"func" msgpack:"func"`
	Header      int    `json:"header" yaml:"header" msgpack:"header"`
	Depth       int    `json:"depth" yaml:"depth" msgpack:"depth"`
	HasSubLoops bool   `json:"subLoops" yaml:"subLoops" msgpack:"subLoops"`
	Blocks      int    `json:"blocks" yaml:"blocks" msgpack:"blocks"`
	Instrs      int    `json:"instrs" yaml:"instrs" msgpack:"instrs"`
	Atomics     int    `json:"atomics" yaml:"atomics" msgpack:"atomics"`
	Branches    int    `json:"branches" yaml:"branches" msgpack:"branches"`
}

// Entries walks the loops of f and measures each of them, in pre-order.
func Entries(fn string, f *loop.Forest, b BlockInfo, seq Sequence) []Entry {
	visits := Walk(f, seq)
	entries := make([]Entry, 0, len(visits))
	for _, v := range visits {
		m := Measure(f, v.Loop, b)
		entries = append(entries, Entry{
			ID:          v.ID,
			Func:        fn,
			Header:      f.Loop(v.Loop).Header,
			Depth:       v.Depth,
			HasSubLoops: m.HasSubLoops,
			Blocks:      m.Blocks,
			Instrs:      m.Instrs,
			Atomics:     m.Atomics,
			Branches:    m.Branches,
		})
	}
	return entries
}
