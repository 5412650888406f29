package ssa

import (
	"io"

	"golang.org/x/tools/go/ssa"
)

// WriteTo writes the source Functions of the Program to w in human readable
// SSA IR instruction format.
func (info *Info) WriteTo(w io.Writer) (int64, error) {
	return WriteFuncs(w, info.Functions())
}

// WriteFunc writes the Function at path to w in human readable SSA IR
// instruction format.
func (info *Info) WriteFunc(w io.Writer, path string) (int64, error) {
	fn, err := info.FindFunc(path)
	if err != nil {
		return 0, err
	}
	return fn.WriteTo(w)
}

// WriteFuncs writes fns to w in order.
func WriteFuncs(w io.Writer, fns []*ssa.Function) (int64, error) {
	var n int64
	for _, f := range fns {
		written, err := f.WriteTo(w)
		if err != nil {
			return n, err
		}
		n += written
	}
	return n, nil
}
