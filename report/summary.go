package report

import (
	"fmt"
	"io"

	"github.com/nickng/loopinfo/loopstat"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary accumulates run-wide loop statistics.
type Summary struct {
	Funcs          int
	FuncsWithLoops int
	Loops          int

	depths []float64
	instrs []float64
}

// Add adds the entries of one function.
func (s *Summary) Add(entries []loopstat.Entry) {
	s.Funcs++
	if len(entries) == 0 {
		return
	}
	s.FuncsWithLoops++
	s.Loops += len(entries)
	for _, e := range entries {
		s.depths = append(s.depths, float64(e.Depth))
		s.instrs = append(s.instrs, float64(e.Instrs))
	}
}

// MaxDepth returns the deepest loop nesting, 0 if there are no loops.
func (s *Summary) MaxDepth() int {
	if len(s.depths) == 0 {
		return 0
	}
	return int(floats.Max(s.depths))
}

func (s *Summary) MeanDepth() float64 {
	if len(s.depths) == 0 {
		return 0
	}
	return stat.Mean(s.depths, nil)
}

func (s *Summary) MeanInstrs() float64 {
	if len(s.instrs) == 0 {
		return 0
	}
	return stat.Mean(s.instrs, nil)
}

// StdDevInstrs returns the sample standard deviation of per-loop instruction
// counts, 0 for fewer than two loops.
func (s *Summary) StdDevInstrs() float64 {
	if len(s.instrs) < 2 {
		return 0
	}
	return stat.StdDev(s.instrs, nil)
}

// WriteTo writes the summary to w.
func (s *Summary) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, "# functions=%d, withLoops=%d, loops=%d, maxDepth=%d, meanDepth=%.2f, meanInstrs=%.2f, stddevInstrs=%.2f\n",
		s.Funcs, s.FuncsWithLoops, s.Loops, s.MaxDepth(), s.MeanDepth(), s.MeanInstrs(), s.StdDevInstrs())
	return int64(n), err
}
