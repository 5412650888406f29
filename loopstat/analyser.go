package loopstat

import (
	"github.com/nickng/loopinfo/fn"
	"github.com/nickng/loopinfo/instr"
	"github.com/nickng/loopinfo/loop"
	"github.com/nickng/loopinfo/prog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/ssa"
)

// ErrNegativeMetric is returned in strict mode when a top-level count is
// negative, i.e. sub-loops are not contained in their parent.
var ErrNegativeMetric = errors.New("negative top-level count")

// Emitter receives the entries of each analysed function.
type Emitter interface {
	// Emit is called once per function in analysis order, with the entries in
	// walk order. Functions without loops have no entries.
	Emit(name string, entries []Entry) error

	// Close is called once after the last function.
	Close() error
}

// Analyser is the loop analysis entry point.
type Analyser struct {
	Funcs      []*ssa.Function  // Functions to analyse, in order.
	Provider   loop.Provider    // Loop forest of each function.
	Classifier instr.Classifier // Atomic and branch instructions.

	StartID int  // First loop identifier.
	Strict  bool // Validate loop forests.
	Workers int  // Number of functions analysed concurrently.

	out     Emitter
	seq     Sequence
	entries []Entry // Entries of the current function.
	*Logger
}

var (
	_ prog.Analyser = (*Analyser)(nil)
	_ fn.Analyser   = (*Analyser)(nil)
)

// New returns a new Analyser of funcs which emits to out.
func New(funcs []*ssa.Function, out Emitter) *Analyser {
	return &Analyser{
		Funcs:      funcs,
		Provider:   loop.NewDetector(),
		Classifier: instr.New(),
		Workers:    1,
		out:        out,
		Logger:     NewLogger(zap.NewNop().Sugar(), "loop "),
	}
}

// SetLogger sets the logger of the Analyser and of its loop Detector.
func (a *Analyser) SetLogger(l *Logger) {
	a.Logger = l
	if d, ok := a.Provider.(*loop.Detector); ok {
		d.SetLogger(l.SugaredLogger)
	}
}

// AddLogFiles replaces the current Logger with one writing to files.
func (a *Analyser) AddLogFiles(files ...string) error {
	l, err := newFileLogger(files...)
	if err != nil {
		return err
	}
	a.SetLogger(l)
	return nil
}

// Analyse analyses every function in Funcs and closes the Emitter.
func (a *Analyser) Analyse() error {
	// Sync error ignored. See https://github.com/uber-go/zap/issues/328
	defer a.Logger.Sync()

	var err error
	if a.Workers > 1 {
		err = a.analyseParallel()
	} else {
		a.seq = NewCounter(a.StartID)
		err = fn.Each(a, a.Funcs)
	}
	if cerr := a.out.Close(); cerr != nil {
		err = multierr.Append(err, errors.Wrap(cerr, "cannot close report"))
	}
	if err != nil {
		a.Logger.Errorf("%s analysis failed: %v", a.Logger.Module(), err)
	}
	return err
}

// EnterFunc computes the entries of f.
func (a *Analyser) EnterFunc(f *ssa.Function) error {
	if a.seq == nil {
		a.seq = NewCounter(a.StartID)
	}
	entries, err := a.measure(f, a.seq)
	if err != nil {
		return err
	}
	a.entries = entries
	return nil
}

// ExitFunc hands the entries of f to the Emitter.
func (a *Analyser) ExitFunc(f *ssa.Function) error {
	entries := a.entries
	a.entries = nil
	return a.emit(f, entries)
}

func (a *Analyser) emit(f *ssa.Function, entries []Entry) error {
	if err := a.out.Emit(f.String(), entries); err != nil {
		return errors.Wrapf(err, "cannot report loops of %s", f)
	}
	return nil
}

// analyseParallel measures functions concurrently, then emits the results in
// function order. Identifiers are unique and increase in pre-order within each
// function but are not ordered across functions.
func (a *Analyser) analyseParallel() error {
	seq := NewAtomicCounter(a.StartID)
	results := make([][]Entry, len(a.Funcs))
	errs := make([]error, len(a.Funcs))

	var g errgroup.Group
	g.SetLimit(a.Workers)
	for i, f := range a.Funcs {
		g.Go(func() error {
			results[i], errs[i] = a.measure(f, seq)
			return nil
		})
	}
	g.Wait()
	if err := multierr.Combine(errs...); err != nil {
		return err
	}
	for i, f := range a.Funcs {
		if err := a.emit(f, results[i]); err != nil {
			return err
		}
	}
	return nil
}

// measure computes the entries of f with identifiers from seq. In strict
// mode the forest is validated before any identifier is taken.
func (a *Analyser) measure(f *ssa.Function, seq Sequence) ([]Entry, error) {
	forest, err := a.Provider.Loops(f)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot find loops of %s", f)
	}
	if a.Strict {
		if err := forest.Validate(); err != nil {
			return nil, errors.Wrapf(err, "bad loop forest of %s", f)
		}
	}
	entries := Entries(f.String(), forest, instr.NewBlocks(f, a.Classifier), seq)
	if a.Strict {
		for _, e := range entries {
			if e.Blocks < 0 || e.Branches < 0 {
				return nil, errors.Wrapf(ErrNegativeMetric, "loop <%d> of %s", e.ID, f)
			}
		}
	}
	a.Logger.Debugf("%s %s: %d loops", a.Logger.Module(), f, len(entries))
	return entries, nil
}
