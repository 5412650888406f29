package report

import (
	"io"

	"github.com/nickng/loopinfo/loopstat"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// YAMLEmitter collects every function and writes a single YAML sequence on
// Close.
type YAMLEmitter struct {
	w     io.Writer
	funcs []Func
}

func NewYAML(w io.Writer) *YAMLEmitter {
	return &YAMLEmitter{w: w, funcs: []Func{}}
}

func (y *YAMLEmitter) Emit(name string, entries []loopstat.Entry) error {
	y.funcs = append(y.funcs, newFunc(name, entries))
	return nil
}

func (y *YAMLEmitter) Close() error {
	enc := yaml.NewEncoder(y.w)
	enc.SetIndent(2)
	if err := enc.Encode(y.funcs); err != nil {
		return errors.Wrap(err, "cannot encode YAML report")
	}
	return enc.Close()
}
