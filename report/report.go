// Package report provides the emitters of loop analysis results.
//
// Every emitter receives the loops of one function at a time, in analysis
// order, and writes them in its own format: text lines, JSON lines, a YAML
// document or a msgpack stream.
package report

import (
	"io"

	"github.com/nickng/loopinfo/loopstat"
	"github.com/pkg/errors"
)

// Report formats.
const (
	Text    = "text"
	JSON    = "json"
	YAML    = "yaml"
	Msgpack = "msgpack"
)

// Formats lists the supported report formats.
var Formats = []string{Text, JSON, YAML, Msgpack}

// ErrUnknownFormat is the error for an unsupported report format.
var ErrUnknownFormat = errors.New("unknown report format")

// Emitter writes the loop entries of each function.
type Emitter = loopstat.Emitter

// Func is the report record of a function.
type Func struct {
	Name  string           `json:"func" yaml:"func" msgpack:"func"`
	Loops []loopstat.Entry `json:"loops" yaml:"loops" msgpack:"loops"`
}

func newFunc(name string, entries []loopstat.Entry) Func {
	if entries == nil {
		entries = []loopstat.Entry{}
	}
	return Func{Name: name, Loops: entries}
}

// Options are format-independent emitter options.
type Options struct {
	Color   bool // Colour text output.
	Summary bool // Append a Summary to text output.
}

// New returns an Emitter of format writing to w.
func New(format string, w io.Writer, opts Options) (Emitter, error) {
	switch format {
	case Text, "":
		return NewText(w, opts), nil
	case JSON:
		return NewJSON(w), nil
	case YAML:
		return NewYAML(w), nil
	case Msgpack:
		return NewMsgpack(w), nil
	}
	return nil, errors.Wrap(ErrUnknownFormat, format)
}
