package report

import (
	"encoding/json"
	"io"

	"github.com/nickng/loopinfo/loopstat"
)

// JSONEmitter writes one JSON object per function per line.
type JSONEmitter struct {
	enc *json.Encoder
}

func NewJSON(w io.Writer) *JSONEmitter {
	return &JSONEmitter{enc: json.NewEncoder(w)}
}

func (j *JSONEmitter) Emit(name string, entries []loopstat.Entry) error {
	return j.enc.Encode(newFunc(name, entries))
}

func (j *JSONEmitter) Close() error { return nil }
