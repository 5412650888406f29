package report

import (
	"io"

	"github.com/nickng/loopinfo/loopstat"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// MsgpackEmitter writes a stream of msgpack-encoded Func records.
type MsgpackEmitter struct {
	enc *msgpack.Encoder
}

func NewMsgpack(w io.Writer) *MsgpackEmitter {
	return &MsgpackEmitter{enc: msgpack.NewEncoder(w)}
}

func (m *MsgpackEmitter) Emit(name string, entries []loopstat.Entry) error {
	return m.enc.Encode(newFunc(name, entries))
}

func (m *MsgpackEmitter) Close() error { return nil }

// ReadMsgpack decodes every Func record of a msgpack stream.
func ReadMsgpack(r io.Reader) ([]Func, error) {
	dec := msgpack.NewDecoder(r)
	var funcs []Func
	for {
		var f Func
		if err := dec.Decode(&f); err != nil {
			if errors.Is(err, io.EOF) {
				return funcs, nil
			}
			return funcs, errors.Wrap(err, "cannot decode msgpack report")
		}
		funcs = append(funcs, f)
	}
}
