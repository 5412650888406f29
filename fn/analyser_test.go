package fn

import (
	"errors"
	"testing"

	"golang.org/x/tools/go/ssa"
)

type recorder struct {
	calls  []string
	failAt *ssa.Function
}

func (r *recorder) EnterFunc(f *ssa.Function) error {
	r.calls = append(r.calls, "enter")
	if f == r.failAt {
		return errors.New("failed")
	}
	return nil
}

func (r *recorder) ExitFunc(f *ssa.Function) error {
	r.calls = append(r.calls, "exit")
	return nil
}

func TestEach(t *testing.T) {
	fns := []*ssa.Function{{}, {}}
	r := &recorder{}
	if err := Each(r, fns); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want, got := 4, len(r.calls); want != got {
		t.Errorf("expects %d calls but got %d: %v", want, got, r.calls)
	}
}

func TestEachStops(t *testing.T) {
	fns := []*ssa.Function{{}, {}}
	r := &recorder{failAt: fns[0]}
	if err := Each(r, fns); err == nil {
		t.Errorf("expects error from EnterFunc")
	}
	if want, got := 1, len(r.calls); want != got {
		t.Errorf("expects %d call before stopping but got %d: %v", want, got, r.calls)
	}
}
