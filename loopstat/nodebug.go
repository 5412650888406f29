//go:build !debug

package loopstat

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// newFileLogger returns a new logger writing the log output to files
// ("stderr" and "stdout" are the standard streams).
func newFileLogger(files ...string) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = files
	l, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "cannot create new logger")
	}
	return &Logger{SugaredLogger: l.Sugar(), module: "loop "}, nil
}
