package loopstat

import "go.uber.org/zap"

// Logger encapsulates a Logger and module which it belongs to.
// Use this through SetLogger() of Analyser.
type Logger struct {
	*zap.SugaredLogger
	module string
}

// NewLogger wraps l as a Logger of module.
func NewLogger(l *zap.SugaredLogger, module string) *Logger {
	return &Logger{SugaredLogger: l, module: module}
}

// Module returns (stylised) module name.
func (l *Logger) Module() string {
	return l.module
}
