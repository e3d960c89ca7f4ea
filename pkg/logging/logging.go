// Package logging builds the zap loggers used by the loader, the builder and
// the uibuild command.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Levels accepted by New.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// New returns a logger for the named level. "debug" uses the development
// (console) config; every other level uses the production (JSON) config.
// Output goes to stderr so command output on stdout stays clean.
func New(level string) (*zap.Logger, error) {
	var config zap.Config

	switch strings.ToLower(strings.TrimSpace(level)) {
	case LevelDebug:
		config = zap.NewDevelopmentConfig()
	case LevelInfo, "":
		config = zap.NewProductionConfig()
	case LevelWarn:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case LevelError:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	return config.Build()
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
