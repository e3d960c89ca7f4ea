package errors

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// LogHandler is an ErrorHandler that logs errors through zap, or to stderr
// when no Logger is set.
type LogHandler struct {
	// Logger receives the entries. Nil means plain stderr output.
	Logger *zap.Logger
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// HandleError logs a UIError.
func (h *LogHandler) HandleError(err *UIError) {
	if err == nil {
		return
	}
	if h.Logger != nil {
		fields := []zap.Field{
			zap.String("op", err.Op),
			zap.Stringer("kind", err.Kind),
			zap.Error(err.Err),
		}
		if err.Resource != "" {
			fields = append(fields, zap.String("resource", err.Resource))
		}
		if h.Verbose && err.StackTrace != "" {
			fields = append(fields, zap.String("stack", err.StackTrace))
		}
		h.Logger.Error("ui error", fields...)
		return
	}
	if h.Verbose {
		fmt.Fprintf(os.Stderr, "[ui error] %s [%s]", err.Op, err.Kind)
		if err.Resource != "" {
			fmt.Fprintf(os.Stderr, " resource=%s", err.Resource)
		}
		fmt.Fprintf(os.Stderr, ": %v\n", err.Err)
		if err.StackTrace != "" {
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", err.StackTrace)
		}
	} else {
		fmt.Fprintf(os.Stderr, "[ui error] %s: %v\n", err.Op, err.Err)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	if h.Logger != nil {
		fields := []zap.Field{zap.String("op", err.Op), zap.Any("value", err.Value)}
		if h.Verbose && err.StackTrace != "" {
			fields = append(fields, zap.String("stack", err.StackTrace))
		}
		h.Logger.Error("ui panic", fields...)
		return
	}
	if err.Op != "" {
		fmt.Fprintf(os.Stderr, "[ui panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(os.Stderr, "[ui panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", err.StackTrace)
	}
}

// HandleBuildError logs a BuildError. Build errors are not fatal to a load,
// so they are logged at warn level.
func (h *LogHandler) HandleBuildError(err *BuildError) {
	if err == nil {
		return
	}
	if h.Logger != nil {
		h.Logger.Warn("ui build error",
			zap.String("callback", err.Callback),
			zap.String("widget", err.Widget),
			zap.String("key", err.Key),
			zap.Error(err.Err),
		)
		return
	}
	fmt.Fprintf(os.Stderr, "[ui build error] %s\n", err.Error())
}
