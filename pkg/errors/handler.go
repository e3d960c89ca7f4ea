package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	// DefaultHandler receives every report. It starts as a LogHandler that
	// writes to stderr; the uibuild command swaps in a zap-backed one.
	DefaultHandler ErrorHandler = &LogHandler{}

	handlerMu sync.RWMutex
)

// SetHandler replaces the global error handler. Nil restores a plain
// LogHandler.
func SetHandler(h ErrorHandler) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	if h == nil {
		h = &LogHandler{}
	}
	DefaultHandler = h
}

// Swap installs h and returns a func that puts the previous handler back.
//
//	defer errors.Swap(&errors.LogHandler{Logger: log})()
func Swap(h ErrorHandler) (restore func()) {
	handlerMu.Lock()
	prev := DefaultHandler
	handlerMu.Unlock()
	SetHandler(h)
	return func() { SetHandler(prev) }
}

func currentHandler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

func stamp(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}

// Report sends a UI error to the global handler, stamping it if needed.
func Report(err *UIError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	if h := currentHandler(); h != nil {
		h.HandleError(err)
	}
}

// ReportBuildError sends a non-fatal builder callback failure to the global
// handler, stamping it if needed.
func ReportBuildError(err *BuildError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	if h := currentHandler(); h != nil {
		h.HandleBuildError(err)
	}
}

// ReportPanic sends a recovered panic to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	if h := currentHandler(); h != nil {
		h.HandlePanic(err)
	}
}

// RecoverWithCallback reports a panic in progress, stops it and calls
// callback(r), which lets the deferring function turn the panic into a
// return value. It must be deferred directly:
//
//	defer errors.RecoverWithCallback("ui.OpenWindow", func(r any) { err = ... })
func RecoverWithCallback(op string, callback func(r any)) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
		if callback != nil {
			callback(r)
		}
	}
}

func reportRecovered(op string, r any) {
	ReportPanic(&PanicError{
		Op:         op,
		Value:      r,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	})
}

// CaptureStack returns the caller's stack, one "function (file:line)" per
// line. Frames inside the runtime, such as the panic machinery when called
// during recovery, are left out.
func CaptureStack() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(2, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.Function, "runtime.") && !isOwnFrame(frame.Function) {
			fmt.Fprintf(&sb, "%s (%s:%d)\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return sb.String()
}

// isOwnFrame reports whether fn is one of the recovery helpers above.
func isOwnFrame(fn string) bool {
	i := strings.LastIndex(fn, "/pkg/errors.")
	if i < 0 {
		return false
	}
	switch fn[i+len("/pkg/errors."):] {
	case "CaptureStack", "reportRecovered", "RecoverWithCallback":
		return true
	}
	return false
}
