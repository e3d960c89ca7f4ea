// Package errors provides structured error handling for the UI loader.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindResource indicates a resource lookup or store failure.
	KindResource
	// KindParsing indicates a malformed UI description.
	KindParsing
	// KindBuild indicates a widget could not be created or closed.
	KindBuild
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindResource:
		return "resource"
	case KindParsing:
		return "parsing"
	case KindBuild:
		return "build"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// UIError represents a structured error raised while opening a UI resource.
type UIError struct {
	// Op is the operation that failed (e.g., "ui.OpenWindow").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Resource is the UI resource name, if applicable.
	Resource string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *UIError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s [%s] resource=%s: %v", e.Op, e.Kind, e.Resource, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *UIError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "ui.OpenWindow").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ParseError represents a failure to decode a UI description.
type ParseError struct {
	// Format is the description format ("binary", "yaml").
	Format string
	// Offset is the byte offset (binary) or line (yaml) of the failure.
	Offset int64
	// Reason describes what was wrong.
	Reason string
	// Err is the underlying error, if any.
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse %s description at %d: %s: %v", e.Format, e.Offset, e.Reason, e.Err)
	}
	return fmt.Sprintf("failed to parse %s description at %d: %s", e.Format, e.Offset, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// BuildError represents a failure inside a builder callback.
type BuildError struct {
	// Callback is the builder callback that failed ("start", "prop", "end").
	Callback string
	// Widget is the widget type name involved, if known.
	Widget string
	// Key is the property name for "prop" failures.
	Key string
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BuildError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %s.%s: %v", e.Callback, e.Widget, e.Key, e.Err)
	}
	if e.Widget != "" {
		return fmt.Sprintf("%s %s: %v", e.Callback, e.Widget, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Callback, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by the UI loader.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *UIError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleBuildError is called when a builder callback fails but the load continues.
	HandleBuildError(err *BuildError)
}
