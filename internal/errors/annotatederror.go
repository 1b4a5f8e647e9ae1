// Package errors provides errors that carry slog attributes and the source
// location where they were created, so that failures at the application
// boundary log with enough context to debug without a stack trace.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

// annotatedError wraps an error with a message, slog attributes, and the
// file:line of the call site that created it.
type annotatedError struct {
	msg    string
	err    error
	attrs  []slog.Attr
	source string
}

func (e *annotatedError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *annotatedError) Unwrap() error {
	return e.err
}

// callerSource resolves the file:line of the caller skip frames up the stack.
func callerSource(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

// New creates an annotated error with the call site recorded.
func New(msg string, attrs ...slog.Attr) error {
	return &annotatedError{
		msg:    msg,
		err:    nil,
		attrs:  attrs,
		source: callerSource(1),
	}
}

// NewSentinel creates an error meant for package-level sentinel values.
// No call site is recorded since the declaration site is not useful.
func NewSentinel(msg string) error {
	return &annotatedError{
		msg:    msg,
		err:    nil,
		attrs:  nil,
		source: "",
	}
}

// Wrap annotates err with a message and optional slog attributes.
// The call site of Wrap is recorded for logging with SlogError.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &annotatedError{
		msg:    msg,
		err:    err,
		attrs:  attrs,
		source: callerSource(1),
	}
}

// DecoratePanic converts a recovered panic value into an annotated error
// pointing at the line that panicked.
func DecoratePanic(recovered any) error {
	return &annotatedError{
		msg:    fmt.Sprintf("panic: %v", recovered),
		err:    nil,
		attrs:  nil,
		source: panicSource(),
	}
}

// panicSource walks the stack past runtime.gopanic to find the frame that
// raised the panic.
func panicSource() string {
	const maxDepth = 64
	pc := make([]uintptr, maxDepth)
	n := runtime.Callers(1, pc)
	frames := runtime.CallersFrames(pc[:n])

	seenPanic := false
	for {
		frame, more := frames.Next()
		if strings.HasPrefix(frame.Function, "runtime.gopanic") {
			seenPanic = true
		} else if seenPanic && !strings.HasPrefix(frame.Function, "runtime.") {
			return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
		}
		if !more {
			return ""
		}
	}
}

// SlogError renders an error as a structured "error" group attribute with
// the message, the annotations collected along the wrap chain, and the
// source location closest to where the error originated.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}

	var (
		annotations []any
		source      string
	)
	collectAnnotations(err, &annotations, &source)

	args := []any{slog.String("message", err.Error())}
	if source != "" {
		args = append(args, slog.String("source", source))
	}
	if len(annotations) > 0 {
		args = append(args, slog.Group("annotations", annotations...))
	}
	return slog.Group("error", args...)
}

// collectAnnotations gathers attributes from every annotated error in the
// chain, including the children of joined errors. The outermost recorded
// source wins since it is closest to where the error was handled.
func collectAnnotations(err error, annotations *[]any, source *string) {
	if err == nil {
		return
	}

	if ae, ok := err.(*annotatedError); ok {
		for _, attr := range ae.attrs {
			*annotations = append(*annotations, attr)
		}
		if *source == "" && ae.source != "" {
			*source = ae.source
		}
		collectAnnotations(ae.err, annotations, source)
		return
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, child := range joined.Unwrap() {
			collectAnnotations(child, annotations, source)
		}
		return
	}

	collectAnnotations(errors.Unwrap(err), annotations, source)
}

// Unwrap is a re-export of the standard library errors.Unwrap.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Is is a re-export of the standard library errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is a re-export of the standard library errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join is a re-export of the standard library errors.Join.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
