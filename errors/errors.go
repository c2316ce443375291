package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// TrackableError wraps an error with the call stack captured at construction
// time so cache failures can be traced back to the faulting call-site.
type TrackableError struct {
	cause      error
	stacktrace stack
}

func (e *TrackableError) Error() string {
	return fmt.Sprintf("original error: %s\nstacktrace:%s", e.cause.Error(), e.stacktrace.format())
}

func (e *TrackableError) Unwrap() error {
	return e.cause
}

func (e *TrackableError) Stacktrace() string {
	return e.stacktrace.format()
}

func Error(msg string) *TrackableError {
	return newTrackableErr(errors.New(msg))
}

func Errorf(format string, fields ...any) *TrackableError {
	return newTrackableErr(fmt.Errorf(format, fields...))
}

func WrapWithStackTrace(err error) *TrackableError {
	return newTrackableErr(err)
}

func newTrackableErr(err error) *TrackableError {
	pcs := make([]uintptr, 32)
	// skip runtime.Callers, newTrackableErr and the exported constructor
	n := runtime.Callers(3, pcs)
	return &TrackableError{
		cause:      err,
		stacktrace: pcs[:n],
	}
}

type stack []uintptr

func (s stack) format() string {
	frames := runtime.CallersFrames(s)
	var b strings.Builder
	for {
		frame, more := frames.Next()
		b.WriteRune('\n')
		b.WriteString(frame.Function)
		b.WriteRune('\n')
		b.WriteRune('\t')
		b.WriteString(frame.File)
		b.WriteRune(':')
		b.WriteString(strconv.Itoa(frame.Line))
		if !more {
			break
		}
	}
	return b.String()
}
