// Package errors provides structured error handling for stylematrix.
//
// Parameter and configuration errors are returned as *StyleError values.
// Use the standard library's errors.Is with [ErrInvalidParameter] or
// [ErrConfigConflict] to test the category of a returned error.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInvalidParameter indicates a value outside its accepted range
	// or an unrecognized mode.
	KindInvalidParameter
	// KindConfigConflict indicates mutually exclusive configuration options.
	KindConfigConflict
	// KindRender indicates a rendering error.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidParameter:
		return "invalid parameter"
	case KindConfigConflict:
		return "config conflict"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Sentinel errors matched by *StyleError through errors.Is.
var (
	ErrInvalidParameter = stderrors.New("invalid parameter")
	ErrConfigConflict   = stderrors.New("configuration conflict")
	// ErrNoTarget is wrapped by errors from operations that need a surface
	// to read from, such as snapshots.
	ErrNoTarget = stderrors.New("no target")
)

// StyleError represents a rejected parameter or configuration.
type StyleError struct {
	// Op is the operation that failed (e.g., "styler.SetBrightness").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Param names the offending parameter, if any.
	Param string
	// Value is the rejected value, if any.
	Value any
	// Err is the underlying error.
	Err error
}

func (e *StyleError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s [%s] %s=%v: %v", e.Op, e.Kind, e.Param, e.Value, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *StyleError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *StyleError) Is(target error) bool {
	switch target {
	case ErrInvalidParameter:
		return e.Kind == KindInvalidParameter
	case ErrConfigConflict:
		return e.Kind == KindConfigConflict
	}
	return false
}

// InvalidParameter builds a KindInvalidParameter error.
func InvalidParameter(op, param string, value any, reason string) *StyleError {
	return &StyleError{
		Op:    op,
		Kind:  KindInvalidParameter,
		Param: param,
		Value: value,
		Err:   stderrors.New(reason),
	}
}

// ConfigConflict builds a KindConfigConflict error.
func ConfigConflict(op, reason string) *StyleError {
	return &StyleError{
		Op:   op,
		Kind: KindConfigConflict,
		Err:  stderrors.New(reason),
	}
}

// NoTarget builds a KindRender error wrapping ErrNoTarget.
func NoTarget(op string) *StyleError {
	return &StyleError{
		Op:   op,
		Kind: KindRender,
		Err:  ErrNoTarget,
	}
}

// ReportedError is an error delivered to the global handler.
type ReportedError struct {
	// Op is the operation that failed (e.g., "surface.Render").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ReportedError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "animation.StepTickers").
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

// ErrorHandler receives errors reported through [Report] and [Recover].
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *ReportedError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
