// Package apperror provides a structured application error type with
// error codes and severities, plus a mapping onto gRPC status codes for
// callers that sit behind a gRPC boundary even though this engine does
// not terminate one itself.
package apperror

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorCode identifies the kind of failure, per spec.md §7.
type ErrorCode string

const (
	// CodeInvalidInput indicates a malformed request: unknown IDs,
	// negative capacity, bad coordinates. Surfaced to the caller, never
	// retried.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidGraph indicates ShortestPath was given a negative edge
	// weight. Internal bug class; fatal to the enclosing solve but not
	// to the service.
	CodeInvalidGraph ErrorCode = "INVALID_GRAPH"

	// CodeProviderUnavailable indicates the distance-matrix provider's
	// retries were exhausted. Recovered locally by falling back to
	// Haversine; never surfaced to the caller.
	CodeProviderUnavailable ErrorCode = "PROVIDER_UNAVAILABLE"

	// CodeNoSolution indicates the solver found the model infeasible.
	CodeNoSolution ErrorCode = "NO_SOLUTION"

	// CodeTimeout indicates the solver hit its time limit with no first
	// solution found; folded into NoSolution by the caller.
	CodeTimeout ErrorCode = "TIMEOUT"

	// CodeInternal is any unexpected condition that must not crash the
	// service.
	CodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Severity indicates how critical an error is.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Error is the engine's structured error type.
type Error struct {
	Code     ErrorCode
	Message  string
	Field    string
	Details  map[string]any
	Cause    error
	Severity Severity
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// GRPCStatus converts the error into a gRPC status, for callers that sit
// behind a gRPC boundary.
func (e *Error) GRPCStatus() *status.Status {
	return status.New(e.grpcCode(), e.Message)
}

func (e *Error) grpcCode() codes.Code {
	switch e.Code {
	case CodeInvalidInput:
		return codes.InvalidArgument
	case CodeInvalidGraph:
		return codes.FailedPrecondition
	case CodeNoSolution, CodeTimeout:
		return codes.FailedPrecondition
	case CodeProviderUnavailable:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

// Invalid builds a CodeInvalidInput error for the named field.
func Invalid(field, message string) *Error {
	return &Error{Code: CodeInvalidInput, Message: message, Field: field, Severity: SeverityError}
}

// InvalidGraph builds a CodeInvalidGraph error.
func InvalidGraph(message string) *Error {
	return &Error{Code: CodeInvalidGraph, Message: message, Severity: SeverityError}
}

// Internal wraps cause as a CodeInternal error.
func Internal(message string, cause error) *Error {
	return &Error{Code: CodeInternal, Message: message, Cause: cause, Severity: SeverityCritical}
}
