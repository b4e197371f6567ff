package apperror

import (
	"errors"
	"testing"

	"google.golang.org/grpc/codes"
)

func TestError_Error(t *testing.T) {
	e := Invalid("vehicles", "capacity must be positive")
	got := e.Error()
	want := "[INVALID_INPUT] capacity must be positive (field: vehicles)"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestError_Error_NoField(t *testing.T) {
	e := InvalidGraph("negative edge weight")
	got := e.Error()
	want := "[INVALID_GRAPH] negative edge weight"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	e := Internal("solver failed", cause)
	if !errors.Is(e, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestError_GRPCStatus(t *testing.T) {
	cases := []struct {
		name string
		err  *Error
		want codes.Code
	}{
		{"invalid input", Invalid("f", "m"), codes.InvalidArgument},
		{"invalid graph", InvalidGraph("m"), codes.FailedPrecondition},
		{"internal", Internal("m", nil), codes.Internal},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			st := c.err.GRPCStatus()
			if st.Code() != c.want {
				t.Errorf("GRPCStatus().Code() = %v, want %v", st.Code(), c.want)
			}
		})
	}
}

func TestSeverity_String(t *testing.T) {
	cases := []struct {
		s    Severity
		want string
	}{
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}
	for _, c := range cases {
		if got := c.s.String(); got != c.want {
			t.Errorf("Severity(%d).String() = %q, want %q", c.s, got, c.want)
		}
	}
}
