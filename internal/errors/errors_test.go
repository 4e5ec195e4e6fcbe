package errors

import (
	"bytes"
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(EUsage, "test message")

	if err.Error() != "E_USAGE: test message" {
		t.Errorf("Error() = %q, want %q", err.Error(), "E_USAGE: test message")
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying")
	err := Wrap(ETicketReadFailed, "wrapped message", cause)

	if err.Error() != "E_TICKET_READ_FAILED: wrapped message" {
		t.Errorf("Error() = %q, want %q", err.Error(), "E_TICKET_READ_FAILED: wrapped message")
	}

	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("errors.As failed")
	}
	if e.Cause != cause {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should see the cause")
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil error", nil, ""},
		{"ytgit error", New(EUsage, "x"), EUsage},
		{"wrapped ytgit error", Wrap(EMissingField, "y", errors.New("z")), EMissingField},
		{"exit code wrapper", WithExitCode(New(EOpenFailed, "x"), 3), EOpenFailed},
		{"plain error", errors.New("plain"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetCode(tt.err)
			if got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"E_USAGE", New(EUsage, "x"), 2},
		{"E_MISSING_FIELD", New(EMissingField, "x"), 1},
		{"plain error", errors.New("x"), 1},
		{"explicit exit code", WithExitCode(New(EOpenFailed, "x"), 7), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExitCode(tt.err)
			if got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPrint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"E_USAGE", New(EUsage, "bad args"), "error_code: E_USAGE\nbad args\n"},
		{"E_NO_REPO", New(ENoRepo, "not a repo"), "error_code: E_NO_REPO\nnot a repo\n"},
		{"plain error", errors.New("boom"), "boom\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Print(&buf, tt.err)
			got := buf.String()
			if got != tt.want {
				t.Errorf("Print() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewWithDetails_DefensiveCopy(t *testing.T) {
	details := map[string]string{"key": "value"}
	err := NewWithDetails(EUsage, "test", details)

	details["key"] = "modified"

	e, ok := AsError(err)
	if !ok {
		t.Fatal("AsError failed")
	}
	if e.Details["key"] != "value" {
		t.Errorf("Details should be copied")
	}
}

func TestNewWithDetails_NilDetails(t *testing.T) {
	err := NewWithDetails(EUsage, "test", map[string]string{})

	e, ok := AsError(err)
	if !ok {
		t.Fatal("AsError failed")
	}
	if e.Details != nil {
		t.Errorf("Details should be nil, got %v", e.Details)
	}
}

func TestWrapWithDetails(t *testing.T) {
	cause := errors.New("underlying")
	err := WrapWithDetails(EBranchCreateFailed, "wrapped", cause, map[string]string{"branch": "web/bug/X-1_y"})

	e, ok := AsError(err)
	if !ok {
		t.Fatal("AsError failed")
	}
	if e.Cause != cause {
		t.Error("Cause not set")
	}
	if e.Details["branch"] != "web/bug/X-1_y" {
		t.Errorf("Details[branch] = %q", e.Details["branch"])
	}
}

func TestAsError(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		e, ok := AsError(New(EUsage, "test"))
		if !ok || e.Code != EUsage {
			t.Errorf("AsError = (%v, %v)", e, ok)
		}
	})

	t.Run("plain", func(t *testing.T) {
		e, ok := AsError(errors.New("regular error"))
		if ok || e != nil {
			t.Errorf("AsError = (%v, %v), want (nil, false)", e, ok)
		}
	})
}
