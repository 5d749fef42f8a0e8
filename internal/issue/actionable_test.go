// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "scan dexen directory"},
			want: "failed to scan dexen directory",
		},
		{
			name: "with resource",
			err:  &ActionableError{Operation: "load container file", Resource: "classes.dex"},
			want: "failed to load container file: classes.dex",
		},
		{
			name: "with cause",
			err: &ActionableError{
				Operation: "register archive",
				Resource:  "b.jar",
				Cause:     errors.New("no such file"),
			},
			want: "failed to register archive: b.jar: no such file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := WrapWithOperation(cause, "assemble stores")

	if !errors.Is(err, cause) {
		t.Error("errors.Is() did not find the wrapped cause")
	}
}

func TestWrapWithOperation_NilError(t *testing.T) {
	if got := WrapWithOperation(nil, "anything"); got != nil {
		t.Errorf("WrapWithOperation(nil) = %v, want nil", got)
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("boom")
	err := WrapWithContext(cause, "parse module metadata", "modA/modA.json")

	if err.Operation != "parse module metadata" {
		t.Errorf("Operation = %s", err.Operation)
	}
	if err.Resource != "modA/modA.json" {
		t.Errorf("Resource = %s", err.Resource)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not wrapped")
	}
}

func TestErrorContext_Build(t *testing.T) {
	cause := errors.New("underlying")
	err := NewErrorContext().
		WithOperation("load container file").
		WithResource("secondary-2.dex").
		WithSuggestion("Check that the file is a valid dex container").
		WithSuggestion("Re-run the unpack step").
		Wrap(cause).
		Build()

	if err == nil {
		t.Fatal("Build() = nil")
	}
	if !err.HasSuggestions() {
		t.Error("HasSuggestions() = false, want true")
	}
	if len(err.Suggestions) != 2 {
		t.Errorf("got %d suggestions, want 2", len(err.Suggestions))
	}
	if !errors.Is(err, cause) {
		t.Error("cause not wrapped")
	}
}

func TestErrorContext_Build_RequiresOperation(t *testing.T) {
	if got := NewErrorContext().WithResource("x").Build(); got != nil {
		t.Errorf("Build() without operation = %v, want nil", got)
	}
	if got := NewErrorContext().BuildError(); got != nil {
		t.Errorf("BuildError() without operation = %v, want nil", got)
	}
}

func TestActionableError_Format(t *testing.T) {
	inner := errors.New("inner")
	err := NewErrorContext().
		WithOperation("register archive").
		WithResource("b.jar").
		WithSuggestion("Check the path").
		Wrap(WrapWithOperation(inner, "open archive")).
		Build()

	plain := err.Format(false)
	if !strings.Contains(plain, "• Check the path") {
		t.Errorf("Format(false) missing suggestion:\n%s", plain)
	}
	if strings.Contains(plain, "Error chain") {
		t.Errorf("Format(false) should not include the chain:\n%s", plain)
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") {
		t.Errorf("Format(true) missing error chain:\n%s", verbose)
	}
	if !strings.Contains(verbose, "inner") {
		t.Errorf("Format(true) missing innermost cause:\n%s", verbose)
	}
}
