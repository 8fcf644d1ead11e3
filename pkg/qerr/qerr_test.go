package qerr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// --- Error ---

func TestError_MessageFormat(t *testing.T) {
	err := DuplicateAlias("as")
	want := "DUPLICATE_ALIAS: alias 'as' is already defined"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestError_DetailsIncluded(t *testing.T) {
	err := InvalidProperty("foo", "AS", []string{"asn", "name"})
	if err.Code() != CodeInvalidProperty {
		t.Errorf("code = %v, want %v", err.Code(), CodeInvalidProperty)
	}
	if got := err.Details(); len(got) != 2 || got[0] != "asn" || got[1] != "name" {
		t.Errorf("details = %v, want [asn name]", got)
	}
	if !strings.Contains(err.Error(), "valid: asn, name") {
		t.Errorf("Error() should list valid properties, got %q", err.Error())
	}
}

func TestError_WithDetailsDoesNotMutate(t *testing.T) {
	base := New(CodeInvalidProperty, "x")
	_ = base.WithDetails("a")
	if len(base.Details()) != 0 {
		t.Error("WithDetails should return a copy")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(CodeInvalidOperation, "bad", cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

// --- CodeOf / HasCode ---

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, ""},
		{"plain", errors.New("x"), ""},
		{"direct", UnknownAlias("a"), CodeUnknownAlias},
		{"wrapped", fmt.Errorf("find: %w", InjectionRisk("DELETE")), CodeInjectionRisk},
		{"step", OperationFailed(2, "limit", NegativeBound("limit", -1)), CodeInvalidBound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasCode(t *testing.T) {
	if HasCode(nil, CodeNoMatchClause) {
		t.Error("nil error should not have a code")
	}
	if !HasCode(NoMatchClause(), CodeNoMatchClause) {
		t.Error("NoMatchClause should carry CodeNoMatchClause")
	}
	if HasCode(NoMatchClause(), CodeUnknownKind) {
		t.Error("NoMatchClause should not carry CodeUnknownKind")
	}
}
