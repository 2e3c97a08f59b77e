package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:   PhaseLower,
				Kind:    KindTypeMismatch,
				Path:    []string{"params", "0"},
				GoType:  "int",
				WitType: "string",
				Detail:  "cannot lower",
			},
			contains: []string{"[lower]", "type_mismatch", "params.0", "int", "string", "cannot lower"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindStringConversion,
			},
			contains: []string{"[decode]", "string_conversion"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseRuntime,
				Kind:   KindAllocation,
				Detail: "memory full",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[runtime]", "allocation", "memory full", "caused by", "underlying error"},
		},
		{
			name: "go type only",
			err: &Error{
				Phase:  PhaseDecode,
				Kind:   KindNilPointer,
				GoType: "*uint16",
				Detail: "nil pointer",
			},
			contains: []string{"Go type *uint16 - nil pointer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseLift,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseDecode,
		Kind:  KindStringConversion,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseDecode, Kind: KindStringConversion}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseLift, Kind: KindStringConversion}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindNilPointer}) {
		t.Error("Is should not match different kind")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !errors.Is(wrapped, &Error{Phase: PhaseDecode, Kind: KindStringConversion}) {
		t.Error("errors.Is should see through fmt wrapping")
	}
}

func TestHasKind(t *testing.T) {
	inner := NilPointer(PhaseLift, nil, "uint32")
	outer := Wrap(PhaseRuntime, KindInvalidData, fmt.Errorf("lift: %w", inner), "call failed")

	if !HasKind(outer, KindInvalidData) {
		t.Error("HasKind should match outer kind")
	}
	if !HasKind(outer, KindNilPointer) {
		t.Error("HasKind should match kind in cause chain")
	}
	if HasKind(outer, KindOverflow) {
		t.Error("HasKind matched absent kind")
	}
	if HasKind(errors.New("plain"), KindNilPointer) {
		t.Error("HasKind matched plain error")
	}
	if HasKind(nil, KindNilPointer) {
		t.Error("HasKind matched nil")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseLower, KindOverflow).
		Path("args", "1").
		GoType("string").
		WitType("string").
		Value(70000).
		Cause(cause).
		Detail("string of %d units exceeds %d", 70000, 65535).
		Build()

	if err.Phase != PhaseLower {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseLower)
	}
	if err.Kind != KindOverflow {
		t.Errorf("Kind = %v, want %v", err.Kind, KindOverflow)
	}
	if len(err.Path) != 2 || err.Path[0] != "args" || err.Path[1] != "1" {
		t.Errorf("Path = %v, want [args 1]", err.Path)
	}
	if err.GoType != "string" || err.WitType != "string" {
		t.Errorf("GoType=%v WitType=%v", err.GoType, err.WitType)
	}
	if err.Value != 70000 {
		t.Errorf("Value = %v, want 70000", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "string of 70000 units exceeds 65535" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("StringConversion", func(t *testing.T) {
		units := []uint16{'a', 0xD800, 'b'}
		err := StringConversion(PhaseDecode, nil, units, 1)
		if err.Kind != KindStringConversion {
			t.Errorf("Kind = %v, want %v", err.Kind, KindStringConversion)
		}
		if err.Value != uint16(0xD800) {
			t.Errorf("Value = %v, want 0xD800", err.Value)
		}
		if !strings.Contains(err.Detail, "unit 1") {
			t.Errorf("Detail = %q, should contain index", err.Detail)
		}
	})

	t.Run("StringConversion index out of range", func(t *testing.T) {
		err := StringConversion(PhaseDecode, nil, nil, 4)
		if err.Value != nil {
			t.Errorf("Value = %v, want nil", err.Value)
		}
	})

	t.Run("NilPointer", func(t *testing.T) {
		err := NilPointer(PhaseDecode, []string{"ptr"}, "*uint16")
		if err.Kind != KindNilPointer {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNilPointer)
		}
		if err.GoType != "*uint16" {
			t.Errorf("GoType = %v, want '*uint16'", err.GoType)
		}
	})

	t.Run("AllocationFailed", func(t *testing.T) {
		err := AllocationFailed(PhaseLower, 1024, 2)
		if err.Kind != KindAllocation {
			t.Errorf("Kind = %v, want %v", err.Kind, KindAllocation)
		}
		if !strings.Contains(err.Detail, "1024") {
			t.Errorf("Detail = %v, should contain size", err.Detail)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseLift, []string{"ptr"}, 10, 5)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
		if err.Value != 10 {
			t.Errorf("Value = %v, want 10", err.Value)
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		err := Overflow(PhaseLower, nil, 1<<31, "max string units")
		if err.Kind != KindOverflow {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOverflow)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseLower, "WIT type u32")
		if err.Kind != KindUnsupported || err.Detail != "WIT type u32" {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		err := InvalidInput(PhaseValidate, "odd hex digit count")
		if err.Kind != KindInvalidInput {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidInput)
		}
	})

	t.Run("InvalidData", func(t *testing.T) {
		err := InvalidData(PhaseLift, []string{"flat"}, "expected 2 values")
		if err.Kind != KindInvalidData {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidData)
		}
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseLower, []string{"value"}, "int", "string")
		if err.GoType != "int" || err.WitType != "string" {
			t.Errorf("GoType=%v WitType=%v", err.GoType, err.WitType)
		}
	})
}
