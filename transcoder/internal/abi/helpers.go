package abi

import (
	"math"
	"reflect"

	"go.bytecodealliance.org/wit"
)

const (
	MaxStringUnits = 1 << 28 // 256M units, 512 MB of content
	MaxAlloc       = 1 << 30 // 1 GB max single allocation
)

// UnitSize is the width in bytes of one UTF-16 code unit in linear memory.
const UnitSize = 2

func SafeMulU32(a, b uint32) (uint32, bool) {
	if b != 0 && a > math.MaxUint32/b {
		return 0, false
	}
	return a * b, true
}

func SafeAddU32(a, b uint32) (uint32, bool) {
	if a > math.MaxUint32-b {
		return 0, false
	}
	return a + b, true
}

// TerminatedSize returns the byte size of units content units plus a terminator.
func TerminatedSize(units uint32) (uint32, bool) {
	n, ok := SafeAddU32(units, 1)
	if !ok {
		return 0, false
	}
	size, ok := SafeMulU32(n, UnitSize)
	if !ok || size > MaxAlloc {
		return 0, false
	}
	return size, true
}

// TypeName returns "nil" for nil values, avoiding reflect.TypeOf(nil) panic.
func TypeName(value any) string {
	if value == nil {
		return "nil"
	}
	return reflect.TypeOf(value).String()
}

func AlignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// IsUnitList reports whether t is list<u16>.
func IsUnitList(t wit.Type) bool {
	td, ok := t.(*wit.TypeDef)
	if !ok {
		return false
	}
	l, ok := td.Kind.(*wit.List)
	if !ok {
		return false
	}
	_, ok = l.Type.(wit.U16)
	return ok
}

// FlatCount returns the number of core values t flattens to, or 0 when the
// transcoder does not handle t.
func FlatCount(t wit.Type) int {
	switch t.(type) {
	case wit.String:
		return 2
	case *wit.TypeDef:
		if IsUnitList(t) {
			return 2
		}
	}
	return 0
}
