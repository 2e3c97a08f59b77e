package wide

import (
	"slices"
)

// InlineCap is the number of units, terminator included, a String stores without a
// heap allocation.
const InlineCap = 23

// String is an immutable, null-terminated UTF-16 string with small-string optimization.
//
// Strings of up to InlineCap-1 units live in an inline array; longer ones own a heap
// buffer. The choice is made once by the constructor and never changes. The zero value
// is an empty inline string.
//
// Pointers and slices obtained from a String alias its storage. For inline strings
// that storage is the String variable itself, so they are valid only while that
// variable is alive and must not be kept across a copy or reassignment of it.
type String struct {
	heap []uint16
	buf  [InlineCap]uint16
	n    uint8 // inline length including terminator
}

// New converts s to a String, storing it inline when it fits.
func New(s string) String {
	total := EncodedLen(s) + 1
	if total > InlineCap {
		return String{heap: Encode(s)}
	}

	var ws String
	AppendEncoded(ws.buf[:0:InlineCap], s)
	ws.n = uint8(total)
	return ws
}

// FromPath converts a file system path using the native wide encoding of EncodePath.
func FromPath(path string) String {
	total := PathLen(path) + 1
	if total > InlineCap {
		return String{heap: EncodePath(path)}
	}

	var ws String
	AppendPath(ws.buf[:0:InlineCap], path)
	ws.n = uint8(total)
	return ws
}

// FromUnits adopts a UTF-16 buffer that should already end with a zero unit.
// A missing terminator is appended. Buffers longer than InlineCap are kept without
// copying, so the caller must not modify units afterwards.
func FromUnits(units []uint16) String {
	if len(units) == 0 || units[len(units)-1] != 0 {
		units = append(slices.Clip(units), 0)
	}
	if len(units) > InlineCap {
		return String{heap: units}
	}

	var ws String
	copy(ws.buf[:], units)
	ws.n = uint8(len(units))
	return ws
}

// Ptr returns a pointer to the first unit of the null-terminated string.
func (s *String) Ptr() *uint16 {
	if s.heap != nil {
		return &s.heap[0]
	}
	return &s.buf[0]
}

// Len returns the length in UTF-16 units, not including the terminator.
func (s *String) Len() int {
	return len(s.Slice()) - 1
}

// IsEmpty reports whether the string has no content.
func (s *String) IsEmpty() bool {
	return s.Len() == 0
}

// IsInline reports whether the string is stored without a heap allocation.
func (s *String) IsInline() bool {
	return s.heap == nil
}

// Slice returns the units including the terminator.
func (s *String) Slice() []uint16 {
	if s.heap != nil {
		return s.heap
	}
	if s.n == 0 {
		return s.buf[:1]
	}
	return s.buf[:s.n]
}

// Units returns the content units without the terminator.
func (s *String) Units() []uint16 {
	b := s.Slice()
	return b[:len(b)-1]
}

// StringLossy decodes the string, returning Replacement if it is not valid UTF-16.
func (s *String) StringLossy() string {
	return decodeLossy(s.Slice())
}

func (s *String) String() string {
	return s.StringLossy()
}

// Clone returns a copy that shares no storage with s.
func (s *String) Clone() String {
	c := *s
	if s.heap != nil {
		c.heap = slices.Clone(s.heap)
	}
	return c
}

// Equal reports whether both strings hold the same units.
func (s *String) Equal(other *String) bool {
	return slices.Equal(s.Slice(), other.Slice())
}
