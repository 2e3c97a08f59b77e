package wide

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
	"unsafe"

	"github.com/wippyai/widestring/errors"
)

// Replacement is returned by the lossy accessors when a buffer does not hold valid UTF-16.
const Replacement = "\uFFFD"

const (
	surr1 = 0xd800 // first high surrogate
	surr2 = 0xdc00 // first low surrogate
	surr3 = 0xe000 // first unit past the surrogate range
)

// Encode returns the UTF-16 encoding of s followed by a single zero unit.
//
// Encoding never fails. Bytes of s that are not valid UTF-8 encode as U+FFFD.
// A NUL inside s is encoded as an interior zero unit, so native consumers and
// Decode see only the text before it.
func Encode(s string) []uint16 {
	// UTF-16 never needs more units than UTF-8 needs bytes.
	buf := make([]uint16, 0, len(s)+1)
	buf = AppendEncoded(buf, s)
	return append(buf, 0)
}

// AppendEncoded appends the UTF-16 encoding of s to dst without a terminator.
func AppendEncoded(dst []uint16, s string) []uint16 {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < utf8.RuneSelf {
			dst = append(dst, uint16(c))
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		dst = utf16.AppendRune(dst, r)
		i += size - 1
	}
	return dst
}

// EncodedLen returns the number of UTF-16 units Encode produces for s, excluding the terminator.
func EncodedLen(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < utf8.RuneSelf {
			n++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		n += utf16.RuneLen(r)
		i += size - 1
	}
	return n
}

// Decode converts a UTF-16 buffer to a string.
//
// The content is everything before the first zero unit, or the whole slice when it
// has none. Unpaired or reversed surrogates produce a string_conversion error.
func Decode(buf []uint16) (string, error) {
	return decodeUnits(buf[:contentLen(buf)])
}

// DecodeN decodes the first n units of buf without looking for a terminator.
// n is clamped to len(buf); zero units inside the range are kept as NUL.
func DecodeN(buf []uint16, n int) (string, error) {
	if n < 0 {
		return "", errors.InvalidInput(errors.PhaseDecode, "negative length")
	}
	return decodeUnits(buf[:min(n, len(buf))])
}

// DecodePtr decodes the null-terminated UTF-16 string starting at p.
//
// A nil p returns a nil_pointer error. Otherwise the caller guarantees that p is
// aligned, that the memory up to and including a zero unit is readable, and that it
// is not modified during the call.
func DecodePtr(p *uint16) (string, error) {
	if p == nil {
		return "", errors.NilPointer(errors.PhaseDecode, nil, "*uint16")
	}
	return decodeUnits(unsafe.Slice(p, PtrLen(p)))
}

// PtrLen returns the number of units before the terminator at p, or 0 for nil.
// The same preconditions as DecodePtr apply.
func PtrLen(p *uint16) int {
	if p == nil {
		return 0
	}
	n := 0
	for ptr := unsafe.Pointer(p); *(*uint16)(ptr) != 0; n++ {
		ptr = unsafe.Add(ptr, 2)
	}
	return n
}

// decodeLossy is the never-failing decode used by String and Pooled.
func decodeLossy(buf []uint16) string {
	s, err := Decode(buf)
	if err != nil {
		return Replacement
	}
	return s
}

func contentLen(buf []uint16) int {
	for i, u := range buf {
		if u == 0 {
			return i
		}
	}
	return len(buf)
}

func decodeUnits(units []uint16) (string, error) {
	if len(units) == 0 {
		return "", nil
	}

	var b strings.Builder
	b.Grow(len(units))
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u < utf8.RuneSelf:
			b.WriteByte(byte(u))
		case u < surr1, surr3 <= u:
			b.WriteRune(rune(u))
		case u < surr2 && i+1 < len(units) && surr2 <= units[i+1] && units[i+1] < surr3:
			b.WriteRune(utf16.DecodeRune(rune(u), rune(units[i+1])))
			i++
		default:
			return "", errors.StringConversion(errors.PhaseDecode, nil, units, i)
		}
	}
	return b.String(), nil
}
