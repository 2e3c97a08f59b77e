package wide

import (
	"unicode/utf16"
	"unicode/utf8"
)

// EncodePath returns the native wide encoding of a file system path followed by a
// terminator.
//
// Windows file names may hold unpaired surrogates. Go carries those in strings as the
// three-byte generalized UTF-8 form of the surrogate code point (WTF-8), which
// EncodePath turns back into the original lone unit. Everything else follows Encode.
func EncodePath(path string) []uint16 {
	buf := make([]uint16, 0, len(path)+1)
	buf = AppendPath(buf, path)
	return append(buf, 0)
}

// AppendPath appends the native wide encoding of path to dst without a terminator.
func AppendPath(dst []uint16, path string) []uint16 {
	for i := 0; i < len(path); {
		r, size := nextPathRune(path[i:])
		i += size
		if surr1 <= r && r < surr3 {
			dst = append(dst, uint16(r))
			continue
		}
		dst = utf16.AppendRune(dst, r)
	}
	return dst
}

// PathLen returns the number of units EncodePath produces, excluding the terminator.
func PathLen(path string) int {
	n := 0
	for i := 0; i < len(path); {
		r, size := nextPathRune(path[i:])
		i += size
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// nextPathRune decodes the first rune of p, accepting surrogate code points in their
// three-byte form.
func nextPathRune(p string) (rune, int) {
	if p[0] < utf8.RuneSelf {
		return rune(p[0]), 1
	}
	r, size := utf8.DecodeRuneInString(p)
	if r != utf8.RuneError || size != 1 {
		return r, size
	}
	if len(p) >= 3 && p[0] == 0xed && 0xa0 <= p[1] && p[1] <= 0xbf && p[2]&0xc0 == 0x80 {
		return 0xd000 | rune(p[1]&0x3f)<<6 | rune(p[2]&0x3f), 3
	}
	return utf8.RuneError, 1
}
