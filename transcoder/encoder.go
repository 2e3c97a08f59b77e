package transcoder

import (
	"encoding/binary"
	"slices"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/wippyai/widestring/errors"
	"github.com/wippyai/widestring/transcoder/internal/abi"
	"github.com/wippyai/widestring/wide"
	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"
)

// Safety limits to prevent memory exhaustion.
const (
	MaxStringUnits = abi.MaxStringUnits // Maximum content units per lowered string
	MaxAlloc       = abi.MaxAlloc       // Maximum allocation size (1 GB)
)

// UnitAlign is the alignment of every lowered buffer.
const UnitAlign = abi.UnitSize

var (
	typeName  = abi.TypeName
	flatCount = abi.FlatCount
)

// Encoder lowers host strings into null-terminated UTF-16LE buffers in linear memory.
type Encoder struct {
	logger *zap.Logger
}

func NewEncoder() *Encoder {
	return &Encoder{logger: Logger()}
}

// LowerString encodes s as UTF-16, allocates (units+1)*2 bytes aligned to 2
// and writes the content followed by a zero unit.
//
// units excludes the terminator. The empty string still gets a buffer holding
// only the terminator, so ptr is never 0 on success.
func (e *Encoder) LowerString(mem Memory, alloc Allocator, allocList *AllocationList, s string) (ptr, units uint32, err error) {
	n := wide.EncodedLen(s)
	if n > MaxStringUnits {
		return 0, 0, errors.New(errors.PhaseLower, errors.KindOverflow).
			GoType("string").
			WitType("string").
			Value(n).
			Detail("string of %d units exceeds maximum %d", n, MaxStringUnits).
			Build()
	}

	scratch := getScratch()
	defer putScratch(scratch)
	*scratch = appendStringLE((*scratch)[:0], s)
	*scratch = append(*scratch, 0, 0)

	ptr, err = e.write(mem, alloc, allocList, uint32(n), *scratch)
	if err != nil {
		return 0, 0, err
	}
	if ce := e.logger.Check(zap.DebugLevel, "lowered string"); ce != nil {
		ce.Write(zap.Uint32("ptr", ptr), zap.Int("units", n))
	}
	return ptr, uint32(n), nil
}

// LowerUnits lowers an already encoded buffer. Content ends at the first zero
// unit when there is one, so both wide.String.Slice and wide.String.Units work.
func (e *Encoder) LowerUnits(mem Memory, alloc Allocator, allocList *AllocationList, units []uint16) (ptr, n uint32, err error) {
	if i := slices.Index(units, 0); i >= 0 {
		units = units[:i]
	}
	return e.lowerUnits(mem, alloc, allocList, units)
}

func (e *Encoder) lowerUnits(mem Memory, alloc Allocator, allocList *AllocationList, units []uint16) (uint32, uint32, error) {
	if len(units) > MaxStringUnits {
		return 0, 0, errors.New(errors.PhaseLower, errors.KindOverflow).
			GoType("[]uint16").
			Value(len(units)).
			Detail("buffer of %d units exceeds maximum %d", len(units), MaxStringUnits).
			Build()
	}

	scratch := getScratch()
	defer putScratch(scratch)
	buf := slices.Grow((*scratch)[:0], (len(units)+1)*abi.UnitSize)
	for _, u := range units {
		buf = binary.LittleEndian.AppendUint16(buf, u)
	}
	buf = append(buf, 0, 0)
	*scratch = buf

	ptr, err := e.write(mem, alloc, allocList, uint32(len(units)), buf)
	if err != nil {
		return 0, 0, err
	}
	return ptr, uint32(len(units)), nil
}

// write allocates room for units content units plus the terminator and copies
// data, which already holds both, into it.
func (e *Encoder) write(mem Memory, alloc Allocator, allocList *AllocationList, units uint32, data []byte) (uint32, error) {
	if mem == nil {
		return 0, errors.NilPointer(errors.PhaseLower, nil, "Memory")
	}
	if alloc == nil {
		return 0, errors.NilPointer(errors.PhaseLower, nil, "Allocator")
	}
	size, ok := abi.TerminatedSize(units)
	if !ok || int(size) != len(data) {
		return 0, errors.Overflow(errors.PhaseLower, nil, units, "maximum allocation")
	}

	ptr, err := alloc.Alloc(size, UnitAlign)
	if err != nil {
		return 0, errors.New(errors.PhaseLower, errors.KindAllocation).
			Cause(err).
			Detail("failed to allocate %d bytes for string data", size).
			Build()
	}
	if allocList != nil {
		allocList.Add(ptr, size, UnitAlign)
	}

	if err := mem.Write(ptr, data); err != nil {
		return 0, errors.Wrap(errors.PhaseLower, errors.KindOutOfBounds, err, "write string data")
	}
	return ptr, nil
}

// Lower lowers value according to t and returns the flat [ptr, len] pair.
//
// A WIT string accepts string, wide.String, *wide.String and *wide.Pooled; the
// lowered buffer is null-terminated and len counts UTF-16 units. A list<u16>
// accepts []uint16 and lowers every unit verbatim, interior zeros included,
// followed by a terminator that len does not count.
func (e *Encoder) Lower(t wit.Type, value any, mem Memory, alloc Allocator, allocList *AllocationList) ([]uint64, error) {
	if flatCount(t) == 0 {
		return nil, errors.Unsupported(errors.PhaseLower, "WIT type "+typeName(t))
	}

	var (
		ptr, n uint32
		err    error
	)
	if _, ok := t.(wit.String); ok {
		ptr, n, err = e.lowerStringValue(value, mem, alloc, allocList)
	} else {
		units, ok := value.([]uint16)
		if !ok {
			return nil, errors.TypeMismatch(errors.PhaseLower, nil, typeName(value), "list<u16>")
		}
		ptr, n, err = e.lowerUnits(mem, alloc, allocList, units)
	}
	if err != nil {
		return nil, err
	}
	return []uint64{uint64(ptr), uint64(n)}, nil
}

func (e *Encoder) lowerStringValue(value any, mem Memory, alloc Allocator, allocList *AllocationList) (uint32, uint32, error) {
	switch v := value.(type) {
	case string:
		return e.LowerString(mem, alloc, allocList, v)
	case wide.String:
		return e.LowerUnits(mem, alloc, allocList, v.Units())
	case *wide.String:
		if v == nil {
			return 0, 0, errors.NilPointer(errors.PhaseLower, nil, "*wide.String")
		}
		return e.LowerUnits(mem, alloc, allocList, v.Units())
	case *wide.Pooled:
		if v == nil || v.Ptr() == nil {
			return 0, 0, errors.NilPointer(errors.PhaseLower, nil, "*wide.Pooled")
		}
		return e.LowerUnits(mem, alloc, allocList, v.Slice())
	default:
		return 0, 0, errors.TypeMismatch(errors.PhaseLower, nil, typeName(value), "string")
	}
}

// appendStringLE appends the UTF-16LE encoding of s, matching wide.Encode unit for unit.
func appendStringLE(dst []byte, s string) []byte {
	dst = slices.Grow(dst, 2*len(s)+2)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < utf8.RuneSelf {
			dst = append(dst, c, 0)
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size - 1
		if r < 0x10000 {
			dst = binary.LittleEndian.AppendUint16(dst, uint16(r))
			continue
		}
		r1, r2 := utf16.EncodeRune(r)
		dst = binary.LittleEndian.AppendUint16(dst, uint16(r1))
		dst = binary.LittleEndian.AppendUint16(dst, uint16(r2))
	}
	return dst
}
