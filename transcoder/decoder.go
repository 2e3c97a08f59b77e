package transcoder

import (
	"encoding/binary"

	"github.com/wippyai/widestring/errors"
	"github.com/wippyai/widestring/transcoder/internal/abi"
	"github.com/wippyai/widestring/wide"
	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"
)

// scanChunk is the number of units read per Memory.Read while looking for a terminator.
const scanChunk = 256

// Decoder lifts UTF-16LE buffers out of linear memory.
type Decoder struct {
	logger *zap.Logger
}

func NewDecoder() *Decoder {
	return &Decoder{logger: Logger()}
}

// LiftString decodes units UTF-16 units starting at ptr.
//
// Zero units inside the range are kept. Unpaired surrogates fail with a
// string_conversion error; nothing is replaced.
func (d *Decoder) LiftString(mem Memory, ptr, units uint32) (string, error) {
	if units == 0 {
		return "", nil
	}
	if units > MaxStringUnits {
		return "", errors.New(errors.PhaseLift, errors.KindOverflow).
			WitType("string").
			Value(units).
			Detail("string of %d units exceeds maximum %d", units, MaxStringUnits).
			Build()
	}

	buf := getUnits()
	defer putUnits(buf)
	if err := readUnits(mem, ptr, units, buf); err != nil {
		return "", err
	}

	s, err := wide.DecodeN(*buf, len(*buf))
	if err != nil {
		return "", errors.Wrap(errors.PhaseLift, errors.KindStringConversion, err,
			"lifted string is not valid UTF-16")
	}
	return s, nil
}

// LiftStringZ decodes the null-terminated UTF-16 string at ptr.
//
// ptr 0 is a nil_pointer error. The scan for the terminator stops at the end of
// memory when mem implements MemorySizer, and after MaxStringUnits units
// otherwise; running out before a zero unit is an out_of_bounds error.
func (d *Decoder) LiftStringZ(mem Memory, ptr uint32) (string, error) {
	if ptr == 0 {
		return "", errors.NilPointer(errors.PhaseLift, nil, "uint32")
	}

	n, err := d.terminatorIndex(mem, ptr)
	if err != nil {
		return "", err
	}
	if ce := d.logger.Check(zap.DebugLevel, "found terminator"); ce != nil {
		ce.Write(zap.Uint32("ptr", ptr), zap.Uint32("units", n))
	}
	return d.LiftString(mem, ptr, n)
}

// terminatorIndex returns the number of units before the first zero unit at ptr.
func (d *Decoder) terminatorIndex(mem Memory, ptr uint32) (uint32, error) {
	if mem == nil {
		return 0, errors.NilPointer(errors.PhaseLift, nil, "Memory")
	}
	limit := uint32(MaxStringUnits) + 1
	sizer, ok := mem.(MemorySizer)
	if !ok {
		return scanUnits(mem, ptr, limit)
	}

	size := sizer.Size()
	if ptr >= size {
		return 0, errors.OutOfBounds(errors.PhaseLift, nil, int(ptr), int(size))
	}
	limit = min(limit, (size-ptr)/abi.UnitSize)

	for off := uint32(0); off < limit; off += scanChunk {
		count := min(scanChunk, limit-off)
		data, err := mem.Read(ptr+off*abi.UnitSize, count*abi.UnitSize)
		if err != nil {
			return 0, errors.Wrap(errors.PhaseLift, errors.KindOutOfBounds, err, "read string data")
		}
		for i := uint32(0); i < count; i++ {
			if binary.LittleEndian.Uint16(data[i*abi.UnitSize:]) == 0 {
				return off + i, nil
			}
		}
	}
	return 0, missingTerminator(ptr, limit)
}

// scanUnits reads one unit at a time, for memories that cannot report their size.
func scanUnits(mem Memory, ptr, limit uint32) (uint32, error) {
	for i := uint32(0); i < limit; i++ {
		addr, ok := abi.SafeAddU32(ptr, i*abi.UnitSize)
		if !ok {
			return 0, missingTerminator(ptr, i)
		}
		u, err := mem.ReadU16(addr)
		if err != nil {
			return 0, errors.New(errors.PhaseLift, errors.KindOutOfBounds).
				Cause(err).
				Value(addr).
				Detail("no terminator before end of memory at 0x%x", addr).
				Build()
		}
		if u == 0 {
			return i, nil
		}
	}
	return 0, missingTerminator(ptr, limit)
}

func missingTerminator(ptr, scanned uint32) error {
	return errors.New(errors.PhaseLift, errors.KindOutOfBounds).
		Value(ptr).
		Detail("no terminator within %d units of 0x%x", scanned, ptr).
		Build()
}

// readUnits fills buf with units little-endian units read from ptr.
func readUnits(mem Memory, ptr, units uint32, buf *[]uint16) error {
	if mem == nil {
		return errors.NilPointer(errors.PhaseLift, nil, "Memory")
	}
	size, ok := abi.SafeMulU32(units, abi.UnitSize)
	if !ok || size > MaxAlloc {
		return errors.New(errors.PhaseLift, errors.KindOverflow).
			Detail("string data size overflow: %d * 2", units).
			Build()
	}
	data, err := mem.Read(ptr, size)
	if err != nil {
		return errors.Wrap(errors.PhaseLift, errors.KindOutOfBounds, err, "read string data")
	}

	out := (*buf)[:0]
	for i := 0; i+1 < len(data); i += abi.UnitSize {
		out = append(out, binary.LittleEndian.Uint16(data[i:]))
	}
	*buf = out
	return nil
}

// Lift converts a flat [ptr, len] pair back into a Go value according to t.
//
// A WIT string lifts to string with strict decoding; a list<u16> lifts to a
// fresh []uint16 of exactly len units.
func (d *Decoder) Lift(t wit.Type, flat []uint64, mem Memory) (any, error) {
	count := flatCount(t)
	if count == 0 {
		return nil, errors.Unsupported(errors.PhaseLift, "WIT type "+typeName(t))
	}
	if len(flat) < count {
		return nil, errors.InvalidData(errors.PhaseLift, nil, "insufficient flat values")
	}

	ptr, n := uint32(flat[0]), uint32(flat[1])
	if _, ok := t.(wit.String); ok {
		return d.LiftString(mem, ptr, n)
	}

	if n == 0 {
		return []uint16{}, nil
	}
	if n > MaxStringUnits {
		return nil, errors.Overflow(errors.PhaseLift, nil, n, "maximum list length")
	}
	buf := getUnits()
	defer putUnits(buf)
	if err := readUnits(mem, ptr, n, buf); err != nil {
		return nil, err
	}
	return append([]uint16(nil), *buf...), nil
}
