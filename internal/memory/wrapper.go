package memory

import (
	"context"

	"github.com/tetratelabs/wazero/api"
	widestring "github.com/wippyai/widestring"
	"github.com/wippyai/widestring/errors"
)

// WrapMemory wraps a wazero api.Memory to implement widestring.Memory.
// The result also implements widestring.MemorySizer.
func WrapMemory(mem api.Memory) *Wrapper {
	if mem == nil {
		return nil
	}
	return &Wrapper{Mem: mem}
}

// WrapAllocator wraps a guest's cabi_realloc export to implement widestring.Allocator.
func WrapAllocator(ctx context.Context, fn api.Function) *AllocatorWrapper {
	if fn == nil {
		return nil
	}
	return &AllocatorWrapper{Ctx: ctx, Fn: fn}
}

var (
	_ widestring.Memory      = (*Wrapper)(nil)
	_ widestring.MemorySizer = (*Wrapper)(nil)
	_ widestring.Allocator   = (*AllocatorWrapper)(nil)
)

// Wrapper adapts wazero api.Memory to the widestring.Memory interface.
type Wrapper struct {
	Mem api.Memory
}

func readErr(offset, length uint32) error {
	return errors.New(errors.PhaseRuntime, errors.KindOutOfBounds).
		Value(offset).
		Detail("memory read out of bounds: offset=%d, length=%d", offset, length).
		Build()
}

func writeErr(offset, length uint32) error {
	return errors.New(errors.PhaseRuntime, errors.KindOutOfBounds).
		Value(offset).
		Detail("memory write out of bounds: offset=%d, length=%d", offset, length).
		Build()
}

// Size returns the current memory size in bytes.
func (m *Wrapper) Size() uint32 {
	return m.Mem.Size()
}

// Read returns a view of guest memory; it is invalidated when memory grows.
func (m *Wrapper) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.Mem.Read(offset, length)
	if !ok {
		return nil, readErr(offset, length)
	}
	return data, nil
}

func (m *Wrapper) Write(offset uint32, data []byte) error {
	if !m.Mem.Write(offset, data) {
		return writeErr(offset, uint32(len(data)))
	}
	return nil
}

func (m *Wrapper) ReadU8(offset uint32) (uint8, error) {
	v, ok := m.Mem.ReadByte(offset)
	if !ok {
		return 0, readErr(offset, 1)
	}
	return v, nil
}

func (m *Wrapper) ReadU16(offset uint32) (uint16, error) {
	v, ok := m.Mem.ReadUint16Le(offset)
	if !ok {
		return 0, readErr(offset, 2)
	}
	return v, nil
}

func (m *Wrapper) ReadU32(offset uint32) (uint32, error) {
	v, ok := m.Mem.ReadUint32Le(offset)
	if !ok {
		return 0, readErr(offset, 4)
	}
	return v, nil
}

func (m *Wrapper) ReadU64(offset uint32) (uint64, error) {
	v, ok := m.Mem.ReadUint64Le(offset)
	if !ok {
		return 0, readErr(offset, 8)
	}
	return v, nil
}

func (m *Wrapper) WriteU8(offset uint32, value uint8) error {
	if !m.Mem.WriteByte(offset, value) {
		return writeErr(offset, 1)
	}
	return nil
}

func (m *Wrapper) WriteU16(offset uint32, value uint16) error {
	if !m.Mem.WriteUint16Le(offset, value) {
		return writeErr(offset, 2)
	}
	return nil
}

func (m *Wrapper) WriteU32(offset uint32, value uint32) error {
	if !m.Mem.WriteUint32Le(offset, value) {
		return writeErr(offset, 4)
	}
	return nil
}

func (m *Wrapper) WriteU64(offset uint32, value uint64) error {
	if !m.Mem.WriteUint64Le(offset, value) {
		return writeErr(offset, 8)
	}
	return nil
}

// AllocatorWrapper adapts a cabi_realloc export to widestring.Allocator.
type AllocatorWrapper struct {
	Ctx context.Context
	Fn  api.Function
}

// Alloc calls cabi_realloc(0, 0, align, size).
func (a *AllocatorWrapper) Alloc(size, align uint32) (uint32, error) {
	results, err := a.Fn.Call(a.Ctx, 0, 0, uint64(align), uint64(size))
	if err != nil {
		return 0, errors.New(errors.PhaseRuntime, errors.KindAllocation).
			Cause(err).
			Detail("cabi_realloc failed for %d bytes", size).
			Build()
	}
	if len(results) == 0 {
		return 0, errors.AllocationFailed(errors.PhaseRuntime, size, align)
	}
	return uint32(results[0]), nil
}

// Free calls cabi_realloc(ptr, size, align, 0).
func (a *AllocatorWrapper) Free(ptr, size, align uint32) {
	_, _ = a.Fn.Call(a.Ctx, uint64(ptr), uint64(size), uint64(align), 0)
}
