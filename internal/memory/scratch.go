package memory

import (
	"context"

	"github.com/tetratelabs/wazero"
	widestring "github.com/wippyai/widestring"
	"github.com/wippyai/widestring/errors"
)

// memoryWASM is a minimal WASM module with 1 page of memory exported as "memory"
var memoryWASM = []byte{
	0x00, 0x61, 0x73, 0x6d, // magic
	0x01, 0x00, 0x00, 0x00, // version
	0x05, 0x03, 0x01, 0x00, 0x01, // memory section: 1 page, no max
	0x07, 0x0a, 0x01, // export section: 10 bytes, 1 export
	0x06, 0x6d, 0x65, 0x6d, 0x6f, 0x72, 0x79, // name: "memory" (6 bytes + string)
	0x02, 0x00, // kind: memory, index 0
}

const pageSize = 65536

// heapBase keeps address 0 unused so a valid allocation is never the nil pointer.
const heapBase = 16

// Scratch is a memory-only guest with a host-side bump allocator.
// It is not safe for concurrent use.
type Scratch struct {
	*Wrapper

	rt   wazero.Runtime
	next uint32
	last uint32 // start of the most recent allocation
}

var _ widestring.Allocator = (*Scratch)(nil)

// NewScratch starts a runtime and instantiates the memory-only module.
// Close releases both.
func NewScratch(ctx context.Context) (*Scratch, error) {
	rt := wazero.NewRuntime(ctx)

	compiled, err := rt.CompileModule(ctx, memoryWASM)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Wrap(errors.PhaseRuntime, errors.KindInvalidData, err, "compile scratch module")
	}
	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(""))
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Wrap(errors.PhaseRuntime, errors.KindInvalidData, err, "instantiate scratch module")
	}

	return &Scratch{
		Wrapper: WrapMemory(mod.ExportedMemory("memory")),
		rt:      rt,
		next:    heapBase,
		last:    heapBase,
	}, nil
}

// Alloc bumps the heap pointer, growing memory by whole pages when needed.
func (s *Scratch) Alloc(size, align uint32) (uint32, error) {
	ptr := s.next
	if align > 1 {
		ptr = (ptr + align - 1) &^ (align - 1)
	}
	end := ptr + size
	if ptr < s.next || end < ptr {
		return 0, errors.AllocationFailed(errors.PhaseRuntime, size, align)
	}

	if have := s.Mem.Size(); end > have {
		pages := (end - have + pageSize - 1) / pageSize
		if _, ok := s.Mem.Grow(pages); !ok {
			return 0, errors.AllocationFailed(errors.PhaseRuntime, size, align)
		}
	}

	s.last = ptr
	s.next = end
	return ptr, nil
}

// Free releases ptr only when it is the most recent allocation.
func (s *Scratch) Free(ptr, size, align uint32) {
	if ptr == s.last && ptr+size == s.next {
		s.next = ptr
	}
}

// Reset discards every allocation. Memory is not shrunk.
func (s *Scratch) Reset() {
	s.next = heapBase
	s.last = heapBase
}

// Used returns the number of heap bytes currently allocated.
func (s *Scratch) Used() uint32 {
	return s.next - heapBase
}

func (s *Scratch) Close(ctx context.Context) error {
	return s.rt.Close(ctx)
}
