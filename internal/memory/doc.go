// Package memory adapts wazero linear memory to the Memory and Allocator
// interfaces used for lowering wide strings.
//
// WrapMemory and WrapAllocator bridge a real guest: its exported memory and its
// cabi_realloc function. NewScratch instantiates a memory-only guest with a
// host-side bump allocator, which is enough to lower and lift strings when no
// guest code is involved.
package memory
