// Package transcoder moves UTF-16 strings across the boundary between host
// code and a WebAssembly guest's linear memory.
//
// Lowering copies a host string into a freshly allocated guest buffer in the
// same layout native wide-character APIs expect; lifting reads one back:
//
//	┌──────────────────────────────────────────────────────────────┐
//	│ string / wide.String ←→ [Encoder|Decoder] ←→ linear memory   │
//	└──────────────────────────────────────────────────────────────┘
//
// # Memory Layout
//
// Every lowered buffer is UTF-16LE, aligned to 2, and ends with one zero unit:
//
//	ptr → │ u0 lo │ u0 hi │ u1 lo │ u1 hi │ ... │ 00 │ 00 │
//	        ←──────── units * 2 bytes ────────→ terminator
//
// The flat representation is the Canonical ABI pair (ptr, len) where len
// counts UTF-16 units and never includes the terminator. A buffer for the
// empty string still holds the terminator, so a lowered pointer is never 0.
//
// # Types
//
//	WIT type    Go values accepted by Lower        Lift result
//	────────────────────────────────────────────────────────────
//	string      string, wide.String, *wide.String,  string
//	            *wide.Pooled
//	list<u16>   []uint16                            []uint16
//
// # Allocation
//
// Buffers come from the guest's allocator (typically cabi_realloc) through the
// Allocator interface. Pass an AllocationList to track them and free them
// together with FreeAndRelease once the guest no longer needs them.
//
// # Decoding
//
// LiftString takes an explicit length. LiftStringZ scans for the terminator,
// bounded by the memory size when the Memory implements MemorySizer and by
// MaxStringUnits otherwise. Both decode strictly: an unpaired surrogate is a
// string_conversion error.
//
// # Thread Safety
//
// Encoder and Decoder hold no per-call state and may be shared. Memory and
// Allocator implementations generally are not safe for concurrent use, and
// an AllocationList belongs to one call.
package transcoder
