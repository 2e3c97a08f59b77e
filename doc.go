// Package widestring converts between Go strings and null-terminated UTF-16 buffers
// for native wide-character APIs and for WebAssembly guests that take UTF-16 strings.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	widestring/         Root package with the Memory and Allocator interfaces
//	├── wide/           Codec, small-string optimized String, Builder and Pool
//	├── cmdline/        Command-line argument quoting and environment blocks
//	├── transcoder/     Lowering/lifting UTF-16 strings into linear memory
//	├── internal/memory wazero adapters and host-side scratch memory
//	├── errors/         Structured error types for debugging
//	└── cmd/widestr     Command-line inspector
//
// # Quick Start
//
// Convert a string and hand the pointer to a native call:
//
//	s := wide.New(`C:\Windows\System32`)
//	callNative(s.Ptr()) // valid while s is alive
//
//	text, err := wide.Decode(buf)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Convert many strings without allocating for each one:
//
//	pool := wide.NewPool()
//	p := pool.Get("HKEY_LOCAL_MACHINE")
//	callNative(p.Ptr())
//	pool.Put(&p) // p.Ptr() must not be used after this
//
// Build a command line:
//
//	line := cmdline.Join("app.exe", "--path", `C:\Program Files\`)
//
// # Buffer Layout
//
// Every buffer handed out is a contiguous run of 16-bit code units ending with one
// zero unit. A string containing NUL produces a buffer with an interior zero, and
// consumers reading it as a C string see only the prefix before that zero. Decode
// applies the same rule, so Decode(Encode(s)) returns s truncated at its first NUL.
//
// # Thread Safety
//
// None of String, Builder or Pool synchronize internally. A String is immutable and
// may be read from several goroutines; Builder and Pool must be confined to one
// goroutine or guarded by the caller.
//
// # Pointer Lifetime
//
// Pointers returned by Ptr are valid only while the owning value is alive. A pooled
// handle's pointer becomes invalid when the handle is returned with Pool.Put, since
// the buffer may be handed to the next Get.
package widestring
