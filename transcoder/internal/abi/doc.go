// Package abi provides internal helpers for lowering UTF-16 strings into linear memory.
//
// It holds the checked arithmetic used to size guest allocations, the size
// limits shared by the encoder and decoder, and flat-value counting for the
// WIT types the transcoder accepts.
//
// This package is internal to the transcoder.
package abi
