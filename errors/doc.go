// Package errors provides structured error types for the widestring library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries a field path, the Go type involved, the WIT type when the
// error comes from the transcoder, and an optional cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseLower, errors.KindOverflow).
//		Path("args", "0").
//		GoType("string").
//		Detail("string of %d units exceeds limit", n).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.StringConversion(errors.PhaseDecode, nil, units, 3)
//	err := errors.NilPointer(errors.PhaseDecode, nil, "*uint16")
//
// All errors implement the standard error interface and support errors.Is/As.
// Two *Error values match under errors.Is when their Phase and Kind agree.
package errors
