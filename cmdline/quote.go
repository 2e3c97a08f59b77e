package cmdline

import (
	"strings"

	"github.com/wippyai/widestring/wide"
)

// NeedsQuote reports whether arg must be quoted to survive command-line splitting.
func NeedsQuote(arg string) bool {
	return arg == "" || strings.ContainsAny(arg, " \t\"")
}

// Quote returns arg escaped for inclusion in a native command line.
// When no quoting is needed arg itself is returned.
func Quote(arg string) string {
	if !NeedsQuote(arg) {
		return arg
	}
	var sb strings.Builder
	sb.Grow(len(arg) + 2)
	appendQuoted(&sb, arg)
	return sb.String()
}

func appendQuoted(sb *strings.Builder, arg string) {
	if !NeedsQuote(arg) {
		sb.WriteString(arg)
		return
	}

	sb.WriteByte('"')
	backslashes := 0
	for i := 0; i < len(arg); i++ {
		c := arg[i]
		switch c {
		case '\\':
			backslashes++
			continue
		case '"':
			// The run precedes a quote, so every backslash is escaped
			// and the quote itself gets one more.
			writeBackslashes(sb, backslashes*2+1)
		default:
			writeBackslashes(sb, backslashes)
		}
		backslashes = 0
		sb.WriteByte(c)
	}
	// Trailing backslashes precede the closing quote.
	writeBackslashes(sb, backslashes*2)
	sb.WriteByte('"')
}

func writeBackslashes(sb *strings.Builder, n int) {
	for range n {
		sb.WriteByte('\\')
	}
}

// Join quotes program and args and separates them with single spaces.
func Join(program string, args ...string) string {
	n := len(program) + 2
	for _, a := range args {
		n += len(a) + 3
	}

	var sb strings.Builder
	sb.Grow(n)
	appendQuoted(&sb, program)
	for _, a := range args {
		sb.WriteByte(' ')
		appendQuoted(&sb, a)
	}
	return sb.String()
}

// JoinWide is Join encoded as a null-terminated UTF-16 buffer.
//
// Process-creation calls may write into the command-line buffer, so the result
// is always a fresh slice owned by the caller.
func JoinWide(program string, args ...string) []uint16 {
	return wide.Encode(Join(program, args...))
}
