package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/widestring/cmdline"
	"github.com/wippyai/widestring/errors"
	"github.com/wippyai/widestring/wide"
)

var labelStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#87CEEB"))

// styler renders labels with color only when writing to a terminal.
type styler struct {
	enabled bool
}

func newStyler(enabled bool) styler {
	return styler{enabled: enabled}
}

func (s styler) label(text string) string {
	if !s.enabled {
		return text
	}
	return labelStyle.Render(text)
}

// report summarizes how a string is stored and passed to native code.
type report struct {
	Units   string
	Variant string
	Quoted  string
	Lifted  string
	Len     int
	Valid   bool
}

func describe(ws *wide.String) report {
	r := report{
		Units:   formatUnits(ws.Slice()),
		Len:     ws.Len(),
		Variant: "heap",
	}
	if ws.IsInline() {
		r.Variant = "inline"
	}
	s, err := wide.Decode(ws.Slice())
	r.Valid = err == nil
	r.Lifted = ws.StringLossy()
	r.Quoted = cmdline.Quote(s)
	return r
}

// formatUnits renders units as space separated 4-digit hex.
func formatUnits(units []uint16) string {
	var b strings.Builder
	b.Grow(len(units) * 5)
	for i, u := range units {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%04x", u)
	}
	return b.String()
}

// parseUnits reads hex units separated by spaces or commas. A 0x prefix is optional.
func parseUnits(s string) ([]uint16, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	units := make([]uint16, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimPrefix(strings.TrimPrefix(f, "0x"), "0X")
		v, err := strconv.ParseUint(f, 16, 16)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseValidate, errors.KindInvalidInput, err,
				fmt.Sprintf("invalid unit %q", f))
		}
		units = append(units, uint16(v))
	}
	return units, nil
}

// parseEnv splits KEY=VALUE arguments. The first '=' after the first
// character separates, so keys like "=C:" stay intact.
func parseEnv(args []string) (map[string]string, error) {
	env := make(map[string]string, len(args))
	for n, kv := range args {
		i := strings.IndexByte(kv[min(1, len(kv)):], '=')
		if kv == "" || i < 0 {
			return nil, errors.New(errors.PhaseValidate, errors.KindInvalidInput).
				Path("env", strconv.Itoa(n)).
				Value(kv).
				Detail("expected KEY=VALUE, got %q", kv).
				Build()
		}
		i += min(1, len(kv))
		env[kv[:i]] = kv[i+1:]
	}
	return env, nil
}
