package wide

import (
	"slices"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/wippyai/widestring/errors"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []uint16
	}{
		{"empty", "", []uint16{0}},
		{"ascii", "Hello", []uint16{72, 101, 108, 108, 111, 0}},
		{"bmp", "日本", []uint16{0x65e5, 0x672c, 0}},
		{"surrogate pair", "🎉", []uint16{0xd83c, 0xdf89, 0}},
		{"bom", "\ufeffA", []uint16{0xfeff, 'A', 0}},
		{"embedded nul", "a\x00b", []uint16{'a', 0, 'b', 0}},
		{"invalid utf8", "a\xffb", []uint16{'a', 0xfffd, 'b', 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(tt.in)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Encode(%q) = %04x, want %04x", tt.in, got, tt.want)
			}
			if got[len(got)-1] != 0 {
				t.Error("result is not null-terminated")
			}
			if n := EncodedLen(tt.in); n != len(tt.want)-1 {
				t.Errorf("EncodedLen(%q) = %d, want %d", tt.in, n, len(tt.want)-1)
			}
		})
	}
}

func TestEncode_MatchesStdlib(t *testing.T) {
	texts := []string{
		"ASCII only",
		"日本語テスト",
		"한국어 테스트",
		"Тест на русском",
		"Ελληνικά",
		"עברית",
		"العربية",
		"हिन्दी",
		"a\u200db\u200cc",
		"e\u0301",
		"👨\u200d👩\u200d👧",
		"Hello 🌍🌎🌏!",
	}
	for _, text := range texts {
		want := append(utf16.Encode([]rune(text)), 0)
		if got := Encode(text); !slices.Equal(got, want) {
			t.Errorf("Encode(%q) = %04x, want %04x", text, got, want)
		}
	}
}

func TestAppendEncoded_NoTerminator(t *testing.T) {
	dst := []uint16{'x'}
	dst = AppendEncoded(dst, "yz")
	if !slices.Equal(dst, []uint16{'x', 'y', 'z'}) {
		t.Errorf("AppendEncoded = %04x", dst)
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	texts := []string{
		"",
		"Hello, World! 🌍",
		"\ufeffHello",
		"日本語テスト",
		"👨\u200d👩\u200d👧",
		strings.Repeat("long ", 500),
	}
	for _, text := range texts {
		got, err := Decode(Encode(text))
		if err != nil {
			t.Fatalf("Decode(Encode(%q)) error: %v", text, err)
		}
		if got != text {
			t.Errorf("round trip = %q, want %q", got, text)
		}
	}
}

func TestDecode_SurrogatePair(t *testing.T) {
	buf := Encode("🎉")
	if len(buf) != 3 {
		t.Fatalf("len = %d, want 3", len(buf))
	}
	if !utf16.IsSurrogate(rune(buf[0])) || buf[0] >= surr2 {
		t.Errorf("unit 0 = %04x, want high surrogate", buf[0])
	}
	if buf[1] < surr2 || buf[1] >= surr3 {
		t.Errorf("unit 1 = %04x, want low surrogate", buf[1])
	}
	got, err := Decode(buf)
	if err != nil || got != "🎉" {
		t.Errorf("Decode = %q, %v", got, err)
	}
}

func TestDecode_EmbeddedNulTruncates(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc\x00def", "abc"},
		{"\x00abc", ""},
		{"abc\x00", "abc"},
		{"日本\x00語", "日本"},
	}
	for _, tt := range tests {
		got, err := Decode(Encode(tt.in))
		if err != nil {
			t.Fatalf("Decode error: %v", err)
		}
		if got != tt.want {
			t.Errorf("Decode(Encode(%q)) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecode_NoTerminator(t *testing.T) {
	got, err := Decode([]uint16{'h', 'i'})
	if err != nil || got != "hi" {
		t.Errorf("Decode = %q, %v; want \"hi\"", got, err)
	}
	got, err = Decode(nil)
	if err != nil || got != "" {
		t.Errorf("Decode(nil) = %q, %v", got, err)
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		in    []uint16
		index int
	}{
		{"lone high surrogate", []uint16{0xd800, 0}, 0},
		{"lone low surrogate", []uint16{0xdc00, 0}, 0},
		{"reversed pair", []uint16{0xdc00, 0xd800, 0}, 0},
		{"high then ascii", []uint16{'a', 0xd83c, 'b', 0}, 1},
		{"high at end without terminator", []uint16{'a', 0xdbff}, 1},
		{"two highs", []uint16{0xd800, 0xd800, 0xdc00, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.in)
			if err == nil {
				t.Fatalf("Decode(%04x) = %q, want error", tt.in, got)
			}
			if got != "" {
				t.Errorf("Decode returned text %q alongside error", got)
			}
			target := &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindStringConversion}
			if !errors.HasKind(err, errors.KindStringConversion) || !target.Is(err.(*errors.Error)) {
				t.Errorf("error = %v, want string_conversion", err)
			}
			if e := err.(*errors.Error); e.Value != tt.in[tt.index] {
				t.Errorf("offending unit = %v, want %04x", e.Value, tt.in[tt.index])
			}
		})
	}
}

func TestDecode_InvalidAfterTerminatorIgnored(t *testing.T) {
	got, err := Decode([]uint16{'o', 'k', 0, 0xd800})
	if err != nil || got != "ok" {
		t.Errorf("Decode = %q, %v; want \"ok\"", got, err)
	}
}

func TestDecodeN(t *testing.T) {
	buf := []uint16{'a', 0, 'b', 'c'}

	got, err := DecodeN(buf, 3)
	if err != nil || got != "a\x00b" {
		t.Errorf("DecodeN(3) = %q, %v", got, err)
	}
	got, err = DecodeN(buf, 100)
	if err != nil || got != "a\x00bc" {
		t.Errorf("DecodeN(100) = %q, %v", got, err)
	}
	if _, err := DecodeN(buf, -1); !errors.HasKind(err, errors.KindInvalidInput) {
		t.Errorf("DecodeN(-1) error = %v, want invalid_input", err)
	}
	if _, err := DecodeN([]uint16{0xdc00}, 1); !errors.HasKind(err, errors.KindStringConversion) {
		t.Errorf("DecodeN(lone low) error = %v", err)
	}
}

func TestDecodePtr(t *testing.T) {
	buf := Encode("pointer 🎉")
	got, err := DecodePtr(&buf[0])
	if err != nil || got != "pointer 🎉" {
		t.Errorf("DecodePtr = %q, %v", got, err)
	}
	if n := PtrLen(&buf[0]); n != len(buf)-1 {
		t.Errorf("PtrLen = %d, want %d", n, len(buf)-1)
	}

	empty := Encode("")
	got, err = DecodePtr(&empty[0])
	if err != nil || got != "" {
		t.Errorf("DecodePtr(empty) = %q, %v", got, err)
	}

	bad := []uint16{0xd800, 0}
	if _, err := DecodePtr(&bad[0]); !errors.HasKind(err, errors.KindStringConversion) {
		t.Errorf("DecodePtr(bad) error = %v", err)
	}
}

func TestDecodePtr_Nil(t *testing.T) {
	_, err := DecodePtr(nil)
	if err == nil {
		t.Fatal("expected error for nil pointer")
	}
	if !errors.HasKind(err, errors.KindNilPointer) {
		t.Errorf("error = %v, want nil_pointer", err)
	}
	if PtrLen(nil) != 0 {
		t.Error("PtrLen(nil) != 0")
	}
}
