package transcoder

import (
	stderrors "errors"
	"slices"
	"strings"
	"testing"

	"github.com/wippyai/widestring/errors"
	"go.bytecodealliance.org/wit"
)

func TestDecoder_LiftString(t *testing.T) {
	dec := NewDecoder()

	tests := []struct {
		name  string
		units []uint16
		n     uint32
		want  string
		kind  errors.Kind
	}{
		{"ascii", []uint16{'h', 'i'}, 2, "hi", ""},
		{"pair", []uint16{0xd83c, 0xdf89}, 2, "🎉", ""},
		{"interior zero kept", []uint16{'a', 0, 'b'}, 3, "a\x00b", ""},
		{"prefix", []uint16{'a', 'b', 'c'}, 2, "ab", ""},
		{"zero length", []uint16{0xd800}, 0, "", ""},
		{"lone high", []uint16{'a', 0xd800}, 2, "", errors.KindStringConversion},
		{"lone low", []uint16{0xdc00, 'a'}, 2, "", errors.KindStringConversion},
		{"reversed pair", []uint16{0xdf89, 0xd83c}, 2, "", errors.KindStringConversion},
		{"split pair", []uint16{0xd83c, 0xdf89}, 1, "", errors.KindStringConversion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := newMockMemory(256)
			putUnitsAt(mem, 16, tt.units...)

			got, err := dec.LiftString(mem, 16, tt.n)
			if tt.kind != "" {
				if !errors.HasKind(err, tt.kind) {
					t.Fatalf("err = %v, want kind %s", err, tt.kind)
				}
				var e *errors.Error
				if !stderrors.As(err, &e) || e.Phase != errors.PhaseLift {
					t.Errorf("err phase = %v, want lift", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("LiftString = %q, %v; want %q", got, err, tt.want)
			}
		})
	}
}

func TestDecoder_LiftStringBounds(t *testing.T) {
	dec := NewDecoder()
	mem := newMockMemory(64)

	if _, err := dec.LiftString(mem, 60, 10); !errors.HasKind(err, errors.KindOutOfBounds) {
		t.Errorf("read past end: err = %v", err)
	}
	if _, err := dec.LiftString(mem, 0, MaxStringUnits+1); !errors.HasKind(err, errors.KindOverflow) {
		t.Errorf("oversized: err = %v", err)
	}
}

func TestDecoder_NilMemory(t *testing.T) {
	dec := NewDecoder()

	if _, err := dec.LiftString(nil, 8, 2); !errors.HasKind(err, errors.KindNilPointer) {
		t.Errorf("LiftString: err = %v", err)
	}
	if _, err := dec.LiftStringZ(nil, 8); !errors.HasKind(err, errors.KindNilPointer) {
		t.Errorf("LiftStringZ: err = %v", err)
	}
	list := &wit.TypeDef{Kind: &wit.List{Type: wit.U16{}}}
	if _, err := dec.Lift(list, []uint64{8, 2}, nil); !errors.HasKind(err, errors.KindNilPointer) {
		t.Errorf("Lift: err = %v", err)
	}
}

func TestDecoder_LiftStringZ(t *testing.T) {
	dec := NewDecoder()

	t.Run("nil pointer", func(t *testing.T) {
		_, err := dec.LiftStringZ(newMockMemory(16), 0)
		if !errors.HasKind(err, errors.KindNilPointer) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("stops at first zero", func(t *testing.T) {
		mem := newMockMemory(128)
		putUnitsAt(mem, 8, 'a', 'b', 0, 'c', 0)
		for _, m := range []Memory{mem, sizedMemory{mem}} {
			got, err := dec.LiftStringZ(m, 8)
			if err != nil || got != "ab" {
				t.Errorf("LiftStringZ = %q, %v", got, err)
			}
		}
	})

	t.Run("spans scan chunks", func(t *testing.T) {
		n := scanChunk*2 + 7
		mem := newMockMemory(4 + (n+1)*2)
		units := make([]uint16, n)
		for i := range units {
			units[i] = 'x'
		}
		putUnitsAt(mem, 4, units...)
		got, err := dec.LiftStringZ(sizedMemory{mem}, 4)
		if err != nil || got != strings.Repeat("x", n) {
			t.Errorf("LiftStringZ len=%d, %v", len(got), err)
		}
	})

	t.Run("no terminator", func(t *testing.T) {
		mem := newMockMemory(32)
		for i := range mem.data {
			mem.data[i] = 'z'
		}
		for _, m := range []Memory{mem, sizedMemory{mem}} {
			if _, err := dec.LiftStringZ(m, 2); !errors.HasKind(err, errors.KindOutOfBounds) {
				t.Errorf("%T: err = %v, want out_of_bounds", m, err)
			}
		}
	})

	t.Run("pointer past memory", func(t *testing.T) {
		mem := newMockMemory(32)
		if _, err := dec.LiftStringZ(sizedMemory{mem}, 64); !errors.HasKind(err, errors.KindOutOfBounds) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("invalid content", func(t *testing.T) {
		mem := newMockMemory(32)
		putUnitsAt(mem, 2, 0xdc00, 0)
		if _, err := dec.LiftStringZ(mem, 2); !errors.HasKind(err, errors.KindStringConversion) {
			t.Errorf("err = %v", err)
		}
	})
}

func TestDecoder_Lift(t *testing.T) {
	dec := NewDecoder()
	mem := newMockMemory(64)
	putUnitsAt(mem, 8, 'o', 'k', 0xd800)
	unitList := &wit.TypeDef{Kind: &wit.List{Type: wit.U16{}}}

	got, err := dec.Lift(wit.String{}, []uint64{8, 2}, mem)
	if err != nil || got != "ok" {
		t.Errorf("Lift(string) = %v, %v", got, err)
	}

	got, err = dec.Lift(unitList, []uint64{8, 3}, mem)
	if err != nil || !slices.Equal(got.([]uint16), []uint16{'o', 'k', 0xd800}) {
		t.Errorf("Lift(list<u16>) = %v, %v", got, err)
	}

	// The lifted list owns its storage.
	units := got.([]uint16)
	putUnitsAt(mem, 8, 'X')
	if units[0] != 'o' {
		t.Error("lifted list aliases memory")
	}

	if _, err := dec.Lift(wit.String{}, []uint64{8}, mem); !errors.HasKind(err, errors.KindInvalidData) {
		t.Errorf("short flat: err = %v", err)
	}
	if _, err := dec.Lift(wit.Bool{}, []uint64{1}, mem); !errors.HasKind(err, errors.KindUnsupported) {
		t.Errorf("bool: err = %v", err)
	}
	if _, err := dec.Lift(unitList, []uint64{8, MaxStringUnits + 1}, mem); !errors.HasKind(err, errors.KindOverflow) {
		t.Errorf("oversized list: err = %v", err)
	}
}
