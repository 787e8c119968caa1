package types_test

import (
	"testing"

	"tabc/internal/types"
)

func TestRenderRoundTrip(t *testing.T) {
	cases := []string{"i64", "u64*", "bool", "char[4]", "i32*[3]", "i64[2]*"}
	for _, text := range cases {
		in := types.NewInterner()
		id, err := types.Parse(in, text)
		if err != nil {
			t.Fatalf("Parse(%q): %v", text, err)
		}
		rendered := in.String(id)
		if rendered != text {
			t.Fatalf("round trip mismatch: Parse(%q) then String = %q", text, rendered)
		}
		id2, err := types.Parse(in, rendered)
		if err != nil {
			t.Fatalf("re-Parse(%q): %v", rendered, err)
		}
		if !types.Equal(in, id, id2) {
			t.Fatalf("re-parsed type not structurally equal to original for %q", text)
		}
	}
}

func TestParseUnknownBaseType(t *testing.T) {
	in := types.NewInterner()
	if _, err := types.Parse(in, "widget"); err == nil {
		t.Fatal("expected error for unknown base type name")
	}
}

func TestParseSuffixesAssociateLeftToRight(t *testing.T) {
	in := types.NewInterner()
	id, err := types.Parse(in, "i64*[4]")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tt := in.MustLookup(id)
	if tt.Kind != types.KindArray || tt.ArrayLen != 4 {
		t.Fatalf("expected outer array of 4, got %+v", tt)
	}
	elem := in.MustLookup(tt.Elem)
	if elem.Kind != types.KindPointer {
		t.Fatalf("expected array element to be a pointer, got %+v", elem)
	}
}
