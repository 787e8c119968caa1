package types_test

import (
	"testing"

	"tabc/internal/types"
)

func TestBuiltinsAreStable(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	if b.I32 == types.NoTypeID || b.I64 == types.NoTypeID || b.U64 == types.NoTypeID {
		t.Fatal("expected non-zero builtin TypeIDs")
	}
	if in.Intern(types.MakeBuiltin(types.I64)) != b.I64 {
		t.Fatal("interning i64 twice should return the same TypeID")
	}
}

func TestPointerAndArrayDedup(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	p1 := in.Intern(types.MakePointer(b.I64))
	p2 := in.Intern(types.MakePointer(b.I64))
	if p1 != p2 {
		t.Fatal("two pointers to the same element type should share a TypeID")
	}
	a1 := in.Intern(types.MakeArray(b.I64, 4))
	a2 := in.Intern(types.MakeArray(b.I64, 4))
	if a1 != a2 {
		t.Fatal("two arrays of the same element and length should share a TypeID")
	}
	a3 := in.Intern(types.MakeArray(b.I64, 5))
	if a1 == a3 {
		t.Fatal("arrays of different length must not share a TypeID")
	}
}

func TestRecordStructuralEqualityIgnoresNames(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	point := in.InternRecord([]types.Field{{Name: "x", Type: b.I64}, {Name: "y", Type: b.I64}})
	vector := in.InternRecord([]types.Field{{Name: "dx", Type: b.I64}, {Name: "dy", Type: b.I64}})
	if point != vector {
		t.Fatal("records with the same field-type sequence must share a TypeID regardless of field names")
	}
	literal := in.InternRecord([]types.Field{{Name: "", Type: b.I64}, {Name: "", Type: b.I64}})
	if literal != point {
		t.Fatal("a record literal's synthetic empty field names must not prevent it matching a declared record")
	}
}

func TestRecordFieldOrderSignificant(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	a := in.InternRecord([]types.Field{{Name: "a", Type: b.I64}, {Name: "b", Type: b.Bool}})
	c := in.InternRecord([]types.Field{{Name: "a", Type: b.Bool}, {Name: "b", Type: b.I64}})
	if a == c {
		t.Fatal("records with the same field types in different order must not be equal")
	}
}

func TestRecordFieldsPreservesFirstInternedNames(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	id := in.InternRecord([]types.Field{{Name: "x", Type: b.I64}})
	in.InternRecord([]types.Field{{Name: "other", Type: b.I64}})
	fields, ok := in.RecordFields(id)
	if !ok || len(fields) != 1 || fields[0].Name != "x" {
		t.Fatalf("expected original field name x, got %+v", fields)
	}
}
