package types_test

import (
	"testing"

	"tabc/internal/types"
)

func TestIntegerAndSignedPredicates(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	i32 := in.MustLookup(b.I32)
	i64 := in.MustLookup(b.I64)
	u64 := in.MustLookup(b.U64)
	boolT := in.MustLookup(b.Bool)

	if !i32.IsInteger() || !i32.IsSigned() {
		t.Fatal("i32 must be integer and signed")
	}
	if !u64.IsInteger() || u64.IsSigned() {
		t.Fatal("u64 must be integer and unsigned")
	}
	if i64.IsBuiltin() && !i64.IsSigned() {
		t.Fatal("i64 must be signed")
	}
	if boolT.IsInteger() {
		t.Fatal("bool must not be integer")
	}
}

func TestComparablePredicate(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	ptr := in.Intern(types.MakePointer(b.I64))
	ptrT := in.MustLookup(ptr)
	if !ptrT.IsComparable() {
		t.Fatal("pointers must be comparable")
	}
	charT := in.MustLookup(b.Char)
	if !charT.IsComparable() {
		t.Fatal("char must be comparable")
	}
	voidT := in.MustLookup(b.Void)
	if voidT.IsComparable() {
		t.Fatal("void must not be comparable")
	}
}

func TestEqualRecursesThroughPointerAndArray(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	p1 := in.Intern(types.MakePointer(b.I64))
	a1 := in.Intern(types.MakeArray(p1, 3))
	p2 := in.Intern(types.MakePointer(b.I64))
	a2 := in.Intern(types.MakeArray(p2, 3))
	if !types.Equal(in, a1, a2) {
		t.Fatal("structurally identical nested types must be Equal")
	}
	a3 := in.Intern(types.MakeArray(p2, 4))
	if types.Equal(in, a1, a3) {
		t.Fatal("arrays of different length must not be Equal")
	}
}
