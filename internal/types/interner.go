package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins holds the stable TypeIDs of the six primitive types, interned
// once when the Interner is constructed.
type Builtins struct {
	I32  TypeID
	I64  TypeID
	U64  TypeID
	Bool TypeID
	Char TypeID
	Void TypeID
}

// Interner gives every distinct type a stable TypeID for the lifetime of
// one compilation unit. Record field lists live in a side table
// (RecordInfo) rather than in Type itself, the same split the reference
// interner uses to keep its fixed-size descriptor cheap to copy while still
// supporting variable-length struct-field payloads.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	records  []RecordInfo
	builtins Builtins
}

// RecordInfo is the side-table payload for a KindRecord Type. Field names
// are kept for member-access resolution but, per typeKey below, take no
// part in the type's interning identity: structural equality between
// records is positional over field types only, so a record literal with
// synthetic empty field names can legitimately share a TypeID with a
// nominally declared struct of matching field types.
type RecordInfo struct {
	Fields []Field
}

// NewInterner constructs an Interner with the six built-ins pre-interned.
func NewInterner() *Interner {
	in := &Interner{index: make(map[typeKey]TypeID, 32)}
	in.records = append(in.records, RecordInfo{}) // reserve 0
	in.types = append(in.types, Type{})           // reserve 0: NoTypeID never names a real type
	in.builtins.I32 = in.Intern(MakeBuiltin(I32))
	in.builtins.I64 = in.Intern(MakeBuiltin(I64))
	in.builtins.U64 = in.Intern(MakeBuiltin(U64))
	in.builtins.Bool = in.Intern(MakeBuiltin(Bool))
	in.builtins.Char = in.Intern(MakeBuiltin(Char))
	in.builtins.Void = in.Intern(MakeBuiltin(Void))
	return in
}

// Builtins returns the TypeIDs of the primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures a non-record descriptor has a stable TypeID. Use
// InternRecord for KindRecord types.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := simpleKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// InternRecord interns a record type described by its ordered field list.
// Two InternRecord calls with the same sequence of field TYPES (names
// irrelevant, order significant) return the same TypeID; the RecordInfo
// recorded is whichever call interned it first.
func (in *Interner) InternRecord(fields []Field) TypeID {
	recIdx, err := safecast.Conv[uint32](len(in.records))
	if err != nil {
		panic(fmt.Errorf("types: too many records: %w", err))
	}
	probe := Type{Kind: KindRecord, Record: recIdx}
	key := recordKey(fields)
	if id, ok := in.index[key]; ok {
		return id
	}
	in.records = append(in.records, RecordInfo{Fields: fields})
	id := in.internRawWithKey(probe, key)
	return id
}

func (in *Interner) internRaw(t Type) TypeID {
	return in.internRawWithKey(t, simpleKey(t))
}

func (in *Interner) internRawWithKey(t Type, key typeKey) TypeID {
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("types: too many interned types: %w", err))
	}
	id := TypeID(n)
	in.types = append(in.types, t)
	in.index[key] = id
	return id
}

// Lookup returns the descriptor for id, or false if id is out of range.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id does not name an interned type.
func (in *Interner) MustLookup(id TypeID) Type {
	t, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return t
}

// RecordFields returns the field list of a record TypeID.
func (in *Interner) RecordFields(id TypeID) ([]Field, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindRecord {
		return nil, false
	}
	return in.records[t.Record].Fields, true
}

// typeKey is the structural-hash map key used to dedupe non-record types.
// Record carries a key-agnostic zero so a freshly constructed Type{Kind:
// KindRecord} probe never collides; record identity is computed by
// recordKey instead and installed directly into the index.
type typeKey struct {
	Kind     Kind
	Builtin  BuiltinKind
	Elem     TypeID
	ArrayLen uint64
	fieldSig string
}

func simpleKey(t Type) typeKey {
	return typeKey{Kind: t.Kind, Builtin: t.Builtin, Elem: t.Elem, ArrayLen: t.ArrayLen}
}

func recordKey(fields []Field) typeKey {
	sig := make([]byte, 0, len(fields)*4)
	for _, f := range fields {
		sig = append(sig, byte(f.Type), byte(f.Type>>8), byte(f.Type>>16), byte(f.Type>>24))
	}
	return typeKey{Kind: KindRecord, fieldSig: string(sig)}
}
