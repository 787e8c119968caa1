package types

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders a Builtin/Pointer/Array type in the same surface syntax
// the parser's type grammar accepts: a base type name followed by any
// number of left-to-right `*` and `[N]` suffixes. Records render by their
// field type sequence, which the parser cannot read back as a type name;
// String is intended for diagnostics there, not round-tripping.
func (in *Interner) String(id TypeID) string {
	t, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	switch t.Kind {
	case KindBuiltin:
		return t.Builtin.String()
	case KindPointer:
		return in.String(t.Elem) + "*"
	case KindArray:
		return fmt.Sprintf("%s[%d]", in.String(t.Elem), t.ArrayLen)
	case KindRecord:
		fields, _ := in.RecordFields(id)
		parts := make([]string, len(fields))
		for i, f := range fields {
			parts[i] = in.String(f.Type)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "<invalid>"
	}
}

// Parse reads the textual form the type grammar accepts for the
// Builtin/Pointer/Array subset: a base type name followed by any number of
// `*` and `[N]` suffixes, associated left-to-right. It is the inverse of
// String for that subset.
func Parse(in *Interner, text string) (TypeID, error) {
	base, suffixes, err := splitTypeName(text)
	if err != nil {
		return NoTypeID, err
	}
	id, err := baseTypeID(in, base)
	if err != nil {
		return NoTypeID, err
	}
	for _, suf := range suffixes {
		if suf.isPointer {
			id = in.Intern(MakePointer(id))
			continue
		}
		id = in.Intern(MakeArray(id, suf.arrayLen))
	}
	return id, nil
}

type typeSuffix struct {
	isPointer bool
	arrayLen  uint64
}

func splitTypeName(text string) (string, []typeSuffix, error) {
	i := 0
	for i < len(text) && (isAlphaNum(text[i])) {
		i++
	}
	base := text[:i]
	if base == "" {
		return "", nil, fmt.Errorf("types: empty base type name in %q", text)
	}
	var suffixes []typeSuffix
	for i < len(text) {
		switch text[i] {
		case '*':
			suffixes = append(suffixes, typeSuffix{isPointer: true})
			i++
		case '[':
			end := strings.IndexByte(text[i:], ']')
			if end < 0 {
				return "", nil, fmt.Errorf("types: unterminated array suffix in %q", text)
			}
			numText := text[i+1 : i+end]
			n, err := strconv.ParseUint(numText, 10, 64)
			if err != nil {
				return "", nil, fmt.Errorf("types: bad array length in %q: %w", text, err)
			}
			suffixes = append(suffixes, typeSuffix{arrayLen: n})
			i += end + 1
		default:
			return "", nil, fmt.Errorf("types: unexpected character %q in %q", text[i], text)
		}
	}
	return base, suffixes, nil
}

func isAlphaNum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func baseTypeID(in *Interner, name string) (TypeID, error) {
	b := in.Builtins()
	switch name {
	case "i32":
		return b.I32, nil
	case "i64":
		return b.I64, nil
	case "u64":
		return b.U64, nil
	case "bool":
		return b.Bool, nil
	case "char":
		return b.Char, nil
	case "void":
		return b.Void, nil
	default:
		return NoTypeID, fmt.Errorf("types: unknown base type %q", name)
	}
}
