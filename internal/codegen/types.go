package codegen

import (
	"fmt"
	"strings"

	"tabc/internal/types"
)

// escapeLLVMString renders text as an LLVM c"..." string constant,
// hex-escaping every non-printable-ASCII byte and appending the
// null terminator the pointer-to-char convention requires.
func escapeLLVMString(text string) string {
	var b strings.Builder
	b.WriteString(`c"`)
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch == '"' || ch == '\\':
			fmt.Fprintf(&b, "\\%02X", ch)
		case ch >= 0x20 && ch < 0x7f:
			b.WriteByte(ch)
		default:
			fmt.Fprintf(&b, "\\%02X", ch)
		}
	}
	b.WriteString(`\00"`)
	return b.String()
}

// llvmType renders id in the emitter's textual IR type syntax. Every
// pointer, array, and record is represented as an opaque ptr; arrays
// and records carry their own element/field types only through the
// GEP instructions that index into them, not through the pointer's
// static type.
func llvmType(in *types.Interner, id types.TypeID) string {
	if id == types.NoTypeID {
		return "void"
	}
	t := in.MustLookup(id)
	switch t.Kind {
	case types.KindBuiltin:
		switch t.Builtin {
		case types.I32:
			return "i32"
		case types.I64, types.U64:
			return "i64"
		case types.Bool:
			return "i1"
		case types.Char:
			return "i8"
		default:
			return "void"
		}
	case types.KindPointer, types.KindArray, types.KindRecord:
		return "ptr"
	default:
		return "void"
	}
}
