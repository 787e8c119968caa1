package diagfmt

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"tabc/internal/diag"
	"tabc/internal/source"
)

// Msgpack writes err msgpack-encoded, the machine-readable format
// `tabc check --format msgpack` emits, sharing its wire shape with JSON so
// a consumer can decode either with the same struct.
func Msgpack(w io.Writer, err *diag.Error, fs *source.FileSet, opts JSONOpts) error {
	return msgpack.NewEncoder(w).Encode(ToDiagnostic(err, fs, opts))
}
