package diagfmt

import (
	"encoding/json"
	"io"

	"tabc/internal/diag"
	"tabc/internal/source"
)

// DiagnosticJSON is the wire shape shared by JSON and msgpack rendering.
type DiagnosticJSON struct {
	Severity string `json:"severity" msgpack:"severity"`
	Code     string `json:"code" msgpack:"code"`
	Message  string `json:"message" msgpack:"message"`
	File     string `json:"file" msgpack:"file"`
	Func     string `json:"func,omitempty" msgpack:"func,omitempty"`
	Line     uint32 `json:"line" msgpack:"line"`
	Col      uint32 `json:"col" msgpack:"col"`
}

// ToDiagnostic converts a core diagnostic into the wire shape, resolving
// its file path through fs (nil is tolerated, yielding an empty path).
func ToDiagnostic(err *diag.Error, fs *source.FileSet, opts JSONOpts) DiagnosticJSON {
	return DiagnosticJSON{
		Severity: diag.SevError.String(),
		Code:     err.Code.String(),
		Message:  err.Msg,
		File:     pathFor(err.Span.File, fs, opts.PathMode),
		Func:     err.Func,
		Line:     err.Span.Line,
		Col:      err.Span.Col,
	}
}

// JSON writes err as a single indented JSON object.
func JSON(w io.Writer, err *diag.Error, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToDiagnostic(err, fs, opts))
}
