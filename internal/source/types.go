// Package source holds the primitives shared by every compiler stage:
// file content, line/column positions, and source-line lookup.
package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata recorded while loading a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (stdin, test, generated).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM indicates a UTF-8 byte-order mark was stripped on load.
	FileHadBOM
	// FileNormalizedCRLF indicates CRLF line endings were normalized to LF on load.
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // byte offset of every '\n', for GetLine
	Hash    [32]byte
	Flags   FileFlags
}
