package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet owns every source file loaded during one compiler invocation and
// resolves a token's (FileID, line) back to source text for diagnostics.
type FileSet struct {
	files []File
	index map[string]FileID
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{index: make(map[string]FileID)}
}

// Load reads a file from disk, normalizes CRLF/BOM, and registers it.
func (fs *FileSet) Load(path string) (FileID, error) {
	content, err := os.ReadFile(path) //nolint:gosec // path is supplied by the caller (CLI argument)
	if err != nil {
		return 0, err
	}
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)
	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fs.add(path, content, flags), nil
}

// AddVirtual registers in-memory content (tests, stdin) as a new file.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.add(name, content, FileVirtual)
}

func (fs *FileSet) add(path string, content []byte, flags FileFlags) FileID {
	hash := sha256.Sum256(content)
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("source: too many files: %w", err))
	}
	id := FileID(n)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    path,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    hash,
		Flags:   flags,
	})
	fs.index[path] = id
	return id
}

// Get returns the file metadata for id. Panics if id is out of range, the
// same contract as indexing a slice directly.
func (fs *FileSet) Get(id FileID) *File {
	return &fs.files[id]
}

// Line returns the 1-based source line text named by pos, or "" if out of range.
func (fs *FileSet) Line(pos Position) string {
	return fs.Get(pos.File).GetLine(pos.Line)
}

// GetLine returns the 1-based source line, or "" if it doesn't exist.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	var start, end uint32
	switch {
	case lineNum == 1:
		start = 0
	case int(lineNum-2) < len(f.LineIdx):
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}
	if int(lineNum-1) < len(f.LineIdx) {
		end = f.LineIdx[lineNum-1]
	} else {
		end = uint32(len(f.Content))
	}
	if start >= uint32(len(f.Content)) {
		return ""
	}
	if end > uint32(len(f.Content)) {
		end = uint32(len(f.Content))
	}
	return string(f.Content[start:end])
}
