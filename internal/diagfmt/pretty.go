package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"tabc/internal/diag"
	"tabc/internal/source"
)

var errorColor = color.New(color.FgRed, color.Bold)

// Pretty renders a single diagnostic as:
//
//	path:line:col: error code: message
//	    <source line>
//	    <caret under the offending column>
//
// fs may be nil (e.g. a lex error surfaced before any file was
// registered); in that case only the first line is printed.
func Pretty(w io.Writer, err *diag.Error, fs *source.FileSet, opts PrettyOpts) error {
	if err == nil {
		return nil
	}
	path := pathFor(err.Span.File, fs, opts.PathMode)
	header := fmt.Sprintf("%s:%d:%d: error %s: %s", path, err.Span.Line, err.Span.Col, err.Code, err.Msg)
	if opts.Color {
		header = fmt.Sprintf("%s:%d:%d: %s %s: %s", path, err.Span.Line, err.Span.Col, errorColor.Sprint("error"), err.Code, err.Msg)
	}
	if _, werr := fmt.Fprintln(w, header); werr != nil {
		return werr
	}

	if fs == nil {
		return nil
	}
	line := fs.Line(err.Span)
	if line == "" {
		return nil
	}
	line = clipWidth(line, opts.Width)
	if _, werr := fmt.Fprintf(w, "    %s\n", line); werr != nil {
		return werr
	}
	caret := caretLine(line, err.Span.Col)
	_, werr := fmt.Fprintf(w, "    %s\n", caret)
	return werr
}

func pathFor(file source.FileID, fs *source.FileSet, mode PathMode) string {
	if fs == nil {
		return "<unknown>"
	}
	path := fs.Get(file).Path
	if mode == PathModeBasename {
		return filepath.Base(path)
	}
	return path
}

// caretLine draws spaces up to col-1 display columns (tabs and wide runes
// counted via go-runewidth) followed by a single caret.
func caretLine(line string, col uint32) string {
	target := int(col) - 1
	if target < 0 {
		target = 0
	}
	var b strings.Builder
	width := 0
	for _, r := range line {
		if width >= target {
			break
		}
		if r == '\t' {
			width += 4
			b.WriteString("    ")
			continue
		}
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			rw = 1
		}
		width += rw
		b.WriteByte(' ')
	}
	b.WriteByte('^')
	return b.String()
}

func clipWidth(line string, width uint16) string {
	if width == 0 {
		return line
	}
	if runewidth.StringWidth(line) <= int(width) {
		return line
	}
	return runewidth.Truncate(line, int(width), "...")
}
