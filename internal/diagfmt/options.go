// Package diagfmt renders a *diag.Error (the core compiler's only error
// shape) to a writer, in one of three forms: a colorized human-readable
// snippet, JSON, or msgpack for machine consumption. It is a pure
// presentation layer — the core never imports it and never logs on its
// own; it only ever returns the first fatal error, and diagfmt is how the
// CLI turns that single value into output.
package diagfmt

// PathMode controls how a diagnostic's file path is rendered.
type PathMode uint8

const (
	// PathModeAsGiven prints the path exactly as it was passed to the
	// compiler (relative or absolute, whichever the caller used).
	PathModeAsGiven PathMode = iota
	// PathModeBasename strips every directory component.
	PathModeBasename
)

// PrettyOpts configures Pretty's human-readable rendering.
type PrettyOpts struct {
	// Color enables fatih/color severity coloring. Callers should set
	// this from an isatty check, not unconditionally.
	Color bool
	// PathMode controls how the file path is printed.
	PathMode PathMode
	// Width bounds the rendered source line, 0 means unbounded.
	Width uint16
}

// JSONOpts configures JSON and msgpack rendering.
type JSONOpts struct {
	PathMode PathMode
}
