package token

// keyword pairs a literal keyword spelling with the token Kind it produces.
type keyword struct {
	text string
	kind Kind
}

// keywords is consulted by the lexer as an ordered table of PREFIX tests
// against the remaining input, not as a lookup keyed by an already-scanned
// identifier. This reproduces the reference tokenizer's documented quirk:
// matching is a raw prefix test, so an identifier that merely begins with a
// keyword (e.g. "forward" begins with "for") is mis-tokenized into the
// keyword token followed by a separate identifier for the remainder. Do not
// "fix" this into a whole-word match; it is preserved deliberately.
var keywords = []keyword{
	{"function", KwFunction},
	{"return", KwReturn},
	{"var", KwVar},
	{"if", KwIf},
	{"else", KwElse},
	{"elif", KwElif},
	{"for", KwFor},
	{"continue", KwContinue},
	{"break", KwBreak},
	{"and", KwAnd},
	{"or", KwOr},
	{"struct", KwStruct},
}

// MatchKeywordPrefix returns the keyword whose spelling is a prefix of rest,
// and ok=true, or ok=false if no keyword prefixes rest. When more than one
// keyword would match, the longest spelling wins so that, e.g., "elif" is
// preferred over a hypothetical shorter keyword prefix of it.
func MatchKeywordPrefix(rest string) (Kind, string, bool) {
	best := -1
	var bestKind Kind
	var bestText string
	for _, kw := range keywords {
		if len(rest) < len(kw.text) {
			continue
		}
		if rest[:len(kw.text)] != kw.text {
			continue
		}
		if len(kw.text) > best {
			best = len(kw.text)
			bestKind = kw.kind
			bestText = kw.text
		}
	}
	if best < 0 {
		return Invalid, "", false
	}
	return bestKind, bestText, true
}
